// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gdfn

import (
	"sort"

	"github.com/JointFlow/DFMGenerator-sub007/inpctl"
)

// Snapshot is one intermediate growth-stage capture of the global DFN,
// tagged with the wall-clock time it was taken at (§4.8 "Intermediate snapshots")
type Snapshot struct {
	Time float64
	DFN  *GlobalDFN
}

// SnapshotTimes computes the ordered list of times at which a growth-stage
// snapshot is taken for one episode spanning [startTime, endTime], per the
// configured policy (§4.8):
//   - SpecifiedTime: the subset of ctl.IntermediateOutputTimes falling
//     within the episode, in ascending order, plus endTime.
//   - EqualTime: NumberOfIntermediateOutputs evenly spaced points strictly
//     inside the episode, plus endTime.
//   - EqualArea: NumberOfIntermediateOutputs evenly spaced indices over the
//     ordered list of per-block timesteps (blockTimes), plus endTime.
func SnapshotTimes(ctl *inpctl.DFNControl, startTime, endTime float64, blockTimes []float64) []float64 {
	n := ctl.NumberOfIntermediateOutputs
	var times []float64
	switch ctl.SeparateIntermediateOutputsBy {
	case inpctl.SpecifiedTime:
		for _, t := range ctl.IntermediateOutputTimes {
			if t > startTime && t < endTime {
				times = append(times, t)
			}
		}
	case inpctl.EqualArea:
		if n > 0 && len(blockTimes) > 0 {
			sorted := append([]float64(nil), blockTimes...)
			sort.Float64s(sorted)
			for k := 1; k <= n; k++ {
				idx := k * len(sorted) / (n + 1)
				if idx >= len(sorted) {
					idx = len(sorted) - 1
				}
				t := sorted[idx]
				if t > startTime && t < endTime {
					times = append(times, t)
				}
			}
		}
	default: // EqualTime
		if n > 0 {
			duration := endTime - startTime
			for k := 1; k <= n; k++ {
				t := startTime + duration*float64(k)/float64(n+1)
				times = append(times, t)
			}
		}
	}
	sort.Float64s(times)
	times = append(times, endTime)
	return times
}

// CullSnapshot removes, from a snapshot copy only (never the active working
// DFN, §5 "receive a deep copy"), every macrofracture below
// MacrofractureDFNMinimumLength and every microfracture below
// MicrofractureDFNMinimumRadius, then — if MaxNoFractures>=0 and still
// exceeded — drops the smallest-size surplus macrofractures (§4.8).
func CullSnapshot(dfn *GlobalDFN, ctl *inpctl.DFNControl) {
	if ctl.MacrofractureDFNMinimumLength >= 0 {
		kept := dfn.Macrofractures[:0]
		for _, m := range dfn.Macrofractures {
			if m.HalfLength() >= ctl.MacrofractureDFNMinimumLength {
				kept = append(kept, m)
			}
		}
		dfn.Macrofractures = kept
	}
	if ctl.MicrofractureDFNMinimumRadius >= 0 {
		kept := dfn.Microfractures[:0]
		for _, u := range dfn.Microfractures {
			if u.Radius >= ctl.MicrofractureDFNMinimumRadius {
				kept = append(kept, u)
			}
		}
		dfn.Microfractures = kept
	}
	if ctl.MaxNoFractures >= 0 && len(dfn.Macrofractures) > ctl.MaxNoFractures {
		sort.Slice(dfn.Macrofractures, func(i, j int) bool {
			return dfn.Macrofractures[i].HalfLength() > dfn.Macrofractures[j].HalfLength()
		})
		dfn.Macrofractures = dfn.Macrofractures[:ctl.MaxNoFractures]
	}
}

// TakeSnapshot deep-copies dfn and culls the copy, leaving the working DFN
// untouched (§4.8, §5)
func TakeSnapshot(t float64, working *GlobalDFN, ctl *inpctl.DFNControl) Snapshot {
	cp := working.Copy()
	CullSnapshot(cp, ctl)
	return Snapshot{Time: t, DFN: cp}
}
