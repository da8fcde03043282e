// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"math"

	"github.com/JointFlow/DFMGenerator-sub007/dfn"
	"github.com/JointFlow/DFMGenerator-sub007/gblk"
)

// HandoffExited continues every segment that exited gridblock (row,col)
// (collected by Gridblock.PropagateStep when CropToGrid=false) into the
// appropriate neighbour, provided the neighbour owns a fracture set within
// maxConsistencyAngle of the exiting segment's azimuth; otherwise the
// segment terminates where it left off (§4.7 "Consistency across the block
// boundary"). Only east/west crossing is resolved, since a segment's own
// strike-aligned I axis is assumed grid-column-aligned for handoff purposes
// (azimuth=0 strike sets, the common areal-grid case); a segment that exits
// along its J axis has no grid-relative boundary to resolve and remains
// ExitedBlock.
func (o *FractureGrid) HandoffExited(row, col int, exited []*dfn.Segment, maxConsistencyAngle float64, timestep int) {
	origin := o.At(row, col)
	if origin == nil {
		return
	}
	originSets := origin.FlatDipSets()

	for _, s := range exited {
		var nb *gblk.Gridblock
		var entryI float64
		switch {
		case s.PropagatingNode.I > origin.ILength:
			nb = o.East(row, col)
			entryI = s.PropagatingNode.I - origin.ILength
		case s.PropagatingNode.I < 0:
			nb = o.West(row, col)
			if nb != nil {
				entryI = nb.ILength + s.PropagatingNode.I
			}
		default:
			continue
		}
		if nb == nil {
			continue
		}
		if s.DipSetIndex < 0 || s.DipSetIndex >= len(originSets) {
			continue
		}
		azimuth := originSets[s.DipSetIndex].Azimuth
		matchIdx := closestMatchingSet(nb, azimuth, maxConsistencyAngle)
		if matchIdx < 0 {
			continue
		}

		id := nb.LocalDFN.NextSegmentID()
		at := dfn.Point{I: entryI, J: s.PropagatingNode.J, K: s.PropagatingNode.K}
		cont := dfn.NewSegment(id, matchIdx, s.DipPlus, s.Direction, at, timestep, s.NucleationTime, s.WeightedNucleationTime)
		cont.InheritChain(s)
		nb.LocalDFN.AddSegment(cont)
	}
}

// closestMatchingSet returns the flattened dip-set index of nb whose
// azimuth is closest to azimuth, or -1 if that closest set is farther than
// maxAngle; a maxAngle <= 0 disables the angle check
func closestMatchingSet(nb *gblk.Gridblock, azimuth, maxAngle float64) int {
	best := -1
	bestDiff := math.Inf(1)
	for i, d := range nb.FlatDipSets() {
		diff := azimuthDiff(d.Azimuth, azimuth)
		if diff < bestDiff {
			bestDiff, best = diff, i
		}
	}
	if maxAngle > 0 && bestDiff > maxAngle {
		return -1
	}
	return best
}

// azimuthDiff returns the smallest angular difference between two
// azimuths wrapped to [0,π)
func azimuthDiff(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > math.Pi/2 {
		d = math.Pi - d
	}
	return d
}

// PropagateAllStep runs one local-propagation step on every non-nil block,
// in row-major order (row 0 first, columns left to right), then hands off every exited segment to its
// matching neighbour (§4.7, §4.9 "local DFN propagations are interleaved").
func (o *FractureGrid) PropagateAllStep(timestep int, t, dt float64, maxConsistencyAngle float64) map[[2]int]gblk.PropagateResult {
	results := make(map[[2]int]gblk.PropagateResult)
	for r := 0; r < o.Rows; r++ {
		for c := 0; c < o.Cols; c++ {
			b := o.Blocks[r][c]
			if b == nil || b.DFNThicknessCutoffActivated {
				continue
			}
			res := b.PropagateStep(o.Control, timestep, t, dt, o.Control.PropagateFracturesInNucleationOrder)
			results[[2]int{r, c}] = res
			if len(res.ExitedSegments) > 0 {
				o.HandoffExited(r, c, res.ExitedSegments, maxConsistencyAngle, timestep)
			}
		}
	}
	return results
}
