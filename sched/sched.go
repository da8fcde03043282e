// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sched implements the global timestep scheduler (§4.9): the
// priority-ordered merge of every block's per-episode timesteps into one
// wall-clock timeline, driving interleaved local DFN propagation so that
// neighbouring-block interactions resolve in correct temporal order.
// Follows fem.FEM.Run's stage-loop-plus-ShowMsg control flow, generalized
// from "loop over simulation stages" to "loop over deformation episodes,
// each drained by the merged per-block-timestep order" (§4.9, §5).
package sched

import (
	"github.com/cpmech/gosl/io"

	"github.com/JointFlow/DFMGenerator-sub007/grid"
	"github.com/JointFlow/DFMGenerator-sub007/inpctl"
	"github.com/JointFlow/DFMGenerator-sub007/prog"
)

// Scheduler drives a FractureGrid through a sequence of deformation
// episodes, exclusively owning the global calculation-element count and
// timestep counter (§5 "Resource policy")
type Scheduler struct {
	Grid     *grid.FractureGrid
	Reporter prog.Reporter

	// TargetEndTime, if >0, stops the run at the first calculation element
	// whose end-time reaches or exceeds it (§4.9 "target end-time")
	TargetEndTime float64
	// TargetElementCount, if >0, stops the run after this many calculation
	// elements across the whole grid (§4.9 "target count of calculation elements")
	TargetElementCount int

	timestep int
	elements int
}

// New allocates a scheduler over g, reporting through reporter (pass
// prog.NoOp{} for none)
func New(g *grid.FractureGrid, reporter prog.Reporter) *Scheduler {
	return &Scheduler{Grid: g, Reporter: reporter}
}

// Run drives the grid through every episode in order, accumulating
// wall-clock time from startTime, until the episodes are exhausted or a
// target stopping condition is reached (§4.9). depthToSigmaV/
// depthToPorePressure derive each block's initial vertical stress and pore
// pressure from its own depth, as RunEpisodeAll requires.
func (o *Scheduler) Run(episodes []*inpctl.DeformationEpisode, startTime float64, depthToSigmaV, depthToPorePressure func(depth float64) float64) (endTime float64, aborted bool) {
	t := startTime
	for _, ep := range episodes {
		var stop bool
		t, stop, aborted = o.RunEpisode(ep, t, depthToSigmaV, depthToPorePressure)
		if aborted || stop {
			return t, aborted
		}
	}
	return t, false
}

// RunEpisode runs the implicit calculator across every block for one
// episode, merges the resulting per-block timesteps into global order, and
// drives the explicit local propagator across that order, one calculation
// element (one block's one timestep) at a time (§4.6, §4.7, §4.9). stop
// reports whether a configured target was reached.
func (o *Scheduler) RunEpisode(ep *inpctl.DeformationEpisode, startTime float64, depthToSigmaV, depthToPorePressure func(depth float64) float64) (endTime float64, stop, aborted bool) {
	ctl := o.Grid.Control
	o.Grid.RefreshGeometry(ctl.MinimumLayerThickness)

	results, errs := o.Grid.RunEpisodeAll(ep, startTime, depthToSigmaV, depthToPorePressure)
	for key, err := range errs {
		if ctl.Verbose {
			io.Pfyel("sched: block (%d,%d) implicit calculation failed, localized per propagation policy: %v\n", key[0], key[1], err)
		}
	}

	merged := o.Grid.MergeTimesteps(results)
	o.Reporter.SetNumberOfElements(o.elements + len(merged))

	lastTime := make(map[[2]int]float64)
	endTime = startTime

	for _, bt := range merged {
		if o.Reporter.AbortCalculation() {
			return endTime, false, true
		}

		key := [2]int{bt.Row, bt.Col}
		prev, ok := lastTime[key]
		if !ok {
			prev = startTime
		}
		dt := bt.EndTime - prev
		lastTime[key] = bt.EndTime
		o.timestep++
		o.elements++

		b := o.Grid.At(bt.Row, bt.Col)
		if b != nil && !b.DFNThicknessCutoffActivated && ctl.GenerateExplicitDFN && dt > 0 {
			res := b.PropagateStep(ctl, o.timestep, bt.EndTime, dt, ctl.PropagateFracturesInNucleationOrder)
			if len(res.ExitedSegments) > 0 {
				o.Grid.HandoffExited(bt.Row, bt.Col, res.ExitedSegments, ctl.MaxConsistencyAngle, o.timestep)
			}
		}

		o.Reporter.UpdateProgress(o.elements)
		if bt.EndTime > endTime {
			endTime = bt.EndTime
		}

		if o.TargetEndTime > 0 && endTime >= o.TargetEndTime {
			return endTime, true, false
		}
		if o.TargetElementCount > 0 && o.elements >= o.TargetElementCount {
			return endTime, true, false
		}
	}
	return endTime, false, false
}
