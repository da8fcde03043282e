// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package gblk implements the Gridblock (§3, §4.6, §4.7): the composition
// of stress/strain state, mechanical properties, an ordered list of
// fracture sets, an explicit local DFN, and propagation control, plus the
// single-block implicit calculator and local DFN propagator.
package gblk

import (
	"github.com/cpmech/gosl/chk"

	"github.com/JointFlow/DFMGenerator-sub007/dfn"
	"github.com/JointFlow/DFMGenerator-sub007/dipset"
	"github.com/JointFlow/DFMGenerator-sub007/inpctl"
	"github.com/JointFlow/DFMGenerator-sub007/mprops"
	"github.com/JointFlow/DFMGenerator-sub007/rng"
	"github.com/JointFlow/DFMGenerator-sub007/sstate"
)

// Corner is one cornerpoint of a gridblock in the grid's global XYZ frame.
// Corners on a shared edge are the same *Corner value aliased between the
// two neighbouring blocks (§3 ownership: "cornerpoints ... are shared").
type Corner struct {
	X, Y, Z float64
}

// Gridblock owns one column of the areal mesh: its stress/strain state,
// mechanical properties, fracture sets, explicit local DFN, propagation
// control, and the eight 3D cornerpoints bounding the prismatic column
// (§3 data model)
type Gridblock struct {
	RowIndex, ColIndex int // position in the owning grid, for global IDs and tie-break ordering

	StressStrain *sstate.State
	MechProps    *mprops.MechanicalProperties
	Sets         []*dipset.Set
	LocalDFN     *dfn.LocalDFN
	Control      *inpctl.PropagationControl

	// Top[0..3] and Bottom[0..3] run in a consistent winding order
	// (SW, SE, NE, NW) matching FractureSet's per-corner pillar storage
	Top, Bottom [4]*Corner

	// ILength/JLength are the block's plan-view dimensions along the local
	// IJK frame, used for nucleation-point sampling and volume (§4.7)
	ILength, JLength float64

	// Thickness/Depth at the time of deformation are recomputed by
	// RefreshGeometry before each episode, since uplift/overpressure can
	// change mid-layer depth across episodes
	ThicknessAtDeformation float64
	DepthAtDeformation     float64

	// DFNThicknessCutoffActivated is raised when this block's
	// ThicknessAtDeformation falls below the grid's MinimumLayerThickness;
	// the block still receives implicit updates but is skipped for
	// explicit DFN generation (§4.9, §7)
	DFNThicknessCutoffActivated bool

	rnd *rng.Source
}

// New allocates an empty gridblock at (row, col), with the given corners
// and local-frame plan dimensions. The caller must still attach mechanical
// properties, the stress/strain state, and fracture sets.
func New(row, col int, top, bottom [4]*Corner, iLength, jLength float64, rnd *rng.Source) *Gridblock {
	return &Gridblock{
		RowIndex: row, ColIndex: col,
		StressStrain: &sstate.State{},
		LocalDFN:     dfn.NewLocalDFN(),
		Top:          top, Bottom: bottom,
		ILength: iLength, JLength: jLength,
		rnd: rnd,
	}
}

// Volume returns the block's current prismatic volume
func (o *Gridblock) Volume() float64 {
	return o.ILength * o.JLength * o.ThicknessAtDeformation
}

// RefreshGeometry recomputes ThicknessAtDeformation (average of the four
// bottom-minus-top corner Z differences) and DepthAtDeformation (average
// mid-layer Z, positive-down) from the current cornerpoints, and raises
// DFNThicknessCutoffActivated against the supplied minimum (§4.9)
func (o *Gridblock) RefreshGeometry(minimumLayerThickness float64) {
	var thickSum, depthSum float64
	for k := 0; k < 4; k++ {
		thickSum += o.Bottom[k].Z - o.Top[k].Z
		depthSum += 0.5 * (o.Bottom[k].Z + o.Top[k].Z)
	}
	o.ThicknessAtDeformation = thickSum / 4
	o.DepthAtDeformation = depthSum / 4
	o.DFNThicknessCutoffActivated = o.ThicknessAtDeformation < minimumLayerThickness
}

// AllSetsDeactivated reports whether every dip set in every fracture set
// owned by this block has reached EvolutionStage Deactivated (§4.6 loop
// termination condition)
func (o *Gridblock) AllSetsDeactivated() bool {
	for _, s := range o.Sets {
		if !s.AllDeactivated() {
			return false
		}
	}
	return true
}

// DipSetAt returns the dip set at a flattened index across all owned
// fracture sets, in declared order (set 0's dips first, then set 1's, ...)
func (o *Gridblock) DipSetAt(flatIndex int) *dipset.DipSet {
	i := 0
	for _, s := range o.Sets {
		for _, d := range s.Dips {
			if i == flatIndex {
				return d
			}
			i++
		}
	}
	return nil
}

// FlatDipSets returns every dip set across every fracture set, in declared
// order
func (o *Gridblock) FlatDipSets() []*dipset.DipSet {
	var out []*dipset.DipSet
	for _, s := range o.Sets {
		out = append(out, s.Dips...)
	}
	return out
}

// RandomSource returns the block's (grid-owned) random source
func (o *Gridblock) RandomSource() *rng.Source {
	return o.rnd
}

// checkReady verifies the minimum composition needed to run an episode
func (o *Gridblock) checkReady() error {
	if o.MechProps == nil {
		return chk.Err("gblk: Gridblock(%d,%d): MechProps not set", o.RowIndex, o.ColIndex)
	}
	if o.Control == nil {
		return chk.Err("gblk: Gridblock(%d,%d): Control not set", o.RowIndex, o.ColIndex)
	}
	if len(o.Sets) == 0 {
		return chk.Err("gblk: Gridblock(%d,%d): no fracture sets configured", o.RowIndex, o.ColIndex)
	}
	return nil
}
