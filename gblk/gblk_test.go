// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gblk

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"

	"github.com/JointFlow/DFMGenerator-sub007/dipset"
	"github.com/JointFlow/DFMGenerator-sub007/inpctl"
	"github.com/JointFlow/DFMGenerator-sub007/mprops"
	"github.com/JointFlow/DFMGenerator-sub007/rng"
)

func newTestBlock(tst *testing.T) *Gridblock {
	top := [4]*Corner{{0, 0, 2000}, {1000, 0, 2000}, {1000, 1000, 2000}, {0, 1000, 2000}}
	bottom := [4]*Corner{{0, 0, 2100}, {1000, 0, 2100}, {1000, 1000, 2100}, {0, 1000, 2100}}
	blk := New(0, 0, top, bottom, 1000, 1000, rng.NewSource(1))
	blk.RefreshGeometry(1.0)

	props, err := mprops.New("default", fun.Prms{
		&fun.Prm{N: "E", V: 1e10},
		&fun.Prm{N: "nu", V: 0.25},
		&fun.Prm{N: "biot", V: 1.0},
		&fun.Prm{N: "Gc", V: 1000},
		&fun.Prm{N: "mu", V: 0.5},
		&fun.Prm{N: "b", V: 3},
		&fun.Prm{N: "A", V: 2000},
	})
	if err != nil {
		tst.Fatalf("mprops.New failed: %v", err)
	}
	blk.MechProps = props

	thresh := dipset.Thresholds{
		CriticalDrivingStress: 1e5,
		MinClearZoneVolume:    0.01,
		TerminationRatioAMFP33: 0.9,
		TerminationRatioActive: 0.05,
		AnisotropyCutoff:      0.5,
		MaxTSMFP33Increase:    1e-3,
		MaxTimestepDuration:   1e10,
	}
	set0 := dipset.NewSet(0)
	set0.AddDipSet(dipset.NewDipSet(0, 0, true, thresh, 10, 10))
	set1 := dipset.NewSet(math.Pi / 2)
	set1.AddDipSet(dipset.NewDipSet(math.Pi/2, 0, true, thresh, 10, 10))
	blk.Sets = []*dipset.Set{set0, set1}

	ctl := &inpctl.PropagationControl{}
	ctl.SetDefault()
	blk.Control = ctl

	blk.StressStrain.SetInitial(2000*9.81*2200, 2000*9810, 0, 1)
	return blk
}

func Test_run_episode_activates_perpendicular_set(tst *testing.T) {
	chk.PrintTitle("gblk_run_episode_activates_perpendicular_set")
	blk := newTestBlock(tst)
	ep := &inpctl.DeformationEpisode{
		MinHorizontalStrainRate: -1e-14,
		MaxHorizontalStrainRate: 0,
		AzimuthOfMinStrain:      0,
		Duration:                1e4,
	}
	if err := ep.Normalize(); err != nil {
		tst.Fatalf("Normalize failed: %v", err)
	}
	res, err := blk.RunEpisode(ep, 0, 2000*9.81*2200, 2000*9810)
	if err != nil {
		tst.Fatalf("RunEpisode failed: %v", err)
	}
	if res.EndTime <= 0 {
		tst.Errorf("expected nonzero end time")
	}
	if len(res.TimestepEndTimes) == 0 {
		tst.Fatalf("expected at least one timestep")
	}
}

func Test_propagate_step_nucleates_and_advances(tst *testing.T) {
	chk.PrintTitle("gblk_propagate_step_nucleates_and_advances")
	blk := newTestBlock(tst)
	ep := &inpctl.DeformationEpisode{
		MinHorizontalStrainRate: -1e-14,
		MaxHorizontalStrainRate: 0,
		AzimuthOfMinStrain:      0,
		Duration:                1e4,
	}
	if err := ep.Normalize(); err != nil {
		tst.Fatalf("Normalize failed: %v", err)
	}
	if _, err := blk.RunEpisode(ep, 0, 2000*9.81*2200, 2000*9810); err != nil {
		tst.Fatalf("RunEpisode failed: %v", err)
	}

	ctl := &inpctl.DFNControl{}
	ctl.SetDefault()
	ctl.ProbabilisticFractureNucleationLimit = 1e30 // force probabilistic path in this small test
	res := blk.PropagateStep(ctl, 1, 0, 1e3, false)
	_ = res
	if blk.AllSetsDeactivated() {
		tst.Logf("all sets deactivated by end of test episode (acceptable for a short run)")
	}
}

func Test_volume_and_geometry(tst *testing.T) {
	chk.PrintTitle("gblk_volume_and_geometry")
	blk := newTestBlock(tst)
	chk.Scalar(tst, "thickness", 1e-9, blk.ThicknessAtDeformation, 100)
	if blk.DFNThicknessCutoffActivated {
		tst.Errorf("expected no thickness cutoff for a 100m-thick block with 1m minimum")
	}
	chk.Scalar(tst, "volume", 1e-6, blk.Volume(), 1000*1000*100)
}
