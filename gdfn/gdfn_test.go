// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gdfn

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"

	"github.com/JointFlow/DFMGenerator-sub007/dfn"
	"github.com/JointFlow/DFMGenerator-sub007/dipset"
	"github.com/JointFlow/DFMGenerator-sub007/gblk"
	"github.com/JointFlow/DFMGenerator-sub007/grid"
	"github.com/JointFlow/DFMGenerator-sub007/inpctl"
	"github.com/JointFlow/DFMGenerator-sub007/mprops"
)

func newTestGrid(tst *testing.T) *grid.FractureGrid {
	ctl := &inpctl.DFNControl{}
	ctl.SetDefault()
	g := grid.New(1, 2, 7, ctl)

	for _, col := range []int{0, 1} {
		z0 := 2000.0
		x0 := float64(col) * 1000
		top := [4]*gblk.Corner{
			{X: x0, Y: 0, Z: z0}, {X: x0 + 1000, Y: 0, Z: z0},
			{X: x0 + 1000, Y: 1000, Z: z0}, {X: x0, Y: 1000, Z: z0},
		}
		bottom := [4]*gblk.Corner{
			{X: x0, Y: 0, Z: z0 + 100}, {X: x0 + 1000, Y: 0, Z: z0 + 100},
			{X: x0 + 1000, Y: 1000, Z: z0 + 100}, {X: x0, Y: 1000, Z: z0 + 100},
		}
		b := gblk.New(0, col, top, bottom, 1000, 1000, g.Rnd)
		props, err := mprops.New("default", fun.Prms{
			&fun.Prm{N: "E", V: 1e10}, &fun.Prm{N: "nu", V: 0.25},
			&fun.Prm{N: "Gc", V: 1000}, &fun.Prm{N: "mu", V: 0.5},
			&fun.Prm{N: "b", V: 3}, &fun.Prm{N: "A", V: 2000},
			&fun.Prm{N: "kn", V: 1e9}, &fun.Prm{N: "dyn_ap_mult", V: 1e-3},
		})
		if err != nil {
			tst.Fatalf("mprops.New failed: %v", err)
		}
		b.MechProps = props
		b.ThicknessAtDeformation = 100

		thresh := dipset.Thresholds{CriticalDrivingStress: 1e5, MaxTimestepDuration: 1e10, MaxTSMFP33Increase: 1e-3}
		set := dipset.NewSet(0)
		set.AddDipSet(dipset.NewDipSet(0, 0, true, thresh, 5, 5))
		b.Sets = []*dipset.Set{set}

		pctl := &inpctl.PropagationControl{}
		pctl.SetDefault()
		b.Control = pctl

		g.Blocks[0][col] = b
	}
	return g
}

func Test_assemble_single_block_macrofracture(tst *testing.T) {
	chk.PrintTitle("gdfn_assemble_single_block_macrofracture")
	g := newTestGrid(tst)
	b := g.At(0, 0)

	s := dfn.NewSegment(b.LocalDFN.NextSegmentID(), 0, true, dfn.IPlus, dfn.Point{I: 100, J: 500}, 0, 10, 15)
	s.AdvanceTip(200)
	b.LocalDFN.AddSegment(s)

	out := Assemble(g, g.Control)
	if len(out.Macrofractures) != 1 {
		tst.Fatalf("expected 1 macrofracture, got %d", len(out.Macrofractures))
	}
	m := out.Macrofractures[0]
	if len(m.Plus.TopTrace) != 2 || len(m.Minus.TopTrace) != 0 {
		tst.Fatalf("expected 2-point Plus wing and empty Minus wing, got %d/%d", len(m.Plus.TopTrace), len(m.Minus.TopTrace))
	}
	chk.Scalar(tst, "macrofracture nucleation time", 1e-12, m.NucleationTime, 10)
	chk.Scalar(tst, "top trace start X", 1e-9, m.Plus.TopTrace[0].X, 100)
	chk.Scalar(tst, "top trace end X", 1e-9, m.Plus.TopTrace[1].X, 300)
	chk.Scalar(tst, "top trace start Z (top surface)", 1e-9, m.Plus.TopTrace[0].Z, 2000)
	chk.Scalar(tst, "bottom trace start Z", 1e-9, m.Plus.BottomTrace[0].Z, 2100)
}

func Test_assemble_cross_block_chain_single_global_id(tst *testing.T) {
	chk.PrintTitle("gdfn_assemble_cross_block_chain_single_global_id")
	g := newTestGrid(tst)
	b0, b1 := g.At(0, 0), g.At(0, 1)

	origin := dfn.NewSegment(b0.LocalDFN.NextSegmentID(), 0, true, dfn.IPlus, dfn.Point{I: 900, J: 500}, 0, 5, 7)
	origin.AdvanceTip(100)
	origin.Deactivate(dfn.ExitedBlock, 0)
	b0.LocalDFN.AddSegment(origin)

	cont := dfn.NewSegment(b1.LocalDFN.NextSegmentID(), 0, true, dfn.IPlus, dfn.Point{I: 0, J: 500}, 0, 5, 7)
	cont.InheritChain(origin)
	cont.AdvanceTip(50)
	b1.LocalDFN.AddSegment(cont)

	out := Assemble(g, g.Control)
	if len(out.Macrofractures) != 1 {
		tst.Fatalf("expected segments from both blocks to merge into 1 macrofracture, got %d", len(out.Macrofractures))
	}
	if len(out.Macrofractures[0].Plus.TopTrace) != 4 {
		tst.Errorf("expected a 4-point trace (2 segments x 2 nodes), got %d", len(out.Macrofractures[0].Plus.TopTrace))
	}
}

func Test_snapshot_times_equal_time_policy(tst *testing.T) {
	chk.PrintTitle("gdfn_snapshot_times_equal_time_policy")
	ctl := &inpctl.DFNControl{}
	ctl.SetDefault()
	ctl.NumberOfIntermediateOutputs = 4
	ctl.SeparateIntermediateOutputsBy = inpctl.EqualTime

	times := SnapshotTimes(ctl, 0, 1e6, nil)
	expected := []float64{0.2e6, 0.4e6, 0.6e6, 0.8e6, 1e6}
	if len(times) != len(expected) {
		tst.Fatalf("expected %d snapshot times, got %d: %v", len(expected), len(times), times)
	}
	for i, e := range expected {
		chk.Scalar(tst, "snapshot time", 1e-6, times[i], e)
	}
}

func Test_cull_snapshot_drops_below_minimum_and_surplus(tst *testing.T) {
	chk.PrintTitle("gdfn_cull_snapshot_drops_below_minimum_and_surplus")
	ctl := &inpctl.DFNControl{}
	ctl.SetDefault()
	ctl.MacrofractureDFNMinimumLength = 10
	ctl.MaxNoFractures = 1

	working := &GlobalDFN{
		Macrofractures: []*MacrofractureXYZ{
			{ID: 1, Plus: Wing{TopTrace: []Point3{{X: 0}, {X: 5}}}},   // length 5, below minimum
			{ID: 2, Plus: Wing{TopTrace: []Point3{{X: 0}, {X: 20}}}},  // length 20
			{ID: 3, Plus: Wing{TopTrace: []Point3{{X: 0}, {X: 15}}}},  // length 15, surplus vs MaxNoFractures=1
		},
	}
	snap := TakeSnapshot(100, working, ctl)
	if len(snap.DFN.Macrofractures) != 1 {
		tst.Fatalf("expected 1 surviving macrofracture, got %d", len(snap.DFN.Macrofractures))
	}
	if snap.DFN.Macrofractures[0].ID != 2 {
		tst.Errorf("expected the longest macrofracture (ID=2) to survive culling, got ID=%d", snap.DFN.Macrofractures[0].ID)
	}
	if len(working.Macrofractures) != 3 {
		tst.Errorf("expected the working (un-snapshotted) DFN to remain untouched, got %d", len(working.Macrofractures))
	}
}
