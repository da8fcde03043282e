// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"

	"github.com/JointFlow/DFMGenerator-sub007/dipset"
	"github.com/JointFlow/DFMGenerator-sub007/gblk"
	"github.com/JointFlow/DFMGenerator-sub007/inpctl"
	"github.com/JointFlow/DFMGenerator-sub007/mprops"
)

func newBlockAt(tst *testing.T, row, col int, thickness float64, g *FractureGrid) *gblk.Gridblock {
	z0 := 2000.0
	top := [4]*gblk.Corner{{X: 0, Y: 0, Z: z0}, {X: 1000, Y: 0, Z: z0}, {X: 1000, Y: 1000, Z: z0}, {X: 0, Y: 1000, Z: z0}}
	bot := [4]*gblk.Corner{{X: 0, Y: 0, Z: z0 + thickness}, {X: 1000, Y: 0, Z: z0 + thickness}, {X: 1000, Y: 1000, Z: z0 + thickness}, {X: 0, Y: 1000, Z: z0 + thickness}}
	b := gblk.New(row, col, top, bot, 1000, 1000, g.Rnd)

	props, err := mprops.New("default", fun.Prms{
		&fun.Prm{N: "E", V: 1e10}, &fun.Prm{N: "nu", V: 0.25},
		&fun.Prm{N: "Gc", V: 1000}, &fun.Prm{N: "mu", V: 0.5},
		&fun.Prm{N: "b", V: 3}, &fun.Prm{N: "A", V: 2000},
	})
	if err != nil {
		tst.Fatalf("mprops.New failed: %v", err)
	}
	b.MechProps = props

	thresh := dipset.Thresholds{CriticalDrivingStress: 1e5, MaxTimestepDuration: 1e10, MaxTSMFP33Increase: 1e-3}
	set := dipset.NewSet(0)
	set.AddDipSet(dipset.NewDipSet(0, 0, true, thresh, 5, 5))
	b.Sets = []*dipset.Set{set}

	ctl := &inpctl.PropagationControl{}
	ctl.SetDefault()
	b.Control = ctl
	return b
}

func Test_neighbour_lookup(tst *testing.T) {
	chk.PrintTitle("grid_neighbour_lookup")
	ctl := &inpctl.DFNControl{}
	ctl.SetDefault()
	g := New(2, 1, 1, ctl)
	g.Blocks[0][0] = newBlockAt(tst, 0, 0, 100, g)
	g.Blocks[1][0] = newBlockAt(tst, 1, 0, 0.5, g)

	if g.South(0, 0) != g.Blocks[1][0] {
		tst.Errorf("expected South(0,0) to be block (1,0)")
	}
	if g.North(1, 0) != g.Blocks[0][0] {
		tst.Errorf("expected North(1,0) to be block (0,0)")
	}
	if g.North(0, 0) != nil {
		tst.Errorf("expected North(0,0) to be nil (grid boundary)")
	}
}

func Test_share_corners_aliases_pointer(tst *testing.T) {
	chk.PrintTitle("grid_share_corners_aliases_pointer")
	ctl := &inpctl.DFNControl{}
	ctl.SetDefault()
	g := New(2, 1, 1, ctl)
	g.Blocks[0][0] = newBlockAt(tst, 0, 0, 100, g)
	g.Blocks[1][0] = newBlockAt(tst, 1, 0, 100, g)

	if err := g.ShareCorners(0, 0, 2, 2, 1, 0, 0, 0); err != nil {
		tst.Fatalf("ShareCorners failed: %v", err)
	}
	g.Blocks[0][0].Top[2].X = 12345
	if g.Blocks[1][0].Top[0].X != 12345 {
		tst.Errorf("expected aliased corner to reflect edit through the other block")
	}
}

func Test_thickness_cutoff_flag(tst *testing.T) {
	chk.PrintTitle("grid_thickness_cutoff_flag")
	ctl := &inpctl.DFNControl{}
	ctl.SetDefault()
	g := New(2, 1, 1, ctl)
	g.Blocks[0][0] = newBlockAt(tst, 0, 0, 100, g)
	g.Blocks[1][0] = newBlockAt(tst, 1, 0, 0.5, g)

	g.RefreshGeometry(1.0)
	if !g.DFNThicknessCutoffActivated {
		tst.Errorf("expected grid-level cutoff flag raised by the 0.5m-thick block")
	}
	if g.Blocks[0][0].DFNThicknessCutoffActivated {
		tst.Errorf("expected the 100m-thick block to not trip the cutoff")
	}
}

func Test_merge_timesteps_stable_order(tst *testing.T) {
	chk.PrintTitle("grid_merge_timesteps_stable_order")
	ctl := &inpctl.DFNControl{}
	ctl.SetDefault()
	g := New(1, 2, 1, ctl)
	g.Blocks[0][0] = newBlockAt(tst, 0, 0, 100, g)
	g.Blocks[0][1] = newBlockAt(tst, 0, 1, 100, g)

	perBlock := map[[2]int]gblk.EpisodeResult{
		{0, 0}: {TimestepEndTimes: []float64{10, 30}},
		{0, 1}: {TimestepEndTimes: []float64{10, 20}},
	}
	merged := g.MergeTimesteps(perBlock)
	if len(merged) != 4 {
		tst.Fatalf("expected 4 merged entries, got %d", len(merged))
	}
	for i := 1; i < len(merged); i++ {
		if merged[i].EndTime < merged[i-1].EndTime {
			tst.Errorf("expected ascending end times, got %v before %v", merged[i-1].EndTime, merged[i].EndTime)
		}
	}
	if merged[0].Col != 0 || merged[1].Col != 1 {
		tst.Errorf("expected tie at t=10 broken by column order: got %+v, %+v", merged[0], merged[1])
	}
}
