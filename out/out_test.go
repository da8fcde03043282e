// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/JointFlow/DFMGenerator-sub007/gdfn"
)

func twoSegmentMacrofracture(id uint64) *gdfn.MacrofractureXYZ {
	return &gdfn.MacrofractureXYZ{
		ID: id, DipSetIndex: 0, DipPlus: true, NucleationTime: 1e5,
		Permeability: 1e-13, Compressibility: 1e-10, Aperture: 1e-4,
		Plus: gdfn.Wing{
			TopTrace: []gdfn.Point3{
				{X: 0, Y: 0, Z: 2000}, {X: 10, Y: 0, Z: 2000},
				{X: 10, Y: 0, Z: 2000}, {X: 20, Y: 0, Z: 2000},
			},
			BottomTrace: []gdfn.Point3{
				{X: 0, Y: 0, Z: 2100}, {X: 10, Y: 0, Z: 2100},
				{X: 10, Y: 0, Z: 2100}, {X: 20, Y: 0, Z: 2100},
			},
		},
	}
}

func Test_write_ascii_produces_start_end_blocks(tst *testing.T) {
	chk.PrintTitle("out_write_ascii_produces_start_end_blocks")
	net := &gdfn.GlobalDFN{Macrofractures: []*gdfn.MacrofractureXYZ{twoSegmentMacrofracture(1)}}

	dir := tst.TempDir()
	path := filepath.Join(dir, "net.ascii")
	if err := WriteASCII(path, net); err != nil {
		tst.Fatalf("WriteASCII failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		tst.Fatalf("ReadFile failed: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "Start Points") || !strings.Contains(text, "End Points") {
		tst.Errorf("expected Start Points / End Points blocks, got:\n%s", text)
	}
	if !strings.Contains(text, "Fracture\t1\t") {
		tst.Errorf("expected a fracture header row, got:\n%s", text)
	}
}

func Test_write_fab_scenario_round_trip(tst *testing.T) {
	chk.PrintTitle("out_write_fab_scenario_round_trip")

	var macros []*gdfn.MacrofractureXYZ
	for i := uint64(0); i < 10; i++ {
		macros = append(macros, twoSegmentMacrofracture(i+1))
	}
	net := &gdfn.GlobalDFN{Macrofractures: macros}

	dir := tst.TempDir()
	path := filepath.Join(dir, "net.fab")
	if err := WriteFAB(path, net); err != nil {
		tst.Fatalf("WriteFAB failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		tst.Fatalf("ReadFile failed: %v", err)
	}
	text := string(data)

	// each macrofracture has one Plus wing with 2 panels (4 trace points -> 2 pairs);
	// 10 macrofractures * 2 panels = 20 fractures, 80 nodes (§8 scenario 6)
	if !strings.Contains(text, "No_Fractures = 20") {
		tst.Errorf("expected No_Fractures = 20, got:\n%s", text)
	}
	if !strings.Contains(text, "No_Nodes = 80") {
		tst.Errorf("expected No_Nodes = 80, got:\n%s", text)
	}
	propCount := strings.Count(text, "Property = ")
	if propCount != 3 {
		tst.Errorf("expected 3 BEGIN PROPERTIES entries, got %d", propCount)
	}
	if !strings.Contains(text, "BEGIN TESSFRACTURE\nEND TESSFRACTURE") {
		tst.Errorf("expected empty TESSFRACTURE section, got:\n%s", text)
	}
	if !strings.Contains(text, "BEGIN ROCKBLOCK\nEND ROCKBLOCK") {
		tst.Errorf("expected empty ROCKBLOCK section, got:\n%s", text)
	}
}
