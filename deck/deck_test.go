// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package deck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
)

const singleBlockDeckJSON = `{
	"rows": 1, "cols": 1, "seed": 7,
	"dfnControl": {
		"generateExplicitDFN": true,
		"macrofractureDFNMinimumLength": 0,
		"minimumLayerThickness": 1,
		"defaultFracturePermeability": 1e-15,
		"defaultFractureCompressibility": 1e-10
	},
	"startTime": 0,
	"sigmaVGradient": 22000,
	"porePressureGradient": 10000,
	"blocks": [{
		"row": 0, "col": 0,
		"top": [[0,0,2000],[1000,0,2000],[1000,1000,2000],[0,1000,2000]],
		"bottom": [[0,0,2100],[1000,0,2100],[1000,1000,2100],[0,1000,2100]],
		"iLength": 1000, "jLength": 1000,
		"initialSigmaV": 44000000, "initialPorePressure": 20000000,
		"mechanicalProperties": [
			{"N":"E","V":1e10}, {"N":"nu","V":0.25}, {"N":"Gc","V":1000},
			{"N":"mu","V":0.5}, {"N":"b","V":3}, {"N":"A","V":2000}
		],
		"fractureSets": [{
			"azimuth": 0,
			"dipSets": [{
				"azimuth": 0, "dipAngle": 0, "dipPlus": true,
				"thresholds": {"criticalDrivingStress": 1e5, "maxTimestepDuration": 1e9, "maxTSMFP33Increase": 1e-3},
				"nBins": 5, "maxHalfLength": 5
			}]
		}],
		"propagationControl": {}
	}],
	"episodes": [{
		"minHorizontalStrainRate": -1e-14, "duration": 1e10,
		"rateUnits": "second", "durationUnits": "second"
	}]
}`

func Test_load_and_build_single_block_deck(tst *testing.T) {
	chk.PrintTitle("deck_load_and_build_single_block_deck")

	dir := tst.TempDir()
	path := filepath.Join(dir, "deck.json")
	if err := os.WriteFile(path, []byte(singleBlockDeckJSON), 0644); err != nil {
		tst.Fatalf("WriteFile failed: %v", err)
	}

	d, err := Load(path)
	if err != nil {
		tst.Fatalf("Load failed: %v", err)
	}
	if len(d.Episodes) != 1 {
		tst.Fatalf("expected 1 episode, got %d", len(d.Episodes))
	}
	if d.Episodes[0].DurationSI() != 1e10 {
		tst.Errorf("expected episode to be normalized by PostProcess, got DurationSI=%v", d.Episodes[0].DurationSI())
	}

	g, err := d.Build()
	if err != nil {
		tst.Fatalf("Build failed: %v", err)
	}
	b := g.At(0, 0)
	if b == nil {
		tst.Fatalf("expected block (0,0) to be populated")
	}
	if b.MechProps == nil {
		tst.Fatalf("expected mechanical properties to be attached")
	}
	if len(b.Sets) != 1 || len(b.Sets[0].Dips) != 1 {
		tst.Fatalf("expected 1 fracture set with 1 dip set, got %d sets", len(b.Sets))
	}
	if b.ThicknessAtDeformation <= 0 {
		tst.Errorf("expected RefreshGeometry to have run during Build, got thickness=%v", b.ThicknessAtDeformation)
	}
}

func Test_load_rejects_missing_propagation_control(tst *testing.T) {
	chk.PrintTitle("deck_load_rejects_missing_propagation_control")

	dir := tst.TempDir()
	path := filepath.Join(dir, "deck.json")
	const badJSON = `{"rows":1,"cols":1,"dfnControl":{},"blocks":[{"row":0,"col":0}]}`
	if err := os.WriteFile(path, []byte(badJSON), 0644); err != nil {
		tst.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := Load(path); err == nil {
		tst.Errorf("expected Load to reject a block with no propagationControl")
	}
}
