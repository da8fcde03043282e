// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package deck implements the JSON input file read by cmd/dfmgen: a
// complete grid layout, per-block mechanical properties and fracture
// sets, and the episode sequence to run (§6 "Persisted state... all state
// is derived from inputs and the episode sequence"). Follows inp.Simulation
// /inp.ReadSim's SetDefault-then-json.Unmarshal-then-PostProcess idiom.
package deck

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"

	"github.com/JointFlow/DFMGenerator-sub007/dipset"
	"github.com/JointFlow/DFMGenerator-sub007/gblk"
	"github.com/JointFlow/DFMGenerator-sub007/grid"
	"github.com/JointFlow/DFMGenerator-sub007/inpctl"
	"github.com/JointFlow/DFMGenerator-sub007/mprops"
)

// DipSetSpec describes one dip set to attach to a fracture set (§3, §6)
type DipSetSpec struct {
	Azimuth       float64           `json:"azimuth"`
	DipAngle      float64           `json:"dipAngle"`
	DipPlus       bool              `json:"dipPlus"`
	Thresholds    dipset.Thresholds `json:"thresholds"`
	NBins         int               `json:"nBins"`
	MaxHalfLength float64           `json:"maxHalfLength"`
}

// FractureSetSpec groups the dip sets sharing one strike azimuth
type FractureSetSpec struct {
	Azimuth float64      `json:"azimuth"`
	DipSets []DipSetSpec `json:"dipSets"`
}

// BlockSpec describes one gridblock: its geometry, mechanical properties,
// fracture sets and propagation control (§3 data model)
type BlockSpec struct {
	Row int `json:"row"`
	Col int `json:"col"`

	TopXYZ    [4][3]float64 `json:"top"`
	BottomXYZ [4][3]float64 `json:"bottom"`

	ILength float64 `json:"iLength"`
	JLength float64 `json:"jLength"`

	InitialSigmaV        float64 `json:"initialSigmaV"`
	InitialPorePressure  float64 `json:"initialPorePressure"`
	InitialRelaxation    float64 `json:"initialRelaxation"`

	MechProps fun.Prms `json:"mechanicalProperties"`

	FractureSets []FractureSetSpec `json:"fractureSets"`

	Control *inpctl.PropagationControl `json:"propagationControl"`
}

// Deck is the whole simulation input: grid shape, global DFN control,
// every block's own specification, and the shared episode sequence driven
// across the whole grid by sched.Scheduler (§4.9, §6)
type Deck struct {
	Rows       int `json:"rows"`
	Cols       int `json:"cols"`
	Seed       int `json:"seed"`

	Control *inpctl.DFNControl `json:"dfnControl"`

	Blocks []*BlockSpec `json:"blocks"`

	Episodes []*inpctl.DeformationEpisode `json:"episodes"`

	StartTime float64 `json:"startTime"`

	// DepthToSigmaV/DepthToPorePressure are not read from the deck: the
	// command-line entry point supplies a simple linear-gradient
	// implementation by default (§4.6 "derive each block's initial
	// vertical stress and pore pressure from its own depth")
	SigmaVGradient        float64 `json:"sigmaVGradient"`        // Pa per metre depth
	PorePressureGradient  float64 `json:"porePressureGradient"`  // Pa per metre depth
}

// Load reads and validates a Deck from a JSON file, following
// inp.ReadSim's "SetDefault, then Unmarshal, then PostProcess" order so
// that fields absent from the file still get the package's defaults
func Load(path string) (*Deck, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, chk.Err("deck: cannot read %q: %v", path, err)
	}

	o := &Deck{
		Control: &inpctl.DFNControl{},
	}
	o.Control.SetDefault()

	if err := json.Unmarshal(b, o); err != nil {
		return nil, chk.Err("deck: cannot parse %q: %v", path, err)
	}

	if err := o.PostProcess(); err != nil {
		return nil, err
	}
	return o, nil
}

// PostProcess validates the deck and normalises every block's propagation
// control and episode list (§7 "Configuration invalid... surfaced at
// configuration time; aborts before any calculation")
func (o *Deck) PostProcess() error {
	if o.Rows <= 0 || o.Cols <= 0 {
		return chk.Err("deck: Rows and Cols must be positive")
	}
	if err := o.Control.PostProcess(); err != nil {
		return err
	}
	for _, ep := range o.Episodes {
		if err := ep.Normalize(); err != nil {
			return chk.Err("deck: episode normalize failed: %v", err)
		}
	}
	for _, b := range o.Blocks {
		if b.Control == nil {
			return chk.Err("deck: block (%d,%d): missing propagationControl", b.Row, b.Col)
		}
		b.Control.SetDefault()
		if err := b.Control.PostProcess(); err != nil {
			return chk.Err("deck: block (%d,%d): %v", b.Row, b.Col, err)
		}
	}
	return nil
}

// Build constructs the FractureGrid described by the deck: every block's
// cornerpoints, mechanical properties, fracture sets and stress/strain
// initial state (§3 data model, §4.6 "derive... from its own depth")
func (o *Deck) Build() (*grid.FractureGrid, error) {
	g := grid.New(o.Rows, o.Cols, o.Seed, o.Control)

	for _, spec := range o.Blocks {
		top := xyzToCorners(spec.TopXYZ)
		bottom := xyzToCorners(spec.BottomXYZ)
		b := gblk.New(spec.Row, spec.Col, top, bottom, spec.ILength, spec.JLength, g.Rnd)

		props, err := mprops.New("default", spec.MechProps)
		if err != nil {
			return nil, chk.Err("deck: block (%d,%d): mechanical properties: %v", spec.Row, spec.Col, err)
		}
		b.MechProps = props
		b.StressStrain.SetInitial(spec.InitialSigmaV, spec.InitialPorePressure, spec.InitialRelaxation, props.Biot)
		b.Control = spec.Control

		for _, fs := range spec.FractureSets {
			set := dipset.NewSet(fs.Azimuth)
			for _, ds := range fs.DipSets {
				set.AddDipSet(dipset.NewDipSet(ds.Azimuth, ds.DipAngle, ds.DipPlus, ds.Thresholds, ds.NBins, ds.MaxHalfLength))
			}
			b.Sets = append(b.Sets, set)
		}

		if spec.Row < 0 || spec.Row >= o.Rows || spec.Col < 0 || spec.Col >= o.Cols {
			return nil, chk.Err("deck: block (%d,%d) out of grid bounds %dx%d", spec.Row, spec.Col, o.Rows, o.Cols)
		}
		g.Blocks[spec.Row][spec.Col] = b
	}

	g.RefreshGeometry(o.Control.MinimumLayerThickness)
	return g, nil
}

func xyzToCorners(xyz [4][3]float64) [4]*gblk.Corner {
	var out [4]*gblk.Corner
	for i, c := range xyz {
		out[i] = &gblk.Corner{X: c[0], Y: c[1], Z: c[2]}
	}
	return out
}
