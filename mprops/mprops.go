// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mprops implements the mechanical properties of a gridblock: the
// elastic, strain-relaxation, subcritical-propagation and aperture
// parameters that drive every dip set hosted by the block.
package mprops

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// StrainRelaxationCase identifies which part of the strain rate relaxes
// viscoelastically (§4.3)
type StrainRelaxationCase int

const (
	RelaxNone StrainRelaxationCase = iota
	RelaxUniform
	RelaxFractureOnly
)

// ApertureControl bundles the Barton-Bandis and dynamic-aperture parameters
// (§4.3 "side-bundle")
type ApertureControl struct {
	JRC              float64 // joint roughness coefficient
	UCSRatio         float64 // wall-strength/UCS ratio
	NormalStiffness  float64 // Barton-Bandis initial normal stiffness [Pa/m]
	MaxClosure       float64 // Barton-Bandis maximum joint closure [m]
	InitialNormalStress float64 // initial effective normal stress across fracture [Pa]
	DynamicApertureMultiplier float64 // scales the dynamic (propagation-driven) aperture term
}

// MechanicalProperties holds the elastic, fracture-toughness, friction,
// strain-relaxation and subcritical-propagation parameters for one gridblock
type MechanicalProperties struct {
	Name string

	// elastic
	E, Nu, Biot float64

	// fracture mechanics
	Gc, Kc float64 // crack-surface energy, derived fracture toughness
	Mu     float64 // friction coefficient

	// strain relaxation
	RelaxCase StrainRelaxationCase
	TauBulk   float64 // τ_r
	TauFrac   float64 // τ_f

	// subcritical propagation
	B        float64 // subcritical index b
	Beta     float64 // β = 2/(2-b)
	A        float64 // critical propagation rate constant
	AlphaUF  float64 // α_uF, microfracture propagation constant

	Aperture ApertureControl
}

// Init resolves a MechanicalProperties bundle from a named-parameter deck,
// following the multi-basis resolution style of mdl/solid.SmallElasticity.Init
func (o *MechanicalProperties) Init(prms fun.Prms) (err error) {
	var hasE, hasNu, hasGc, hasMu, hasB, hasA bool
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E, hasE = p.V, true
		case "nu":
			o.Nu, hasNu = p.V, true
		case "biot":
			o.Biot = p.V
		case "Gc":
			o.Gc, hasGc = p.V, true
		case "mu":
			o.Mu, hasMu = p.V, true
		case "b":
			o.B, hasB = p.V, true
		case "A":
			o.A, hasA = p.V, true
		case "tau_r":
			o.TauBulk = p.V
		case "tau_f":
			o.TauFrac = p.V
		case "jrc":
			o.Aperture.JRC = p.V
		case "ucs_ratio":
			o.Aperture.UCSRatio = p.V
		case "kn":
			o.Aperture.NormalStiffness = p.V
		case "max_closure":
			o.Aperture.MaxClosure = p.V
		case "sigma_n0":
			o.Aperture.InitialNormalStress = p.V
		case "dyn_ap_mult":
			o.Aperture.DynamicApertureMultiplier = p.V
		}
	}
	if !hasE || !hasNu {
		return chk.Err("mprops: MechanicalProperties requires {E, nu}\n")
	}
	if !hasGc {
		return chk.Err("mprops: MechanicalProperties requires Gc (crack-surface energy)\n")
	}
	if !hasMu {
		o.Mu = 0.6
	}
	if !hasB {
		return chk.Err("mprops: MechanicalProperties requires b (subcritical index)\n")
	}
	if !hasA {
		return chk.Err("mprops: MechanicalProperties requires A (critical propagation rate)\n")
	}

	o.Kc = math.Sqrt(o.Gc * o.E / (1 - o.Nu*o.Nu))

	if o.B == 2 {
		o.Beta = math.Inf(1) // special-cased per §4.3
	} else {
		o.Beta = 2.0 / (2.0 - o.B)
	}

	o.AlphaUF = o.A * math.Pow(2.0/(math.Sqrt(math.Pi)*o.Kc), o.B)

	if o.TauBulk > 0 && o.TauFrac > 0 {
		o.RelaxCase = RelaxUniform
	} else if o.TauFrac > 0 {
		o.RelaxCase = RelaxFractureOnly
	} else {
		o.RelaxCase = RelaxNone
	}
	return
}

// AlphaMF computes the macrofracture propagation constant α_MF, which
// depends on the layer thickness h at the time of deformation (§4.3)
func (o *MechanicalProperties) AlphaMF(h float64) float64 {
	return o.A * math.Pow(math.Sqrt(2*h)/(math.Sqrt(math.Pi)*o.Kc), o.B)
}

// HydraulicAperture estimates a representative fracture aperture for file
// output from the Barton-Bandis normal stiffness and dynamic-aperture
// multiplier (§4.3 "side-bundle"); it is a scale proxy for output purposes,
// not a closure-vs-effective-stress Barton-Bandis model.
func (o *MechanicalProperties) HydraulicAperture() float64 {
	if o.Aperture.NormalStiffness <= 0 {
		return 0
	}
	return o.Aperture.DynamicApertureMultiplier / o.Aperture.NormalStiffness
}

// GetPrms returns an example parameter set, following the
// msolid/onedlinelast.go GetPrms convention
func (o MechanicalProperties) GetPrms() fun.Prms {
	return fun.Prms{
		&fun.Prm{N: "E", V: 1e10},
		&fun.Prm{N: "nu", V: 0.25},
		&fun.Prm{N: "biot", V: 1.0},
		&fun.Prm{N: "Gc", V: 1000},
		&fun.Prm{N: "mu", V: 0.5},
		&fun.Prm{N: "b", V: 3},
		&fun.Prm{N: "A", V: 2000},
	}
}

// registry /////////////////////////////////////////////////////////////////

// allocators holds the available property-set variants, following
// msolid.GetModel's allocator-map registry pattern; "default" is the only
// variant registered
var allocators = map[string]func() *MechanicalProperties{
	"default": func() *MechanicalProperties { return new(MechanicalProperties) },
}

// New returns a new named MechanicalProperties instance
func New(name string, prms fun.Prms) (o *MechanicalProperties, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("mprops: unknown property-set variant %q", name)
	}
	o = allocator()
	err = o.Init(prms)
	return
}
