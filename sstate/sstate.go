// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sstate implements the per-gridblock stress/strain state (§4.2):
// cumulative total strain, current elastic strain, current effective
// stress, and their rates, plus the lithostatic initialisation and the
// partial-inversion recalculation of effective stress holding σ_zz fixed.
package sstate

import (
	"github.com/cpmech/gosl/chk"

	"github.com/JointFlow/DFMGenerator-sub007/tsr"
)

// DistributionCase selects how elastic strain is partitioned between host
// rock and fractures (§4.2)
type DistributionCase int

const (
	EvenlyDistributed DistributionCase = iota
	StressShadow
	DuctileBoundary
)

// State holds the tensors for one gridblock, following the
// msolid.State/Model.Update contract (cache-then-mutate per step)
type State struct {
	TotalStrain   tsr.Sym2 // cumulative total strain ε
	ElasticStrain tsr.Sym2 // current elastic strain
	EffStress     tsr.Sym2 // current effective stress σ
	StrainRate    tsr.Sym2 // ε′
	StressRate    tsr.Sym2 // σ′

	Case DistributionCase

	// InitialStressRelaxation ∈ [0,1]: fraction of compaction strain that
	// is relaxed away at t=0 (§4.2 SetInitial)
	InitialStressRelaxation float64

	// Biot coefficient, cached for RecalculateEffectiveStress
	Biot float64
}

// SetInitial resets elastic strain to include lithostatic compaction plus a
// compaction-relaxation term, parameterised by InitialStressRelaxation
func (o *State) SetInitial(sigmaV, porePressure, initialRelaxation, biot float64) {
	o.Biot = biot
	o.InitialStressRelaxation = clamp01(initialRelaxation)
	sigmaZZeff := sigmaV - biot*porePressure
	o.EffStress = tsr.Iso(0)
	o.EffStress.Zz = sigmaZZeff
	// compaction strain assuming uniaxial (K0) consolidation, relaxed by a
	// fraction InitialStressRelaxation back toward zero
	compaction := sigmaZZeff * (1.0 - o.InitialStressRelaxation)
	o.ElasticStrain = tsr.Sym2{}
	o.ElasticStrain.Zz = compaction
	o.TotalStrain = o.ElasticStrain
}

// Update advances stress and elastic strain by one timestep of size dt,
// following σ ← σ + dt·σ′; ε ← ε + dt·ε′ (§4.2)
func (o *State) Update(dt float64) {
	o.TotalStrain = o.TotalStrain.Add(o.StrainRate.Scale(dt))
	o.ElasticStrain = o.ElasticStrain.Add(o.StrainRate.Scale(dt))
	o.EffStress = o.EffStress.Add(o.StressRate.Scale(dt))
}

// RecalculateEffectiveStress performs the partial inversion against the
// current elastic strain, holding σ_zz_eff = σ_v − biot·P_f fixed, and
// writes the resulting stress back into the state. The supplied stiffness
// matrix is always used; there is no separate isotropic closed-form path.
func (o *State) RecalculateEffectiveStress(stiff tsr.Compliance4, sigmaV, porePressure float64) (err error) {
	if stiff[2][2] == 0 {
		return chk.Err("sstate: RecalculateEffectiveStress: degenerate stiffness (D[2][2]=0)\n")
	}
	sigmaZZ := sigmaV - o.Biot*porePressure
	stress, epsZZ, err := tsr.PartialInvert(stiff, o.ElasticStrain, sigmaZZ)
	if err != nil {
		return err
	}
	o.ElasticStrain.Zz = epsZZ
	o.EffStress = stress
	return nil
}

// PartitionElasticStrain splits the elastic strain between host rock and a
// parallel set of fractures, following the stress-distribution case: for
// StressShadow the split is by the ratio S_F/S_beff (fracture compliance
// over block-effective compliance); for EvenlyDistributed and
// DuctileBoundary the host rock carries the entire elastic strain.
func (o *State) PartitionElasticStrain(sFrac, sBlockEffective float64) (hostFraction, fractureFraction float64) {
	switch o.Case {
	case StressShadow:
		if sBlockEffective <= 0 {
			return 1, 0
		}
		fractureFraction = clamp01(sFrac / sBlockEffective)
		hostFraction = 1 - fractureFraction
		return
	default:
		return 1, 0
	}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
