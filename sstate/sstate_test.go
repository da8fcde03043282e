// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sstate

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/JointFlow/DFMGenerator-sub007/tsr"
)

func Test_set_initial_and_update(tst *testing.T) {
	chk.PrintTitle("sstate_set_initial_and_update")
	var s State
	s.SetInitial(40e6, 20e6, 0.0, 1.0)
	chk.Scalar(tst, "sigma_zz_eff", 1e-6, s.EffStress.Zz, 20e6)
	s.StrainRate = tsr.NewSym2(-1e-14, 0, 0, 0, 0, 0)
	s.StressRate = tsr.NewSym2(0, 0, 1e3, 0, 0, 0)
	s.Update(1000)
	chk.Scalar(tst, "sigma_zz after update", 1e-6, s.EffStress.Zz, 20e6+1e6)
}

func Test_set_initial_with_relaxation(tst *testing.T) {
	chk.PrintTitle("sstate_set_initial_with_relaxation")
	var full, half State
	full.SetInitial(40e6, 20e6, 0.0, 1.0)
	half.SetInitial(40e6, 20e6, 0.5, 1.0)
	if half.ElasticStrain.Zz >= full.ElasticStrain.Zz {
		tst.Errorf("expected relaxed compaction strain to be smaller in magnitude")
	}
}

func Test_recalculate_effective_stress(tst *testing.T) {
	chk.PrintTitle("sstate_recalculate_effective_stress")
	E, nu := 1e10, 0.25
	k := E / (3 * (1 - 2*nu))
	g := E / (2 * (1 + nu))
	stiff := tsr.IsotropicStiffness(k, g)
	var s State
	s.Biot = 1.0
	s.ElasticStrain = tsr.NewSym2(-1e-5, -2e-5, 0, 0, 0, 0)
	err := s.RecalculateEffectiveStress(stiff, 40e6, 20e6)
	if err != nil {
		tst.Fatalf("RecalculateEffectiveStress failed: %v", err)
	}
	chk.Scalar(tst, "sigma_zz_eff fixed", 1e-3, s.EffStress.Zz, 20e6)
}
