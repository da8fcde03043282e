// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tsr

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_sym2_basic(tst *testing.T) {
	chk.PrintTitle("sym2_basic")
	a := NewSym2(1, 2, 3, 4, 5, 6)
	b := Iso(1)
	c := a.Add(b)
	chk.Scalar(tst, "c.Xx", 1e-15, c.Xx, 2)
	chk.Scalar(tst, "c.Zz", 1e-15, c.Zz, 4)
	chk.Scalar(tst, "trace(a)", 1e-15, a.Trace(), 6)
	d := a.Scale(2)
	chk.Scalar(tst, "d.Xy", 1e-15, d.Xy, 8)
}

func Test_isotropic_stiffness_matches_compliance(tst *testing.T) {
	chk.PrintTitle("isotropic_stiffness_matches_compliance")
	E, nu := 1.0e10, 0.25
	g := E / (2 * (1 + nu))
	k := E / (3 * (1 - 2*nu))
	stiff := IsotropicStiffness(k, g)
	s := IsotropicCompliance(E, nu)
	// D * S should be close to identity for the normal-stress block
	sig := NewSym2(1, 0, 0, 0, 0, 0)
	eps := FromVec(s.Apply(sig))
	back := stiff.ApplySym(eps)
	chk.Scalar(tst, "round-trip xx", 1e-6, back.Xx, 1)
	chk.Scalar(tst, "round-trip yy~0", 1e-6, back.Yy, 0)
}

func Test_partial_invert_fixed_zz(tst *testing.T) {
	chk.PrintTitle("partial_invert_fixed_zz")
	E, nu := 1.0e10, 0.25
	k := E / (3 * (1 - 2*nu))
	g := E / (2 * (1 + nu))
	stiff := IsotropicStiffness(k, g)
	strain := NewSym2(-1e-5, -2e-5, 0, 0, 0, 0) // Zz placeholder, solved for
	sigmaZZ := 5.0e6
	stress, epsZZ, err := PartialInvert(stiff, strain, sigmaZZ)
	if err != nil {
		tst.Fatalf("PartialInvert failed: %v", err)
	}
	chk.Scalar(tst, "sigma_zz matches fixed value", 1e-3, stress.Zz, sigmaZZ)
	if epsZZ == 0 {
		tst.Errorf("expected non-zero solved strain_zz")
	}
}
