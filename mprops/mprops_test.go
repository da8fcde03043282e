// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mprops

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

func Test_init_basic(tst *testing.T) {
	chk.PrintTitle("mprops_init_basic")
	var m MechanicalProperties
	err := m.Init(fun.Prms{
		&fun.Prm{N: "E", V: 1e10},
		&fun.Prm{N: "nu", V: 0.25},
		&fun.Prm{N: "Gc", V: 1000},
		&fun.Prm{N: "mu", V: 0.5},
		&fun.Prm{N: "b", V: 3},
		&fun.Prm{N: "A", V: 2000},
	})
	if err != nil {
		tst.Fatalf("Init failed: %v", err)
	}
	chk.Scalar(tst, "beta", 1e-12, m.Beta, -2.0)
	if m.Kc <= 0 {
		tst.Errorf("expected positive Kc, got %v", m.Kc)
	}
	if m.RelaxCase != RelaxNone {
		tst.Errorf("expected RelaxNone by default")
	}
}

func Test_init_missing_required(tst *testing.T) {
	chk.PrintTitle("mprops_init_missing_required")
	var m MechanicalProperties
	err := m.Init(fun.Prms{&fun.Prm{N: "E", V: 1e10}})
	if err == nil {
		tst.Errorf("expected error for missing nu/Gc/b/A")
	}
}

func Test_alphaMF_depends_on_thickness(tst *testing.T) {
	chk.PrintTitle("mprops_alphaMF_thickness")
	m, err := New("default", fun.Prms{
		&fun.Prm{N: "E", V: 1e10}, &fun.Prm{N: "nu", V: 0.25},
		&fun.Prm{N: "Gc", V: 1000}, &fun.Prm{N: "mu", V: 0.5},
		&fun.Prm{N: "b", V: 3}, &fun.Prm{N: "A", V: 2000},
	})
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}
	a1 := m.AlphaMF(10)
	a2 := m.AlphaMF(100)
	if a1 == a2 {
		tst.Errorf("expected alphaMF to vary with thickness")
	}
}
