// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prog

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_noop_never_aborts(tst *testing.T) {
	chk.PrintTitle("prog_noop_never_aborts")
	var r Reporter = NoOp{}
	r.SetNumberOfElements(10)
	r.UpdateProgress(5)
	if r.AbortCalculation() {
		tst.Errorf("expected NoOp to never abort")
	}
}

func Test_console_polls_injected_abort_hook(tst *testing.T) {
	chk.PrintTitle("prog_console_polls_injected_abort_hook")
	c := NewConsole(false)
	c.SetNumberOfElements(3)
	requested := false
	c.AbortFunc = func() bool { return requested }
	if c.AbortCalculation() {
		tst.Errorf("expected no abort before hook flips")
	}
	requested = true
	if !c.AbortCalculation() {
		tst.Errorf("expected abort once hook flips")
	}
}

func Test_console_without_abort_func_never_aborts(tst *testing.T) {
	chk.PrintTitle("prog_console_without_abort_func_never_aborts")
	c := NewConsole(false)
	if c.AbortCalculation() {
		tst.Errorf("expected nil AbortFunc to mean never abort")
	}
}
