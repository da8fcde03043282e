// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package prog implements the ProgressReporter port (§5, §6): a small
// capability set polled between calculation elements so a host application
// can track progress and request cooperative cancellation. Follows
// fem.FEM's ShowMsg-gated console messaging; the console implementation
// here is this repository's one external-collaborator concern that is not
// "out of scope" (§1 draws the line at GUI dialogs, not at a plain console).
package prog

import "github.com/cpmech/gosl/io"

// Reporter is the host-facing progress/cancellation port (§6 "Progress +
// control objects", §5 "the only cross-thread channel"). All three methods
// must be safe to call from the calculation thread and are polled between
// calculation elements; no work is abandoned mid-element.
type Reporter interface {
	SetNumberOfElements(n int)
	UpdateProgress(n int)
	AbortCalculation() bool
}

// NoOp is the default Reporter: it never aborts and reports nothing
type NoOp struct{}

func (NoOp) SetNumberOfElements(int) {}
func (NoOp) UpdateProgress(int)      {}
func (NoOp) AbortCalculation() bool  { return false }

// Console is a verbose console Reporter, gated by Verbose exactly as
// fem.FEM gates its own console messages on ShowMsg. AbortFunc, if set, is
// polled for cooperative cancellation (§5 "Cancellation / timeout"); a nil
// AbortFunc means the run can never be aborted from this reporter.
type Console struct {
	Verbose   bool
	AbortFunc func() bool

	total int
}

// NewConsole allocates a verbose (or silent) console reporter
func NewConsole(verbose bool) *Console {
	return &Console{Verbose: verbose}
}

// SetNumberOfElements records the total element count for this run and, if
// verbose, announces it
func (o *Console) SetNumberOfElements(n int) {
	o.total = n
	if o.Verbose {
		io.Pf("> calculation elements: %d\n", n)
	}
}

// UpdateProgress reports n completed elements out of the total set by
// SetNumberOfElements
func (o *Console) UpdateProgress(n int) {
	if o.Verbose {
		io.Pf("> progress: %d/%d\n", n, o.total)
	}
}

// AbortCalculation polls the injected AbortFunc, if any (§5 "Cancellation
// is cooperative via abortCalculation(); there is no internal timeout")
func (o *Console) AbortCalculation() bool {
	if o.AbortFunc == nil {
		return false
	}
	aborted := o.AbortFunc()
	if aborted && o.Verbose {
		io.Pfyel("> abort requested: stopping at next calculation element\n")
	}
	return aborted
}
