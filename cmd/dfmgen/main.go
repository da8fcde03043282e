// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/JointFlow/DFMGenerator-sub007/deck"
	"github.com/JointFlow/DFMGenerator-sub007/gdfn"
	"github.com/JointFlow/DFMGenerator-sub007/inpctl"
	"github.com/JointFlow/DFMGenerator-sub007/out"
	"github.com/JointFlow/DFMGenerator-sub007/prog"
	"github.com/JointFlow/DFMGenerator-sub007/sched"
)

func main() {

	verbose := true

	// catch errors, following main.go's own recover-and-print wrapper;
	// single cooperative thread (§5), so there is no mpi.Start/mpi.Stop
	// lifecycle to pair it with
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	io.PfWhite("\nDFMGenerator -- Discrete Fracture Network generator\n\n")

	flag.Parse()
	if len(flag.Args()) < 1 {
		chk.Panic("Please, provide a deck filename. Ex.: basin.json")
	}
	deckPath := flag.Arg(0)

	d, err := deck.Load(deckPath)
	if err != nil {
		chk.Panic("%v", err)
	}

	g, err := d.Build()
	if err != nil {
		chk.Panic("%v", err)
	}

	reporter := prog.NewConsole(verbose)
	s := sched.New(g, reporter)

	depthToSigmaV := func(depth float64) float64 { return d.SigmaVGradient * depth }
	depthToPorePressure := func(depth float64) float64 { return d.PorePressureGradient * depth }

	endTime, aborted := s.Run(d.Episodes, d.StartTime, depthToSigmaV, depthToPorePressure)
	if aborted {
		io.Pfyel("run aborted at t=%.6e\n", endTime)
	} else {
		io.Pf("run complete at t=%.6e\n", endTime)
	}

	if !d.Control.WriteDFNFiles {
		return
	}

	net := gdfn.Assemble(g, d.Control)
	writeDFN(d.Control, net, "final")
}

// writeDFN writes net to ctl.FolderPath in ctl.OutputFileType, named by label
func writeDFN(ctl *inpctl.DFNControl, net *gdfn.GlobalDFN, label string) {
	ext := ".ascii"
	if ctl.OutputFileType == inpctl.FAB {
		ext = ".fab"
	}
	path := filepath.Join(ctl.FolderPath, "dfn_"+label+ext)

	var err error
	if ctl.OutputFileType == inpctl.FAB {
		err = out.WriteFAB(path, net)
	} else {
		err = out.WriteASCII(path, net)
	}
	if err != nil {
		chk.Panic("cannot write DFN file %q: %v", path, err)
	}
	io.Pf("> wrote %s\n", path)
}
