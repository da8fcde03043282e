// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements the two contractual DFN file writers (§6 "File
// formats"): a tab-separated ASCII format and the FAB format. Follows
// gofem's own out package's "columnar, io.Pf-driven string building" idiom
// (see the deleted FEM result-table writer this package used to hold)
// rather than using encoding/csv or a templating library: the teacher's
// output layer is always a thin sequence of io.Pf/io.Sf calls over a
// bufio.Writer, never a structured table encoder.
package out

import (
	"bufio"
	"os"

	"github.com/cpmech/gosl/io"

	"github.com/JointFlow/DFMGenerator-sub007/gdfn"
)

// WriteASCII writes dfn to path in the tab-separated ASCII format: one
// header row per macrofracture followed by a "Start Points" / "End Points"
// block, one "X \t Y \t Z \t" per line, Z positive-down (§6, §8 scenario 6
// "No_Fractures = total segment count"). Microfractures are appended last,
// one centre-point header/block pair each.
func WriteASCII(path string, net *gdfn.GlobalDFN) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		cerr := f.Close()
		if err == nil {
			err = cerr
		}
	}()
	w := bufio.NewWriter(f)
	defer func() {
		ferr := w.Flush()
		if err == nil {
			err = ferr
		}
	}()

	for _, m := range net.Macrofractures {
		writeMacrofractureASCII(w, m)
	}
	for _, u := range net.Microfractures {
		writeMicrofractureASCII(w, u)
	}
	return nil
}

func writeMacrofractureASCII(w *bufio.Writer, m *gdfn.MacrofractureXYZ) {
	io.Ff(w, "Fracture\t%d\tSet\t%d\tPermeability\t%.6e\tCompressibility\t%.6e\tAperture\t%.6e\n",
		m.ID, m.DipSetIndex, m.Permeability, m.Compressibility, m.Aperture)

	io.Ff(w, "Start Points\n")
	writeTraceASCII(w, m.Minus.TopTrace)
	writeTraceASCII(w, m.Plus.TopTrace)

	io.Ff(w, "End Points\n")
	writeTraceASCII(w, m.Minus.BottomTrace)
	writeTraceASCII(w, m.Plus.BottomTrace)
}

func writeTraceASCII(w *bufio.Writer, trace []gdfn.Point3) {
	for _, p := range trace {
		io.Ff(w, "%.6e\t%.6e\t%.6e\t\n", p.X, p.Y, p.Z)
	}
}

func writeMicrofractureASCII(w *bufio.Writer, u *gdfn.Microfracture3) {
	io.Ff(w, "Microfracture\t%d\tSet\t%d\tRadius\t%.6e\n", u.ID, u.DipSetIndex, u.Radius)
	io.Ff(w, "Start Points\n")
	io.Ff(w, "%.6e\t%.6e\t%.6e\t\n", u.Centre.X, u.Centre.Y, u.Centre.Z)
	io.Ff(w, "End Points\n")
	for _, p := range u.Polygon {
		io.Ff(w, "%.6e\t%.6e\t%.6e\t\n", p.X, p.Y, p.Z)
	}
}
