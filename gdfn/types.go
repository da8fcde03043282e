// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package gdfn implements the Global DFN (§4.8): cross-block macrofracture
// reassembly into XYZ-frame objects via corner-pillar interpolation, global
// ID assignment, and the intermediate-snapshot policies. Grounded on
// fem/output.go's post-processing assembly pass over a Domain, adapted to
// cross-block segment-chain reassembly instead of element-result extraction.
package gdfn

import (
	"math"

	"github.com/JointFlow/DFMGenerator-sub007/dfn"
)

// Point3 is a point in the grid's global XYZ frame, Z positive-down
// matching the grid's cornerpoints (§3, §6 "Z(positive-down)")
type Point3 struct {
	X, Y, Z float64
}

// Wing is one propagation-direction trace of a macrofracture: the ordered
// top and bottom cornerpoint polylines spanning every segment concatenated
// into this chain, in nucleation order (§4.8 "concatenation of
// corresponding IJK segments")
type Wing struct {
	TopTrace    []Point3
	BottomTrace []Point3
}

// length returns the wing's cumulative planform trace length (top trace;
// the bottom trace runs parallel for a vertical full-thickness fracture)
func (w Wing) length() float64 {
	var total float64
	for i := 1; i < len(w.TopTrace); i++ {
		dx := w.TopTrace[i].X - w.TopTrace[i-1].X
		dy := w.TopTrace[i].Y - w.TopTrace[i-1].Y
		total += math.Hypot(dx, dy)
	}
	return total
}

// MacrofractureXYZ is the global, XYZ-frame reassembly of one chain of
// same-ChainRootID local segments (§3 "Global macrofracture (XYZ)")
type MacrofractureXYZ struct {
	ID             uint64
	DipSetIndex    int
	DipPlus        bool
	NucleationTime float64
	ChainRootID    uint64

	Plus, Minus Wing // per propagation-direction cornerpoint lists (§4.8)

	Permeability    float64
	Compressibility float64
	Aperture        float64
}

// HalfLength returns the longer of the two wings' trace lengths, used as
// the macrofracture's representative half-length for culling (§4.8)
func (m *MacrofractureXYZ) HalfLength() float64 {
	pl, ml := m.Plus.length(), m.Minus.length()
	if pl > ml {
		return pl
	}
	return ml
}

// Microfracture3 is the XYZ-frame reassembly of one dfn.Microfracture:
// either a centrepoint+radius (NumPoints<3) or a regular polygon (§4.8)
type Microfracture3 struct {
	ID          uint64
	DipSetIndex int
	Centre      Point3
	Radius      float64
	NumPoints   int
	Polygon     []Point3
}

// GlobalDFN is the scheduler-owned working fracture network, rebuilt after
// each completed global time slice (§4.8, §5 "exclusively owned by the
// scheduler")
type GlobalDFN struct {
	Macrofractures []*MacrofractureXYZ
	Microfractures []*Microfracture3
}

// Copy returns a deep copy, used for intermediate snapshots so that culling
// a snapshot never mutates the active working DFN (§4.8, §5 "receive a deep copy")
func (g *GlobalDFN) Copy() *GlobalDFN {
	out := &GlobalDFN{
		Macrofractures: make([]*MacrofractureXYZ, len(g.Macrofractures)),
		Microfractures: make([]*Microfracture3, len(g.Microfractures)),
	}
	for i, m := range g.Macrofractures {
		cp := *m
		cp.Plus.TopTrace = append([]Point3(nil), m.Plus.TopTrace...)
		cp.Plus.BottomTrace = append([]Point3(nil), m.Plus.BottomTrace...)
		cp.Minus.TopTrace = append([]Point3(nil), m.Minus.TopTrace...)
		cp.Minus.BottomTrace = append([]Point3(nil), m.Minus.BottomTrace...)
		out.Macrofractures[i] = &cp
	}
	for i, u := range g.Microfractures {
		cp := *u
		cp.Polygon = append([]Point3(nil), u.Polygon...)
		out.Microfractures[i] = &cp
	}
	return out
}

// blockSegment pairs a local segment with the row/col of its owning block,
// so the assembler can interpolate it through its own block's corner-pillar
// geometry when grouping same-ChainRootID segments across blocks
type blockSegment struct {
	row, col int
	seg      *dfn.Segment
}
