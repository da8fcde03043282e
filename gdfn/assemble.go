// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gdfn

import (
	"sort"

	"github.com/JointFlow/DFMGenerator-sub007/dfn"
	"github.com/JointFlow/DFMGenerator-sub007/gblk"
	"github.com/JointFlow/DFMGenerator-sub007/grid"
	"github.com/JointFlow/DFMGenerator-sub007/inpctl"
)

// cornerPillar bilinear-interpolates a gridblock's four top (or bottom)
// cornerpoints at local fractions (u,v) along the I and J axes, following
// the SW,SE,NE,NW winding FractureSet.Corners and Gridblock.Top/Bottom use
func cornerPillar(c [4]*gblk.Corner, u, v float64) Point3 {
	x := (1-u)*(1-v)*c[0].X + u*(1-v)*c[1].X + u*v*c[2].X + (1-u)*v*c[3].X
	y := (1-u)*(1-v)*c[0].Y + u*(1-v)*c[1].Y + u*v*c[2].Y + (1-u)*v*c[3].Y
	z := (1-u)*(1-v)*c[0].Z + u*(1-v)*c[1].Z + u*v*c[2].Z + (1-u)*v*c[3].Z
	return Point3{X: x, Y: y, Z: z}
}

// pillarPair returns the top and bottom global cornerpoints for a local IJ
// point of block b, via bilinear corner-pillar interpolation (§4.8 "XYZ
// cornerpoints are generated by transforming each segment's IJK nodes
// through that block's corner-pillar interpolation")
func pillarPair(b *gblk.Gridblock, p dfn.Point) (top, bottom Point3) {
	u, v := 0.0, 0.0
	if b.ILength > 0 {
		u = p.I / b.ILength
	}
	if b.JLength > 0 {
		v = p.J / b.JLength
	}
	return cornerPillar(b.Top, u, v), cornerPillar(b.Bottom, u, v)
}

// Assemble rebuilds the global DFN from every non-nil block's local DFN,
// grouping segments sharing one ChainRootID (possibly spanning multiple
// blocks via composite links or cross-block continuations) into a single
// MacrofractureXYZ, and transforming every local microfracture into its
// XYZ-frame counterpart. Global IDs are assigned in stable nucleation-time
// order (§4.8).
func Assemble(g *grid.FractureGrid, ctl *inpctl.DFNControl) *GlobalDFN {
	chains := make(map[uint64][]blockSegment)
	var order []uint64

	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			b := g.At(r, c)
			if b == nil {
				continue
			}
			for _, s := range b.LocalDFN.Segments {
				if _, ok := chains[s.ChainRootID]; !ok {
					order = append(order, s.ChainRootID)
				}
				chains[s.ChainRootID] = append(chains[s.ChainRootID], blockSegment{row: r, col: c, seg: s})
			}
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		ti := earliestNucleation(chains[order[i]])
		tj := earliestNucleation(chains[order[j]])
		if ti != tj {
			return ti < tj
		}
		return order[i] < order[j]
	})

	out := &GlobalDFN{}
	var nextID uint64
	for _, rootID := range order {
		segs := chains[rootID]
		sort.SliceStable(segs, func(i, j int) bool {
			if segs[i].seg.NucleationTimestep != segs[j].seg.NucleationTimestep {
				return segs[i].seg.NucleationTimestep < segs[j].seg.NucleationTimestep
			}
			return segs[i].seg.ID < segs[j].seg.ID
		})

		nextID++
		out.Macrofractures = append(out.Macrofractures, buildMacrofracture(g, nextID, rootID, segs, ctl))
	}

	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			b := g.At(r, c)
			if b == nil {
				continue
			}
			for _, u := range b.LocalDFN.Microfractures {
				out.Microfractures = append(out.Microfractures, buildMicrofracture3(b, u))
			}
		}
	}
	return out
}

func earliestNucleation(segs []blockSegment) float64 {
	earliest := segs[0].seg.NucleationTime
	for _, s := range segs[1:] {
		if s.seg.NucleationTime < earliest {
			earliest = s.seg.NucleationTime
		}
	}
	return earliest
}

// buildMacrofracture concatenates one chain's segments, in nucleation-time
// order, into top/bottom trace polylines keyed by propagation direction
// (§4.8 "two lists of XYZ cornerpoints per propagation direction")
func buildMacrofracture(g *grid.FractureGrid, id, rootID uint64, segs []blockSegment, ctl *inpctl.DFNControl) *MacrofractureXYZ {
	first := segs[0].seg
	m := &MacrofractureXYZ{
		ID:              id,
		DipSetIndex:     first.DipSetIndex,
		DipPlus:         first.DipPlus,
		NucleationTime:  earliestNucleation(segs),
		ChainRootID:     rootID,
		Permeability:    ctl.DefaultFracturePermeability,
		Compressibility: ctl.DefaultFractureCompressibility,
	}

	var apertureSum float64
	var apertureN int
	for _, bs := range segs {
		b := g.At(bs.row, bs.col)
		if b == nil {
			continue
		}
		topA, botA := pillarPair(b, bs.seg.NonPropagatingNode)
		topB, botB := pillarPair(b, bs.seg.PropagatingNode)

		wing := &m.Plus
		if bs.seg.Direction == dfn.IMinus {
			wing = &m.Minus
		}
		wing.TopTrace = append(wing.TopTrace, topA, topB)
		wing.BottomTrace = append(wing.BottomTrace, botA, botB)

		if b.MechProps != nil {
			apertureSum += b.MechProps.HydraulicAperture()
			apertureN++
		}
	}
	if apertureN > 0 {
		m.Aperture = apertureSum / float64(apertureN)
	}
	return m
}

func buildMicrofracture3(b *gblk.Gridblock, u *dfn.Microfracture) *Microfracture3 {
	top, _ := pillarPair(b, u.Centre)
	out := &Microfracture3{
		ID: u.ID, DipSetIndex: u.DipSetIndex,
		Centre: top, Radius: u.Radius, NumPoints: u.NumPoints,
	}
	for _, p := range u.Polygon() {
		px, _ := pillarPair(b, p)
		out.Polygon = append(out.Polygon, px)
	}
	return out
}
