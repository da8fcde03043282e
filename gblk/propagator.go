// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gblk

import (
	"math"
	"sort"

	"github.com/JointFlow/DFMGenerator-sub007/dfn"
	"github.com/JointFlow/DFMGenerator-sub007/dipset"
	"github.com/JointFlow/DFMGenerator-sub007/inpctl"
)

// PropagateResult reports what one local-DFN propagation step did, for the
// owning grid's cross-block handoff and global-assembly bookkeeping (§4.7)
type PropagateResult struct {
	Nucleated      int
	Advanced       int
	Deactivated    int
	ExitedSegments []*dfn.Segment // segments that left the block this step (cropped or pending handoff)
}

// localXY rotates a dip set's own strike-aligned (I,J) point into the
// block's common plan-view (X,Y) frame, about the block's local origin.
// This lets segments nucleated by different dip sets (each with its own
// strike azimuth) be compared geometrically in one frame for stress-shadow
// and intersection testing (§4.7); the block-local origin is the shared
// reference for every set's own IJK frame.
func localXY(azimuth float64, p dfn.Point) (x, y float64) {
	cosA, sinA := math.Cos(azimuth), math.Sin(azimuth)
	x = p.I*cosA - p.J*sinA
	y = p.I*sinA + p.J*cosA
	return
}

// segmentsIntersect implements the standard 2D segment-segment intersection
// test via cross products
func segmentsIntersect(ax1, ay1, ax2, ay2, bx1, by1, bx2, by2 float64) bool {
	d1 := cross(bx2-bx1, by2-by1, ax1-bx1, ay1-by1)
	d2 := cross(bx2-bx1, by2-by1, ax2-bx1, ay2-by1)
	d3 := cross(ax2-ax1, ay2-ay1, bx1-ax1, by1-ay1)
	d4 := cross(ax2-ax1, ay2-ay1, bx2-ax1, by2-ay1)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func cross(ux, uy, vx, vy float64) float64 {
	return ux*vy - uy*vx
}

// perpDistance returns the perpendicular distance from point (px,py) to the
// infinite line through (x1,y1)-(x2,y2)
func perpDistance(px, py, x1, y1, x2, y2 float64) float64 {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		return math.Hypot(px-x1, py-y1)
	}
	return math.Abs((dy*px - dx*py + x2*y1 - y2*x1) / length)
}

// approxStressShadowHalfWidth estimates a dip set's current stress-shadow
// half-width from its spacing coefficients (§4.4 SpacingAA, set each step
// by dipset.Advance to the shadow-fraction of a unit thickness)
func approxStressShadowHalfWidth(d *dipset.DipSet, thickness float64) float64 {
	return 0.5 * thickness * d.Current().SpacingAA
}

// PropagateStep nucleates new segments, advances every active segment's
// tip, and resolves same-block stress-shadow/intersection interactions for
// one completed implicit timestep of duration dt (§4.7). ctl supplies the
// grid-wide nucleation/linking policy; dsIndex-ordered iteration follows
// declared order unless nucleationOrder requests strict weighted-time order.
func (o *Gridblock) PropagateStep(ctl *inpctl.DFNControl, timestep int, t, dt float64, nucleationOrder bool) (res PropagateResult) {
	all := o.FlatDipSets()

	for i, d := range all {
		cur := d.Current()
		if d.Stage == dipset.NotActivated || d.Stage == dipset.Deactivated {
			continue
		}
		expected := cur.Gamma * dt * o.Volume()
		if expected <= 0 {
			continue
		}
		n := 0
		if expected >= ctl.ProbabilisticFractureNucleationLimit {
			n = int(math.Round(expected))
		} else if o.rnd.Bernoulli(expected) {
			n = 1
		}
		weightedDelta := math.Abs(cur.GammaDt)
		for k := 0; k < n; k++ {
			o.nucleateSegment(ctl, d, i, timestep, t, weightedDelta)
			res.Nucleated++
		}
		o.nucleateMicrofractures(ctl, d, i, dt)
	}

	toAdvance := o.LocalDFN.ActiveSegments()
	if nucleationOrder {
		sort.SliceStable(toAdvance, func(a, b int) bool {
			return toAdvance[a].WeightedNucleationTime < toAdvance[b].WeightedNucleationTime
		})
	} else {
		sort.SliceStable(toAdvance, func(a, b int) bool {
			return toAdvance[a].DipSetIndex < toAdvance[b].DipSetIndex
		})
	}
	for _, s := range toAdvance {
		d := o.DipSetAt(s.DipSetIndex)
		if d == nil {
			continue
		}
		rate := d.Current().MeanPropagationRate
		if rate == 0 {
			continue
		}
		s.AdvanceTip(rate * dt)
		res.Advanced++

		if s.PropagatingNode.I < 0 || s.PropagatingNode.I > o.ILength {
			if ctl.CropToGrid {
				s.Deactivate(dfn.TerminatedAtBoundary, 0)
				res.Deactivated++
			} else {
				s.Deactivate(dfn.ExitedBlock, 0)
				res.ExitedSegments = append(res.ExitedSegments, s)
			}
		}
	}

	o.resolveInteractions(ctl, &res)
	return
}

// nucleateSegment draws a uniform nucleation point and mints a new active
// segment for dip set d, rejecting points inside an existing stress shadow
// unless LinkFracturesInStressShadow requests grafting instead (§4.7)
func (o *Gridblock) nucleateSegment(ctl *inpctl.DFNControl, d *dipset.DipSet, dsIndex, timestep int, t, weightedDelta float64) {
	i, j := o.rnd.UniformPoint(o.ILength, o.JLength)
	at := dfn.Point{I: i, J: j}

	if ctl.LinkFracturesInStressShadow {
		if nearest := o.nearestParallelDeactivated(d, dsIndex, at); nearest != nil {
			id := o.LocalDFN.NextSegmentID()
			linked := dfn.NewSegment(id, dsIndex, d.DipPlus, nearest.Direction, nearest.PropagatingNode, timestep, t, t+weightedDelta)
			linked.LinkInto(nearest)
			o.LocalDFN.AddSegment(linked)
			return
		}
	} else if o.insideAnyShadow(d, dsIndex, at) {
		return
	}

	id := o.LocalDFN.NextSegmentID()
	dir := dfn.IPlus
	if o.rnd.Bernoulli(0.5) {
		dir = dfn.IMinus
	}
	s := dfn.NewSegment(id, dsIndex, d.DipPlus, dir, at, timestep, t, t+weightedDelta)
	o.LocalDFN.AddSegment(s)
}

// nucleateMicrofractures emits penny-shaped subcritical fractures for the
// block's explicit DFN (§4.8 GLOSSARY "Microfracture"), using the ratio of
// the microfracture to macrofracture propagation constants (α_uF/α_MF, §4.3)
// as a density proxy against the same expected-count formula used for
// macrofracture nucleation. Neither spec.md nor the pack pin an exact
// microfracture population law, so this ratio-based count is a documented
// simplification, capped by MicrofractureBinCount.
func (o *Gridblock) nucleateMicrofractures(ctl *inpctl.DFNControl, d *dipset.DipSet, dsIndex int, dt float64) {
	if o.MechProps == nil || o.ThicknessAtDeformation <= 0 {
		return
	}
	alphaMF := o.MechProps.AlphaMF(o.ThicknessAtDeformation)
	if alphaMF <= 0 {
		return
	}
	ratio := o.MechProps.AlphaUF / alphaMF
	cur := d.Current()
	expected := cur.Gamma * dt * o.Volume() * ratio
	if expected <= 0 {
		return
	}
	n := int(math.Round(expected))
	if o.Control != nil && o.Control.MicrofractureBinCount > 0 && n > o.Control.MicrofractureBinCount {
		n = o.Control.MicrofractureBinCount
	}
	minRadius := ctl.MicrofractureDFNMinimumRadius
	if minRadius <= 0 {
		minRadius = 0.01
	}
	for k := 0; k < n; k++ {
		i, j := o.rnd.UniformPoint(o.ILength, o.JLength)
		radius := o.rnd.Uniform(minRadius, minRadius*3)
		id := o.LocalDFN.NextMicroID()
		o.LocalDFN.AddMicrofracture(&dfn.Microfracture{
			ID: id, DipSetIndex: dsIndex,
			Centre: dfn.Point{I: i, J: j}, Radius: radius,
			NumPoints: ctl.NumberOfuFPoints,
		})
	}
}

// insideAnyShadow reports whether point at lies within the stress-shadow
// half-width of any existing segment of the same dip set
func (o *Gridblock) insideAnyShadow(d *dipset.DipSet, dsIndex int, at dfn.Point) bool {
	halfWidth := approxStressShadowHalfWidth(d, o.ThicknessAtDeformation)
	if halfWidth <= 0 {
		return false
	}
	for _, s := range o.LocalDFN.SegmentsOfDipSet(dsIndex) {
		if math.Abs(s.NonPropagatingNode.J-at.J) < halfWidth {
			return true
		}
	}
	return false
}

// nearestParallelDeactivated finds the closest already-deactivated segment
// of the same dip set to graft a new composite continuation onto
func (o *Gridblock) nearestParallelDeactivated(d *dipset.DipSet, dsIndex int, at dfn.Point) *dfn.Segment {
	var best *dfn.Segment
	bestDist := math.Inf(1)
	for _, s := range o.LocalDFN.SegmentsOfDipSet(dsIndex) {
		if s.State == dfn.Active {
			continue
		}
		dist := math.Abs(s.NonPropagatingNode.J - at.J)
		if dist < bestDist {
			bestDist, best = dist, s
		}
	}
	return best
}

// resolveInteractions tests every pair of active segments for stress-shadow
// (parallel, same-azimuth) or intersection (non-parallel) termination,
// converting each into the block's common XY frame via localXY (§4.7)
func (o *Gridblock) resolveInteractions(ctl *inpctl.DFNControl, res *PropagateResult) {
	all := o.FlatDipSets()
	active := o.LocalDFN.ActiveSegments()
	for i := 0; i < len(active); i++ {
		si := active[i]
		di := o.DipSetAt(si.DipSetIndex)
		if di == nil || si.State != dfn.Active {
			continue
		}
		azI := azimuthOf(all, si.DipSetIndex)
		ix1, iy1 := localXY(azI, si.NonPropagatingNode)
		ix2, iy2 := localXY(azI, si.PropagatingNode)

		for j := i + 1; j < len(active); j++ {
			sj := active[j]
			if si.State != dfn.Active || sj.State != dfn.Active {
				continue
			}
			azJ := azimuthOf(all, sj.DipSetIndex)
			jx1, jy1 := localXY(azJ, sj.NonPropagatingNode)
			jx2, jy2 := localXY(azJ, sj.PropagatingNode)

			if si.DipSetIndex == sj.DipSetIndex {
				halfWidth := approxStressShadowHalfWidth(di, o.ThicknessAtDeformation)
				if halfWidth > 0 && perpDistance(jx2, jy2, ix1, iy1, ix2, iy2) < halfWidth {
					terminateLater(si, sj)
					res.Deactivated++
				}
				continue
			}
			if segmentsIntersect(ix1, iy1, ix2, iy2, jx1, jy1, jx2, jy2) {
				si.Deactivate(dfn.DeactivatedByIntersection, sj.ID)
				sj.Deactivate(dfn.DeactivatedByIntersection, si.ID)
				res.Deactivated += 2
			}
		}
	}
}

// terminateLater deactivates whichever of the two parallel segments
// nucleated later, by stress shadow
func terminateLater(a, b *dfn.Segment) {
	if a.NucleationTime <= b.NucleationTime {
		b.Deactivate(dfn.DeactivatedByStressShadow, a.ID)
	} else {
		a.Deactivate(dfn.DeactivatedByStressShadow, b.ID)
	}
}

func azimuthOf(all []*dipset.DipSet, dsIndex int) float64 {
	if dsIndex < 0 || dsIndex >= len(all) {
		return 0
	}
	return all[dsIndex].Azimuth
}
