// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package dfn implements the explicit local Discrete Fracture Network
// objects hosted by one gridblock: macrofracture segments, their nodes, and
// microfractures (§3 data model, §4.7). Segment variants (single-layer vs
// the multilayer case a future release may add) share one capability set
// (AdvanceTip / CheckInteraction / cornerpoints) discriminated by a state
// tag rather than by an inheritance hierarchy (§9 design note).
package dfn

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Point is a 3-coordinate point in a gridblock's local IJK frame
// (I = strike, J = strike-normal, K = vertical)
type Point struct {
	I, J, K float64
}

// PropDirection is the strike-propagation direction of one segment tip
type PropDirection int

const (
	IPlus PropDirection = iota
	IMinus
)

// SegmentState is the lifecycle state of a macrofracture segment (§3)
type SegmentState int

const (
	Active SegmentState = iota
	DeactivatedByStressShadow
	DeactivatedByIntersection
	ExitedBlock
	TerminatedAtBoundary
)

func (s SegmentState) String() string {
	switch s {
	case Active:
		return "Active"
	case DeactivatedByStressShadow:
		return "DeactivatedByStressShadow"
	case DeactivatedByIntersection:
		return "DeactivatedByIntersection"
	case ExitedBlock:
		return "ExitedBlock"
	case TerminatedAtBoundary:
		return "TerminatedAtBoundary"
	}
	return "Unknown"
}

// Segment is one macrofracture segment local to a gridblock: a reference to
// its owning dip set, a propagating-node and non-propagating-node point
// pair, a strike-propagation direction, a dip direction, and the
// nucleation-time bookkeeping needed for weighted-nucleation-time ordering
// (§3, §4.7)
type Segment struct {
	ID uint64

	DipSetIndex int // index into the owning block's flattened dip-set list
	DipPlus     bool

	PropagatingNode    Point
	NonPropagatingNode Point
	Direction          PropDirection

	NucleationTimestep     int
	NucleationTime         float64 // wall-clock nucleation time
	WeightedNucleationTime float64 // ∫ α·σ_d dt through the nucleation step

	State SegmentState

	// set when State==DeactivatedByIntersection
	TerminatingSegmentID uint64

	// set when grafted via LinkFracturesInStressShadow (§4.7, §9 open question)
	LinkedFromID uint64
	IsComposite  bool

	// ChainRootID identifies the originating segment of a chain that may
	// span a stress-shadow composite link or a cross-block boundary
	// continuation; it equals ID for a freshly nucleated segment and is
	// inherited unchanged by every continuation (§4.8 "rebuilt from the
	// concatenation of corresponding IJK segments")
	ChainRootID uint64
}

// NewSegment nucleates a new active segment at the given point, with both
// nodes initially coincident (it has zero length until the first advance)
func NewSegment(id uint64, dipSetIndex int, dipPlus bool, dir PropDirection, at Point, timestep int, nucleationTime, weightedNucleationTime float64) *Segment {
	return &Segment{
		ID:                     id,
		DipSetIndex:            dipSetIndex,
		DipPlus:                dipPlus,
		PropagatingNode:        at,
		NonPropagatingNode:     at,
		Direction:              dir,
		NucleationTimestep:     timestep,
		NucleationTime:         nucleationTime,
		WeightedNucleationTime: weightedNucleationTime,
		State:                  Active,
		ChainRootID:            id,
	}
}

// InheritChain marks s as a continuation of prev's chain (a stress-shadow
// composite link or a cross-block boundary continuation), so that global
// assembly can group every segment sharing one ChainRootID into a single
// macrofracture (§4.8)
func (s *Segment) InheritChain(prev *Segment) {
	s.ChainRootID = prev.ChainRootID
}

// HalfLength returns the current segment half-length (distance between
// propagating and non-propagating nodes)
func (s *Segment) HalfLength() float64 {
	di := s.PropagatingNode.I - s.NonPropagatingNode.I
	dj := s.PropagatingNode.J - s.NonPropagatingNode.J
	return math.Sqrt(di*di + dj*dj)
}

// AdvanceTip moves the propagating node by distance along this segment's
// propagation direction (strike-aligned: I increases for IPlus, decreases
// for IMinus)
func (s *Segment) AdvanceTip(distance float64) {
	if s.State != Active {
		return
	}
	switch s.Direction {
	case IPlus:
		s.PropagatingNode.I += distance
	case IMinus:
		s.PropagatingNode.I -= distance
	}
}

// Deactivate transitions the segment to a terminal state; terminatingID is
// only meaningful for DeactivatedByIntersection
func (s *Segment) Deactivate(state SegmentState, terminatingID uint64) (err error) {
	if state == Active {
		return chk.Err("dfn: Deactivate called with Active, which is not a terminal state")
	}
	s.State = state
	if state == DeactivatedByIntersection {
		s.TerminatingSegmentID = terminatingID
	}
	return nil
}

// LinkInto grafts s as a composite continuation of `earlier` (a parallel,
// already-deactivated segment), per LinkFracturesInStressShadow (§4.7). The
// composite's nucleation time and weighted nucleation time are pinned to
// the earlier fracture's values (§9 open-question resolution, pinned here
// for reproducibility, not asserted as the geophysically "correct" choice).
func (s *Segment) LinkInto(earlier *Segment) {
	s.IsComposite = true
	s.LinkedFromID = earlier.ID
	s.NucleationTime = earlier.NucleationTime
	s.WeightedNucleationTime = earlier.WeightedNucleationTime
	s.NucleationTimestep = earlier.NucleationTimestep
	s.InheritChain(earlier)
}
