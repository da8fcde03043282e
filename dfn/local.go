// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dfn

// LocalDFN is the explicit fracture-object container owned by one
// gridblock (§3 data model): the block's macrofracture segments and
// microfractures, plus the running ID counter used to mint new objects
type LocalDFN struct {
	Segments       []*Segment
	Microfractures []*Microfracture

	nextSegmentID uint64
	nextMicroID   uint64
}

// NewLocalDFN allocates an empty local DFN
func NewLocalDFN() *LocalDFN {
	return &LocalDFN{}
}

// NextSegmentID mints a new block-local segment ID
func (o *LocalDFN) NextSegmentID() uint64 {
	o.nextSegmentID++
	return o.nextSegmentID
}

// NextMicroID mints a new block-local microfracture ID
func (o *LocalDFN) NextMicroID() uint64 {
	o.nextMicroID++
	return o.nextMicroID
}

// AddSegment appends a new segment to the local DFN
func (o *LocalDFN) AddSegment(s *Segment) {
	o.Segments = append(o.Segments, s)
}

// AddMicrofracture appends a new microfracture to the local DFN
func (o *LocalDFN) AddMicrofracture(m *Microfracture) {
	o.Microfractures = append(o.Microfractures, m)
}

// ActiveSegments returns the subset of segments still in the Active state
func (o *LocalDFN) ActiveSegments() []*Segment {
	var out []*Segment
	for _, s := range o.Segments {
		if s.State == Active {
			out = append(out, s)
		}
	}
	return out
}

// SegmentsOfDipSet returns the segments belonging to one dip set index,
// in the order they were added to the local DFN (used for
// stress-shadow/intersection neighbour tests, §4.7)
func (o *LocalDFN) SegmentsOfDipSet(dipSetIndex int) []*Segment {
	var out []*Segment
	for _, s := range o.Segments {
		if s.DipSetIndex == dipSetIndex {
			out = append(out, s)
		}
	}
	return out
}
