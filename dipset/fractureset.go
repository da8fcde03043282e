// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dipset

// PillarCorner holds one corner's pillar centrepoint in the block's local
// IJK frame (I = strike, J = strike-normal, K = vertical), §3 data model
type PillarCorner struct {
	I, J, K float64
}

// Set is identified by a strike azimuth and owns the dip sets that share it
// (usually vertical + ± conjugate dip), §3 data model
type Set struct {
	Azimuth float64 // radians, [0,π)
	Dips    []*DipSet
	Corners [4]PillarCorner
}

// NewSet allocates a fracture set at the given azimuth with no dip sets yet
func NewSet(azimuth float64) *Set {
	return &Set{Azimuth: wrapAzimuth(azimuth)}
}

// AddDipSet appends a dip set sharing this set's azimuth
func (o *Set) AddDipSet(d *DipSet) {
	o.Dips = append(o.Dips, d)
}

// AllDeactivated reports whether every dip set owned by this fracture set
// has reached the Deactivated stage (used by the owning block's implicit
// calculator loop-termination condition, §4.6)
func (o *Set) AllDeactivated() bool {
	for _, d := range o.Dips {
		if d.Stage != Deactivated {
			return false
		}
	}
	return true
}

func wrapAzimuth(a float64) float64 {
	const pi = 3.141592653589793
	for a < 0 {
		a += pi
	}
	for a >= pi {
		a -= pi
	}
	return a
}
