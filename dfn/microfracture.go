// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dfn

import "math"

// Microfracture is a penny-shaped subcritical fracture, emitted as either a
// centrepoint+radius (NumPoints<3) or a regular polygon with NumPoints
// vertices (§4.8, GLOSSARY)
type Microfracture struct {
	ID        uint64
	DipSetIndex int
	Centre    Point
	Radius    float64
	NumPoints int
}

// Polygon returns the regular-polygon vertex ring in the gridblock's local
// IJ plane when NumPoints>=3; returns nil (centrepoint+radius form) otherwise
func (m *Microfracture) Polygon() []Point {
	if m.NumPoints < 3 {
		return nil
	}
	pts := make([]Point, m.NumPoints)
	for k := 0; k < m.NumPoints; k++ {
		theta := 2 * math.Pi * float64(k) / float64(m.NumPoints)
		pts[k] = Point{
			I: m.Centre.I + m.Radius*math.Cos(theta),
			J: m.Centre.J + m.Radius*math.Sin(theta),
			K: m.Centre.K,
		}
	}
	return pts
}
