// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fcalc

import "github.com/cpmech/gosl/chk"

// MacrofractureData holds the piecewise cumulative distributions
// aP30/sP30/aP32/sP32 vs half-length for one dip set (§2, data model)
type MacrofractureData struct {
	// HalfLengthBins is strictly increasing, HalfLengthBins[0] = 0
	HalfLengthBins []float64

	// cumulative values for active/static-by-stress-shadow/static-by-intersection
	// fractures with half-length <= HalfLengthBins[i], counted by P30 (count
	// density) and P32 (area density)
	ActiveP30          []float64
	StaticShadowP30    []float64
	StaticIntersectP30 []float64
	ActiveP32          []float64
	StaticShadowP32    []float64
	StaticIntersectP32 []float64
}

// NewMacrofractureData allocates a distribution with nBins+1 points
// (including the zero-length origin)
func NewMacrofractureData(nBins int, maxHalfLength float64) *MacrofractureData {
	n := nBins + 1
	m := &MacrofractureData{
		HalfLengthBins:     make([]float64, n),
		ActiveP30:          make([]float64, n),
		StaticShadowP30:    make([]float64, n),
		StaticIntersectP30: make([]float64, n),
		ActiveP32:          make([]float64, n),
		StaticShadowP32:    make([]float64, n),
		StaticIntersectP32: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		m.HalfLengthBins[i] = maxHalfLength * float64(i) / float64(nBins)
	}
	return m
}

// AddFracture folds one fracture (half-length, P32 contribution) into every
// bin whose edge is >= the fracture's half-length, maintaining the
// cumulative (<=-this-size) convention
func (m *MacrofractureData) AddFracture(halfLength, p32Contribution float64, active, shadowTerminated bool) (err error) {
	if halfLength < 0 {
		return chk.Err("fcalc: MacrofractureData.AddFracture: negative half-length %v", halfLength)
	}
	for i, edge := range m.HalfLengthBins {
		if edge < halfLength {
			continue
		}
		if active {
			m.ActiveP30[i]++
			m.ActiveP32[i] += p32Contribution
		} else if shadowTerminated {
			m.StaticShadowP30[i]++
			m.StaticShadowP32[i] += p32Contribution
		} else {
			m.StaticIntersectP30[i]++
			m.StaticIntersectP32[i] += p32Contribution
		}
	}
	return nil
}

// TotalP30 returns the total count density (all termination states) at the
// largest bin
func (m *MacrofractureData) TotalP30() float64 {
	n := len(m.HalfLengthBins)
	if n == 0 {
		return 0
	}
	return m.ActiveP30[n-1] + m.StaticShadowP30[n-1] + m.StaticIntersectP30[n-1]
}

// TotalP32 returns the total area density (all termination states) at the
// largest bin
func (m *MacrofractureData) TotalP32() float64 {
	n := len(m.HalfLengthBins)
	if n == 0 {
		return 0
	}
	return m.ActiveP32[n-1] + m.StaticShadowP32[n-1] + m.StaticIntersectP32[n-1]
}
