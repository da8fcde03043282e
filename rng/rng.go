// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package rng wraps gosl/rnd in a single grid-owned seeded source so that
// probabilistic nucleation and location draws are reproducible for a fixed
// seed (§5, §9), following the reproducible-random-variable pattern used by
// inp.Simulation.AdjRandom.
package rng

import "github.com/cpmech/gosl/rnd"

// Source is the grid's single seeded random source. It must never be shared
// across goroutines: the implicit calculator and explicit propagator are
// both single-threaded cooperative (§5), so one Source per grid is enough.
type Source struct {
	seed int
}

// NewSource creates a deterministic source for the given seed
func NewSource(seed int) *Source {
	rnd.Init(seed)
	return &Source{seed: seed}
}

// Seed returns the seed this source was created with
func (s *Source) Seed() int {
	return s.seed
}

// Bernoulli draws true with probability p
func (s *Source) Bernoulli(p float64) bool {
	return rnd.Float64(0, 1) < p
}

// Uniform draws a uniform float64 in [lo, hi)
func (s *Source) Uniform(lo, hi float64) float64 {
	return rnd.Float64(lo, hi)
}

// UniformPoint draws a uniform point in the axis-aligned rectangle
// [0,iLen]x[0,jLen] of a gridblock's local IJK plane
func (s *Source) UniformPoint(iLen, jLen float64) (i, j float64) {
	return rnd.Float64(0, iLen), rnd.Float64(0, jLen)
}
