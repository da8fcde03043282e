// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fcalc implements FractureCalculationData, the central per-dipset
// per-timestep snapshot (§4.4). Its setters must be called in the canonical
// order documented on each method: every setter caches the previous
// cumulative value, writes the new instantaneous value, and restores the
// cumulative-start value so that Cum_X_M = Cum_X_{M-1} + ΔX_M always holds
// on return — following the cache-then-mutate idiom of
// msolid/driver.go's per-increment Res[k].Set(Res[k-1]) pattern.
package fcalc

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Data is one timestep's snapshot for one fracture dip set
type Data struct {
	// timing
	M         int     // timestep index
	StartTime float64 // M_StartTime[M]
	Duration  float64 // M_Duration[M]
	EndTime   float64 // M_EndTime[M] = StartTime + Duration

	// driving stress: u (constant) and v (rate) components
	DrivingStressU float64
	DrivingStressV float64

	// effective normal stress: u (constant) and v (rate) components
	EffNormalStressU float64
	EffNormalStressV float64

	// propagation
	MeanPropagationRate float64 // mean propagation rate over the step
	HalfLengthM         float64 // halfLength_M = meanPropagationRate · dt
	Gamma               float64 // γ_{1/β}
	GammaDt             float64 // γ·dt (sign depends on b-class)

	// deactivation
	PhiII float64 // stress-shadow deactivation probability Φ_II
	PhiIJ float64 // intersection deactivation probability Φ_IJ
	FII   float64 // instantaneous rate F_II = -ln(Φ_II)/dt
	FM    float64 // mean rate F_M = (1-Φ_II·Φ_IJ)/dt

	CumPhi float64 // Cum_Φ_M = Cum_Φ_{M-1}·Φ_II·Φ_IJ

	// stress-shadow / clear-zone volumes, ∈ [0,1], monotone non-increasing
	Theta      float64 // θ
	ThetaPrime float64 // θ′ ≤ θ
	PsiOther   float64 // ψ_other: cross-set stress-shadow overlap
	ChiOther   float64 // χ_other: cross-set clear-zone overlap
	ThetaAllFS float64 // θ_allFS = max(θ - ψ_other, 0)

	// densities (cumulative, monotone in the directions documented per field)
	CumAMFP30  float64 // active MFP30, non-negative
	CumSIIMFP30 float64 // static-by-stress-shadow MFP30
	CumSIJMFP30 float64 // static-by-intersection MFP30
	TotalMFP30 float64 // = CumAMFP30+CumSIIMFP30+CumSIJMFP30, monotone non-decreasing

	// spacing-distribution coefficients for cumulative macrofracture spacing
	SpacingAA float64
	SpacingBB float64
	SpacingCC float64

	prevCumPhi       float64
	prevTotalMFP30   float64
}

// NewInitial builds the M=0 snapshot: all cumulative quantities start at
// their identity values (CumPhi=1, densities=0, θ=θ′=1)
func NewInitial(startTime float64) *Data {
	return &Data{
		M:          0,
		StartTime:  startTime,
		CumPhi:     1,
		Theta:      1,
		ThetaPrime: 1,
		prevCumPhi: 1,
	}
}

// Copy returns a deep copy (Data has no pointer/slice fields so a value
// copy already satisfies Copy(x).equals(x))
func (d *Data) Copy() *Data {
	c := *d
	return &c
}

// Equals reports whether two snapshots are field-for-field identical
// (supports the round-trip law: Copy(x).equals(x))
func (d *Data) Equals(o *Data) bool {
	return *d == *o
}

// Next allocates the timestep M+1 snapshot, carrying forward the invariant
// M_StartTime[M+1] = M_EndTime[M] and caching the cumulative values that the
// following setters will update incrementally
func (d *Data) Next() *Data {
	n := &Data{
		M:          d.M + 1,
		StartTime:  d.EndTime,
		CumPhi:     d.CumPhi,
		TotalMFP30: d.TotalMFP30,
		CumAMFP30:  d.CumAMFP30,
		CumSIIMFP30: d.CumSIIMFP30,
		CumSIJMFP30: d.CumSIJMFP30,
		Theta:      d.Theta,
		ThetaPrime: d.ThetaPrime,
	}
	n.prevCumPhi = d.CumPhi
	n.prevTotalMFP30 = d.TotalMFP30
	return n
}

// SetDuration sets the step duration and derives EndTime; must be called
// before any other setter on a freshly-allocated Next() snapshot
func (d *Data) SetDuration(dt float64) {
	d.Duration = dt
	d.EndTime = d.StartTime + dt
}

// SetDynamicData records the per-step driving-stress/propagation-rate
// inputs solved by the dip set (u, v components of driving stress; γ; mean
// propagation rate v). It does not write Cum_Gamma_{M-1} (here:
// prevCumPhi/prevTotalMFP30, the cached cumulative-start values), so
// calling it repeatedly with the same inputs leaves them unchanged.
func (d *Data) SetDynamicData(dt, sigmaDu, sigmaDv, gamma, meanRate float64) {
	d.Duration = dt
	d.EndTime = d.StartTime + dt
	d.DrivingStressU = sigmaDu
	d.DrivingStressV = sigmaDv
	d.Gamma = gamma
	d.MeanPropagationRate = meanRate
	d.HalfLengthM = meanRate * dt
}

// SetGammaDuration sets γ·dt for a subcritical index b, enforcing the
// sign(γ·Duration) = (b<2 ? -1 : +1) invariant (§8, last bullet)
func (d *Data) SetGammaDuration(b float64) {
	mag := math.Abs(d.Gamma * d.Duration)
	if b < 2 {
		d.GammaDt = -mag
	} else {
		d.GammaDt = mag
	}
}

// SetDeactivationProbabilities records Φ_II and Φ_IJ for this step,
// derives F_II and F_M, and folds Φ_II·Φ_IJ into Cum_Φ, preserving
// Cum_Φ_M = Cum_Φ_{M-1}·Φ_II·Φ_IJ (call after SetDuration/SetDynamicData,
// which set the Duration used for F_II and F_M)
func (d *Data) SetDeactivationProbabilities(phiII, phiIJ float64) {
	phiII = clamp01(phiII)
	phiIJ = clamp01(phiIJ)
	d.PhiII = phiII
	d.PhiIJ = phiIJ
	if d.Duration > 0 {
		d.FII = -math.Log(utl.Max(phiII, 1e-300)) / d.Duration
		d.FM = (1 - phiII*phiIJ) / d.Duration
	}
	// cache-then-mutate-then-restore to enforce Cum_Phi_M = Cum_Phi_{M-1}*Phi
	prev := d.prevCumPhi
	d.CumPhi = prev * phiII * phiIJ
	d.prevCumPhi = prev
}

// SetThetas records θ, θ′ and the cross-set overlaps ψ_other/χ_other,
// clamping every quantity into [0,1] per §7 "Geometric impossibility" and
// enforcing θ′ ≤ θ and monotone non-increase relative to the previous step
func (d *Data) SetThetas(prevTheta, prevThetaPrime, theta, thetaPrime, psiOther, chiOther float64) {
	theta = clamp01(theta)
	thetaPrime = clamp01(thetaPrime)
	if theta > prevTheta {
		theta = prevTheta
	}
	if thetaPrime > prevThetaPrime {
		thetaPrime = prevThetaPrime
	}
	if thetaPrime > theta {
		thetaPrime = theta
	}
	d.Theta = theta
	d.ThetaPrime = thetaPrime
	d.PsiOther = clamp01(psiOther)
	d.ChiOther = clamp01(chiOther)
	d.ThetaAllFS = utl.Max(theta-d.PsiOther, 0)
}

// SetDensities records the instantaneous increments to active (a),
// stress-shadow-terminated (sII) and intersection-terminated (sIJ) MFP30,
// preserving Cum_X_M = Cum_X_{M-1} + ΔX_M and the
// TotalMFP30 = aMFP30+sII_MFP30+sIJ_MFP30 invariant (§8)
func (d *Data) SetDensities(deltaA, deltaSII, deltaSIJ float64) (err error) {
	if deltaA < 0 || deltaSII < 0 || deltaSIJ < 0 {
		return chk.Err("fcalc: SetDensities: increments must be non-negative (got %v,%v,%v)\n", deltaA, deltaSII, deltaSIJ)
	}
	prevA, prevSII, prevSIJ := d.CumAMFP30, d.CumSIIMFP30, d.CumSIJMFP30
	d.CumAMFP30 = prevA + deltaA
	d.CumSIIMFP30 = prevSII + deltaSII
	d.CumSIJMFP30 = prevSIJ + deltaSIJ
	d.TotalMFP30 = d.CumAMFP30 + d.CumSIIMFP30 + d.CumSIJMFP30
	if d.TotalMFP30 < d.prevTotalMFP30 {
		return chk.Err("fcalc: SetDensities: Total_MFP30 must be monotone non-decreasing (%.6g < %.6g)\n", d.TotalMFP30, d.prevTotalMFP30)
	}
	return nil
}

// SetSpacingCoefficients records the AA/BB/CC-step coefficients of the
// cumulative macrofracture spacing distribution used by the containing dip
// set to derive θ/θ′ for the next step
func (d *Data) SetSpacingCoefficients(aa, bb, cc float64) {
	d.SpacingAA = aa
	d.SpacingBB = bb
	d.SpacingCC = cc
}

// SetEvolutionStageDeactivated forces propagation rate and γ to zero and
// resets Φ's to 1 (no further deactivation can occur), preserving Cum_Φ,
// per the Growing→Deactivated transition contract in §4.4
func (d *Data) SetEvolutionStageDeactivated() {
	d.MeanPropagationRate = 0
	d.HalfLengthM = 0
	d.Gamma = 0
	d.GammaDt = 0
	d.PhiII = 1
	d.PhiIJ = 1
	d.FII = 0
	d.FM = 0
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
