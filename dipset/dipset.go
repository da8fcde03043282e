// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package dipset implements the FractureDipSet implicit state machine
// (§4.5): NotActivated → Growing → ResidualActivity → Deactivated, the
// per-step driving-stress solve, and density/stress-shadow/theta updates.
// Follows the pull-update-check control flow of mdl/solid/driver.go's
// Driver.Run and the pluggable per-step Update contract of msolid.Model.
package dipset

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"

	"github.com/JointFlow/DFMGenerator-sub007/fcalc"
	"github.com/JointFlow/DFMGenerator-sub007/tsr"
)

// EvolutionStage is the implicit-model activity state of a dip set (§4.5)
type EvolutionStage int

const (
	NotActivated EvolutionStage = iota
	Growing
	ResidualActivity
	Deactivated
)

func (s EvolutionStage) String() string {
	switch s {
	case NotActivated:
		return "NotActivated"
	case Growing:
		return "Growing"
	case ResidualActivity:
		return "ResidualActivity"
	case Deactivated:
		return "Deactivated"
	}
	return "Unknown"
}

// Thresholds bundles the per-dip-set termination parameters normally
// supplied by the owning block's PropagationControl (§6)
type Thresholds struct {
	CriticalDrivingStress    float64 // driving stress must exceed this to activate
	MinClearZoneVolume       float64 // Growing→Deactivated if θ′ falls below this
	TerminationRatioAMFP33   float64 // >0 enables the TerminationRatioActive check once aMFP33 has accumulated; the value itself is not compared against anything
	TerminationRatioActive   float64 // active/total MFP30 termination ratio
	AnisotropyCutoff         float64 // isotropic vs anisotropic coupling method switch
	MaxTSMFP33Increase       float64 // accuracy cap on ΔMFP33 per step
	MaxTimestepDuration      float64 // dt <= maxTimestepDuration
}

// DipSet is one population sharing a strike azimuth and a dip
// direction/angle, owning the time-indexed FractureCalculationData history
type DipSet struct {
	Azimuth   float64 // strike azimuth, radians, [0,π)
	DipAngle  float64 // dip from horizontal, radians
	DipPlus   bool    // true: dips toward +J; false: toward -J

	Stage EvolutionStage

	History []*fcalc.Data
	Macro   *fcalc.MacrofractureData

	Thresh Thresholds

	historicAMFP33 float64
}

// NewDipSet allocates a dip set, starting NotActivated with an initial
// (t=0) FractureCalculationData snapshot
func NewDipSet(azimuth, dipAngle float64, dipPlus bool, thresh Thresholds, nBins int, maxHalfLength float64) *DipSet {
	return &DipSet{
		Azimuth:  azimuth,
		DipAngle: dipAngle,
		DipPlus:  dipPlus,
		Stage:    NotActivated,
		History:  []*fcalc.Data{fcalc.NewInitial(0)},
		Macro:    fcalc.NewMacrofractureData(nBins, maxHalfLength),
		Thresh:   thresh,
	}
}

// Current returns the most recently completed timestep snapshot
func (o *DipSet) Current() *fcalc.Data {
	return o.History[len(o.History)-1]
}

// Normal returns the unit normal of this dip set's fracture plane
func (o *DipSet) Normal() [3]float64 {
	return normalFromStrikeDip(o.Azimuth, o.DipAngle)
}

func normalFromStrikeDip(azimuth, dip float64) [3]float64 {
	sinA, cosA := math.Sin(azimuth), math.Cos(azimuth)
	sinD, cosD := math.Sin(dip), math.Cos(dip)
	return [3]float64{-sinA * sinD, cosA * sinD, cosD}
}

// resolveNormalShear projects a stress tensor onto a plane with unit normal
// n, returning the effective normal stress and the resolved shear magnitude
func resolveNormalShear(sigma tsr.Sym2, n [3]float64) (sigmaN, tau float64) {
	tx := sigma.Xx*n[0] + sigma.Xy*n[1] + sigma.Zx*n[2]
	ty := sigma.Xy*n[0] + sigma.Yy*n[1] + sigma.Yz*n[2]
	tz := sigma.Zx*n[0] + sigma.Yz*n[1] + sigma.Zz*n[2]
	sigmaN = tx*n[0] + ty*n[1] + tz*n[2]
	tMag2 := tx*tx + ty*ty + tz*tz
	tau = math.Sqrt(math.Max(tMag2-sigmaN*sigmaN, 0))
	return
}

// solveUV fits u (constant) and v (rate) such that f(t) = u + v·t passes
// through (0, f0) and (dt, f1), using a small dense linear solve (§4.5)
func solveUV(f0, f1, dt float64) (u, v float64, err error) {
	if dt <= 0 {
		return f0, 0, nil
	}
	A := mat.NewDense(2, 2, []float64{1, 0, 1, dt})
	b := mat.NewVecDense(2, []float64{f0, f1})
	var x mat.VecDense
	if err := x.SolveVec(A, b); err != nil {
		return 0, 0, chk.Err("dipset: solveUV: %v", err)
	}
	return x.AtVec(0), x.AtVec(1), nil
}

// StepInputs bundles what the owning gridblock must supply for one advance
type StepInputs struct {
	Dt            float64
	Mu            float64 // friction coefficient (from mprops)
	B             float64 // subcritical propagation index
	Kc            float64 // fracture toughness
	AlphaUF       float64
	AlphaMF       float64 // already thickness-corrected by the caller
	Thickness     float64
	SigmaStart    tsr.Sym2 // effective stress at step start
	SigmaEnd      tsr.Sym2 // effective stress at step end (after sstate.Update)
	VolumeBlock   float64  // block volume used for nucleation-rate scaling
	PsiOther      float64  // cross-set stress-shadow overlap input
	ChiOther      float64  // cross-set clear-zone overlap input
}

// Advance performs one canonical-order implicit update of this dip set and
// appends the resulting FractureCalculationData snapshot to History (§4.5):
//  1. pull stress/strain (via StepInputs, supplied by the gridblock)
//  2. solve u/v components of driving stress and effective normal stress
//  3. integrate α·σ_d to get new micro/macrofracture densities
//  4. evaluate stress-shadow widths (left as the caller's geometry concern,
//     folded in via PsiOther/ChiOther)
//  5. update θ/θ′ from the spacing-distribution coefficients
//  6. update deactivation probabilities and evolve the state machine
func (o *DipSet) Advance(in StepInputs) (err error) {
	if in.Dt <= 0 {
		return chk.Err("dipset: Advance: dt must be positive, got %v", in.Dt)
	}
	if o.Thresh.MaxTimestepDuration > 0 && in.Dt > o.Thresh.MaxTimestepDuration {
		return chk.Err("dipset: Advance: dt=%v exceeds maxTimestepDuration=%v", in.Dt, o.Thresh.MaxTimestepDuration)
	}

	n := o.Normal()
	sigmaN0, tau0 := resolveNormalShear(in.SigmaStart, n)
	sigmaN1, tau1 := resolveNormalShear(in.SigmaEnd, n)
	drive0 := tau0 - in.Mu*math.Max(sigmaN0, 0)
	drive1 := tau1 - in.Mu*math.Max(sigmaN1, 0)

	uD, vD, err := solveUV(drive0, drive1, in.Dt)
	if err != nil {
		return err
	}
	uN, vN, err := solveUV(sigmaN0, sigmaN1, in.Dt)
	if err != nil {
		return err
	}

	prev := o.Current()
	next := prev.Next()
	next.SetDuration(in.Dt)
	next.DrivingStressU, next.DrivingStressV = uD, vD
	next.EffNormalStressU, next.EffNormalStressV = uN, vN

	meanDrive := uD + 0.5*vD*in.Dt

	if o.Stage == NotActivated {
		if meanDrive > o.Thresh.CriticalDrivingStress {
			o.Stage = Growing
		} else {
			o.History = append(o.History, next)
			return nil
		}
	}

	if o.Stage == Deactivated {
		next.SetEvolutionStageDeactivated()
		o.History = append(o.History, next)
		return nil
	}

	// integrate α·σ_d·dt across the step (trapezoidal on the linear u+v·t profile)
	sigmaD := math.Max(meanDrive, 0)
	b := in.B
	if b == 0 {
		b = 1
	}
	sigmaDb := math.Pow(sigmaD, b)
	// rate coefficient γ_{1/β} = α_uF · σ_d^b (§4.5)
	gamma := in.AlphaUF * sigmaDb
	next.SetDynamicData(in.Dt, uD, vD, gamma, gamma)
	next.SetGammaDuration(b)

	deltaMFP33 := in.AlphaMF * sigmaDb * in.Dt
	if o.Thresh.MaxTSMFP33Increase > 0 && deltaMFP33 > o.Thresh.MaxTSMFP33Increase {
		return chk.Err("dipset: Advance: ΔMFP33_step=%v exceeds max_TS_MFP33_increase=%v; caller must reduce dt", deltaMFP33, o.Thresh.MaxTSMFP33Increase)
	}
	o.historicAMFP33 += deltaMFP33

	deltaA := gamma * in.Dt * in.VolumeBlock
	if err := next.SetDensities(deltaA, 0, 0); err != nil {
		return err
	}

	// stress-shadow width grows with cumulative active density; clear-zone
	// shrinks correspondingly. Both folded through PsiOther/ChiOther from
	// sibling dip sets in the same block (§4.6 cross-set coupling).
	shadowFraction := 1 - math.Exp(-next.CumAMFP30*in.Thickness)
	theta := 1 - shadowFraction
	thetaPrime := theta * (1 - in.ChiOther)
	next.SetThetas(prev.Theta, prev.ThetaPrime, theta, thetaPrime, in.PsiOther, in.ChiOther)
	next.SetSpacingCoefficients(shadowFraction, in.ChiOther, in.PsiOther)

	phiII := math.Exp(-gamma * in.Dt)
	phiIJ := 1 - in.ChiOther
	next.SetDeactivationProbabilities(phiII, phiIJ)

	o.History = append(o.History, next)
	o.evaluateTransitions(next)
	return nil
}

// evaluateTransitions applies the Growing→ResidualActivity and
// Growing→Deactivated rules (§4.5)
func (o *DipSet) evaluateTransitions(d *fcalc.Data) {
	if o.Stage != Growing {
		return
	}
	if d.PhiII*d.PhiIJ <= 0 {
		o.Stage = ResidualActivity
		return
	}
	if o.Thresh.MinClearZoneVolume > 0 && d.ThetaPrime < o.Thresh.MinClearZoneVolume {
		o.Stage = Deactivated
		return
	}
	if o.Thresh.TerminationRatioAMFP33 > 0 && o.historicAMFP33 > 0 {
		// ratio of active to historic total; a high ratio of already-static
		// fracture area relative to the running total signals termination
		activeRatio := d.CumAMFP30 / math.Max(d.TotalMFP30, 1e-300)
		if o.Thresh.TerminationRatioActive > 0 && activeRatio < o.Thresh.TerminationRatioActive {
			o.Stage = Deactivated
		}
	}
}
