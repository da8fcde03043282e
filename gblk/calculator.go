// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gblk

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/JointFlow/DFMGenerator-sub007/dipset"
	"github.com/JointFlow/DFMGenerator-sub007/inpctl"
	"github.com/JointFlow/DFMGenerator-sub007/tsr"
)

// overburdenGradientPaPerM is a typical overburden (vertical total stress)
// gradient, used to translate an uplift rate into a vertical-stress rate
// moderated by the episode's stress-arching factor
const overburdenGradientPaPerM = 22000.0

// EpisodeResult summarises one completed (or partially completed)
// deformation episode advance
type EpisodeResult struct {
	EndTime          float64
	TimestepEndTimes []float64
	StoppedByBudget  bool // true if MaxTimesteps was exhausted before the episode duration elapsed
}

// strainRateTensor builds the horizontal strain-rate tensor implied by an
// episode's min/max horizontal strain rates and the azimuth of the minimum
// strain axis, rotated into the block's local x/y frame. The vertical
// component is left at zero: σ_zz is enforced separately by
// RecalculateEffectiveStress against the prescribed vertical stress (§4.2).
func strainRateTensor(ep *inpctl.DeformationEpisode) tsr.Sym2 {
	az := ep.AzimuthOfMinStrain
	eMin, eMax := ep.MinRateSI(), ep.MaxRateSI()
	cosA, sinA := math.Cos(az), math.Sin(az)
	exx := eMin*cosA*cosA + eMax*sinA*sinA
	eyy := eMin*sinA*sinA + eMax*cosA*cosA
	exy := (eMin - eMax) * sinA * cosA
	return tsr.Sym2{Xx: exx, Yy: eyy, Xy: exy}
}

// buildHostStiffness builds the isotropic host-rock stiffness D from E, ν,
// used as the fixed-σzz partial-inversion matrix in RecalculateEffectiveStress
func (o *Gridblock) buildHostStiffness() tsr.Compliance4 {
	e, nu := o.MechProps.E, o.MechProps.Nu
	k := e / (3 * (1 - 2*nu))
	g := e / (2 * (1 + nu))
	return tsr.IsotropicStiffness(k, g)
}

// buildAnisotropicCompliance adds each active dip set's excess compliance to
// the isotropic host compliance, proportional to P32 and oriented by
// azimuth/dip (§4.1, §4.2 "S_F / S_beff"), feeding PartitionElasticStrain
func (o *Gridblock) buildAnisotropicCompliance() tsr.Compliance4 {
	c := tsr.IsotropicCompliance(o.MechProps.E, o.MechProps.Nu)
	kn := o.MechProps.Aperture.NormalStiffness
	if kn <= 0 {
		return c
	}
	normalCompliance := 1.0 / kn
	shearCompliance := normalCompliance * 0.5
	for _, set := range o.Sets {
		for _, d := range set.Dips {
			if d.Stage == dipset.NotActivated {
				continue
			}
			p32 := d.Macro.TotalP32()
			if p32 <= 0 {
				continue
			}
			c.AddFractureContribution(p32, d.Azimuth, d.DipAngle, normalCompliance, shearCompliance)
		}
	}
	return c
}

// fractureOnlyComplianceZZ isolates the zz-zz compliance contributed by
// fractures alone (S_F), used alongside the full block compliance (S_beff)
// in PartitionElasticStrain's StressShadow split
func (o *Gridblock) fractureOnlyComplianceZZ() float64 {
	var c tsr.Compliance4
	kn := o.MechProps.Aperture.NormalStiffness
	if kn <= 0 {
		return 0
	}
	normalCompliance := 1.0 / kn
	shearCompliance := normalCompliance * 0.5
	for _, set := range o.Sets {
		for _, d := range set.Dips {
			if d.Stage == dipset.NotActivated {
				continue
			}
			p32 := d.Macro.TotalP32()
			if p32 <= 0 {
				continue
			}
			c.AddFractureContribution(p32, d.Azimuth, d.DipAngle, normalCompliance, shearCompliance)
		}
	}
	return c[2][2]
}

// crossSetCoupling computes ψ_other/χ_other for the dip set at flatIndex,
// from the previous-step θ/θ′ of every sibling dip set across every
// fracture set owned by this block (§4.6). Below AnisotropyCutoff, siblings
// are combined by inclusion-exclusion (isotropic method); above it, by a
// P32-weighted sum that lets the dominant set perturb the others more
// strongly (anisotropic method).
func (o *Gridblock) crossSetCoupling(all []*dipset.DipSet, flatIndex int, cutoff float64) (psiOther, chiOther float64) {
	if len(all) <= 1 {
		return 0, 0
	}
	var p32s []float64
	var thetas, thetaPrimes []float64
	for i, d := range all {
		if i == flatIndex {
			continue
		}
		cur := d.Current()
		thetas = append(thetas, cur.Theta)
		thetaPrimes = append(thetaPrimes, cur.ThetaPrime)
		p32s = append(p32s, d.Macro.TotalP32())
	}
	if anisotropyMeasure(p32s) <= cutoff {
		psiOther = 1 - productOf(thetas)
		chiOther = 1 - productOf(thetaPrimes)
		return
	}
	totalP32 := sumOf(p32s)
	if totalP32 <= 0 {
		return 0, 0
	}
	for i := range thetas {
		w := p32s[i] / totalP32
		psiOther += w * (1 - thetas[i])
		chiOther += w * (1 - thetaPrimes[i])
	}
	return
}

func productOf(xs []float64) float64 {
	p := 1.0
	for _, x := range xs {
		p *= x
	}
	return p
}

func sumOf(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}

// anisotropyMeasure returns the coefficient of variation of a set of P32
// weights (0 for a uniform population, growing as one set dominates)
func anisotropyMeasure(xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	mean := sumOf(xs) / float64(n)
	if mean <= 0 {
		return 0
	}
	var varSum float64
	for _, x := range xs {
		d := x - mean
		varSum += d * d
	}
	return math.Sqrt(varSum/float64(n)) / mean
}

// nextDt picks the trial step size: capped by the remaining episode
// duration and each dip set's MaxTimestepDuration threshold, then bounded
// further by an accuracy-cap estimate carried forward from each dip set's
// last-known rate (§4.5 "a chosen step size must obey ΔMFP33_step <=
// max_TS_MFP33_increase"). Using the previous step's rate to bound the next
// step avoids a trial-and-error retry loop against dipset.Advance's own cap
// check.
func (o *Gridblock) nextDt(all []*dipset.DipSet, remaining float64) float64 {
	dt := remaining
	for _, d := range all {
		if d.Thresh.MaxTimestepDuration > 0 && d.Thresh.MaxTimestepDuration < dt {
			dt = d.Thresh.MaxTimestepDuration
		}
		if d.Thresh.MaxTSMFP33Increase <= 0 {
			continue
		}
		cur := d.Current()
		if cur.Gamma <= 0 {
			continue
		}
		thick := o.ThicknessAtDeformation
		if thick <= 0 || o.MechProps.AlphaUF <= 0 {
			continue
		}
		sigmaDb := cur.Gamma / o.MechProps.AlphaUF
		if sigmaDb <= 0 {
			continue
		}
		alphaMF := o.MechProps.AlphaMF(thick)
		if alphaMF <= 0 {
			continue
		}
		bound := d.Thresh.MaxTSMFP33Increase / (alphaMF * sigmaDb)
		if bound > 0 && bound < dt {
			dt = bound
		}
	}
	return dt
}

// RunEpisode advances this block's implicit state through one deformation
// episode, one timestep at a time, until the episode duration elapses
// (or fracture inactivity triggers for an auto-terminating episode), every
// dip set reaches Deactivated, or the block's MaxTimesteps budget is
// exhausted (§4.6, §4.9)
func (o *Gridblock) RunEpisode(ep *inpctl.DeformationEpisode, startTime, sigmaV0, porePressure0 float64) (res EpisodeResult, err error) {
	if err = o.checkReady(); err != nil {
		return
	}
	o.StressStrain.StrainRate = strainRateTensor(ep)

	t := startTime
	duration := ep.DurationSI()
	auto := ep.AutoTerminate()

	for step := 0; step < o.Control.MaxTimesteps; step++ {
		if !auto && t-startTime >= duration {
			break
		}
		if o.AllSetsDeactivated() {
			break
		}
		all := o.FlatDipSets()
		if len(all) == 0 {
			break
		}

		remaining := math.Inf(1)
		if !auto {
			remaining = duration - (t - startTime)
		}
		dt := o.nextDt(all, remaining)
		if dt <= 0 || math.IsInf(dt, 1) {
			break
		}

		sigmaStart := o.StressStrain.EffStress
		tEnd := t + dt
		sigmaV := sigmaV0 - ep.StressArchingFactor*overburdenGradientPaPerM*ep.UpliftRateSI()*(tEnd-startTime)
		porePressure := porePressure0 + ep.OverpressureRateSI()*(tEnd-startTime)

		o.StressStrain.Update(dt)
		stiff := o.buildHostStiffness()
		if err = o.StressStrain.RecalculateEffectiveStress(stiff, sigmaV, porePressure); err != nil {
			return
		}
		sigmaEnd := o.StressStrain.EffStress

		compliance := o.buildAnisotropicCompliance()
		sBeff := compliance[2][2]
		sFrac := o.fractureOnlyComplianceZZ()
		_, _ = o.StressStrain.PartitionElasticStrain(sFrac, sBeff)

		for i, d := range all {
			psiOther, chiOther := o.crossSetCoupling(all, i, d.Thresh.AnisotropyCutoff)
			in := dipset.StepInputs{
				Dt:          dt,
				Mu:          o.MechProps.Mu,
				B:           o.MechProps.B,
				Kc:          o.MechProps.Kc,
				AlphaUF:     o.MechProps.AlphaUF,
				AlphaMF:     o.MechProps.AlphaMF(o.ThicknessAtDeformation),
				Thickness:   o.ThicknessAtDeformation,
				SigmaStart:  sigmaStart,
				SigmaEnd:    sigmaEnd,
				VolumeBlock: o.Volume(),
				PsiOther:    psiOther,
				ChiOther:    chiOther,
			}
			if err = d.Advance(in); err != nil {
				return res, chk.Err("gblk: Gridblock(%d,%d): dip set %d: %v", o.RowIndex, o.ColIndex, i, err)
			}
		}

		t = tEnd
		res.TimestepEndTimes = append(res.TimestepEndTimes, t)
	}

	if !auto && t-startTime < duration && !o.AllSetsDeactivated() {
		res.StoppedByBudget = true
		io.Pfyel("gblk: Gridblock(%d,%d): maxTimesteps=%d reached before episode end; implicit state valid, explicit DFN reflects progress so far\n", o.RowIndex, o.ColIndex, o.Control.MaxTimesteps)
	}
	res.EndTime = t
	return res, nil
}
