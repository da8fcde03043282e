// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inpctl

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_dfncontrol_default_postprocess(tst *testing.T) {
	chk.PrintTitle("inpctl_dfncontrol_default_postprocess")
	o := &DFNControl{}
	o.SetDefault()
	if err := o.PostProcess(); err != nil {
		tst.Fatalf("PostProcess failed on defaults: %v", err)
	}
}

func Test_dfncontrol_rejects_contradiction(tst *testing.T) {
	chk.PrintTitle("inpctl_dfncontrol_rejects_contradiction")
	o := &DFNControl{}
	o.SetDefault()
	o.GenerateExplicitDFN = true
	o.MacrofractureDFNMinimumLength = -1
	if err := o.PostProcess(); err == nil {
		tst.Errorf("expected error for GenerateExplicitDFN with negative MacrofractureDFNMinimumLength")
	}
}

func Test_episode_normalize_year_to_seconds(tst *testing.T) {
	chk.PrintTitle("inpctl_episode_normalize_year_to_seconds")
	ep := &DeformationEpisode{
		MinHorizontalStrainRate: 1e-15,
		MaxHorizontalStrainRate: 2e-15,
		AzimuthOfMinStrain:      -0.1,
		Duration:                10,
		RateUnits:               Year,
		DurationUnits:           Year,
	}
	if err := ep.Normalize(); err != nil {
		tst.Fatalf("Normalize failed: %v", err)
	}
	chk.Scalar(tst, "duration in seconds", 1.0, ep.DurationSI(), 10*secondsPerYear)
	if ep.AzimuthOfMinStrain < 0 {
		tst.Errorf("expected azimuth wrapped into [0,pi)")
	}
	if ep.MinRateSI() <= 0 {
		tst.Errorf("expected positive normalised min rate")
	}
}

func Test_episode_auto_terminate_on_negative_duration(tst *testing.T) {
	chk.PrintTitle("inpctl_episode_auto_terminate")
	ep := &DeformationEpisode{Duration: -1}
	if err := ep.Normalize(); err != nil {
		tst.Fatalf("Normalize failed: %v", err)
	}
	if !ep.AutoTerminate() {
		tst.Errorf("expected AutoTerminate for negative duration")
	}
}

func Test_propagation_control_default_and_postprocess(tst *testing.T) {
	chk.PrintTitle("inpctl_propagation_control_default_and_postprocess")
	o := &PropagationControl{}
	o.SetDefault()
	o.Episodes = []*DeformationEpisode{{Duration: 5, DurationUnits: Ma}}
	if err := o.PostProcess(); err != nil {
		tst.Fatalf("PostProcess failed: %v", err)
	}
	if !o.Episodes[0].normalized {
		tst.Errorf("expected episode to be normalized by PostProcess")
	}
}
