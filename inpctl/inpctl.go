// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inpctl implements the DFN control record and propagation control
// record (§6), following inp.Simulation/Stage/TimeControl's JSON-tag plus
// SetDefault/PostProcess idiom.
package inpctl

import "github.com/cpmech/gosl/chk"

// TimeUnits identifies the unit rate inputs are expressed in before being
// normalised to SI seconds (§9 "Time-unit handling")
type TimeUnits string

const (
	Second TimeUnits = "second"
	Year   TimeUnits = "year"
	Ma     TimeUnits = "ma"
)

const (
	secondsPerYear = 365.25 * 24 * 3600
	secondsPerMa   = 1e6 * secondsPerYear
)

// ToSeconds converts a duration expressed in u into seconds
func (u TimeUnits) ToSeconds(v float64) (float64, error) {
	switch u {
	case Second, "":
		return v, nil
	case Year:
		return v * secondsPerYear, nil
	case Ma:
		return v * secondsPerMa, nil
	}
	return 0, chk.Err("inpctl: unknown time unit %q", u)
}

// NeighbourSearchMode selects how cross-block interaction candidates are
// gathered (§4.7)
type NeighbourSearchMode string

const (
	SearchNone      NeighbourSearchMode = "None"
	SearchAll       NeighbourSearchMode = "All"
	SearchAutomatic NeighbourSearchMode = "Automatic"
)

// OutputFileType selects the explicit DFN file format (§6)
type OutputFileType string

const (
	ASCII OutputFileType = "ASCII"
	FAB   OutputFileType = "FAB"
)

// IntermediateOutputPolicy selects how growth-stage snapshots are spaced (§4.8)
type IntermediateOutputPolicy string

const (
	SpecifiedTime IntermediateOutputPolicy = "SpecifiedTime"
	EqualTime     IntermediateOutputPolicy = "EqualTime"
	EqualArea     IntermediateOutputPolicy = "EqualArea"
)

// DFNControl is the grid-wide configuration bundle (§6)
type DFNControl struct {
	GenerateExplicitDFN bool `json:"generateExplicitDFN"`

	MicrofractureDFNMinimumRadius float64 `json:"microfractureDFNMinimumRadius"`
	MacrofractureDFNMinimumLength float64 `json:"macrofractureDFNMinimumLength"` // <0 disables DFN
	MaxNoFractures                int     `json:"maxNoFractures"`                // <0 = unlimited
	MinimumLayerThickness          float64 `json:"minimumLayerThickness"`
	MaxConsistencyAngle            float64 `json:"maxConsistencyAngle"`

	CropToGrid                  bool `json:"cropToGrid"`
	LinkFracturesInStressShadow bool `json:"linkFracturesInStressShadow"`

	NumberOfuFPoints            int `json:"numberOfUFPoints"`
	NumberOfIntermediateOutputs int `json:"numberOfIntermediateOutputs"`

	SeparateIntermediateOutputsBy IntermediateOutputPolicy `json:"separateIntermediateOutputsBy"`
	IntermediateOutputTimes       []float64                `json:"intermediateOutputTimes"`

	ProbabilisticFractureNucleationLimit float64 `json:"probabilisticFractureNucleationLimit"`

	SearchNeighbouringGridblocks         NeighbourSearchMode `json:"searchNeighbouringGridblocks"`
	PropagateFracturesInNucleationOrder  bool                `json:"propagateFracturesInNucleationOrder"`

	TimeUnits TimeUnits `json:"timeUnits"`

	WriteDFNFiles     bool           `json:"writeDFNFiles"`
	OutputFileType    OutputFileType `json:"outputFileType"`
	OutputCentrepoints bool          `json:"outputCentrepoints"`
	FolderPath        string         `json:"folderPath"`

	DefaultFracturePermeability    float64 `json:"defaultFracturePermeability"`
	DefaultFractureCompressibility float64 `json:"defaultFractureCompressibility"`

	Verbose bool `json:"verbose"`
}

// SetDefault fills in the reasonable defaults a freshly-decoded DFNControl
// needs before PostProcess runs, following inp.SolverData.SetDefault
func (o *DFNControl) SetDefault() {
	o.MaxNoFractures = -1
	o.MacrofractureDFNMinimumLength = 0
	o.SearchNeighbouringGridblocks = SearchAutomatic
	o.SeparateIntermediateOutputsBy = EqualTime
	o.TimeUnits = Second
	o.OutputFileType = ASCII
	o.NumberOfuFPoints = 0
}

// PostProcess validates the decoded control record and rejects contradictory
// combinations at configuration time (§7 "Configuration invalid")
func (o *DFNControl) PostProcess() (err error) {
	if o.MacrofractureDFNMinimumLength < 0 && o.GenerateExplicitDFN {
		return chk.Err("inpctl: DFNControl: MacrofractureDFNMinimumLength<0 disables the explicit DFN but GenerateExplicitDFN=true")
	}
	if o.MaxNoFractures == 0 && o.GenerateExplicitDFN && o.MacrofractureDFNMinimumLength >= 0 {
		return chk.Err("inpctl: DFNControl: maxNoFractures=0 combined with an enabled explicit DFN request produces no output")
	}
	if o.NumberOfIntermediateOutputs < 0 {
		return chk.Err("inpctl: DFNControl: NumberOfIntermediateOutputs must be >= 0")
	}
	if o.SeparateIntermediateOutputsBy == SpecifiedTime && len(o.IntermediateOutputTimes) == 0 && o.NumberOfIntermediateOutputs > 0 {
		return chk.Err("inpctl: DFNControl: SeparateIntermediateOutputsBy=SpecifiedTime requires IntermediateOutputTimes")
	}
	return nil
}

// DeformationEpisode is one applied-deformation episode in a block's
// propagation control (§6)
type DeformationEpisode struct {
	MinHorizontalStrainRate float64   `json:"minHorizontalStrainRate"`
	MaxHorizontalStrainRate float64   `json:"maxHorizontalStrainRate"`
	AzimuthOfMinStrain      float64   `json:"azimuthOfMinStrain"` // wrapped to [0,π)
	OverpressureRate        float64   `json:"overpressureRate"`
	TemperatureChangeRate   float64   `json:"temperatureChangeRate"`
	UpliftRate              float64   `json:"upliftRate"`
	StressArchingFactor     float64   `json:"stressArchingFactor"` // ∈[0,1]
	Duration                float64   `json:"duration"`            // negative = auto-terminate on fracture inactivity
	RateUnits               TimeUnits `json:"rateUnits"`
	DurationUnits           TimeUnits `json:"durationUnits"`

	// derived: everything below is in SI units (per second) after Normalize
	minRateSI, maxRateSI, overpressureSI, tempSI, upliftSI, durationSI float64
	normalized bool
}

// Normalize converts every rate/duration field to SI (seconds), per §9
// "Time-unit handling is a pervasive redesign risk"
func (o *DeformationEpisode) Normalize() (err error) {
	rateUnits := o.RateUnits
	if rateUnits == "" {
		rateUnits = Second
	}
	durUnits := o.DurationUnits
	if durUnits == "" {
		durUnits = Second
	}
	// rate fields are per-second already scaled by the unit's definition of
	// "per unit time": dividing by the unit's own second-count converts a
	// "per year" rate into "per second"
	secPerUnit, err := rateUnits.ToSeconds(1)
	if err != nil {
		return err
	}
	o.minRateSI = o.MinHorizontalStrainRate / secPerUnit
	o.maxRateSI = o.MaxHorizontalStrainRate / secPerUnit
	o.overpressureSI = o.OverpressureRate / secPerUnit
	o.tempSI = o.TemperatureChangeRate / secPerUnit
	o.upliftSI = o.UpliftRate / secPerUnit

	o.durationSI, err = durUnits.ToSeconds(o.Duration)
	if err != nil {
		return err
	}
	o.AzimuthOfMinStrain = wrapToHalfPi(o.AzimuthOfMinStrain)
	if o.StressArchingFactor < 0 {
		o.StressArchingFactor = 0
	}
	if o.StressArchingFactor > 1 {
		o.StressArchingFactor = 1
	}
	o.normalized = true
	return nil
}

// MinRateSI returns the minimum horizontal strain rate in 1/s (requires Normalize)
func (o *DeformationEpisode) MinRateSI() float64 { return o.minRateSI }

// MaxRateSI returns the maximum horizontal strain rate in 1/s (requires Normalize)
func (o *DeformationEpisode) MaxRateSI() float64 { return o.maxRateSI }

// OverpressureRateSI returns the overpressure rate in Pa/s (requires Normalize)
func (o *DeformationEpisode) OverpressureRateSI() float64 { return o.overpressureSI }

// TemperatureChangeRateSI returns the temperature-change rate in K/s (requires Normalize)
func (o *DeformationEpisode) TemperatureChangeRateSI() float64 { return o.tempSI }

// UpliftRateSI returns the uplift rate in m/s (requires Normalize)
func (o *DeformationEpisode) UpliftRateSI() float64 { return o.upliftSI }

// DurationSI returns the episode duration in seconds (requires Normalize);
// negative means auto-terminate on fracture inactivity
func (o *DeformationEpisode) DurationSI() float64 { return o.durationSI }

// AutoTerminate reports whether this episode ends on fracture inactivity
// rather than a fixed duration
func (o *DeformationEpisode) AutoTerminate() bool {
	return o.normalized && o.durationSI < 0
}

func wrapToHalfPi(a float64) float64 {
	const pi = 3.141592653589793
	for a < 0 {
		a += pi
	}
	for a >= pi {
		a -= pi
	}
	return a
}

// PropagationControl is the per-block configuration bundle (§6)
type PropagationControl struct {
	FullPopulationDistribution bool `json:"fullPopulationDistribution"`
	IndexPointCount            int  `json:"indexPointCount"`

	StressDistributionCase string `json:"stressDistributionCase"` // "EvenlyDistributed" | "StressShadow" | "DuctileBoundary"

	MaxTSMFP33Increase     float64 `json:"maxTSMFP33Increase"`
	TerminationRatioAMFP33 float64 `json:"terminationRatioAMFP33"`
	TerminationRatioActive float64 `json:"terminationRatioActive"`
	MinClearZoneVolume     float64 `json:"minClearZoneVolume"`

	MicrofractureBinCount int `json:"microfractureBinCount"`
	AnisotropyCutoff      float64 `json:"anisotropyCutoff"`

	MaxTimesteps        int     `json:"maxTimesteps"`
	MaxTimestepDuration float64 `json:"maxTimestepDuration"`

	Episodes []*DeformationEpisode `json:"episodes"`
}

// SetDefault fills reasonable defaults, following inp.SolverData.SetDefault
func (o *PropagationControl) SetDefault() {
	o.StressDistributionCase = "EvenlyDistributed"
	o.MicrofractureBinCount = 20
	o.AnisotropyCutoff = 0.5
	o.MaxTimesteps = 1000
	o.MaxTimestepDuration = 1e30
}

// PostProcess normalises every episode's units and validates the record
func (o *PropagationControl) PostProcess() (err error) {
	if o.MaxTimesteps <= 0 {
		return chk.Err("inpctl: PropagationControl: MaxTimesteps must be positive")
	}
	for i, ep := range o.Episodes {
		if err := ep.Normalize(); err != nil {
			return chk.Err("inpctl: PropagationControl: episode %d: %v", i, err)
		}
	}
	return nil
}
