package domain

import (
	"fmt"
	"math"
)

// DefaultSplit is the number of quantization levels per factor. Three levels
// (low/mid/high) is what a Box-Behnken design expects.
const DefaultSplit = 3

// Band is a categorical experimental level together with its declared numeric
// range. A degenerate band has no range and is excluded from designs.
//
// Each factor enumeration exposes its levels as Bands, so quantization is a
// single function over the declared range instead of per-factor parsing of
// the display text.
type Band struct {
	Label      string
	Low, High  float64
	Unit       string
	Degenerate bool
}

func (b Band) String() string { return b.Label }

// Quantize returns split evenly spaced values covering the band's range,
// endpoints included, each rounded to two decimals. For a degenerate band it
// returns nil with no error: the factor is simply absent from the design.
// split < 2 fails with ErrInvalidSplitCount; there is no spacing with a
// single point.
func Quantize(b Band, split int) ([]float64, error) {
	if b.Degenerate {
		return nil, nil
	}
	if split < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSplitCount, split)
	}

	step := math.Abs(b.High-b.Low) / float64(split-1)
	values := make([]float64, split)
	for i := range values {
		values[i] = math.Round((b.Low+float64(i)*step)*100) / 100
	}
	return values, nil
}

// Fiber is an SPME fiber coating. Selection-only: fibers have no numeric
// range and never appear as a design factor.
type Fiber string

const (
	FiberPDMS         Fiber = "PDMS"
	FiberPDMSDVB      Fiber = "PDMS-DVB"
	FiberCAPPDMSPEGCW Fiber = "CAP-PDMS/PEG/CW"
	FiberCWDVBPA      Fiber = "CW/DVB/PA"
	FiberDVBCARPDMS   Fiber = "DVB/CAR/PDMS"
)

// Fibers returns every supported fiber coating in selection-priority order.
func Fibers() []Fiber {
	return []Fiber{FiberPDMS, FiberPDMSDVB, FiberCAPPDMSPEGCW, FiberCWDVBPA, FiberDVBCARPDMS}
}

// desorptionProfiles maps each fiber coating to its manufacturer-recommended
// desorption time and temperature.
var desorptionProfiles = map[Fiber]string{
	FiberPDMS:         "3-5 min @ 250-280°C",
	FiberPDMSDVB:      "3-5 min @ 250-270°C",
	FiberDVBCARPDMS:   "4-6 min @ 270-300°C",
	FiberCWDVBPA:      "4-6 min @ 250-280°C",
	FiberCAPPDMSPEGCW: "4-5 min @ 250-280°C",
}

// DesorptionProfile returns the "time @ temperature" desorption string for a
// fiber coating, or the empty string for an unknown fiber.
func DesorptionProfile(f Fiber) string { return desorptionProfiles[f] }

// ExtractionTemp is an extraction temperature band.
type ExtractionTemp int

const (
	TempThirtyToForty ExtractionTemp = iota
	TempFortyToSixty
	TempSixtyToEighty
)

var extractionTempBands = [...]Band{
	TempThirtyToForty: {Label: "30-40 °C", Low: 30, High: 40, Unit: "°C"},
	TempFortyToSixty:  {Label: "40-60 °C", Low: 40, High: 60, Unit: "°C"},
	TempSixtyToEighty: {Label: "60-80 °C", Low: 60, High: 80, Unit: "°C"},
}

// Band returns the level's declared numeric range.
func (t ExtractionTemp) Band() Band     { return extractionTempBands[t] }
func (t ExtractionTemp) String() string { return extractionTempBands[t].Label }

// ExtractionTime is an extraction time band.
type ExtractionTime int

const (
	TimeTenToTwenty ExtractionTime = iota
	TimeTwentyToThirty
	TimeThirtyToSixty
)

var extractionTimeBands = [...]Band{
	TimeTenToTwenty:    {Label: "10-20 min", Low: 10, High: 20, Unit: "min"},
	TimeTwentyToThirty: {Label: "20-30 min", Low: 20, High: 30, Unit: "min"},
	TimeThirtyToSixty:  {Label: "30-60 min", Low: 30, High: 60, Unit: "min"},
}

// Band returns the level's declared numeric range.
func (t ExtractionTime) Band() Band     { return extractionTimeBands[t] }
func (t ExtractionTime) String() string { return extractionTimeBands[t].Label }

// SaltAddition is a NaCl addition band. SaltNone is degenerate: no salt
// optimization is performed and the factor is dropped from the design.
type SaltAddition int

const (
	SaltNone SaltAddition = iota
	SaltZeroToTen
	SaltTwentyToThirty
)

var saltAdditionBands = [...]Band{
	SaltNone:           {Label: "0%", Unit: "%", Degenerate: true},
	SaltZeroToTen:      {Label: "0-10%", Low: 0, High: 10, Unit: "%"},
	SaltTwentyToThirty: {Label: "20-30%", Low: 20, High: 30, Unit: "%"},
}

// Band returns the level's declared numeric range.
func (s SaltAddition) Band() Band     { return saltAdditionBands[s] }
func (s SaltAddition) String() string { return saltAdditionBands[s].Label }

// AgitationRate is an agitation rate band.
type AgitationRate int

const (
	AgitationThreeHToFiveH AgitationRate = iota
	AgitationSixHToEightH
)

var agitationRateBands = [...]Band{
	AgitationThreeHToFiveH: {Label: "300-500 rpm", Low: 300, High: 500, Unit: "rpm"},
	AgitationSixHToEightH:  {Label: "600-800 rpm", Low: 600, High: 800, Unit: "rpm"},
}

// Band returns the level's declared numeric range.
func (a AgitationRate) Band() Band     { return agitationRateBands[a] }
func (a AgitationRate) String() string { return agitationRateBands[a].Label }
