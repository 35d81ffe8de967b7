package conditions

import (
	"errors"

	"github.com/seplab/spmeplan/pkg/domain"
)

// ErrEmptyCompoundSet is returned when Recommend is invoked with zero
// compounds; no rule has a well-defined maximum over an empty set.
var ErrEmptyCompoundSet = errors.New("empty compound set")

// Options carries the caller-supplied flags the rules cannot derive from
// compound properties.
type Options struct {
	// Ionic indicates at least one compound is charged or ionic. Forces the
	// degenerate 0% salt level: no salt optimization for ionic species.
	Ionic bool `json:"is_ionic" yaml:"is_ionic" mapstructure:"is_ionic"`

	// HighViscosity indicates a viscous or semi-solid sample matrix, which
	// caps the agitation rate to keep the boundary layer stable.
	HighViscosity bool `json:"has_high_viscosity" yaml:"has_high_viscosity" mapstructure:"has_high_viscosity"`
}

// Conditions is the fully populated outcome of the decision rules: one
// categorical level per experimental factor plus the selected fiber coating.
type Conditions struct {
	Fiber       domain.Fiber          `json:"fiber"`
	Temperature domain.ExtractionTemp `json:"extraction_temp"`
	Time        domain.ExtractionTime `json:"extraction_time"`
	Salt        domain.SaltAddition   `json:"salt_addition"`
	Agitation   domain.AgitationRate  `json:"agitation_rate"`
}

// Recommend runs every decision rule over the compound set and returns the
// selected levels. It fails with ErrEmptyCompoundSet before any rule executes.
func Recommend(compounds []domain.Compound, opts Options) (Conditions, error) {
	if len(compounds) == 0 {
		return Conditions{}, ErrEmptyCompoundSet
	}

	return Conditions{
		Fiber:       selectFiber(compounds),
		Temperature: extractionTemperature(compounds),
		Time:        extractionTime(compounds),
		Salt:        saltAddition(compounds, opts.Ionic),
		Agitation:   agitationRate(opts.HighViscosity),
	}, nil
}

// selectFiber classifies the compound set by polarity. Unlike the other
// rules it quantifies over every compound, not just the maximum: a set that
// straddles the xlogp bands (some members hydrophobic, some polar) satisfies
// none of the branches and falls through to the broad-selectivity
// DVB/CAR/PDMS composite. That fallback is intentional and load-bearing.
func selectFiber(compounds []domain.Compound) domain.Fiber {
	allAbove := func(threshold float64) bool {
		for _, c := range compounds {
			if c.XLogP <= threshold {
				return false
			}
		}
		return true
	}
	allAtOrBelow := func(threshold float64) bool {
		for _, c := range compounds {
			if c.XLogP > threshold {
				return false
			}
		}
		return true
	}

	switch {
	case allAbove(3.0):
		return domain.FiberPDMS
	case allAtOrBelow(3.0) && allAbove(1.5):
		return domain.FiberPDMSDVB
	case allAtOrBelow(1.5):
		for _, c := range compounds {
			if c.MolecularWeight > 200 {
				return domain.FiberCWDVBPA
			}
		}
		return domain.FiberCAPPDMSPEGCW
	}
	return domain.FiberDVBCARPDMS
}

// extractionTemperature maps the highest boiling point in the set to a
// temperature band. Breakpoints at 100 and 200 °C, both inclusive in the
// middle band.
func extractionTemperature(compounds []domain.Compound) domain.ExtractionTemp {
	max := maxOf(compounds, func(c domain.Compound) float64 { return c.BoilingPointC })
	switch {
	case max < 100:
		return domain.TempThirtyToForty
	case max <= 200:
		return domain.TempFortyToSixty
	}
	return domain.TempSixtyToEighty
}

// extractionTime maps the highest molecular weight in the set to a time
// band; heavier molecules diffuse slower and need longer equilibration.
func extractionTime(compounds []domain.Compound) domain.ExtractionTime {
	max := maxOf(compounds, func(c domain.Compound) float64 { return c.MolecularWeight })
	switch {
	case max < 100:
		return domain.TimeTenToTwenty
	case max <= 300:
		return domain.TimeTwentyToThirty
	}
	return domain.TimeThirtyToSixty
}

// saltAddition applies the salting-out rule. Ionic species get the fixed 0%
// level; otherwise salting out pays off only below xlogp 2.
func saltAddition(compounds []domain.Compound, ionic bool) domain.SaltAddition {
	if ionic {
		return domain.SaltNone
	}
	if maxOf(compounds, func(c domain.Compound) float64 { return c.XLogP }) < 2.0 {
		return domain.SaltTwentyToThirty
	}
	return domain.SaltZeroToTen
}

func agitationRate(highViscosity bool) domain.AgitationRate {
	if highViscosity {
		return domain.AgitationThreeHToFiveH
	}
	return domain.AgitationSixHToEightH
}

func maxOf(compounds []domain.Compound, f func(domain.Compound) float64) float64 {
	max := f(compounds[0])
	for _, c := range compounds[1:] {
		if v := f(c); v > max {
			max = v
		}
	}
	return max
}

// Bands returns the active (non-degenerate) factor bands in canonical design
// order: salt addition when applicable, then extraction time, extraction
// temperature, agitation rate.
func (c Conditions) Bands() []domain.Band {
	bands := make([]domain.Band, 0, 4)
	if salt := c.Salt.Band(); !salt.Degenerate {
		bands = append(bands, salt)
	}
	return append(bands, c.Time.Band(), c.Temperature.Band(), c.Agitation.Band())
}

// Header returns the design table column labels matching Bands.
func (c Conditions) Header() []string {
	header := make([]string, 0, 4)
	if !c.Salt.Band().Degenerate {
		header = append(header, "Salt Addition (%)")
	}
	return append(header,
		"Extraction Time (minutes)",
		"Extraction Temp (celsius)",
		"Agitation Rate (rpm)",
	)
}

// Desorption returns the desorption profile for the selected fiber.
func (c Conditions) Desorption() string {
	return domain.DesorptionProfile(c.Fiber)
}
