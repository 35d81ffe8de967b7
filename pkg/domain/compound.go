package domain

import (
	"fmt"
	"math"
	"strings"
)

// Compound holds the physicochemical properties of one analyte, as relevant
// to SPME planning. Records are validated at construction and immutable
// afterwards; the decision rules in pkg/conditions assume every field is a
// finite number.
type Compound struct {
	// Name is the compound identifier, typically the IUPAC name.
	Name string `json:"name" yaml:"name"`

	// BoilingPointC is the normal boiling point in degrees Celsius.
	BoilingPointC float64 `json:"boiling_point_c" yaml:"boiling_point_c"`

	// XLogP is the computed octanol-water partition coefficient. May be negative.
	XLogP float64 `json:"xlogp" yaml:"xlogp"`

	// MolecularWeight is the molecular weight in g/mol. Always positive.
	MolecularWeight float64 `json:"molecular_weight" yaml:"molecular_weight"`
}

// NewCompound builds a validated Compound. It returns ErrInvalidCompound for
// an empty name, a non-finite property value, or a non-positive molecular
// weight. Rejection happens here, not later: a record that constructs is safe
// for every decision rule.
func NewCompound(name string, boilingPointC, xlogp, molecularWeight float64) (Compound, error) {
	if strings.TrimSpace(name) == "" {
		return Compound{}, fmt.Errorf("%w: empty name", ErrInvalidCompound)
	}
	for _, v := range []float64{boilingPointC, xlogp, molecularWeight} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Compound{}, fmt.Errorf("%w: %s: non-finite property value", ErrInvalidCompound, name)
		}
	}
	if molecularWeight <= 0 {
		return Compound{}, fmt.Errorf("%w: %s: molecular weight must be positive", ErrInvalidCompound, name)
	}

	return Compound{
		Name:            name,
		BoilingPointC:   boilingPointC,
		XLogP:           xlogp,
		MolecularWeight: molecularWeight,
	}, nil
}

// Validate re-checks the construction invariants. Useful for records decoded
// from YAML or JSON, which bypass NewCompound.
func (c Compound) Validate() error {
	_, err := NewCompound(c.Name, c.BoilingPointC, c.XLogP, c.MolecularWeight)
	return err
}

func (c Compound) String() string {
	return fmt.Sprintf("%s | BP: %g°C | xLogP: %g | MW: %g",
		c.Name, c.BoilingPointC, c.XLogP, c.MolecularWeight)
}

// KelvinToCelsius converts a temperature from Kelvin to Celsius, rounded to
// two decimals. Boiling point sources typically report Kelvin.
func KelvinToCelsius(kelvin float64) float64 {
	return math.Round((kelvin-273.15)*100) / 100
}
