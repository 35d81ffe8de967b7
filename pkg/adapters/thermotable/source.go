// Package thermotable supplies normal boiling points from a static reference
// table. It implements ports.BoilingPointSource for deployments without a
// thermophysical property service; callers can extend or override the table.
package thermotable

import (
	"fmt"
	"strings"

	"github.com/seplab/spmeplan/pkg/domain"
)

// boilingPointsC holds normal boiling points in °C for common analytes and
// solvents, keyed by lowercase IUPAC name. Values from standard reference
// data (CRC Handbook).
var boilingPointsC = map[string]float64{
	"methanol":            64.7,
	"ethanol":             78.37,
	"propan-2-ol":         82.6,
	"butan-1-ol":          117.7,
	"acetone":             56.05,
	"propan-2-one":        56.05,
	"benzene":             80.1,
	"toluene":             110.6,
	"ethylbenzene":        136.2,
	"styrene":             145.2,
	"phenol":              181.7,
	"naphthalene":         218,
	"hexane":              68.7,
	"heptane":             98.4,
	"octane":              125.6,
	"chloroform":          61.2,
	"trichloromethane":    61.2,
	"dichloromethane":     39.6,
	"1,2-dichloroethane":  83.5,
	"tetrachloromethane":  76.7,
	"ethyl acetate":       77.1,
	"ethyl ethanoate":     77.1,
	"diethyl ether":       34.6,
	"ethoxyethane":        34.6,
	"acetic acid":         117.9,
	"formaldehyde":        -19.1,
	"oxidane":             100,
	"water":               100,
	"pyridine":            115.2,
	"aniline":             184.1,
	"nitrobenzene":        210.9,
	"chlorobenzene":       131.7,
	"anisole":             153.7,
	"benzaldehyde":        178.7,
	"limonene":            176,
	"alpha-pinene":        156,
	"linalool":            198,
	"2-phenylethanol":     218.2,
	"benzyl alcohol":      205.3,
	"phenylmethanol":      205.3,
	"hexanal":             131,
	"octanal":             171,
	"nonanal":             191,
	"decanal":             208.5,
	"ethyl butanoate":     121,
	"ethyl hexanoate":     167,
	"2,4,6-trichlorophenol": 246,
	"pentachlorophenol":   309.5,
}

// Source resolves boiling points from the built-in table plus any overrides.
type Source struct {
	overrides map[string]float64
}

// Option configures the Source.
type Option func(*Source)

// WithOverrides adds or replaces table entries. Keys are matched
// case-insensitively.
func WithOverrides(values map[string]float64) Option {
	return func(s *Source) {
		for name, bp := range values {
			s.overrides[strings.ToLower(name)] = bp
		}
	}
}

// New creates a boiling point source.
func New(opts ...Option) *Source {
	s := &Source{overrides: make(map[string]float64)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BoilingPointC returns the normal boiling point for a compound name, or
// domain.ErrBoilingPointNotFound when the table has no entry.
func (s *Source) BoilingPointC(name string) (float64, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if bp, ok := s.overrides[key]; ok {
		return bp, nil
	}
	if bp, ok := boilingPointsC[key]; ok {
		return bp, nil
	}
	return 0, fmt.Errorf("%w: %q", domain.ErrBoilingPointNotFound, name)
}
