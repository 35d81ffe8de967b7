package domain_test

import (
	"math"
	"testing"

	"github.com/seplab/spmeplan/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompound(t *testing.T) {
	c, err := domain.NewCompound("ethanol", 78.37, -0.31, 46.07)
	require.NoError(t, err)
	assert.Equal(t, "ethanol", c.Name)
	assert.Equal(t, 78.37, c.BoilingPointC)
	assert.Equal(t, -0.31, c.XLogP)
	assert.Equal(t, 46.07, c.MolecularWeight)
}

func TestNewCompound_Rejection(t *testing.T) {
	cases := []struct {
		name     string
		compound string
		bp, logp float64
		mw       float64
	}{
		{"empty name", "", 78, 1, 46},
		{"blank name", "   ", 78, 1, 46},
		{"NaN boiling point", "x", math.NaN(), 1, 46},
		{"infinite xlogp", "x", 78, math.Inf(1), 46},
		{"NaN molecular weight", "x", 78, 1, math.NaN()},
		{"zero molecular weight", "x", 78, 1, 0},
		{"negative molecular weight", "x", 78, 1, -46},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := domain.NewCompound(tc.compound, tc.bp, tc.logp, tc.mw)
			assert.ErrorIs(t, err, domain.ErrInvalidCompound)
		})
	}
}

func TestCompound_Validate(t *testing.T) {
	// Decoded records bypass the constructor; Validate applies the same rules.
	ok := domain.Compound{Name: "phenol", BoilingPointC: 181.7, XLogP: 1.46, MolecularWeight: 94.11}
	assert.NoError(t, ok.Validate())

	bad := domain.Compound{Name: "phenol", BoilingPointC: 181.7, XLogP: 1.46}
	assert.ErrorIs(t, bad.Validate(), domain.ErrInvalidCompound)
}

func TestCompound_String(t *testing.T) {
	c, err := domain.NewCompound("ethanol", 78.37, -0.31, 46)
	require.NoError(t, err)
	assert.Equal(t, "ethanol | BP: 78.37°C | xLogP: -0.31 | MW: 46", c.String())
}

func TestKelvinToCelsius(t *testing.T) {
	assert.Equal(t, 78.29, domain.KelvinToCelsius(351.44))
	assert.Equal(t, 0.0, domain.KelvinToCelsius(273.15))
	assert.Equal(t, -273.15, domain.KelvinToCelsius(0))
}
