package conditions_test

import (
	"testing"

	"github.com/seplab/spmeplan/pkg/conditions"
	"github.com/seplab/spmeplan/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compound(t *testing.T, name string, bp, xlogp, mw float64) domain.Compound {
	t.Helper()
	c, err := domain.NewCompound(name, bp, xlogp, mw)
	require.NoError(t, err)
	return c
}

func TestRecommend_EmptySet(t *testing.T) {
	_, err := conditions.Recommend(nil, conditions.Options{})
	assert.ErrorIs(t, err, conditions.ErrEmptyCompoundSet)

	_, err = conditions.Recommend([]domain.Compound{}, conditions.Options{})
	assert.ErrorIs(t, err, conditions.ErrEmptyCompoundSet)
}

func TestRecommend_Scenario(t *testing.T) {
	// Single hydrophobic mid-weight semivolatile.
	set := []domain.Compound{compound(t, "analyte", 120, 3.5, 150)}

	got, err := conditions.Recommend(set, conditions.Options{})
	require.NoError(t, err)

	assert.Equal(t, domain.FiberPDMS, got.Fiber)
	assert.Equal(t, domain.TempFortyToSixty, got.Temperature)
	assert.Equal(t, domain.TimeTwentyToThirty, got.Time)
	assert.Equal(t, domain.SaltZeroToTen, got.Salt)
	assert.Equal(t, domain.AgitationSixHToEightH, got.Agitation)
}

func TestSelectFiber(t *testing.T) {
	cases := []struct {
		name string
		set  []domain.Compound
		want domain.Fiber
	}{
		{
			"all hydrophobic",
			[]domain.Compound{compound(t, "a", 150, 3.5, 150), compound(t, "b", 150, 4.2, 180)},
			domain.FiberPDMS,
		},
		{
			"boundary xlogp 3.0 is not above",
			[]domain.Compound{compound(t, "a", 150, 3.0, 150)},
			domain.FiberPDMSDVB,
		},
		{
			"all mid polarity",
			[]domain.Compound{compound(t, "a", 150, 2.0, 150), compound(t, "b", 150, 2.9, 150)},
			domain.FiberPDMSDVB,
		},
		{
			"polar light compounds",
			[]domain.Compound{compound(t, "a", 80, 0.5, 46), compound(t, "b", 80, 1.5, 120)},
			domain.FiberCAPPDMSPEGCW,
		},
		{
			"polar with one heavy compound",
			[]domain.Compound{compound(t, "a", 80, 0.5, 46), compound(t, "b", 200, 1.2, 250)},
			domain.FiberCWDVBPA,
		},
		{
			"mixed polarity falls through to composite",
			[]domain.Compound{compound(t, "a", 150, 4.0, 150), compound(t, "b", 80, 0.5, 46)},
			domain.FiberDVBCARPDMS,
		},
		{
			"straddling 1.5 and 3.0 falls through",
			[]domain.Compound{compound(t, "a", 150, 1.0, 150), compound(t, "b", 150, 2.5, 150)},
			domain.FiberDVBCARPDMS,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := conditions.Recommend(tc.set, conditions.Options{})
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Fiber)
		})
	}
}

func TestSelectFiber_PolarityMonotonic(t *testing.T) {
	// Uniformly higher xlogp must never select a more polar fiber.
	polarity := map[domain.Fiber]int{
		domain.FiberPDMS:         0,
		domain.FiberPDMSDVB:      1,
		domain.FiberDVBCARPDMS:   2,
		domain.FiberCWDVBPA:      3,
		domain.FiberCAPPDMSPEGCW: 4,
	}

	xlogps := []float64{-1, 0.5, 1.5, 1.6, 2.5, 3.0, 3.1, 4, 6}
	prev := polarity[domain.FiberCAPPDMSPEGCW]
	for _, x := range xlogps {
		got, err := conditions.Recommend(
			[]domain.Compound{compound(t, "c", 150, x, 150)}, conditions.Options{})
		require.NoError(t, err)
		rank := polarity[got.Fiber]
		assert.LessOrEqual(t, rank, prev, "xlogp=%v selected %s", x, got.Fiber)
		prev = rank
	}
}

func TestExtractionTemperature(t *testing.T) {
	cases := []struct {
		bp   float64
		want domain.ExtractionTemp
	}{
		{99.9, domain.TempThirtyToForty},
		{100, domain.TempFortyToSixty},
		{150, domain.TempFortyToSixty},
		{200, domain.TempFortyToSixty},
		{200.1, domain.TempSixtyToEighty},
		{350, domain.TempSixtyToEighty},
	}

	for _, tc := range cases {
		got, err := conditions.Recommend(
			[]domain.Compound{compound(t, "c", tc.bp, 2, 150)}, conditions.Options{})
		require.NoError(t, err)
		assert.Equal(t, tc.want, got.Temperature, "bp=%v", tc.bp)
	}
}

func TestExtractionTemperature_MaxGoverns(t *testing.T) {
	set := []domain.Compound{
		compound(t, "volatile", 60, 2, 80),
		compound(t, "heavy", 250, 2, 80),
	}
	got, err := conditions.Recommend(set, conditions.Options{})
	require.NoError(t, err)
	assert.Equal(t, domain.TempSixtyToEighty, got.Temperature)
}

func TestExtractionTime(t *testing.T) {
	cases := []struct {
		mw   float64
		want domain.ExtractionTime
	}{
		{78, domain.TimeTenToTwenty},
		{99.9, domain.TimeTenToTwenty},
		{100, domain.TimeTwentyToThirty},
		{300, domain.TimeTwentyToThirty},
		{300.1, domain.TimeThirtyToSixty},
		{600, domain.TimeThirtyToSixty},
	}

	for _, tc := range cases {
		got, err := conditions.Recommend(
			[]domain.Compound{compound(t, "c", 150, 2, tc.mw)}, conditions.Options{})
		require.NoError(t, err)
		assert.Equal(t, tc.want, got.Time, "mw=%v", tc.mw)
	}
}

func TestSaltAddition(t *testing.T) {
	polar := []domain.Compound{compound(t, "c", 150, 1.2, 150)}
	nonpolar := []domain.Compound{compound(t, "c", 150, 3.5, 150)}

	got, err := conditions.Recommend(polar, conditions.Options{})
	require.NoError(t, err)
	assert.Equal(t, domain.SaltTwentyToThirty, got.Salt)

	got, err = conditions.Recommend(nonpolar, conditions.Options{})
	require.NoError(t, err)
	assert.Equal(t, domain.SaltZeroToTen, got.Salt)

	// Ionic flag wins regardless of xlogp.
	got, err = conditions.Recommend(polar, conditions.Options{Ionic: true})
	require.NoError(t, err)
	assert.Equal(t, domain.SaltNone, got.Salt)

	got, err = conditions.Recommend(nonpolar, conditions.Options{Ionic: true})
	require.NoError(t, err)
	assert.Equal(t, domain.SaltNone, got.Salt)
}

func TestAgitationRate(t *testing.T) {
	set := []domain.Compound{compound(t, "c", 150, 2, 150)}

	got, err := conditions.Recommend(set, conditions.Options{HighViscosity: true})
	require.NoError(t, err)
	assert.Equal(t, domain.AgitationThreeHToFiveH, got.Agitation)

	got, err = conditions.Recommend(set, conditions.Options{})
	require.NoError(t, err)
	assert.Equal(t, domain.AgitationSixHToEightH, got.Agitation)
}

func TestConditions_BandsAndHeader(t *testing.T) {
	set := []domain.Compound{compound(t, "c", 150, 3.5, 150)}

	got, err := conditions.Recommend(set, conditions.Options{})
	require.NoError(t, err)

	bands := got.Bands()
	require.Len(t, bands, 4)
	assert.Equal(t, "0-10%", bands[0].Label)
	assert.Equal(t, "20-30 min", bands[1].Label)
	assert.Equal(t, "40-60 °C", bands[2].Label)
	assert.Equal(t, "600-800 rpm", bands[3].Label)

	assert.Equal(t, []string{
		"Salt Addition (%)",
		"Extraction Time (minutes)",
		"Extraction Temp (celsius)",
		"Agitation Rate (rpm)",
	}, got.Header())

	// Ionic drops the salt factor from both bands and header.
	got, err = conditions.Recommend(set, conditions.Options{Ionic: true})
	require.NoError(t, err)
	assert.Len(t, got.Bands(), 3)
	assert.Equal(t, []string{
		"Extraction Time (minutes)",
		"Extraction Temp (celsius)",
		"Agitation Rate (rpm)",
	}, got.Header())
}

func TestConditions_Desorption(t *testing.T) {
	set := []domain.Compound{compound(t, "c", 150, 3.5, 150)}
	got, err := conditions.Recommend(set, conditions.Options{})
	require.NoError(t, err)
	assert.Equal(t, "3-5 min @ 250-280°C", got.Desorption())
}
