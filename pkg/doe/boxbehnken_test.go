package doe_test

import (
	"testing"

	"github.com/seplab/spmeplan/pkg/doe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxBehnken_RowCount(t *testing.T) {
	for k := 2; k <= 6; k++ {
		for c := 0; c <= 5; c++ {
			rows, err := doe.BoxBehnken(k, c)
			require.NoError(t, err)
			assert.Len(t, rows, 2*k*(k-1)+c, "k=%d c=%d", k, c)
		}
	}
}

func TestBoxBehnken_InsufficientFactors(t *testing.T) {
	for _, k := range []int{-1, 0, 1} {
		_, err := doe.BoxBehnken(k, 1)
		assert.ErrorIs(t, err, doe.ErrInsufficientFactors, "k=%d", k)
	}
}

func TestBoxBehnken_InvalidCenterPoints(t *testing.T) {
	_, err := doe.BoxBehnken(3, -1)
	assert.ErrorIs(t, err, doe.ErrInvalidCenterPoints)

	// Zero center rows is permitted.
	rows, err := doe.BoxBehnken(3, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 12)
}

func TestBoxBehnken_ThreeFactors(t *testing.T) {
	rows, err := doe.BoxBehnken(3, 1)
	require.NoError(t, err)

	want := [][]int{
		{-1, -1, 0}, {1, -1, 0}, {-1, 1, 0}, {1, 1, 0},
		{-1, 0, -1}, {1, 0, -1}, {-1, 0, 1}, {1, 0, 1},
		{0, -1, -1}, {0, 1, -1}, {0, -1, 1}, {0, 1, 1},
		{0, 0, 0},
	}
	assert.Equal(t, want, rows)
}

func TestBoxBehnken_Structure(t *testing.T) {
	const k = 4
	rows, err := doe.BoxBehnken(k, 3)
	require.NoError(t, err)

	centerRows := 0
	for _, row := range rows {
		require.Len(t, row, k)
		nonzero := 0
		for _, v := range row {
			assert.Contains(t, []int{-1, 0, 1}, v)
			if v != 0 {
				nonzero++
			}
		}
		// Every non-center row varies exactly one factor pair.
		if nonzero == 0 {
			centerRows++
		} else {
			assert.Equal(t, 2, nonzero)
		}
	}
	assert.Equal(t, 3, centerRows)
}

func TestSubstitute(t *testing.T) {
	coded, err := doe.BoxBehnken(2, 1)
	require.NoError(t, err)

	levels := [][]float64{
		{10, 15, 20},
		{300, 400, 500},
	}
	phys, err := doe.Substitute(coded, levels)
	require.NoError(t, err)

	want := [][]int{
		{10, 300}, {20, 300}, {10, 500}, {20, 500},
		{15, 400},
	}
	assert.Equal(t, want, phys)
}

func TestSubstitute_RoundTrip(t *testing.T) {
	// Mapping coded levels to physical values and back recovers the coded
	// matrix for every factor.
	levels := [][]float64{
		{0, 5, 10},
		{20, 25, 30},
		{30, 45, 60},
		{600, 700, 800},
	}

	coded, err := doe.BoxBehnken(len(levels), 2)
	require.NoError(t, err)

	phys, err := doe.Substitute(coded, levels)
	require.NoError(t, err)

	for r, row := range phys {
		for c, v := range row {
			inverse := -2
			for lvl, expect := range levels[c] {
				if v == int(expect) {
					inverse = lvl - 1
					break
				}
			}
			assert.Equal(t, coded[r][c], inverse, "row %d col %d", r, c)
		}
	}
}

func TestSubstitute_Mismatch(t *testing.T) {
	coded, err := doe.BoxBehnken(3, 0)
	require.NoError(t, err)

	// Wrong factor count.
	_, err = doe.Substitute(coded, [][]float64{{1, 2, 3}, {4, 5, 6}})
	assert.ErrorIs(t, err, doe.ErrLevelMismatch)

	// Wrong triple width.
	_, err = doe.Substitute(coded, [][]float64{{1, 2, 3}, {4, 5}, {7, 8, 9}})
	assert.ErrorIs(t, err, doe.ErrLevelMismatch)
}
