package doe

import (
	"errors"
	"fmt"
	"math"
)

// ErrInsufficientFactors is returned for designs with fewer than two factors;
// there is no Box-Behnken construction below k=2.
var ErrInsufficientFactors = errors.New("box-behnken design requires at least two factors")

// ErrInvalidCenterPoints is returned for a negative center point count.
var ErrInvalidCenterPoints = errors.New("center point count must be non-negative")

// ErrLevelMismatch is returned when the substitution levels do not line up
// with the coded matrix columns.
var ErrLevelMismatch = errors.New("factor levels do not match design columns")

// BoxBehnken returns the coded design matrix for the given factor count with
// centerPoints trailing all-zero rows. Every value is -1, 0 or +1 and the
// row count is exactly 2*k*(k-1)+centerPoints.
func BoxBehnken(factors, centerPoints int) ([][]int, error) {
	if factors < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientFactors, factors)
	}
	if centerPoints < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCenterPoints, centerPoints)
	}

	rows := make([][]int, 0, 2*factors*(factors-1)+centerPoints)
	for i := 0; i < factors-1; i++ {
		for j := i + 1; j < factors; j++ {
			for _, hi := range [2]int{-1, 1} {
				for _, lo := range [2]int{-1, 1} {
					row := make([]int, factors)
					row[i] = lo
					row[j] = hi
					rows = append(rows, row)
				}
			}
		}
	}
	for c := 0; c < centerPoints; c++ {
		rows = append(rows, make([]int, factors))
	}

	return rows, nil
}

// Substitute replaces each coded value with the factor's own quantized
// physical value: -1, 0, +1 select the low, mid and high entries of the
// factor's triple. Results are rounded to whole units, the conventional
// reporting resolution for minutes, °C, rpm and percent.
func Substitute(coded [][]int, levels [][]float64) ([][]int, error) {
	for _, triple := range levels {
		if len(triple) != 3 {
			return nil, fmt.Errorf("%w: want 3 levels per factor, got %d", ErrLevelMismatch, len(triple))
		}
	}

	out := make([][]int, len(coded))
	for r, row := range coded {
		if len(row) != len(levels) {
			return nil, fmt.Errorf("%w: row has %d columns, want %d", ErrLevelMismatch, len(row), len(levels))
		}
		out[r] = make([]int, len(row))
		for c, v := range row {
			out[r][c] = int(math.Round(levels[c][v+1]))
		}
	}
	return out, nil
}
