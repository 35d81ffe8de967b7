package doe

import (
	"fmt"
	"strings"

	"github.com/seplab/spmeplan/pkg/domain"
)

// Table is a concrete experimental plan: one numbered row per run, one
// physical value per factor in canonical column order. The first column is
// the 1-based experiment number.
type Table struct {
	Header []string `json:"header"`
	Rows   [][]int  `json:"rows"`
}

// Build quantizes the given factor bands, generates the coded Box-Behnken
// matrix sized to the active factor count, substitutes the physical values
// and prefixes experiment numbers. Degenerate bands must already be filtered
// out by the caller; header labels the factor columns and must match bands.
func Build(bands []domain.Band, header []string, centerPoints int) (Table, error) {
	if len(header) != len(bands) {
		return Table{}, fmt.Errorf("%w: %d header labels for %d factors", ErrLevelMismatch, len(header), len(bands))
	}

	levels := make([][]float64, len(bands))
	for i, band := range bands {
		vals, err := domain.Quantize(band, domain.DefaultSplit)
		if err != nil {
			return Table{}, fmt.Errorf("quantize %q: %w", band.Label, err)
		}
		if vals == nil {
			return Table{}, fmt.Errorf("%w: degenerate band %q is not a design factor", ErrLevelMismatch, band.Label)
		}
		levels[i] = vals
	}

	coded, err := BoxBehnken(len(levels), centerPoints)
	if err != nil {
		return Table{}, err
	}

	phys, err := Substitute(coded, levels)
	if err != nil {
		return Table{}, err
	}

	rows := make([][]int, len(phys))
	for i, row := range phys {
		rows[i] = append([]int{i + 1}, row...)
	}

	return Table{
		Header: append([]string{"Experiment Number"}, header...),
		Rows:   rows,
	}, nil
}

// Markdown renders the table as a GitHub-style markdown table, one row per
// experiment. Used by the CLI for terminal rendering.
func (t Table) Markdown() string {
	var b strings.Builder

	b.WriteString("| " + strings.Join(t.Header, " | ") + " |\n")
	b.WriteString(strings.Repeat("|---", len(t.Header)) + "|\n")
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprintf("%d", v)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	return b.String()
}
