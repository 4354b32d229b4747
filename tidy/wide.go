// Package tidy reshapes expression matrices between wide (one row per
// gene, one column per sample) and long (one row per gene-sample
// observation) layouts, and joins long tables against sample metadata to
// produce the denormalized observation table that plotting and grouped
// statistics consume. All transformations are pure: inputs are never
// mutated, and every call either returns a well-formed table or fails
// fast on a structural precondition.
package tidy

import (
	"fmt"

	"github.com/countscape/countscape/expr"
)

// WideRow is one gene's row in a wide table: the gene identifier plus one
// count per sample column.
type WideRow struct {
	Gene   string
	Counts []float64
}

// Wide is a tidy wide table: the former matrix row identifiers
// materialized as an explicit gene column, one numeric column per sample.
type Wide struct {
	Samples []string
	Rows    []WideRow
}

// FromMatrix converts an expression matrix into a wide table. Row order is
// preserved, the gene identifiers become the leading column, and the
// numeric values are carried over unchanged.
func FromMatrix(m *expr.Matrix) (*Wide, error) {
	if m == nil || m.NGenes() == 0 {
		return nil, expr.ErrNoGenes
	}

	genes := m.Genes()
	rows := make([]WideRow, len(genes))
	for i, g := range genes {
		rows[i] = WideRow{Gene: g, Counts: m.Row(i)}
	}

	return &Wide{Samples: m.Samples(), Rows: rows}, nil
}

// Melt reshapes the wide table into long form, one row per (gene, sample)
// pair, iterating genes in row order and samples in column order.
func (w *Wide) Melt() (Long, error) {
	return w.MeltSamples(w.Samples)
}

// MeltSamples melts only the named sample columns; columns not named are
// dropped from the output. An empty selection yields an empty long table.
// Naming a column the wide table does not have is a structural error.
func (w *Wide) MeltSamples(samples []string) (Long, error) {
	cols := make([]int, len(samples))
	chosen := make(map[string]bool, len(samples))
	for k, s := range samples {
		if chosen[s] {
			return nil, fmt.Errorf("tidy: sample column %q selected twice", s)
		}
		chosen[s] = true

		j, err := w.sampleColumn(s)
		if err != nil {
			return nil, err
		}
		cols[k] = j
	}

	out := make(Long, 0, len(w.Rows)*len(cols))
	for _, row := range w.Rows {
		for k, j := range cols {
			out = append(out, LongRow{
				Gene:   row.Gene,
				Sample: samples[k],
				Count:  row.Counts[j],
			})
		}
	}

	return out, nil
}

func (w *Wide) sampleColumn(sample string) (int, error) {
	for j, s := range w.Samples {
		if s == sample {
			return j, nil
		}
	}
	return 0, fmt.Errorf("tidy: wide table has no sample column %q", sample)
}
