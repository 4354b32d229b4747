// Package expr defines the in-memory data model for RNA-seq count data: a
// gene-by-sample expression matrix and the per-sample metadata table that
// accompanies it. Both types are validated at construction and immutable
// afterwards, so structural problems (missing or duplicated identifiers,
// ragged rows) surface as errors up front rather than as silent mismatches
// during later reshaping.
package expr

import (
	"errors"
	"fmt"
)

var (
	// ErrNoGenes is returned when a matrix is constructed without gene
	// identifiers to carry over into downstream tables.
	ErrNoGenes = errors.New("expr: matrix has no gene identifiers")

	// ErrNoSamples is returned when a matrix is constructed without sample
	// identifiers naming its columns.
	ErrNoSamples = errors.New("expr: matrix has no sample identifiers")
)

// Matrix is a gene-by-sample table of read counts (raw or normalized).
// Rows are identified by gene ID, columns by sample ID; both identifier
// sets are unique. A Matrix is immutable once constructed.
type Matrix struct {
	genes   []string
	samples []string
	values  [][]float64

	geneIndex   map[string]int
	sampleIndex map[string]int
}

// NewMatrix builds a Matrix from gene identifiers, sample identifiers, and
// one row of values per gene. It fails fast on empty or duplicated
// identifiers and on rows whose length does not match the sample count.
func NewMatrix(genes, samples []string, values [][]float64) (*Matrix, error) {
	if len(genes) == 0 {
		return nil, ErrNoGenes
	}
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	if len(values) != len(genes) {
		return nil, fmt.Errorf("expr: %d value rows for %d genes", len(values), len(genes))
	}

	geneIndex := make(map[string]int, len(genes))
	for i, g := range genes {
		if g == "" {
			return nil, fmt.Errorf("expr: empty gene identifier at row %d: %w", i, ErrNoGenes)
		}
		if prev, exists := geneIndex[g]; exists {
			return nil, fmt.Errorf("expr: duplicate gene identifier %q at rows %d and %d", g, prev, i)
		}
		geneIndex[g] = i
	}

	sampleIndex := make(map[string]int, len(samples))
	for j, s := range samples {
		if s == "" {
			return nil, fmt.Errorf("expr: empty sample identifier at column %d: %w", j, ErrNoSamples)
		}
		if prev, exists := sampleIndex[s]; exists {
			return nil, fmt.Errorf("expr: duplicate sample identifier %q at columns %d and %d", s, prev, j)
		}
		sampleIndex[s] = j
	}

	rows := make([][]float64, len(values))
	for i, row := range values {
		if len(row) != len(samples) {
			return nil, fmt.Errorf("expr: gene %q has %d values for %d samples", genes[i], len(row), len(samples))
		}
		rows[i] = append([]float64(nil), row...)
	}

	return &Matrix{
		genes:       append([]string(nil), genes...),
		samples:     append([]string(nil), samples...),
		values:      rows,
		geneIndex:   geneIndex,
		sampleIndex: sampleIndex,
	}, nil
}

// NGenes reports the number of gene rows.
func (m *Matrix) NGenes() int { return len(m.genes) }

// NSamples reports the number of sample columns.
func (m *Matrix) NSamples() int { return len(m.samples) }

// Genes returns the gene identifiers in row order.
func (m *Matrix) Genes() []string { return append([]string(nil), m.genes...) }

// Samples returns the sample identifiers in column order.
func (m *Matrix) Samples() []string { return append([]string(nil), m.samples...) }

// At returns the value at gene row i, sample column j.
func (m *Matrix) At(i, j int) float64 { return m.values[i][j] }

// Row returns a copy of gene row i.
func (m *Matrix) Row(i int) []float64 { return append([]float64(nil), m.values[i]...) }

// Column returns a copy of sample column j.
func (m *Matrix) Column(j int) []float64 {
	out := make([]float64, len(m.values))
	for i := range m.values {
		out[i] = m.values[i][j]
	}
	return out
}

// GeneRow returns a copy of the named gene's row.
func (m *Matrix) GeneRow(gene string) ([]float64, error) {
	i, exists := m.geneIndex[gene]
	if !exists {
		return nil, fmt.Errorf("expr: unknown gene %q", gene)
	}
	return m.Row(i), nil
}

// SampleColumn returns a copy of the named sample's column.
func (m *Matrix) SampleColumn(sample string) ([]float64, error) {
	j, exists := m.sampleIndex[sample]
	if !exists {
		return nil, fmt.Errorf("expr: unknown sample %q", sample)
	}
	return m.Column(j), nil
}

// Map returns a new Matrix with the same identifiers and f applied to every
// value. Used by the normalization helpers; the receiver is not modified.
func (m *Matrix) Map(f func(float64) float64) *Matrix {
	rows := make([][]float64, len(m.values))
	for i, row := range m.values {
		out := make([]float64, len(row))
		for j, v := range row {
			out[j] = f(v)
		}
		rows[i] = out
	}

	return &Matrix{
		genes:       m.genes,
		samples:     m.samples,
		values:      rows,
		geneIndex:   m.geneIndex,
		sampleIndex: m.sampleIndex,
	}
}

// MapColumns returns a new Matrix whose column j holds f(j, column j).
// f must return a slice of the same length it was given.
func (m *Matrix) MapColumns(f func(j int, column []float64) []float64) (*Matrix, error) {
	rows := make([][]float64, len(m.values))
	for i := range rows {
		rows[i] = make([]float64, len(m.samples))
	}

	for j := range m.samples {
		col := f(j, m.Column(j))
		if len(col) != len(m.genes) {
			return nil, fmt.Errorf("expr: column transform returned %d values for %d genes", len(col), len(m.genes))
		}
		for i := range col {
			rows[i][j] = col[i]
		}
	}

	return &Matrix{
		genes:       m.genes,
		samples:     m.samples,
		values:      rows,
		geneIndex:   m.geneIndex,
		sampleIndex: m.sampleIndex,
	}, nil
}
