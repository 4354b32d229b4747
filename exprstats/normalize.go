// Package exprstats provides the summary-statistics layer of the
// walkthrough: library-size normalization, per-sample and per-group
// summaries, gene dispersion ranking, sample-sample correlation, count
// distribution binning, and gene-set enrichment. Everything operates on
// expr.Matrix or tidy.ObservationTable values and returns fresh results
// without touching its inputs.
package exprstats

import (
	"fmt"
	"math"

	"github.com/countscape/countscape/expr"
)

// CPM rescales each sample column to counts per million, so samples that
// were sequenced to different depths become comparable. A sample with a
// zero library size (an all-zero column) is a structural error.
func CPM(m *expr.Matrix) (*expr.Matrix, error) {
	libSizes := make([]float64, m.NSamples())
	for j := 0; j < m.NSamples(); j++ {
		var sum float64
		for i := 0; i < m.NGenes(); i++ {
			sum += m.At(i, j)
		}
		if sum == 0 {
			return nil, fmt.Errorf("exprstats: sample %q has library size 0", m.Samples()[j])
		}
		libSizes[j] = sum
	}

	return m.MapColumns(func(j int, column []float64) []float64 {
		for i := range column {
			column[i] = column[i] * 1e6 / libSizes[j]
		}
		return column
	})
}

// Log2CPM returns log2(CPM + 1), the variance-stabilized scale used for
// the distribution plots and for PCA input.
func Log2CPM(m *expr.Matrix) (*expr.Matrix, error) {
	cpm, err := CPM(m)
	if err != nil {
		return nil, err
	}
	return cpm.Map(func(v float64) float64 { return math.Log2(v + 1) }), nil
}
