package exprstats

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/countscape/countscape/expr"
)

// Correlation holds the sample-by-sample Pearson correlation matrix, with
// R[i][j] the correlation between samples i and j in Samples order.
type Correlation struct {
	Samples []string
	R       [][]float64
}

// SampleCorrelation computes pairwise Pearson correlation between sample
// columns, treating genes as observations. Requires at least two genes.
func SampleCorrelation(m *expr.Matrix) (*Correlation, error) {
	if m.NGenes() < 2 {
		return nil, fmt.Errorf("exprstats: need at least 2 genes to correlate samples, have %d", m.NGenes())
	}

	data := mat.NewDense(m.NGenes(), m.NSamples(), nil)
	for i := 0; i < m.NGenes(); i++ {
		for j := 0; j < m.NSamples(); j++ {
			data.Set(i, j, m.At(i, j))
		}
	}

	corr := mat.NewSymDense(m.NSamples(), nil)
	stat.CorrelationMatrix(corr, data, nil)

	out := &Correlation{
		Samples: m.Samples(),
		R:       make([][]float64, m.NSamples()),
	}
	for i := range out.R {
		out.R[i] = make([]float64, m.NSamples())
		for j := range out.R[i] {
			out.R[i][j] = corr.At(i, j)
		}
	}

	return out, nil
}
