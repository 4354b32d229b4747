// Package pca projects samples onto their principal components, the
// standard way to see whether samples cluster by condition. Genes are the
// variables and samples the observations, so the projection places each
// sample as one point. The decomposition itself is delegated to gonum.
package pca

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/countscape/countscape/expr"
)

// Result holds the first k principal components of a dataset.
type Result struct {
	// Samples in matrix column order.
	Samples []string

	// Projections[i][c] is sample i's coordinate on component c.
	Projections [][]float64

	// VarExplained[c] is the proportion of total variance captured by
	// component c.
	VarExplained []float64
}

// Run computes the first k principal components of the matrix, treating
// each sample column as one observation over all genes. Counts should
// already be on a stabilized scale (see exprstats.Log2CPM). k must be
// between 1 and min(samples, genes), and at least two samples are needed
// for any variance to exist.
func Run(m *expr.Matrix, k int) (*Result, error) {
	n, d := m.NSamples(), m.NGenes()
	if n < 2 {
		return nil, fmt.Errorf("pca: need at least 2 samples, have %d", n)
	}

	maxK := n
	if d < maxK {
		maxK = d
	}
	if k < 1 || k > maxK {
		return nil, fmt.Errorf("pca: k must be in [1, %d], got %d", maxK, k)
	}

	// Samples as rows, genes as columns
	data := mat.NewDense(n, d, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			data.Set(i, j, m.At(j, i))
		}
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(data, nil); !ok {
		return nil, fmt.Errorf("pca: decomposition failed")
	}

	var vectors mat.Dense
	pc.VectorsTo(&vectors)
	vars := pc.VarsTo(nil)

	// Center each gene column before projecting, so projections are
	// coordinates relative to the mean sample
	for j := 0; j < d; j++ {
		var mean float64
		for i := 0; i < n; i++ {
			mean += data.At(i, j)
		}
		mean /= float64(n)
		for i := 0; i < n; i++ {
			data.Set(i, j, data.At(i, j)-mean)
		}
	}

	var proj mat.Dense
	proj.Mul(data, vectors.Slice(0, d, 0, k))

	var totalVar float64
	for _, v := range vars {
		totalVar += v
	}

	out := &Result{
		Samples:      m.Samples(),
		Projections:  make([][]float64, n),
		VarExplained: make([]float64, k),
	}
	for i := 0; i < n; i++ {
		out.Projections[i] = make([]float64, k)
		for c := 0; c < k; c++ {
			out.Projections[i][c] = proj.At(i, c)
		}
	}
	for c := 0; c < k; c++ {
		if totalVar > 0 {
			out.VarExplained[c] = vars[c] / totalVar
		}
	}

	return out, nil
}
