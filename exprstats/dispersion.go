package exprstats

import (
	"sort"

	"github.com/carbocation/runningvariance"

	"github.com/countscape/countscape/expr"
)

// Dispersion is the streaming mean and standard deviation of one gene's
// counts across samples. Highly dispersed genes drive the interesting
// structure in the dataset and are the usual input to PCA and clustering.
type Dispersion struct {
	Gene   string
	Mean   float64
	StdDev float64
}

// GeneDispersions computes per-gene count mean and standard deviation in
// one pass per gene, in matrix row order.
func GeneDispersions(m *expr.Matrix) []Dispersion {
	genes := m.Genes()
	out := make([]Dispersion, 0, len(genes))

	for i, gene := range genes {
		rs := runningvariance.NewRunningStat()
		for _, v := range m.Row(i) {
			rs.Push(v)
		}
		out = append(out, Dispersion{
			Gene:   gene,
			Mean:   rs.Mean(),
			StdDev: rs.StandardDeviation(),
		})
	}

	return out
}

// TopVariable returns the n most variable genes, most dispersed first.
// Ties break by gene identifier so the ranking is reproducible.
func TopVariable(dispersions []Dispersion, n int) []Dispersion {
	sorted := append([]Dispersion(nil), dispersions...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].StdDev != sorted[j].StdDev {
			return sorted[i].StdDev > sorted[j].StdDev
		}
		return sorted[i].Gene < sorted[j].Gene
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
