package exprstats

import (
	"fmt"
	"math"

	hist "github.com/grd/histogram"

	"github.com/countscape/countscape/expr"
)

// Bin is one bucket of the pooled count distribution on the log2 scale.
type Bin struct {
	Low   float64
	High  float64
	Count int
}

// CountBins pools every cell of the matrix, transforms to log2(count+1),
// and bins the result into nBins equal-width buckets. The resulting table
// is what cmd/countstats prints alongside the terminal histogram.
func CountBins(m *expr.Matrix, nBins int) ([]Bin, error) {
	if nBins < 1 {
		return nil, fmt.Errorf("exprstats: nBins must be positive, got %d", nBins)
	}

	min, max := math.Inf(1), math.Inf(-1)
	values := make([]float64, 0, m.NGenes()*m.NSamples())
	for i := 0; i < m.NGenes(); i++ {
		for j := 0; j < m.NSamples(); j++ {
			v := math.Log2(m.At(i, j) + 1)
			values = append(values, v)
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}

	if max == min {
		// All cells identical; widen so the single bucket has nonzero width
		max = min + 1
	}

	width := (max - min) / float64(nBins)
	hg, err := hist.NewHistogram(hist.Range(min, uint(nBins), width))
	if err != nil {
		return nil, err
	}

	for _, v := range values {
		// The top edge is exclusive in the histogram's range; nudge the
		// maximum value into the last bucket instead of losing it
		if v == max {
			v = math.Nextafter(max, min)
		}
		hg.Add(v)
	}

	out := make([]Bin, nBins)
	for y := 0; y < nBins; y++ {
		out[y] = Bin{
			Low:   min + float64(y)*width,
			High:  min + float64(y+1)*width,
			Count: hg.Get(y),
		}
	}

	return out, nil
}
