package exprstats

import (
	"github.com/carbocation/pfx"
	"github.com/montanaflynn/stats"

	"github.com/countscape/countscape/expr"
)

// Summary describes the count distribution within one sample.
type Summary struct {
	Sample string
	N      int
	Min    float64
	Q1     float64
	Median float64
	Mean   float64
	Q3     float64
	Max    float64
}

// Summarize computes a five-number summary plus mean for every sample
// column, in column order.
func Summarize(m *expr.Matrix) ([]Summary, error) {
	samples := m.Samples()
	out := make([]Summary, 0, len(samples))

	for j, sample := range samples {
		col := m.Column(j)

		min, err := stats.Min(col)
		if err != nil {
			return nil, pfx.Err(err)
		}
		max, err := stats.Max(col)
		if err != nil {
			return nil, pfx.Err(err)
		}
		mean, err := stats.Mean(col)
		if err != nil {
			return nil, pfx.Err(err)
		}
		median, err := stats.Median(col)
		if err != nil {
			return nil, pfx.Err(err)
		}
		quartiles, err := stats.Quartile(col)
		if err != nil {
			return nil, pfx.Err(err)
		}

		out = append(out, Summary{
			Sample: sample,
			N:      len(col),
			Min:    min,
			Q1:     quartiles.Q1,
			Median: median,
			Mean:   mean,
			Q3:     quartiles.Q3,
			Max:    max,
		})
	}

	return out, nil
}
