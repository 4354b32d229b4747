package tidy

import (
	"fmt"
	"math"
)

// LongRow is one observation: the count for one gene in one sample.
type LongRow struct {
	Gene   string  `csv:"gene"`
	Sample string  `csv:"sample"`
	Count  float64 `csv:"count"`
}

// Long is a tidy long table, one row per (gene, sample) pair.
type Long []LongRow

// Spread pivots the long table back into wide form, the inverse of Melt.
// Genes and samples appear in first-seen order. A duplicate (gene, sample)
// pair is a structural error; a missing pair (a non-rectangular long
// table) is filled with NaN rather than dropped.
func (l Long) Spread() (*Wide, error) {
	var genes, samples []string
	geneIndex := make(map[string]int)
	sampleIndex := make(map[string]int)

	for _, row := range l {
		if _, exists := geneIndex[row.Gene]; !exists {
			geneIndex[row.Gene] = len(genes)
			genes = append(genes, row.Gene)
		}
		if _, exists := sampleIndex[row.Sample]; !exists {
			sampleIndex[row.Sample] = len(samples)
			samples = append(samples, row.Sample)
		}
	}

	rows := make([]WideRow, len(genes))
	seen := make(map[[2]string]bool, len(l))
	for i, g := range genes {
		counts := make([]float64, len(samples))
		for j := range counts {
			counts[j] = math.NaN()
		}
		rows[i] = WideRow{Gene: g, Counts: counts}
	}

	for _, row := range l {
		pair := [2]string{row.Gene, row.Sample}
		if seen[pair] {
			return nil, fmt.Errorf("tidy: duplicate observation for gene %q, sample %q", row.Gene, row.Sample)
		}
		seen[pair] = true
		rows[geneIndex[row.Gene]].Counts[sampleIndex[row.Sample]] = row.Count
	}

	return &Wide{Samples: samples, Rows: rows}, nil
}
