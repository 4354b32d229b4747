package exprstats

import (
	"fmt"

	fet "github.com/glycerine/golang-fisher-exact"
)

// EnrichmentResult is the 2x2 contingency table crossing membership in a
// selected gene list (e.g., the top variable genes) against membership in
// an annotated gene set, with the two-sided Fisher exact p-value.
type EnrichmentResult struct {
	SelectedInSet    int
	SelectedNotInSet int
	RestInSet        int
	RestNotInSet     int

	P float64
}

// Enrichment tests whether the selected genes are enriched for members of
// geneSet, relative to the universe of all genes under study. Selected and
// geneSet entries absent from the universe are a structural error, since
// they would silently distort the margins.
func Enrichment(selected, geneSet, universe []string) (EnrichmentResult, error) {
	inUniverse := make(map[string]bool, len(universe))
	for _, g := range universe {
		inUniverse[g] = true
	}

	inSelected := make(map[string]bool, len(selected))
	for _, g := range selected {
		if !inUniverse[g] {
			return EnrichmentResult{}, fmt.Errorf("exprstats: selected gene %q is not in the universe", g)
		}
		inSelected[g] = true
	}

	inSet := make(map[string]bool, len(geneSet))
	for _, g := range geneSet {
		if !inUniverse[g] {
			return EnrichmentResult{}, fmt.Errorf("exprstats: gene-set member %q is not in the universe", g)
		}
		inSet[g] = true
	}

	var result EnrichmentResult
	for g := range inUniverse {
		switch {
		case inSelected[g] && inSet[g]:
			result.SelectedInSet++
		case inSelected[g]:
			result.SelectedNotInSet++
		case inSet[g]:
			result.RestInSet++
		default:
			result.RestNotInSet++
		}
	}

	_, _, _, twop := fet.FisherExactTest(result.SelectedInSet, result.SelectedNotInSet, result.RestInSet, result.RestNotInSet)
	result.P = twop

	return result, nil
}
