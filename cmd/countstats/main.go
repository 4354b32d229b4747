// countstats summarizes a count matrix: per-sample five-number summaries,
// the pooled log2 count distribution (as a terminal histogram and a bin
// table), the most variable genes, and, when sample metadata is supplied,
// grouped count means by a chosen attribute. Optionally tests a gene set
// for enrichment among the top variable genes.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strings"

	"github.com/aybabtme/uniplot/histogram"

	"github.com/countscape/countscape"
	_ "github.com/countscape/countscape/compileinfoprint"
	"github.com/countscape/countscape/expr"
	"github.com/countscape/countscape/exprio"
	"github.com/countscape/countscape/exprstats"
	"github.com/countscape/countscape/tidy"
)

var STDOUT = bufio.NewWriterSize(os.Stdout, 4096)

func main() {
	defer STDOUT.Flush()

	var matrixPath, infoPath, groupBy, geneSetPath string
	var bins, top int
	var rawCounts bool
	flag.StringVar(&matrixPath, "matrix", "", "Path to the gene-by-sample count matrix (CSV/TSV, optionally compressed).")
	flag.StringVar(&infoPath, "sampleinfo", "", "Optional path to the sample metadata table.")
	flag.StringVar(&groupBy, "groupby", "", "Metadata attribute to aggregate counts by (requires -sampleinfo).")
	flag.StringVar(&geneSetPath, "geneset", "", "Optional file with one gene per line, tested for enrichment among the top variable genes.")
	flag.IntVar(&bins, "bins", 20, "Number of buckets for the count distribution.")
	flag.IntVar(&top, "top", 10, "Number of most-variable genes to report.")
	flag.BoolVar(&rawCounts, "raw", false, "Skip log2(CPM+1) normalization and summarize raw counts.")
	flag.Parse()

	if matrixPath == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	counts, err := exprio.LoadMatrix(matrixPath)
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("Loaded", counts.NGenes(), "genes x", counts.NSamples(), "samples")

	matrix := counts
	if !rawCounts {
		if matrix, err = exprstats.Log2CPM(counts); err != nil {
			log.Fatalln(err)
		}
		log.Println("Summaries are on the log2(CPM+1) scale")
	}

	if err := printSummaries(matrix); err != nil {
		log.Fatalln(err)
	}
	// The distribution is always shown for the counts as loaded; the
	// binning applies its own log2(count+1) transform
	if err := printDistribution(counts, bins); err != nil {
		log.Fatalln(err)
	}
	printTopVariable(matrix, top)

	if geneSetPath != "" {
		if err := printEnrichment(matrix, geneSetPath, top); err != nil {
			log.Fatalln(err)
		}
	}

	if groupBy != "" {
		if infoPath == "" {
			log.Fatalln("-groupby requires -sampleinfo")
		}
		if err := printGroupMeans(matrix, infoPath, groupBy); err != nil {
			log.Fatalln(err)
		}
	}
}

func printSummaries(matrix *expr.Matrix) error {
	summaries, err := exprstats.Summarize(matrix)
	if err != nil {
		return err
	}

	fmt.Fprintln(STDOUT, "Sample\tN\tMin\tQ1\tMedian\tMean\tQ3\tMax")
	for _, s := range summaries {
		fmt.Fprintf(STDOUT, "%s\t%d\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n",
			s.Sample, s.N, s.Min, s.Q1, s.Median, s.Mean, s.Q3, s.Max)
	}
	return nil
}

func printDistribution(counts *expr.Matrix, bins int) error {
	values := make([]float64, 0, counts.NGenes()*counts.NSamples())
	for i := 0; i < counts.NGenes(); i++ {
		for _, v := range counts.Row(i) {
			values = append(values, math.Log2(v+1))
		}
	}

	fmt.Fprintln(STDOUT, "\nPooled log2(count+1) distribution:")
	STDOUT.Flush()
	hist := histogram.Hist(bins, values)
	if err := histogram.Fprint(os.Stdout, hist, histogram.Linear(40)); err != nil {
		return err
	}

	binned, err := exprstats.CountBins(counts, bins)
	if err != nil {
		return err
	}
	fmt.Fprintln(STDOUT, "\nBinLow\tBinHigh\tCells")
	for _, b := range binned {
		fmt.Fprintf(STDOUT, "%.3f\t%.3f\t%d\n", b.Low, b.High, b.Count)
	}
	return nil
}

func printTopVariable(matrix *expr.Matrix, top int) {
	dispersions := exprstats.TopVariable(exprstats.GeneDispersions(matrix), top)

	fmt.Fprintln(STDOUT, "\nGene\tMean\tStdDev")
	for _, d := range dispersions {
		fmt.Fprintf(STDOUT, "%s\t%.3f\t%.3f\n", d.Gene, d.Mean, d.StdDev)
	}
}

func printEnrichment(matrix *expr.Matrix, geneSetPath string, top int) error {
	raw, err := os.ReadFile(countscape.ExpandHome(geneSetPath))
	if err != nil {
		return err
	}

	var geneSet []string
	for _, line := range strings.Split(string(raw), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			geneSet = append(geneSet, line)
		}
	}

	selected := make([]string, 0, top)
	for _, d := range exprstats.TopVariable(exprstats.GeneDispersions(matrix), top) {
		selected = append(selected, d.Gene)
	}

	result, err := exprstats.Enrichment(selected, geneSet, matrix.Genes())
	if err != nil {
		return err
	}

	fmt.Fprintf(STDOUT, "\nGene set enrichment among top %d variable genes:\n", len(selected))
	fmt.Fprintf(STDOUT, "InSet\tNotInSet\tRestInSet\tRestNotInSet\tP\n")
	fmt.Fprintf(STDOUT, "%d\t%d\t%d\t%d\t%.4g\n",
		result.SelectedInSet, result.SelectedNotInSet, result.RestInSet, result.RestNotInSet, result.P)
	return nil
}

func printGroupMeans(matrix *expr.Matrix, infoPath, groupBy string) error {
	info, err := exprio.LoadSampleInfo(infoPath)
	if err != nil {
		return err
	}

	wide, err := tidy.FromMatrix(matrix)
	if err != nil {
		return err
	}
	long, err := wide.Melt()
	if err != nil {
		return err
	}
	table, err := long.Join(info)
	if err != nil {
		return err
	}

	groups, err := exprstats.GroupMeans(table, groupBy)
	if err != nil {
		return err
	}

	fmt.Fprintf(STDOUT, "\n%s\tN\tMean\tStdDev\n", groupBy)
	for _, g := range groups {
		level := g.Level
		if level == "" {
			level = exprio.MissingValue
		}
		fmt.Fprintf(STDOUT, "%s\t%d\t%.3f\t%.3f\n", level, g.N, g.Mean, g.StdDev)
	}
	return nil
}
