// countpca runs a principal component analysis on a count matrix and
// prints each sample's projection, the usual way to check whether samples
// separate by condition. With -png it also renders a PC1/PC2 scatter plot,
// colored by a metadata attribute when -sampleinfo and -color are given.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/countscape/countscape/compileinfoprint"
	"github.com/countscape/countscape/expr"
	"github.com/countscape/countscape/exprio"
	"github.com/countscape/countscape/exprstats"
	"github.com/countscape/countscape/pca"
)

var STDOUT = bufio.NewWriterSize(os.Stdout, 4096)

func main() {
	defer STDOUT.Flush()

	var matrixPath, infoPath, colorBy, pngPath string
	var k int
	var rawCounts bool
	flag.StringVar(&matrixPath, "matrix", "", "Path to the gene-by-sample count matrix (CSV/TSV, optionally compressed).")
	flag.StringVar(&infoPath, "sampleinfo", "", "Optional path to the sample metadata table.")
	flag.StringVar(&colorBy, "color", "", "Metadata attribute used to color and annotate samples (requires -sampleinfo).")
	flag.StringVar(&pngPath, "png", "", "Optional output path for a PC1/PC2 scatter plot.")
	flag.IntVar(&k, "k", 2, "Number of principal components to compute.")
	flag.BoolVar(&rawCounts, "raw", false, "Skip log2(CPM+1) normalization and decompose raw counts.")
	flag.Parse()

	if matrixPath == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}
	if colorBy != "" && infoPath == "" {
		log.Fatalln("-color requires -sampleinfo")
	}

	matrix, err := exprio.LoadMatrix(matrixPath)
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("Loaded", matrix.NGenes(), "genes x", matrix.NSamples(), "samples")

	if !rawCounts {
		if matrix, err = exprstats.Log2CPM(matrix); err != nil {
			log.Fatalln(err)
		}
	}

	var info *expr.SampleInfo
	if infoPath != "" {
		if info, err = exprio.LoadSampleInfo(infoPath); err != nil {
			log.Fatalln(err)
		}
	}

	result, err := pca.Run(matrix, k)
	if err != nil {
		log.Fatalln(err)
	}

	for c, v := range result.VarExplained {
		log.Printf("PC%d explains %.1f%% of variance\n", c+1, 100*v)
	}

	printProjections(result, info, colorBy)

	if pngPath != "" {
		labels := sampleLabels(result, info, colorBy)
		if err := scatterPNG(pngPath, result, labels); err != nil {
			log.Fatalln(err)
		}
		log.Println("Wrote", pngPath)
	}
}

func printProjections(result *pca.Result, info *expr.SampleInfo, colorBy string) {
	fmt.Fprint(STDOUT, "Sample")
	for c := range result.VarExplained {
		fmt.Fprintf(STDOUT, "\tPC%d", c+1)
	}
	if colorBy != "" {
		fmt.Fprintf(STDOUT, "\t%s", colorBy)
	}
	fmt.Fprintln(STDOUT)

	for i, sample := range result.Samples {
		fmt.Fprint(STDOUT, sample)
		for _, v := range result.Projections[i] {
			fmt.Fprintf(STDOUT, "\t%.4f", v)
		}
		if colorBy != "" {
			level := exprio.MissingValue
			if info != nil {
				if v, ok := info.Attr(sample, colorBy); ok {
					level = v
				}
			}
			fmt.Fprintf(STDOUT, "\t%s", level)
		}
		fmt.Fprintln(STDOUT)
	}
}

// sampleLabels maps each sample to its level of the coloring attribute, or
// to its own name when no attribute was requested.
func sampleLabels(result *pca.Result, info *expr.SampleInfo, colorBy string) []string {
	labels := make([]string, len(result.Samples))
	for i, sample := range result.Samples {
		labels[i] = sample
		if colorBy == "" || info == nil {
			continue
		}
		if v, ok := info.Attr(sample, colorBy); ok {
			labels[i] = v
		} else {
			labels[i] = exprio.MissingValue
		}
	}
	return labels
}
