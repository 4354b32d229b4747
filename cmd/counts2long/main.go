// counts2long reshapes a gene-by-sample count matrix into tidy long
// format, optionally joining sample metadata so every observation carries
// its sample's attributes. Output is tab-delimited on stdout.
package main

import (
	"bufio"
	"flag"
	"log"
	"os"

	_ "github.com/countscape/countscape/compileinfoprint"
	"github.com/countscape/countscape/exprio"
	"github.com/countscape/countscape/tidy"
)

var STDOUT = bufio.NewWriterSize(os.Stdout, 4096)

func main() {
	defer STDOUT.Flush()

	var matrixPath, infoPath string
	flag.StringVar(&matrixPath, "matrix", "", "Path to the gene-by-sample count matrix (CSV/TSV, optionally compressed).")
	flag.StringVar(&infoPath, "sampleinfo", "", "Optional path to the sample metadata table. When set, the output is the denormalized observation table.")
	flag.Parse()

	if matrixPath == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	matrix, err := exprio.LoadMatrix(matrixPath)
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("Loaded", matrix.NGenes(), "genes x", matrix.NSamples(), "samples")

	wide, err := tidy.FromMatrix(matrix)
	if err != nil {
		log.Fatalln(err)
	}
	long, err := wide.Melt()
	if err != nil {
		log.Fatalln(err)
	}

	if infoPath == "" {
		if err := exprio.WriteLong(STDOUT, long, '\t'); err != nil {
			log.Fatalln(err)
		}
		return
	}

	info, err := exprio.LoadSampleInfo(infoPath)
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("Loaded metadata for", info.Len(), "samples, key column", info.KeyName())

	table, err := long.Join(info)
	if err != nil {
		log.Fatalln(err)
	}

	unmatched := 0
	for _, row := range table.Rows {
		if !row.Matched {
			unmatched++
		}
	}
	if unmatched > 0 {
		log.Println(unmatched, "rows had no counterpart across the join; their missing fields are written as", exprio.MissingValue)
	}

	if err := exprio.WriteObservations(STDOUT, table, '\t'); err != nil {
		log.Fatalln(err)
	}
}
