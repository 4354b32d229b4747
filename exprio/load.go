// Package exprio loads count matrices and sample metadata from delimited
// text files, and writes the reshaped tables back out. Delimiters are
// sniffed rather than assumed, and compressed inputs (gzip, zip, xz, bzip2)
// are decompressed transparently, since that is how public count data
// actually arrives.
package exprio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/carbocation/pfx"

	"github.com/countscape/countscape"
	"github.com/countscape/countscape/expr"
)

// LoadMatrix reads a gene-by-sample count matrix from path. The first
// header cell names the gene column (its text is ignored), the remaining
// header cells are sample identifiers, and each subsequent row is a gene
// identifier followed by its counts.
func LoadMatrix(path string) (*expr.Matrix, error) {
	raw, err := slurp(path)
	if err != nil {
		return nil, err
	}
	return ParseMatrix(bytes.NewReader(raw), countscape.DetermineDelimiter(bytes.NewReader(raw)))
}

// ParseMatrix parses a count matrix from r using the given delimiter.
func ParseMatrix(r io.Reader, delim rune) (*expr.Matrix, error) {
	records, err := readAll(r, delim)
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("exprio: matrix needs a header and at least one gene row, got %d rows", len(records))
	}
	if len(records[0]) < 2 {
		return nil, fmt.Errorf("exprio: matrix header names no sample columns")
	}

	samples := records[0][1:]
	genes := make([]string, 0, len(records)-1)
	values := make([][]float64, 0, len(records)-1)

	for i, record := range records[1:] {
		genes = append(genes, record[0])

		row := make([]float64, len(record)-1)
		for j, cell := range record[1:] {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("exprio: gene row %d, sample %q: %q is not numeric", i+1, samples[j], cell)
			}
			row[j] = v
		}
		values = append(values, row)
	}

	return expr.NewMatrix(genes, samples, values)
}

// LoadSampleInfo reads a sample metadata table from path. The first header
// cell names the sample-identifier column and the remaining cells name
// attributes; each row is a sample identifier followed by its attribute
// values.
func LoadSampleInfo(path string) (*expr.SampleInfo, error) {
	raw, err := slurp(path)
	if err != nil {
		return nil, err
	}
	return ParseSampleInfo(bytes.NewReader(raw), countscape.DetermineDelimiter(bytes.NewReader(raw)))
}

// ParseSampleInfo parses a sample metadata table from r using the given
// delimiter.
func ParseSampleInfo(r io.Reader, delim rune) (*expr.SampleInfo, error) {
	records, err := readAll(r, delim)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("exprio: sample metadata is empty")
	}

	header := records[0]
	ids := make([]string, 0, len(records)-1)
	values := make([][]string, 0, len(records)-1)
	for _, record := range records[1:] {
		ids = append(ids, record[0])
		values = append(values, record[1:])
	}

	return expr.NewSampleInfo(header[0], header[1:], ids, values)
}

func slurp(path string) ([]byte, error) {
	f, err := countscape.OpenDecompressed(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// The reference datasets are thousands of genes by tens of samples, so
	// reading whole files is fine
	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, pfx.Err(err)
	}
	return raw, nil
}

func readAll(r io.Reader, delim rune) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, pfx.Err(err)
	}
	return records, nil
}
