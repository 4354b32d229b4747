package exprio

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"github.com/carbocation/pfx"

	"github.com/countscape/countscape/tidy"
)

// MissingValue is written for cells with no value: unmatched metadata
// attributes, and the gene/count of metadata-only rows. "NA" keeps the
// output directly readable by the usual downstream tooling.
const MissingValue = "NA"

// WriteObservations writes the denormalized observation table to w with
// the given delimiter. The header is gene, sample, count, then the
// metadata attribute columns under their original names.
func WriteObservations(w io.Writer, table *tidy.ObservationTable, delim rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = delim

	header := append([]string{"gene", "sample", "count"}, table.AttrNames...)
	if err := cw.Write(header); err != nil {
		return pfx.Err(err)
	}

	record := make([]string, 0, len(header))
	for _, row := range table.Rows {
		record = record[:0]

		gene := row.Gene
		if gene == "" {
			gene = MissingValue
		}

		count := MissingValue
		if !math.IsNaN(row.Count) {
			count = strconv.FormatFloat(row.Count, 'g', -1, 64)
		}

		record = append(record, gene, row.Sample, count)
		for _, attr := range row.Attrs {
			if !row.Matched && row.Gene != "" {
				// A real observation whose sample had no metadata record
				attr = MissingValue
			}
			record = append(record, attr)
		}

		if err := cw.Write(record); err != nil {
			return pfx.Err(err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return pfx.Err(err)
	}
	return nil
}
