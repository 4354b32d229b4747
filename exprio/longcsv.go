package exprio

import (
	"encoding/csv"
	"io"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"

	"github.com/countscape/countscape/tidy"
)

// LoadLong reads a long-format table (gene, sample, count columns) from r.
// Unlike the matrix and metadata loaders, the long table has a fixed
// schema, so it decodes straight into tidy.LongRow records by header name.
func LoadLong(r io.Reader, delim rune) (tidy.Long, error) {
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		cr := csv.NewReader(in)
		cr.Comma = delim
		cr.LazyQuotes = true
		return cr
	})

	records := []*tidy.LongRow{}
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, pfx.Err(err)
	}

	out := make(tidy.Long, 0, len(records))
	for _, record := range records {
		out = append(out, *record)
	}
	return out, nil
}

// WriteLong writes the long table to w with the given delimiter.
func WriteLong(w io.Writer, long tidy.Long, delim rune) error {
	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		cw := csv.NewWriter(out)
		cw.Comma = delim
		return gocsv.NewSafeCSVWriter(cw)
	})

	records := make([]*tidy.LongRow, 0, len(long))
	for i := range long {
		records = append(records, &long[i])
	}

	if err := gocsv.Marshal(&records, w); err != nil {
		return pfx.Err(err)
	}
	return nil
}
