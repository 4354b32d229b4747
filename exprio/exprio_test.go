package exprio

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/countscape/countscape/expr"
	"github.com/countscape/countscape/tidy"
)

const matrixCSV = `gene,s1,s2
g1,1,2
g2,3,4
g3,5,6
`

func TestParseMatrix(t *testing.T) {
	m, err := ParseMatrix(strings.NewReader(matrixCSV), ',')
	if err != nil {
		t.Fatal(err)
	}

	if m.NGenes() != 3 || m.NSamples() != 2 {
		t.Fatalf("Unexpected shape: %dx%d", m.NGenes(), m.NSamples())
	}
	if v := m.At(1, 1); v != 4 {
		t.Fatalf("Expected 4 at (g2, s2), got %v", v)
	}
}

func TestParseMatrixErrors(t *testing.T) {
	for _, v := range []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"header only", "gene,s1\n"},
		{"no samples", "gene\ng1\n"},
		{"non-numeric", "gene,s1\ng1,abc\n"},
		{"duplicate gene", "gene,s1\ng1,1\ng1,2\n"},
	} {
		if _, err := ParseMatrix(strings.NewReader(v.input), ','); err == nil {
			t.Fatalf("%s: expected error", v.name)
		}
	}
}

func TestParseMatrixTabs(t *testing.T) {
	input := strings.ReplaceAll(matrixCSV, ",", "\t")

	m, err := ParseMatrix(strings.NewReader(input), '\t')
	if err != nil {
		t.Fatal(err)
	}
	if m.NGenes() != 3 {
		t.Fatalf("Expected 3 genes, got %d", m.NGenes())
	}
}

func TestLoadMatrixGzipped(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write([]byte(matrixCSV)); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "counts.csv.gz")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadMatrix(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.NGenes() != 3 || m.NSamples() != 2 {
		t.Fatalf("Unexpected shape from gzipped input: %dx%d", m.NGenes(), m.NSamples())
	}
}

func TestLoadMatrixSniffsDelimiter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counts.tsv")
	if err := os.WriteFile(path, []byte(strings.ReplaceAll(matrixCSV, ",", "\t")), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadMatrix(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.NSamples() != 2 {
		t.Fatalf("Expected 2 samples from TSV, got %d", m.NSamples())
	}
}

func TestParseSampleInfo(t *testing.T) {
	input := "run,strain,timepoint\ns1,wt,0h\ns2,mut,4h\n"

	info, err := ParseSampleInfo(strings.NewReader(input), ',')
	if err != nil {
		t.Fatal(err)
	}

	if info.KeyName() != "run" || info.Len() != 2 {
		t.Fatalf("Unexpected metadata: key=%q len=%d", info.KeyName(), info.Len())
	}
	if v, _ := info.Attr("s2", "strain"); v != "mut" {
		t.Fatalf("Expected mut, got %q", v)
	}
}

func TestLongRoundTrip(t *testing.T) {
	long := tidy.Long{
		{Gene: "g1", Sample: "s1", Count: 1},
		{Gene: "g1", Sample: "s2", Count: 2.5},
		{Gene: "g2", Sample: "s1", Count: 0},
	}

	var buf bytes.Buffer
	if err := WriteLong(&buf, long, '\t'); err != nil {
		t.Fatal(err)
	}

	back, err := LoadLong(&buf, '\t')
	if err != nil {
		t.Fatal(err)
	}

	if len(back) != len(long) {
		t.Fatalf("Round trip changed length: %d vs %d", len(back), len(long))
	}
	for i := range long {
		if back[i] != long[i] {
			t.Fatalf("Row %d: expected %+v, got %+v", i, long[i], back[i])
		}
	}
}

func TestWriteObservations(t *testing.T) {
	long := tidy.Long{
		{Gene: "g1", Sample: "s1", Count: 1},
		{Gene: "g1", Sample: "sX", Count: 9},
	}
	info, err := expr.NewSampleInfo(
		"run",
		[]string{"strain"},
		[]string{"s1", "s2"},
		[][]string{{"wt"}, {"mut"}},
	)
	if err != nil {
		t.Fatal(err)
	}

	table, err := long.Join(info)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteObservations(&buf, table, '\t'); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	expected := []string{
		"gene\tsample\tcount\tstrain",
		"g1\ts1\t1\twt",
		"g1\tsX\t9\tNA",
		"NA\ts2\tNA\tmut",
	}
	if len(lines) != len(expected) {
		t.Fatalf("Expected %d lines, got %d:\n%s", len(expected), len(lines), buf.String())
	}
	for i, line := range lines {
		if line != expected[i] {
			t.Fatalf("Line %d: expected %q, got %q", i, expected[i], line)
		}
	}
}
