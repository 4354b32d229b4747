package expr

import (
	"errors"
	"testing"
)

func TestNewMatrixValidation(t *testing.T) {
	for _, v := range []struct {
		name    string
		genes   []string
		samples []string
		values  [][]float64
	}{
		{"no genes", nil, []string{"s1"}, nil},
		{"no samples", []string{"g1"}, nil, [][]float64{{}}},
		{"duplicate gene", []string{"g1", "g1"}, []string{"s1"}, [][]float64{{1}, {2}}},
		{"duplicate sample", []string{"g1"}, []string{"s1", "s1"}, [][]float64{{1, 2}}},
		{"empty gene id", []string{"g1", ""}, []string{"s1"}, [][]float64{{1}, {2}}},
		{"ragged row", []string{"g1"}, []string{"s1", "s2"}, [][]float64{{1}}},
		{"row count mismatch", []string{"g1", "g2"}, []string{"s1"}, [][]float64{{1}}},
	} {
		if _, err := NewMatrix(v.genes, v.samples, v.values); err == nil {
			t.Fatalf("%s: expected error", v.name)
		}
	}
}

func TestNewMatrixNoGenesSentinel(t *testing.T) {
	_, err := NewMatrix(nil, []string{"s1"}, nil)
	if !errors.Is(err, ErrNoGenes) {
		t.Fatalf("Expected ErrNoGenes, got %v", err)
	}
}

func TestMatrixAccessors(t *testing.T) {
	m, err := NewMatrix(
		[]string{"g1", "g2"},
		[]string{"s1", "s2", "s3"},
		[][]float64{{1, 2, 3}, {4, 5, 6}},
	)
	if err != nil {
		t.Fatal(err)
	}

	if m.NGenes() != 2 || m.NSamples() != 3 {
		t.Fatalf("Unexpected dimensions: %dx%d", m.NGenes(), m.NSamples())
	}

	col, err := m.SampleColumn("s2")
	if err != nil {
		t.Fatal(err)
	}
	if col[0] != 2 || col[1] != 5 {
		t.Fatalf("s2 column mangled: %+v", col)
	}

	row, err := m.GeneRow("g2")
	if err != nil {
		t.Fatal(err)
	}
	if row[2] != 6 {
		t.Fatalf("g2 row mangled: %+v", row)
	}

	if _, err := m.GeneRow("gX"); err == nil {
		t.Fatal("Expected error for unknown gene")
	}
	if _, err := m.SampleColumn("sX"); err == nil {
		t.Fatal("Expected error for unknown sample")
	}
}

func TestMatrixImmutability(t *testing.T) {
	values := [][]float64{{1, 2}, {3, 4}}
	m, err := NewMatrix([]string{"g1", "g2"}, []string{"s1", "s2"}, values)
	if err != nil {
		t.Fatal(err)
	}

	// Mutating the constructor input must not affect the matrix
	values[0][0] = 99
	if m.At(0, 0) != 1 {
		t.Fatalf("Constructor aliased caller slice: %v", m.At(0, 0))
	}

	// Mutating accessor output must not affect the matrix
	row := m.Row(0)
	row[1] = 99
	if m.At(0, 1) != 2 {
		t.Fatalf("Row aliased internal storage: %v", m.At(0, 1))
	}
}

func TestMatrixMap(t *testing.T) {
	m, err := NewMatrix([]string{"g1"}, []string{"s1", "s2"}, [][]float64{{1, 2}})
	if err != nil {
		t.Fatal(err)
	}

	doubled := m.Map(func(v float64) float64 { return 2 * v })
	if doubled.At(0, 1) != 4 {
		t.Fatalf("Expected 4, got %v", doubled.At(0, 1))
	}
	if m.At(0, 1) != 2 {
		t.Fatal("Map mutated its receiver")
	}
}

func TestNewSampleInfoValidation(t *testing.T) {
	for _, v := range []struct {
		name  string
		key   string
		attrs []string
		ids   []string
		rows  [][]string
	}{
		{"no key column", "", []string{"strain"}, []string{"s1"}, [][]string{{"wt"}}},
		{"duplicate id", "run", []string{"strain"}, []string{"s1", "s1"}, [][]string{{"wt"}, {"mut"}}},
		{"empty id", "run", []string{"strain"}, []string{""}, [][]string{{"wt"}}},
		{"ragged row", "run", []string{"strain", "time"}, []string{"s1"}, [][]string{{"wt"}}},
		{"row count mismatch", "run", []string{"strain"}, []string{"s1", "s2"}, [][]string{{"wt"}}},
	} {
		if _, err := NewSampleInfo(v.key, v.attrs, v.ids, v.rows); err == nil {
			t.Fatalf("%s: expected error", v.name)
		}
	}
}

func TestSampleInfoLookup(t *testing.T) {
	info, err := NewSampleInfo(
		"run",
		[]string{"strain", "timepoint"},
		[]string{"s1", "s2"},
		[][]string{{"wt", "0h"}, {"mut", "4h"}},
	)
	if err != nil {
		t.Fatal(err)
	}

	if info.KeyName() != "run" || info.Len() != 2 {
		t.Fatalf("Unexpected metadata shape: key=%q len=%d", info.KeyName(), info.Len())
	}

	if v, ok := info.Attr("s2", "timepoint"); !ok || v != "4h" {
		t.Fatalf("Expected 4h, got %q (ok=%v)", v, ok)
	}
	if _, ok := info.Attr("s2", "nope"); ok {
		t.Fatal("Expected miss for unknown attribute")
	}
	if _, ok := info.Attrs("sX"); ok {
		t.Fatal("Expected miss for unknown sample")
	}
}
