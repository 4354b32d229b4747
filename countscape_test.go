package countscape

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDetermineDelimiter(t *testing.T) {
	for _, v := range []struct {
		input    string
		expected rune
	}{
		{"gene,s1,s2\ng1,1,2\ng2,3,4\n", ','},
		{"gene\ts1\ts2\ng1\t1\t2\ng2\t3\t4\n", '\t'},
		{"gene;s1;s2\ng1;1;2\ng2;3;4\n", ';'},
	} {
		if got := DetermineDelimiter(strings.NewReader(v.input)); got != v.expected {
			t.Fatalf("Input %q: expected %q, got %q", v.input, v.expected, got)
		}
	}
}

func TestDetectDataType(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	gz.Write([]byte("gene,s1\ng1,1\n"))
	gz.Close()

	dt, err := DetectDataType(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if dt != DataTypeGzip {
		t.Fatalf("Expected gzip, got %v", dt)
	}

	dt, err = DetectDataType(strings.NewReader("gene,s1\ng1,1\n"))
	if err != nil {
		t.Fatal(err)
	}
	if dt != DataTypeNoCompression {
		t.Fatalf("Expected no compression, got %v", dt)
	}
}

func TestOpenDecompressed(t *testing.T) {
	content := "gene,s1\ng1,1\n"
	dir := t.TempDir()

	plain := filepath.Join(dir, "plain.csv")
	if err := os.WriteFile(plain, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	gz.Write([]byte(content))
	gz.Close()
	zipped := filepath.Join(dir, "zipped.csv.gz")
	if err := os.WriteFile(zipped, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{plain, zipped} {
		r, err := OpenDecompressed(path)
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		got, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		if string(got) != content {
			t.Fatalf("%s: content mangled: %q", path, got)
		}
	}
}

func TestExpandHomePassthrough(t *testing.T) {
	if got := ExpandHome("/tmp/counts.csv"); got != "/tmp/counts.csv" {
		t.Fatalf("Absolute path should pass through, got %q", got)
	}
	if got := ExpandHome("counts.csv"); got != "counts.csv" {
		t.Fatalf("Relative path should pass through, got %q", got)
	}
}
