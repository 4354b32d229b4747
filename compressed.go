package countscape

import (
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"
	"os"

	"github.com/carbocation/pfx"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZ
	DataTypeBZip2
)

var byteCodeSigs = map[DataType][]byte{
	DataTypeGzip:  {0x1f, 0x8b, 0x08},
	DataTypeZip:   {0x50, 0x4b, 0x03, 0x04},
	DataTypeXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	DataTypeZ:     {0x1f, 0x9d},
	DataTypeBZip2: {0x42, 0x5a, 0x68},
}

// DetectDataType sniffs the compression format of a stream from its
// magic bytes. Public count matrices are distributed gzipped more often
// than not, so the loaders sniff rather than trusting file extensions.
func DetectDataType(r io.Reader) (DataType, error) {
	buff := make([]byte, 6)
	if _, err := r.Read(buff); err != nil {
		return DataTypeInvalid, err
	}

Outer:
	for dt, sig := range byteCodeSigs {
		for position := range sig {
			if buff[position] != sig[position] {
				continue Outer
			}
		}
		return dt, nil
	}

	return DataTypeNoCompression, nil
}

// OpenDecompressed opens the file at path (after ~ expansion) and wraps it
// in the appropriate decompressor if its contents are compressed. The
// returned ReadCloser closes the underlying file.
func OpenDecompressed(path string) (io.ReadCloser, error) {
	f, err := os.Open(ExpandHome(path))
	if err != nil {
		return nil, pfx.Err(err)
	}

	dt, err := DetectDataType(f)
	if err != nil {
		f.Close()
		return nil, pfx.Err(err)
	}

	// DetectDataType consumed the signature bytes; rewind before decoding
	if _, err := f.Seek(0, 0); err != nil {
		f.Close()
		return nil, pfx.Err(err)
	}

	switch dt {
	case DataTypeGzip:
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, pfx.Err(err)
		}
		return &fileBackedReader{gz, f}, nil
	case DataTypeZip:
		return &fileBackedReader{zipstream.NewReader(f), f}, nil
	case DataTypeBZip2:
		return &fileBackedReader{bzip2.NewReader(f), f}, nil
	case DataTypeXZ:
		reader, err := xz.NewReader(f, 0)
		if err != nil {
			f.Close()
			return nil, pfx.Err(err)
		}
		return &fileBackedReader{reader, f}, nil
	case DataTypeZ:
		zr, err := zlib.NewReader(f)
		if err != nil {
			f.Close()
			return nil, pfx.Err(err)
		}
		return &fileBackedReader{zr, f}, nil
	}

	// No known signature. Assume plain text.
	return f, nil
}

// fileBackedReader closes the underlying file rather than the (possibly
// close-less) decompressor wrapped around it.
type fileBackedReader struct {
	io.Reader
	f *os.File
}

func (c *fileBackedReader) Close() error {
	return c.f.Close()
}
