package graph

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Open a nav-data file. Files ending in .zst or .lz4 are decompressed transparently.
func OpenFile(filename string) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".zst":
		dec, err := zstd.NewReader(file)
		if err != nil {
			file.Close()
			return nil, err
		}
		return &compressedReader{Reader: dec, close: func() error {
			dec.Close()
			return file.Close()
		}}, nil
	case ".lz4":
		return &compressedReader{Reader: lz4.NewReader(file), close: file.Close}, nil
	}
	return file, nil
}

// Create a nav-data file. Files ending in .zst or .lz4 are compressed.
func CreateFile(filename string) (io.WriteCloser, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".zst":
		enc, err := zstd.NewWriter(file, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			file.Close()
			return nil, err
		}
		return &compressedWriter{Writer: enc, close: func() error {
			if err := enc.Close(); err != nil {
				file.Close()
				return err
			}
			return file.Close()
		}}, nil
	case ".lz4":
		enc := lz4.NewWriter(file)
		return &compressedWriter{Writer: enc, close: func() error {
			if err := enc.Close(); err != nil {
				file.Close()
				return err
			}
			return file.Close()
		}}, nil
	}
	return file, nil
}

type compressedReader struct {
	io.Reader
	close func() error
}

func (r *compressedReader) Close() error {
	return r.close()
}

type compressedWriter struct {
	io.Writer
	close func() error
}

func (w *compressedWriter) Close() error {
	return w.close()
}
