// Package gffio manages input and output streams for annotation
// records: plain or gzip-compressed files, stdin, and stdout.
//
// Compression is keyed on the ".gz" filename suffix and handled with
// parallel pgzip, which decompresses and compresses on multiple cores
// for large files.
package gffio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/pgzip"
)

const (
	// initialLineBuf is the starting scanner buffer size.
	initialLineBuf = 64 * 1024
	// maxLineBuf bounds a single record line; attribute columns can be
	// long but a 16 MB line means the input is not line-oriented.
	maxLineBuf = 16 * 1024 * 1024
)

// NewLineScanner returns a scanner over r sized for annotation files
// with long attribute columns.
func NewLineScanner(r io.Reader) *bufio.Scanner {
	scan := bufio.NewScanner(r)
	scan.Buffer(make([]byte, initialLineBuf), maxLineBuf)
	return scan
}

// Input is a readable record stream. Close releases the underlying
// file and decompressor; closing a stdin-backed Input is a no-op.
type Input struct {
	name string
	file *os.File
	zip  *pgzip.Reader
	r    io.Reader
}

// OpenInput opens name for reading. Empty name or "-" means stdin.
// Names ending in ".gz" are decompressed transparently.
func OpenInput(name string) (*Input, error) {
	if name == "" || name == "-" {
		return &Input{name: "stdin", r: os.Stdin}, nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", name, err)
	}

	in := &Input{name: name, file: f, r: f}
	if strings.HasSuffix(name, ".gz") {
		zpr, err := pgzip.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open input %s: %w", name, err)
		}
		in.zip = zpr
		in.r = zpr
	}
	return in, nil
}

// Read implements io.Reader.
func (in *Input) Read(p []byte) (int, error) {
	return in.r.Read(p)
}

// Name returns the stream name for diagnostics.
func (in *Input) Name() string {
	return in.name
}

// Close closes the decompressor and file, if any.
func (in *Input) Close() error {
	var err error
	if in.zip != nil {
		err = in.zip.Close()
	}
	if in.file != nil {
		if cerr := in.file.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Output is a buffered writable record stream. Close flushes; an
// unflushed write error surfaces there, so Close errors are fatal.
type Output struct {
	name string
	file *os.File
	zip  *pgzip.Writer
	w    *bufio.Writer
}

// OpenOutput opens name for writing, truncating any existing file.
// Empty name or "-" means stdout. Names ending in ".gz" are
// compressed with pgzip at BestSpeed, matching the throughput-first
// setting used for large archive files.
func OpenOutput(name string) (*Output, error) {
	if name == "" || name == "-" {
		return &Output{name: "stdout", w: bufio.NewWriter(os.Stdout)}, nil
	}

	f, err := os.Create(name)
	if err != nil {
		return nil, fmt.Errorf("open output %s: %w", name, err)
	}

	out := &Output{name: name, file: f}
	if strings.HasSuffix(name, ".gz") {
		zpr, err := pgzip.NewWriterLevel(f, pgzip.BestSpeed)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open output %s: %w", name, err)
		}
		out.zip = zpr
		out.w = bufio.NewWriter(zpr)
	} else {
		out.w = bufio.NewWriter(f)
	}
	return out, nil
}

// Write implements io.Writer.
func (out *Output) Write(p []byte) (int, error) {
	return out.w.Write(p)
}

// Name returns the stream name for diagnostics.
func (out *Output) Name() string {
	return out.name
}

// Close flushes buffered output and closes the compressor and file.
func (out *Output) Close() error {
	err := out.w.Flush()
	if out.zip != nil {
		if cerr := out.zip.Close(); err == nil {
			err = cerr
		}
	}
	if out.file != nil {
		if cerr := out.file.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
