package gffsort

import (
	"bufio"
	"fmt"
	"io"

	"github.com/gfftools/gffsort/internal/extsort"
	"github.com/gfftools/gffsort/internal/filter"
	"github.com/gfftools/gffsort/internal/gffio"
	"github.com/gfftools/gffsort/internal/sortkey"
)

// Version is the gffsort version string.
const Version = "0.1.0"

// Sort returns lines reordered so that adjacent pairs compare
// non-descending under mode's composite key. The sort is stable and
// pure: no line is dropped, duplicated, or altered, and the input
// slice is left untouched.
//
// Malformed lines are handled leniently: they receive sentinel key
// components and sort ahead of well-formed records. For strict
// rejection, filtering, or inputs too large for memory, use Run.
func Sort(lines []string, mode Mode) []string {
	spec := mode.components()

	items := make([]extsort.Item, len(lines))
	for i, line := range lines {
		items[i] = extsort.Item{Line: line, Key: sortkey.Extract(line, spec)}
	}
	extsort.SortItems(items, spec, 1)

	sorted := make([]string, len(lines))
	for i, it := range items {
		sorted[i] = it.Line
	}
	return sorted
}

// Run reads tab-delimited records from input, sorts them under the
// configured mode, and writes them to output, one per line.
//
// Input is consumed exactly once; output is written only after every
// record has been read, so input and output may not alias the same
// file but the operation never interleaves partial results with
// parse failures. Inputs exceeding Config.MemoryLimit sort via
// compressed spill chunks on disk with no change in ordering.
//
// If config is nil, defaults are used.
func Run(input io.Reader, output io.Writer, config *Config) error {
	if config == nil {
		config = &Config{}
	}
	spec := config.Mode.components()

	var flt *filter.Filter
	if config.FilterPattern != "" {
		f, err := filter.Compile(config.FilterPattern, config.InvertFilter)
		if err != nil {
			return &FilterError{Pattern: config.FilterPattern, Message: err.Error()}
		}
		flt = f
	}

	sorter := extsort.New(extsort.Options{
		Spec:        spec,
		Workers:     config.Workers,
		MemoryLimit: config.MemoryLimit,
		TempDir:     config.TempDir,
	})
	defer sorter.Close()

	scan := gffio.NewLineScanner(input)
	lineNo := 0
	for scan.Scan() {
		lineNo++
		line := scan.Text()
		key := sortkey.Extract(line, spec)

		if !key.Valid {
			if config.Strict {
				return &RecordError{Line: lineNo, Text: line, Reason: key.Reason}
			}
		} else if flt != nil && !flt.Keep(key.Attrs) {
			continue
		}

		if err := sorter.Add(extsort.Item{Line: line, Key: key}); err != nil {
			return err
		}
	}
	if err := scan.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	w := bufio.NewWriter(output)
	if err := sorter.WriteSorted(w); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
