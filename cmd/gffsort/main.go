// gffsort - sort tab-delimited genomic annotation records.
//
// Reads GFF/GTF-style lines from stdin or files, sorts them by the
// selected composite key ordering, and writes them to stdout or a
// file. Transparent gzip on any name ending in ".gz".
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin"
	"github.com/fatih/color"

	"github.com/gfftools/gffsort"
	"github.com/gfftools/gffsort/internal/gffio"
)

// version is set by the release build via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	app = kingpin.New("gffsort", "Sort tab-delimited genomic annotation (GFF/GTF) records by composite key orderings.")

	modeArg  = app.Arg("mode", "key ordering: gene, pos, strand, or genepos (default: genepos; unrecognized names warn and use genepos)").String()
	fileArgs = app.Arg("files", "input files, .gz accepted (default: stdin)").Strings()

	outputFlag = app.Flag("output", "output file, .gz accepted (default: stdout)").Short('o').PlaceHolder("FILE").String()
	strictFlag = app.Flag("strict", "reject the run on records with fewer than 9 fields or a non-integer start coordinate").Bool()
	filterFlag = app.Flag("filter", "keep only records whose attribute column matches this regular expression").PlaceHolder("REGEX").String()
	invertFlag = app.Flag("invert-filter", "drop records matching --filter instead of keeping them").Bool()

	workersFlag = app.Flag("workers", "parallel sort workers (default: one per physical core)").Int()
	memoryFlag  = app.Flag("memory-limit", "bytes held in memory before spilling sorted chunks to disk, e.g. 512MB (default: 1/8 of RAM)").Bytes()
	tempFlag    = app.Flag("temp-dir", "directory for spill chunks (default: system temp)").PlaceHolder("DIR").String()
)

func main() {
	app.Version(fmt.Sprintf("gffsort %s (commit %s, built %s)", version, commit, date))
	app.HelpFlag.Short('h')
	kingpin.MustParse(app.Parse(os.Args[1:]))

	mode := gffsort.ModeGenePos
	if *modeArg != "" {
		m, ok := gffsort.ParseMode(*modeArg)
		if !ok {
			warnf("unrecognized sort mode %q, using genepos", *modeArg)
		}
		mode = m
	}

	input, closeInputs := openInputs(*fileArgs)
	defer closeInputs()

	out, err := gffio.OpenOutput(*outputFlag)
	if err != nil {
		errorExit(err)
	}

	config := &gffsort.Config{
		Mode:          mode,
		Strict:        *strictFlag,
		FilterPattern: *filterFlag,
		InvertFilter:  *invertFlag,
		Workers:       *workersFlag,
		MemoryLimit:   uint64(*memoryFlag),
		TempDir:       *tempFlag,
	}

	if err := gffsort.Run(input, out, config); err != nil {
		out.Close()
		if rec, ok := gffsort.IsRecordError(err); ok {
			errorExitf("%v\n  %s", rec, rec.Text)
		}
		errorExit(err)
	}

	// A failed flush is the last chance to notice a full disk or a
	// broken pipe; treat it like any other I/O error.
	if err := out.Close(); err != nil {
		errorExitf("write %s: %v", out.Name(), err)
	}
}

// openInputs opens every named input, concatenated in argument order,
// or stdin when none are given.
func openInputs(names []string) (io.Reader, func()) {
	if len(names) == 0 {
		return os.Stdin, func() {}
	}

	inputs := make([]*gffio.Input, 0, len(names))
	readers := make([]io.Reader, 0, len(names))
	for _, name := range names {
		in, err := gffio.OpenInput(name)
		if err != nil {
			for _, open := range inputs {
				open.Close()
			}
			errorExit(err)
		}
		inputs = append(inputs, in)
		readers = append(readers, in)
	}

	closeAll := func() {
		for _, in := range inputs {
			in.Close()
		}
	}
	return io.MultiReader(readers...), closeAll
}

// warnf prints a warning to stderr without stopping the run.
func warnf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s "+format+"\n",
		append([]interface{}{color.YellowString("gffsort:")}, args...)...)
}

// errorExitf prints a formatted error message and exits with code 1.
func errorExitf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s "+format+"\n",
		append([]interface{}{color.RedString("gffsort:")}, args...)...)
	os.Exit(1)
}

// errorExit prints an error and exits with code 1.
func errorExit(err error) {
	errorExitf("%v", err)
}
