// Package gffsort sorts tab-delimited genomic annotation records
// (GFF/GTF style) by domain-specific composite key orderings.
//
// A record's key is derived from the sequence name (column 1), the
// start coordinate (column 4), the strand (column 7), and the gene
// identifier, taken as the first semicolon-delimited token of the
// attribute column (column 9). Four orderings are available:
//
//   - [ModeGene]:    (sequence, gene)
//   - [ModePos]:     (sequence, start)
//   - [ModeStrand]:  (sequence, strand, start)
//   - [ModeGenePos]: (sequence, gene, start) — the default
//
// String components compare byte-wise (ordinal, locale-independent)
// and the start coordinate compares numerically. Sorting is stable:
// records with equal keys keep their input order, so output is
// reproducible across runs and platforms.
//
// # Quick Start
//
// For in-memory sorting of lines already in hand:
//
//	sorted := gffsort.Sort(lines, gffsort.ModePos)
//
// # Streams
//
// For full stream processing — reading, optional attribute filtering,
// sorting (spilling to disk past a memory budget), and writing:
//
//	err := gffsort.Run(os.Stdin, os.Stdout, &gffsort.Config{
//	    Mode:          gffsort.ModeGenePos,
//	    FilterPattern: `gene_biotype "protein_coding"`,
//	})
//
// # Malformed Records
//
// A record with fewer than nine tab-separated fields, or a
// non-integer start coordinate under a mode that compares starts, is
// malformed. By default such records receive sentinel key components
// that order them ahead of well-formed records, and they pass through
// exactly once; with Config.Strict the first malformed record aborts
// the run with a [RecordError].
//
// # Concurrency
//
// Sorting may partition large inputs across worker goroutines and
// merge the results; this never changes the output. Config.Workers
// caps the worker count.
package gffsort
