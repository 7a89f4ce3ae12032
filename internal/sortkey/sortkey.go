// Package sortkey derives composite sort keys from tab-delimited
// annotation records (GFF/GTF style) and compares them.
//
// Key derivation never mutates or re-serializes the record; it only
// slices the sub-fields a mode's component list asks for. All string
// comparisons are ordinal (byte-wise), never locale-aware, so output
// order is reproducible across platforms.
package sortkey

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// Component identifies one element of a composite sort key.
type Component uint8

const (
	// BySeq compares the sequence (chromosome) name, field 1.
	BySeq Component = iota
	// ByGene compares the gene identifier, the first semicolon-delimited
	// token of the attribute column (field 9), taken verbatim.
	ByGene
	// ByStrand compares the strand, field 7, as an opaque string.
	ByStrand
	// ByStart compares the start coordinate, field 4, numerically.
	ByStart
)

// Spec is an ordered list of key components. Earlier components are
// more significant.
type Spec []Component

// NeedsStart reports whether the spec compares the start coordinate,
// and therefore whether a non-integer field 4 makes a record malformed.
func (s Spec) NeedsStart() bool {
	for _, c := range s {
		if c == ByStart {
			return true
		}
	}
	return false
}

// minFields is the number of tab-separated fields a record must have
// for key derivation; the attribute column is the ninth.
const minFields = 9

// startSentinel orders records without a usable coordinate ahead of
// every real one.
const startSentinel = -1 << 63

// Key is a composite sort key derived from one record.
//
// For a malformed record (see Extract) the comparable components hold
// sentinel values: empty strings and startSentinel. Empty string
// orders before any non-empty field and the sentinel before any
// integer coordinate, so malformed records group at the front of the
// output while staying in input-relative order among themselves.
type Key struct {
	Seq    string
	Gene   string
	Strand string
	Start  int64

	// Attrs is the full attribute column, kept for filtering.
	// Empty for records with fewer than nine fields.
	Attrs string

	// Valid is false for malformed records; Reason says why.
	Valid  bool
	Reason string
}

// Extract derives the composite key for line under spec.
//
// A record is malformed when it has fewer than nine tab-separated
// fields, or when spec compares the start coordinate and field 4 is
// not a valid integer. Malformed records get sentinel components and
// Valid=false; the caller decides whether that is fatal.
func Extract(line string, spec Spec) Key {
	var fields [minFields]string
	n := 0
	pos := 0
	for n < minFields {
		i := strings.IndexByte(line[pos:], '\t')
		if i < 0 {
			fields[n] = line[pos:]
			n++
			break
		}
		fields[n] = line[pos : pos+i]
		n++
		pos += i + 1
	}

	if n < minFields {
		return Key{
			Start:  startSentinel,
			Reason: fmt.Sprintf("%d of %d required tab-separated fields", n, minFields),
		}
	}

	attrs := fields[8]
	gene := attrs
	if i := strings.IndexByte(attrs, ';'); i >= 0 {
		gene = attrs[:i]
	}

	start := int64(startSentinel)
	if v, err := strconv.ParseInt(fields[3], 10, 64); err == nil {
		start = v
	} else if spec.NeedsStart() {
		return Key{
			Start:  startSentinel,
			Attrs:  attrs,
			Reason: fmt.Sprintf("start coordinate %q is not an integer", fields[3]),
		}
	}

	return Key{
		Seq:    fields[0],
		Gene:   gene,
		Strand: fields[6],
		Start:  start,
		Attrs:  attrs,
		Valid:  true,
	}
}

// Compare orders a before b when the first differing component of
// spec is smaller in a. Strings compare byte-wise; Start compares as
// an integer, so coordinate 9 orders before 10.
func Compare(a, b Key, spec Spec) int {
	for _, c := range spec {
		var d int
		switch c {
		case BySeq:
			d = strings.Compare(a.Seq, b.Seq)
		case ByGene:
			d = strings.Compare(a.Gene, b.Gene)
		case ByStrand:
			d = strings.Compare(a.Strand, b.Strand)
		case ByStart:
			d = cmp.Compare(a.Start, b.Start)
		}
		if d != 0 {
			return d
		}
	}
	return 0
}
