package gffsort

import (
	"github.com/gfftools/gffsort/internal/sortkey"
)

// Mode selects which record fields compose the sort key and in what
// order. The zero value is ModeGenePos, the default ordering.
type Mode int

const (
	// ModeGenePos sorts by (sequence, gene, start).
	ModeGenePos Mode = iota
	// ModeGene sorts by (sequence, gene).
	ModeGene
	// ModePos sorts by (sequence, start).
	ModePos
	// ModeStrand sorts by (sequence, strand, start).
	ModeStrand
)

// ParseMode maps a mode name to its Mode. Any unrecognized name
// selects ModeGenePos with ok=false: callers may warn, but the key
// set chosen for a given name never varies.
func ParseMode(name string) (mode Mode, ok bool) {
	switch name {
	case "gene":
		return ModeGene, true
	case "pos":
		return ModePos, true
	case "strand":
		return ModeStrand, true
	case "genepos":
		return ModeGenePos, true
	}
	return ModeGenePos, false
}

// String returns the mode's CLI name.
func (m Mode) String() string {
	switch m {
	case ModeGene:
		return "gene"
	case ModePos:
		return "pos"
	case ModeStrand:
		return "strand"
	default:
		return "genepos"
	}
}

// components returns the ordered key component list for the mode.
// Unknown values fall back to the genepos components.
func (m Mode) components() sortkey.Spec {
	switch m {
	case ModeGene:
		return sortkey.Spec{sortkey.BySeq, sortkey.ByGene}
	case ModePos:
		return sortkey.Spec{sortkey.BySeq, sortkey.ByStart}
	case ModeStrand:
		return sortkey.Spec{sortkey.BySeq, sortkey.ByStrand, sortkey.ByStart}
	default:
		return sortkey.Spec{sortkey.BySeq, sortkey.ByGene, sortkey.ByStart}
	}
}
