package gffsort_test

import (
	"testing"

	"github.com/gfftools/gffsort"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		name   string
		want   gffsort.Mode
		wantOK bool
	}{
		{"gene", gffsort.ModeGene, true},
		{"pos", gffsort.ModePos, true},
		{"strand", gffsort.ModeStrand, true},
		{"genepos", gffsort.ModeGenePos, true},
		{"", gffsort.ModeGenePos, false},
		{"position", gffsort.ModeGenePos, false},
		{"GENE", gffsort.ModeGenePos, false}, // mode names are case-sensitive
	}

	for _, tt := range tests {
		got, ok := gffsort.ParseMode(tt.name)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseMode(%q) = (%v, %v), want (%v, %v)",
				tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestModeString(t *testing.T) {
	for _, name := range []string{"gene", "pos", "strand", "genepos"} {
		mode, _ := gffsort.ParseMode(name)
		if mode.String() != name {
			t.Errorf("Mode(%s).String() = %q", name, mode.String())
		}
	}
	if got := gffsort.Mode(99).String(); got != "genepos" {
		t.Errorf("out-of-range Mode.String() = %q, want fallback %q", got, "genepos")
	}
}

// The zero value of Mode must be the default ordering, so a zero
// Config sorts genepos.
func TestModeZeroValue(t *testing.T) {
	var mode gffsort.Mode
	if mode != gffsort.ModeGenePos {
		t.Errorf("zero Mode = %v, want ModeGenePos", mode)
	}
}
