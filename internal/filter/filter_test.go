package filter

import (
	"testing"
)

func TestKeep(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		invert  bool
		attrs   string
		want    bool
	}{
		{
			name:    "literal match kept",
			pattern: "protein_coding",
			attrs:   `gene_id "g1"; gene_biotype "protein_coding"`,
			want:    true,
		},
		{
			name:    "no match dropped",
			pattern: "protein_coding",
			attrs:   `gene_id "g1"; gene_biotype "rRNA"`,
			want:    false,
		},
		{
			name:    "inverted match dropped",
			pattern: "rRNA|Mt_tRNA",
			invert:  true,
			attrs:   `gene_id "g1"; gene_biotype "rRNA"`,
			want:    false,
		},
		{
			name:    "inverted no-match kept",
			pattern: "rRNA|Mt_tRNA",
			invert:  true,
			attrs:   `gene_id "g1"; gene_biotype "protein_coding"`,
			want:    true,
		},
		{
			name:    "anchored pattern",
			pattern: `^gene_id "ENSG`,
			attrs:   `gene_id "ENSG00000139618"; gene_name "BRCA2"`,
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.pattern, tt.invert)
			if err != nil {
				t.Fatalf("Compile(%q) error: %v", tt.pattern, err)
			}
			if got := f.Keep(tt.attrs); got != tt.want {
				t.Errorf("Keep(%q) = %v, want %v", tt.attrs, got, tt.want)
			}
			if f.Pattern() != tt.pattern {
				t.Errorf("Pattern() = %q, want %q", f.Pattern(), tt.pattern)
			}
		})
	}
}

func TestCompileError(t *testing.T) {
	if _, err := Compile("(unclosed", false); err == nil {
		t.Error("Compile of invalid pattern succeeded, want error")
	}
}
