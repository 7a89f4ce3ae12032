package gffsort_test

import (
	"bytes"
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/gfftools/gffsort"
)

// The worked scenario from the tool's contract: three chr1 records
// with distinct start/strand/gene combinations.
var scenario = []string{
	"chr1\t.\t.\t500\t.\t.\t+\t.\tgeneB;note1",
	"chr1\t.\t.\t100\t.\t.\t-\t.\tgeneA;note2",
	"chr1\t.\t.\t9\t.\t.\t+\t.\tgeneA;note3",
}

func TestSortScenario(t *testing.T) {
	tests := []struct {
		name string
		mode gffsort.Mode
		want []int // scenario indices in expected output order
	}{
		{
			name: "pos orders by start 9, 100, 500",
			mode: gffsort.ModePos,
			want: []int{2, 1, 0},
		},
		{
			name: "gene keeps equal-key input order then geneB",
			mode: gffsort.ModeGene,
			want: []int{1, 2, 0},
		},
		{
			name: "genepos breaks the geneA tie on start",
			mode: gffsort.ModeGenePos,
			want: []int{2, 1, 0},
		},
		{
			name: "strand orders plus before minus, start within strand",
			mode: gffsort.ModeStrand,
			want: []int{2, 0, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := gffsort.Sort(scenario, tt.mode)
			for i, idx := range tt.want {
				if got[i] != scenario[idx] {
					t.Errorf("position %d = %q, want %q", i, got[i], scenario[idx])
				}
			}
		})
	}
}

func TestSortCompleteness(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var lines []string
	for i := 0; i < 300; i++ {
		lines = append(lines, fmt.Sprintf("chr%d\t.\t.\t%d\t.\t.\t+\t.\tgene%d;i=%d",
			rng.Intn(3)+1, rng.Intn(1000), rng.Intn(20), i))
	}
	input := slices.Clone(lines)

	got := gffsort.Sort(lines, gffsort.ModeGenePos)

	if !slices.Equal(lines, input) {
		t.Error("Sort mutated its input slice")
	}
	counts := make(map[string]int)
	for _, l := range lines {
		counts[l]++
	}
	for _, l := range got {
		counts[l]--
	}
	for l, c := range counts {
		if c != 0 {
			t.Fatalf("line %q count off by %d", l, c)
		}
	}
}

func TestSortStability(t *testing.T) {
	// Overlapping exons: same sequence, gene, and start. Input order
	// must survive under every mode.
	lines := []string{
		"chr1\t.\t.\t100\t.\t.\t+\t.\tgeneA;first",
		"chr1\t.\t.\t100\t.\t.\t+\t.\tgeneA;second",
		"chr1\t.\t.\t100\t.\t.\t+\t.\tgeneA;third",
	}
	for _, mode := range []gffsort.Mode{
		gffsort.ModeGene, gffsort.ModePos, gffsort.ModeStrand, gffsort.ModeGenePos,
	} {
		got := gffsort.Sort(lines, mode)
		if !slices.Equal(got, lines) {
			t.Errorf("mode %v reordered equal-key records: %v", mode, got)
		}
	}
}

func TestSortNumericStart(t *testing.T) {
	// Regression against naive string comparison: "10" < "9" as
	// strings but 9 < 10 as coordinates.
	nine := "chr1\t.\t.\t9\t.\t.\t+\t.\tgeneA;x"
	ten := "chr1\t.\t.\t10\t.\t.\t+\t.\tgeneA;y"

	for _, mode := range []gffsort.Mode{gffsort.ModePos, gffsort.ModeStrand, gffsort.ModeGenePos} {
		got := gffsort.Sort([]string{ten, nine}, mode)
		if got[0] != nine {
			t.Errorf("mode %v: start 10 sorted before 9", mode)
		}
	}
}

func TestSortModeIndependence(t *testing.T) {
	byPos := gffsort.Sort(scenario, gffsort.ModePos)
	byStrand := gffsort.Sort(scenario, gffsort.ModeStrand)
	if slices.Equal(byPos, byStrand) {
		t.Error("pos and strand modes produced identical order on strand-mixed input")
	}
}

func TestUnknownModeMatchesGenePos(t *testing.T) {
	mode, ok := gffsort.ParseMode("bogus")
	if ok {
		t.Error(`ParseMode("bogus") reported ok`)
	}
	got := gffsort.Sort(scenario, mode)
	want := gffsort.Sort(scenario, gffsort.ModeGenePos)
	if !slices.Equal(got, want) {
		t.Error("unknown mode ordering differs from genepos")
	}
}

func runToString(t *testing.T, input string, config *gffsort.Config) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := gffsort.Run(strings.NewReader(input), &out, config)
	return out.String(), err
}

func TestRun(t *testing.T) {
	joined := strings.Join(scenario, "\n") + "\n"

	tests := []struct {
		name   string
		input  string
		config *gffsort.Config
		want   string
	}{
		{
			name:   "nil config sorts genepos",
			input:  joined,
			config: nil,
			want:   scenario[2] + "\n" + scenario[1] + "\n" + scenario[0] + "\n",
		},
		{
			name:   "pos mode",
			input:  joined,
			config: &gffsort.Config{Mode: gffsort.ModePos},
			want:   scenario[2] + "\n" + scenario[1] + "\n" + scenario[0] + "\n",
		},
		{
			name:   "missing final newline still terminated",
			input:  strings.Join(scenario, "\n"),
			config: nil,
			want:   scenario[2] + "\n" + scenario[1] + "\n" + scenario[0] + "\n",
		},
		{
			name:   "filter keeps matching attributes",
			input:  joined,
			config: &gffsort.Config{FilterPattern: "geneA"},
			want:   scenario[2] + "\n" + scenario[1] + "\n",
		},
		{
			name:   "inverted filter drops matching attributes",
			input:  joined,
			config: &gffsort.Config{FilterPattern: "geneA", InvertFilter: true},
			want:   scenario[0] + "\n",
		},
		{
			name:   "lenient malformed record emitted once, first",
			input:  scenario[0] + "\nshort line\n" + scenario[2] + "\n",
			config: nil,
			want:   "short line\n" + scenario[2] + "\n" + scenario[0] + "\n",
		},
		{
			name:   "empty input",
			input:  "",
			config: nil,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := runToString(t, tt.input, tt.config)
			if err != nil {
				t.Fatalf("Run error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Run output:\n%q\nwant:\n%q", got, tt.want)
			}
		})
	}
}

func TestRunStrict(t *testing.T) {
	input := scenario[0] + "\nnot\tenough\tfields\n" + scenario[2] + "\n"

	got, err := runToString(t, input, &gffsort.Config{Strict: true})
	if err == nil {
		t.Fatal("strict Run of malformed input succeeded, want error")
	}
	rec, ok := gffsort.IsRecordError(err)
	if !ok {
		t.Fatalf("error = %v, want *RecordError", err)
	}
	if rec.Line != 2 {
		t.Errorf("RecordError.Line = %d, want 2", rec.Line)
	}
	if rec.Text != "not\tenough\tfields" {
		t.Errorf("RecordError.Text = %q", rec.Text)
	}
	if got != "" {
		t.Errorf("strict failure produced output %q, want none", got)
	}
}

func TestRunStrictNonIntegerStart(t *testing.T) {
	input := "chr1\t.\t.\tabc\t.\t.\t+\t.\tgeneA;x\n"

	_, err := runToString(t, input, &gffsort.Config{Mode: gffsort.ModePos, Strict: true})
	if _, ok := gffsort.IsRecordError(err); !ok {
		t.Fatalf("error = %v, want *RecordError", err)
	}

	// The gene mode never reads starts, so the same record is fine.
	out, err := runToString(t, input, &gffsort.Config{Mode: gffsort.ModeGene, Strict: true})
	if err != nil {
		t.Fatalf("gene-mode Run error: %v", err)
	}
	if out != input {
		t.Errorf("gene-mode output = %q, want %q", out, input)
	}
}

func TestRunBadFilterPattern(t *testing.T) {
	_, err := runToString(t, "", &gffsort.Config{FilterPattern: "(unclosed"})
	if err == nil {
		t.Fatal("Run with invalid filter pattern succeeded, want error")
	}
	if _, ok := err.(*gffsort.FilterError); !ok {
		t.Errorf("error = %T, want *FilterError", err)
	}
}

func TestRunSpillMatchesInMemory(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	var sb strings.Builder
	for i := 0; i < 2000; i++ {
		fmt.Fprintf(&sb, "chr%d\t.\t.\t%d\t.\t.\t+\t.\tgene%02d;i=%d\n",
			rng.Intn(5)+1, rng.Intn(5000), rng.Intn(40), i)
	}
	input := sb.String()

	inMem, err := runToString(t, input, nil)
	if err != nil {
		t.Fatalf("in-memory Run: %v", err)
	}

	spilled, err := runToString(t, input, &gffsort.Config{
		MemoryLimit: 16 * 1024,
		TempDir:     t.TempDir(),
	})
	if err != nil {
		t.Fatalf("spilling Run: %v", err)
	}

	if spilled != inMem {
		t.Error("spill-backed Run output differs from in-memory Run")
	}
}
