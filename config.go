package gffsort

// Config holds options for stream sorting with Run.
// The zero value selects the default genepos ordering with lenient
// parsing and automatic resource limits.
type Config struct {
	// Mode is the key ordering (default: ModeGenePos).
	Mode Mode

	// Strict rejects the whole run on the first malformed record.
	// When false (default), malformed records receive sentinel key
	// components, sort ahead of well-formed records, and are emitted
	// exactly once in input-relative order among themselves.
	Strict bool

	// FilterPattern, when non-empty, is a regular expression applied
	// to the attribute column (field 9); records that do not match are
	// dropped before sorting. Malformed records are never filtered —
	// their fate is decided by the Strict policy alone.
	FilterPattern string

	// InvertFilter drops matching records instead of keeping them.
	InvertFilter bool

	// Workers caps the parallel sort goroutines.
	// Zero means one per physical core.
	Workers int

	// MemoryLimit is the approximate number of bytes held in memory
	// before sorted chunks spill to disk. Zero means an eighth of
	// total system memory, at least 64 MB.
	MemoryLimit uint64

	// TempDir is the parent directory for spill chunks.
	// Empty means the system temporary directory.
	TempDir string
}
