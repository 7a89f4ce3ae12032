// Package extsort stably sorts annotation records by composite key.
//
// Small inputs sort in memory, optionally across several workers.
// When queued records exceed the memory budget, sorted chunks spill to
// gzip-compressed temporary files and the final output is produced by
// a k-way heap merge over the chunks. Both paths yield byte-identical,
// stable output.
package extsort

import (
	"bufio"
	"container/heap"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/klauspost/cpuid"
	"github.com/klauspost/pgzip"
	"github.com/pbnjay/memory"

	"github.com/gfftools/gffsort/internal/gffio"
	"github.com/gfftools/gffsort/internal/sortkey"
)

// Item is one record queued for sorting: the original line, emitted
// unchanged, and its precomputed composite key.
type Item struct {
	Line string
	Key  sortkey.Key
}

// Options configures a Sorter. Zero values select defaults.
type Options struct {
	// Spec is the composite key component order.
	Spec sortkey.Spec

	// Workers is the number of parallel sort goroutines.
	// Default: one per physical core.
	Workers int

	// MemoryLimit is the approximate number of bytes held in memory
	// before a sorted chunk spills to disk.
	// Default: an eighth of total system memory, at least 64 MB.
	MemoryLimit uint64

	// TempDir is the parent directory for spill chunks.
	// Default: the system temporary directory.
	TempDir string
}

// minMemoryLimit keeps the spill threshold useful on small machines.
const minMemoryLimit = 64 << 20

// itemOverhead approximates per-record bookkeeping bytes beyond the
// line text (string headers, key fields, slice growth).
const itemOverhead = 96

// DefaultWorkers returns one worker per physical core; hyperthread
// siblings contend on memory bandwidth during merges rather than
// helping.
func DefaultWorkers() int {
	workers := runtime.NumCPU()
	if cpuid.CPU.ThreadsPerCore > 1 {
		workers /= cpuid.CPU.ThreadsPerCore
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// DefaultMemoryLimit returns the default spill threshold.
func DefaultMemoryLimit() uint64 {
	limit := memory.TotalMemory() / 8
	if limit < minMemoryLimit {
		limit = minMemoryLimit
	}
	return limit
}

// Sorter accumulates records with Add and emits them in key order
// with WriteSorted. It is single-use and not safe for concurrent Add.
type Sorter struct {
	opts   Options
	items  []Item
	bytes  uint64
	dir    string
	chunks []string
}

// New returns a Sorter with defaults applied to opts.
func New(opts Options) *Sorter {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers()
	}
	if opts.MemoryLimit == 0 {
		opts.MemoryLimit = DefaultMemoryLimit()
	}
	return &Sorter{opts: opts}
}

// Add queues one record, spilling a sorted chunk to disk when the
// memory budget is exceeded.
func (s *Sorter) Add(it Item) error {
	s.items = append(s.items, it)
	s.bytes += uint64(len(it.Line)) + itemOverhead
	if s.bytes >= s.opts.MemoryLimit {
		return s.spill()
	}
	return nil
}

// WriteSorted emits every queued record to w in non-descending key
// order. Records with equal keys keep their Add order. Spill files
// are removed before returning.
func (s *Sorter) WriteSorted(w io.Writer) error {
	defer s.Close()

	if len(s.chunks) == 0 {
		SortItems(s.items, s.opts.Spec, s.opts.Workers)
		for _, it := range s.items {
			if err := writeLine(w, it.Line); err != nil {
				return err
			}
		}
		return nil
	}

	// Remaining in-memory records become the final chunk so the merge
	// tie-break on chunk index preserves input order throughout.
	if err := s.spill(); err != nil {
		return err
	}
	return s.merge(w)
}

// Close removes the spill directory, if any. WriteSorted calls it;
// callers abandoning a Sorter early should too.
func (s *Sorter) Close() error {
	if s.dir == "" {
		return nil
	}
	dir := s.dir
	s.dir = ""
	return os.RemoveAll(dir)
}

// spill sorts the queued records and writes them to a compressed
// chunk file, emptying the in-memory queue.
func (s *Sorter) spill() error {
	if len(s.items) == 0 {
		return nil
	}
	SortItems(s.items, s.opts.Spec, s.opts.Workers)

	if s.dir == "" {
		dir, err := os.MkdirTemp(s.opts.TempDir, "gffsort-")
		if err != nil {
			return fmt.Errorf("create spill directory: %w", err)
		}
		s.dir = dir
	}

	path := filepath.Join(s.dir, fmt.Sprintf("chunk-%04d.gz", len(s.chunks)))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create spill chunk: %w", err)
	}
	zpr, err := pgzip.NewWriterLevel(f, pgzip.BestSpeed)
	if err != nil {
		f.Close()
		return fmt.Errorf("create spill compressor: %w", err)
	}
	bw := bufio.NewWriter(zpr)

	for _, it := range s.items {
		if err := writeLine(bw, it.Line); err != nil {
			zpr.Close()
			f.Close()
			return err
		}
	}

	err = bw.Flush()
	if cerr := zpr.Close(); err == nil {
		err = cerr
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write spill chunk %s: %w", path, err)
	}

	s.chunks = append(s.chunks, path)
	s.items = s.items[:0]
	s.bytes = 0
	return nil
}

func writeLine(w io.Writer, line string) error {
	if _, err := io.WriteString(w, line); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// chunkCursor streams one spill chunk back in its sorted order.
type chunkCursor struct {
	id   int
	file *os.File
	zip  *pgzip.Reader
	scan *bufio.Scanner
	line string
	key  sortkey.Key
}

func openChunk(id int, path string) (*chunkCursor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open spill chunk %s: %w", path, err)
	}
	zpr, err := pgzip.NewReader(bufio.NewReader(f))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open spill chunk %s: %w", path, err)
	}
	return &chunkCursor{
		id:   id,
		file: f,
		zip:  zpr,
		scan: gffio.NewLineScanner(zpr),
	}, nil
}

// next advances to the following record, re-deriving its key.
// Malformed records round-trip to the same sentinel key they were
// sorted under.
func (c *chunkCursor) next(spec sortkey.Spec) (bool, error) {
	if !c.scan.Scan() {
		return false, c.scan.Err()
	}
	c.line = c.scan.Text()
	c.key = sortkey.Extract(c.line, spec)
	return true, nil
}

func (c *chunkCursor) close() error {
	err := c.zip.Close()
	if cerr := c.file.Close(); err == nil {
		err = cerr
	}
	return err
}

// chunkHeap orders cursors by current key, breaking ties on chunk
// index so earlier input keeps precedence across chunk boundaries.
type chunkHeap struct {
	cursors []*chunkCursor
	spec    sortkey.Spec
}

func (h *chunkHeap) Len() int {
	return len(h.cursors)
}

func (h *chunkHeap) Less(i, j int) bool {
	a, b := h.cursors[i], h.cursors[j]
	if d := sortkey.Compare(a.key, b.key, h.spec); d != 0 {
		return d < 0
	}
	return a.id < b.id
}

func (h *chunkHeap) Swap(i, j int) {
	h.cursors[i], h.cursors[j] = h.cursors[j], h.cursors[i]
}

func (h *chunkHeap) Push(x any) {
	h.cursors = append(h.cursors, x.(*chunkCursor))
}

func (h *chunkHeap) Pop() any {
	old := h.cursors
	n := len(old)
	x := old[n-1]
	h.cursors = old[:n-1]
	return x
}

// merge streams all spill chunks to w in globally sorted order.
func (s *Sorter) merge(w io.Writer) (err error) {
	h := &chunkHeap{spec: s.opts.Spec}

	defer func() {
		for _, cur := range h.cursors {
			if cerr := cur.close(); err == nil {
				err = cerr
			}
		}
	}()

	for i, path := range s.chunks {
		cur, err := openChunk(i, path)
		if err != nil {
			return err
		}
		ok, err := cur.next(s.opts.Spec)
		if err != nil {
			cur.close()
			return fmt.Errorf("read spill chunk %s: %w", path, err)
		}
		if !ok {
			cur.close()
			continue
		}
		h.cursors = append(h.cursors, cur)
	}
	heap.Init(h)

	for h.Len() > 0 {
		cur := h.cursors[0]
		if err := writeLine(w, cur.line); err != nil {
			return err
		}
		ok, err := cur.next(s.opts.Spec)
		if err != nil {
			return fmt.Errorf("read spill chunk: %w", err)
		}
		if ok {
			heap.Fix(h, 0)
		} else {
			heap.Pop(h)
			if err := cur.close(); err != nil {
				return err
			}
		}
	}
	return nil
}
