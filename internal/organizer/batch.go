package organizer

import (
	"context"
	"iter"

	"github.com/vmunix/takeoutsort/internal/metadata"
	"github.com/vmunix/takeoutsort/pkg/photodate"
	"golang.org/x/sync/errgroup"
)

// ExtractDate resolves an entry's capture date from its metadata timestamp,
// falling back to the file name. It never fails: an unresolvable date is the
// zero Date with SourceUnknown.
func ExtractDate(name string, meta *metadata.Metadata) (photodate.Date, photodate.Source) {
	var ts string
	if meta != nil {
		ts = meta.DateTimeOriginal
	}
	return photodate.Extract(Basename(name), ts)
}

// Result is the decision for one entry. Placement is nil for skipped files.
type Result struct {
	Entry      Entry
	Date       photodate.Date
	DateSource photodate.Source
	Decision   Decision
	Placement  *Placement

	// OrphanedEdit marks a kept edited copy whose original is not in the batch.
	OrphanedEdit bool

	// Err records why metadata could not be read. The entry was still
	// decided, from its file name alone.
	Err error
}

// Kept reports whether the entry has a placement.
func (r Result) Kept() bool {
	return r.Decision.Kept()
}

// Options configure a Batch.
type Options struct {
	// FilterEnabled turns the classifier on. False keeps every file.
	FilterEnabled bool

	// Classifier defaults to DefaultClassifier().
	Classifier *Classifier

	// Resolver defaults to the zero Resolver.
	Resolver *Resolver
}

// Batch holds the filename set of one import run. Create it with every path
// of the run before deciding any entry.
type Batch struct {
	names      *FilenameSet
	classifier *Classifier
	resolver   *Resolver
	filter     bool
}

// NewBatch scans all paths into the filename set.
func NewBatch(paths []string, opts Options) *Batch {
	if opts.Classifier == nil {
		opts.Classifier = DefaultClassifier()
	}
	if opts.Resolver == nil {
		opts.Resolver = &Resolver{}
	}
	return &Batch{
		names:      NewFilenameSet(paths),
		classifier: opts.Classifier,
		resolver:   opts.Resolver,
		filter:     opts.FilterEnabled,
	}
}

// Names returns the batch's filename set.
func (b *Batch) Names() *FilenameSet {
	return b.names
}

// Decide extracts the date, classifies and, for kept files, resolves the
// placement of one entry. It is safe for concurrent use.
func (b *Batch) Decide(e Entry) Result {
	date, src := ExtractDate(e.Path, e.Metadata)
	res := Result{
		Entry:      e,
		Date:       date,
		DateSource: src,
		Decision:   b.classifier.Classify(e, b.names, b.filter),
	}
	if !res.Decision.Kept() {
		return res
	}
	p := b.resolver.Resolve(date, e.Path)
	res.Placement = &p
	res.OrphanedEdit = b.classifier.isOrphanedEdit(e, b.names)
	return res
}

// Process decides entries in order with the default rules. The filename set
// is built from all entries before the first result is produced. The
// sequence is lazy; ranging over it again re-decides with the same set.
func Process(entries []Entry, filterEnabled bool) iter.Seq[Result] {
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	b := NewBatch(paths, Options{FilterEnabled: filterEnabled})
	return b.All(entries)
}

// All decides entries lazily, in order.
func (b *Batch) All(entries []Entry) iter.Seq[Result] {
	return func(yield func(Result) bool) {
		for _, e := range entries {
			if !yield(b.Decide(e)) {
				return
			}
		}
	}
}

// LoadFunc produces the i-th entry, typically reading its metadata.
// A returned error is kept on the Result; the entry is still decided.
type LoadFunc func(ctx context.Context, i int) (Entry, error)

// Plan loads and decides n entries with up to workers goroutines. Results
// keep input order. Only context cancellation makes Plan fail.
func (b *Batch) Plan(ctx context.Context, n, workers int, load LoadFunc) ([]Result, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]Result, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			e, err := load(gctx, i)
			res := b.Decide(e)
			res.Err = err
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
