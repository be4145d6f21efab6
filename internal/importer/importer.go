// Package importer copies the kept files of a Takeout export into the dated
// output tree and records what it did.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/vmunix/takeoutsort/internal/archive"
	"github.com/vmunix/takeoutsort/internal/metadata"
	"github.com/vmunix/takeoutsort/internal/organizer"
)

// Config for the importer.
type Config struct {
	// OutputRoot is the directory the dated tree is written under.
	OutputRoot string

	// FilterEnabled turns the classifier on.
	FilterEnabled bool

	// Classifier defaults to organizer.DefaultClassifier().
	Classifier *organizer.Classifier

	UnknownBucket string
	ReuseDateDirs bool
	Collision     CollisionPolicy

	// DryRun decides everything but writes nothing.
	DryRun bool

	// Workers bounds parallel metadata reads. Writes are always sequential.
	Workers int

	// RunID identifies the run in history. Empty generates one.
	RunID string
}

// Importer organizes one source at a time.
type Importer struct {
	cfg     Config
	history Store           // nil disables history
	cache   *metadata.Cache // nil disables caching
	log     *slog.Logger
}

// New creates a new importer. history and cache may be nil.
func New(cfg Config, history Store, cache *metadata.Cache, log *slog.Logger) *Importer {
	if cfg.Collision == "" {
		cfg.Collision = CollisionSuffix
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Importer{
		cfg:     cfg,
		history: history,
		cache:   cache,
		log:     log.With("component", "importer"),
	}
}

// Run organizes every entry of src. Per-entry failures are logged and
// counted in the report; only an unusable output root or cancellation make
// Run fail. On cancellation the partial report is returned with the error.
func (i *Importer) Run(ctx context.Context, src archive.Source) (*Report, error) {
	start := time.Now()

	runID := i.cfg.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	report := newReport(runID, src.Name(), i.cfg.DryRun)

	if err := i.prepareOutput(); err != nil {
		return nil, err
	}

	entries := src.Entries()
	report.Total = len(entries)
	i.log.Info("run started", "run_id", runID, "source", src.Name(), "entries", len(entries), "dry_run", i.cfg.DryRun)

	// Phase 1: Scan - every name goes into the filename set before any decision
	paths := make([]string, len(entries))
	for n, e := range entries {
		paths[n] = e.Path
	}
	resolver := &organizer.Resolver{UnknownBucket: i.cfg.UnknownBucket}
	if i.cfg.ReuseDateDirs {
		resolver.Lookup = NewDateDirs(i.cfg.OutputRoot)
	}
	batch := organizer.NewBatch(paths, organizer.Options{
		FilterEnabled: i.cfg.FilterEnabled,
		Classifier:    i.cfg.Classifier,
		Resolver:      resolver,
	})

	// Phase 2: Decide - read metadata, classify, resolve placements
	results, err := batch.Plan(ctx, len(entries), i.cfg.Workers, func(ctx context.Context, n int) (organizer.Entry, error) {
		meta, err := i.loadMetadata(ctx, src.Name(), entries[n])
		return organizer.Entry{Path: entries[n].Path, Metadata: meta}, err
	})
	if err != nil {
		report.Duration = time.Since(start)
		return report, err
	}

	// Phase 3: Write - sequential, in archive order
	cl := newClaims(i.cfg.OutputRoot, i.cfg.Collision)
	for n, res := range results {
		if err := ctx.Err(); err != nil {
			report.Duration = time.Since(start)
			return report, err
		}
		i.apply(ctx, report, cl, entries[n], res)
	}

	report.Duration = time.Since(start)
	i.log.Info("run complete",
		"run_id", runID,
		"total", report.Total,
		"written", report.Written,
		"skipped", report.SkippedTotal(),
		"errors", report.Errors,
		"duration", report.Duration)
	return report, nil
}

// prepareOutput makes sure the output root exists and is writable.
// A dry run only requires that it is not a regular file.
func (i *Importer) prepareOutput() error {
	root := i.cfg.OutputRoot
	if root == "" {
		return fmt.Errorf("%w: no output directory", ErrOutputUnwritable)
	}

	if i.cfg.DryRun {
		info, err := os.Stat(root)
		if err == nil && !info.IsDir() {
			return fmt.Errorf("%w: %s is not a directory", ErrOutputUnwritable, root)
		}
		return nil
	}

	if err := os.MkdirAll(root, 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputUnwritable, err)
	}
	if err := dirWritable(root); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputUnwritable, err)
	}
	return nil
}

// loadMetadata reads an entry's metadata, through the cache when configured.
// An image without metadata is not an error.
func (i *Importer) loadMetadata(ctx context.Context, source string, e archive.Entry) (*metadata.Metadata, error) {
	read := func() (*metadata.Metadata, error) {
		rc, err := e.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEntryUnreadable, err)
		}
		defer func() { _ = rc.Close() }()
		return metadata.Read(rc, metadata.DefaultReadLimit)
	}

	var meta *metadata.Metadata
	var err error
	if i.cache != nil {
		meta, err = i.cache.Load(ctx, metadata.Key(source, e.Path, e.Size, e.ModTime), read)
	} else {
		meta, err = read()
	}
	if errors.Is(err, metadata.ErrNoMetadata) {
		return nil, nil
	}
	if err != nil && meta != nil {
		// Cache write failed; the metadata itself is fine.
		i.log.Debug("metadata cache write failed", "entry", e.Path, "error", err)
		return meta, nil
	}
	return meta, err
}

// apply carries out one decision.
func (i *Importer) apply(ctx context.Context, report *Report, cl *claims, e archive.Entry, res organizer.Result) {
	rec := &Record{
		RunID:       report.RunID,
		Source:      report.Source,
		Entry:       e.Path,
		CaptureDate: res.Date.String(),
		DateSource:  res.DateSource.String(),
		SizeBytes:   e.Size,
		DryRun:      i.cfg.DryRun,
	}
	if res.Date.IsZero() {
		rec.CaptureDate = ""
	}

	if res.Err != nil {
		i.log.Warn("metadata unreadable, dating by file name", "entry", e.Path, "error", res.Err)
	}

	if !res.Kept() {
		report.Skipped[res.Decision.Reason.String()]++
		rec.Action = ActionSkip
		rec.Reason = res.Decision.Reason.String()
		i.log.Info("entry", "entry", e.Path, "action", ActionSkip, "reason", rec.Reason)
		i.record(ctx, rec)
		return
	}

	report.Kept++
	if res.Date.IsZero() {
		report.UnknownDate++
	}
	if res.OrphanedEdit {
		report.OrphanedEdits = append(report.OrphanedEdits, e.Path)
	}

	dest, size, err := i.place(cl, e, *res.Placement, report)
	switch {
	case err != nil:
		report.Errors++
		rec.Action = ActionError
		rec.Reason = err.Error()
		i.log.Warn("entry failed", "entry", e.Path, "error", err)
	case dest == "":
		rec.Action = ActionSkip
		rec.Reason = "DestinationExists"
		i.log.Info("entry", "entry", e.Path, "action", ActionSkip, "reason", rec.Reason)
	default:
		report.Written++
		report.Bytes += size
		rec.Action = ActionKeep
		rec.Destination = dest
		rec.SizeBytes = size
		i.log.Info("entry", "entry", e.Path, "action", ActionKeep, "dest", dest)
	}
	i.record(ctx, rec)
}

// place reserves the destination and copies the entry there. It returns the
// destination relative to the output root, or "" when the collision policy
// dropped the entry.
func (i *Importer) place(cl *claims, e archive.Entry, p organizer.Placement, report *Report) (string, int64, error) {
	p.Filename = SanitizeFilename(p.Filename)
	if p.Filename == "" {
		return "", 0, fmt.Errorf("%w: empty file name", ErrPathTraversal)
	}
	rel := p.Path()
	if _, err := SafeJoin(i.cfg.OutputRoot, rel); err != nil {
		return "", 0, err
	}

	c, err := cl.reserve(rel)
	if err != nil {
		return "", 0, err
	}
	if c.Collided {
		report.Collisions++
	}
	if c.Skip {
		report.CollisionSkips++
		return "", 0, nil
	}

	dst, err := SafeJoin(i.cfg.OutputRoot, c.Rel)
	if err != nil {
		return "", 0, err
	}
	if i.cfg.DryRun {
		return c.Rel, e.Size, nil
	}

	rc, err := e.Open()
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrEntryUnreadable, err)
	}
	defer func() { _ = rc.Close() }()

	var size int64
	if c.Replace {
		size, err = ReplaceFile(rc, dst)
	} else {
		size, err = WriteFile(rc, dst)
	}
	if err != nil {
		return "", 0, err
	}
	return c.Rel, size, nil
}

// record adds rec to history. Failures are logged, not returned.
func (i *Importer) record(ctx context.Context, rec *Record) {
	if i.history == nil {
		return
	}
	if err := i.history.Add(ctx, rec); err != nil {
		i.log.Warn("record history failed", "entry", rec.Entry, "error", err)
	}
}
