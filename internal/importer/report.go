// internal/importer/report.go
package importer

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/vmunix/takeoutsort/internal/organizer"
)

// Report summarizes one run.
type Report struct {
	RunID  string `json:"run_id"`
	Source string `json:"source"`
	DryRun bool   `json:"dry_run"`

	Total   int `json:"total"`
	Kept    int `json:"kept"`
	Written int `json:"written"`

	// Skipped counts classifier skips by reason name.
	Skipped map[string]int `json:"skipped"`

	UnknownDate   int      `json:"unknown_date"`
	OrphanedEdits []string `json:"orphaned_edits,omitempty"`

	// Collisions counts placements that were already taken.
	// CollisionSkips is the subset dropped under CollisionSkip.
	Collisions     int `json:"collisions"`
	CollisionSkips int `json:"collision_skips"`

	Bytes    int64         `json:"bytes"`
	Errors   int           `json:"errors"`
	Duration time.Duration `json:"duration_ns"`
}

func newReport(runID, source string, dryRun bool) *Report {
	return &Report{
		RunID:   runID,
		Source:  source,
		DryRun:  dryRun,
		Skipped: make(map[string]int),
	}
}

// SkippedTotal returns the number of entries the classifier filtered.
func (r *Report) SkippedTotal() int {
	n := 0
	for _, c := range r.Skipped {
		n += c
	}
	return n
}

// Summary renders the report as human-readable lines.
func (r *Report) Summary() []string {
	verb := "organized"
	if r.DryRun {
		verb = "would organize"
	}

	lines := []string{
		fmt.Sprintf("Total files:    %d", r.Total),
		fmt.Sprintf("Organized:      %d (%s %s)", r.Written, verb, humanize.Bytes(uint64(r.Bytes))),
		fmt.Sprintf("Skipped:        %d", r.SkippedTotal()),
	}
	for _, reason := range organizer.Reasons() {
		if n := r.Skipped[reason.String()]; n > 0 {
			lines = append(lines, fmt.Sprintf("  %-22s %d", reason.String()+":", n))
		}
	}
	if r.UnknownDate > 0 {
		lines = append(lines, fmt.Sprintf("Unknown date:   %d", r.UnknownDate))
	}
	if r.Collisions > 0 {
		lines = append(lines, fmt.Sprintf("Name conflicts: %d (%d skipped)", r.Collisions, r.CollisionSkips))
	}
	if len(r.OrphanedEdits) > 0 {
		lines = append(lines, fmt.Sprintf("Edited copies without original: %d", len(r.OrphanedEdits)))
		for _, name := range r.OrphanedEdits {
			lines = append(lines, "  "+name)
		}
	}
	lines = append(lines, fmt.Sprintf("Errors:         %d", r.Errors))
	return lines
}
