package organizer

import (
	"fmt"
	"path"

	"github.com/vmunix/takeoutsort/pkg/photodate"
)

// DefaultUnknownBucket is the folder for files whose date cannot be resolved.
const DefaultUnknownBucket = "unknown"

// Placement is the output location of a kept file, relative to the output root.
// Year is empty for files in the unknown-date bucket.
type Placement struct {
	Year       string
	DateFolder string
	Filename   string
}

// Path joins the placement with forward slashes.
func (p Placement) Path() string {
	if p.Year == "" {
		return path.Join(p.DateFolder, p.Filename)
	}
	return path.Join(p.Year, p.DateFolder, p.Filename)
}

// Dir returns the placement without its file name.
func (p Placement) Dir() string {
	return path.Dir(p.Path())
}

func (p Placement) String() string {
	return p.Path()
}

// DirLookup finds an existing folder for a date in the output tree, such as
// "2014-09-29 Birthday" for date "2014-09-29" under year "2014".
type DirLookup interface {
	DateDir(year, date string) (string, bool)
}

// Resolver computes placements.
type Resolver struct {
	// Lookup, when set, lets a placement reuse an existing date folder.
	Lookup DirLookup

	// UnknownBucket names the folder for undated files.
	// Empty uses DefaultUnknownBucket.
	UnknownBucket string
}

// Resolve builds YYYY/YYYY-MM-DD/<basename> for date. Nested archive
// directories are flattened. An unknown date yields <bucket>/<basename>.
func (r *Resolver) Resolve(date photodate.Date, entryPath string) Placement {
	name := Basename(entryPath)
	if date.IsZero() || !date.Valid() {
		bucket := DefaultUnknownBucket
		if r != nil && r.UnknownBucket != "" {
			bucket = r.UnknownBucket
		}
		return Placement{DateFolder: bucket, Filename: name}
	}

	year := fmt.Sprintf("%04d", date.Year)
	folder := date.String()
	if r != nil && r.Lookup != nil {
		if existing, ok := r.Lookup.DateDir(year, folder); ok {
			folder = existing
		}
	}
	return Placement{Year: year, DateFolder: folder, Filename: name}
}

// Resolve builds a placement with no folder reuse and the default bucket.
func Resolve(date photodate.Date, entryPath string) Placement {
	var r *Resolver
	return r.Resolve(date, entryPath)
}
