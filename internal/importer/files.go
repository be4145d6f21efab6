// internal/importer/files.go
package importer

import (
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// DateDirs finds existing date folders in the output tree so new files join
// folders a user already renamed, such as "2014-09-29 Birthday". Each year
// directory is read once. Safe for concurrent use.
type DateDirs struct {
	root string

	mu    sync.Mutex
	years map[string]map[string]string // year -> date -> folder
}

// NewDateDirs creates a lookup over root.
func NewDateDirs(root string) *DateDirs {
	return &DateDirs{root: root, years: make(map[string]map[string]string)}
}

// DateDir returns the folder under <root>/<year> for date: the exact
// "YYYY-MM-DD" folder if present, otherwise the first folder in lexical order
// whose name starts with the date followed by a non-digit.
func (d *DateDirs) DateDir(year, date string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	dirs, ok := d.years[year]
	if !ok {
		dirs = scanYear(filepath.Join(d.root, year))
		d.years[year] = dirs
	}
	folder, ok := dirs[date]
	return folder, ok
}

// scanYear maps dates to folder names. A missing directory yields an empty map.
func scanYear(dir string) map[string]string {
	dirs := make(map[string]string)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return dirs
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		date, ok := datePrefix(name)
		if !ok {
			continue
		}
		// Sorted, so an exact "YYYY-MM-DD" precedes its longer variants.
		if _, seen := dirs[date]; !seen {
			dirs[date] = name
		}
	}
	return dirs
}

// datePrefix extracts a leading YYYY-MM-DD from a folder name.
func datePrefix(name string) (string, bool) {
	if len(name) < 10 {
		return "", false
	}
	for i, c := range name[:10] {
		switch i {
		case 4, 7:
			if c != '-' {
				return "", false
			}
		default:
			if c < '0' || c > '9' {
				return "", false
			}
		}
	}
	if len(name) > 10 {
		if c := name[10]; c >= '0' && c <= '9' {
			return "", false
		}
	}
	return name[:10], true
}

// dirWritable creates and removes a probe file in dir.
func dirWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".takeoutsort-probe-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}
