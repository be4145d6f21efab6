// Package organizer decides, for every file of a Takeout import batch, its
// capture date, whether it duplicates a photo organized elsewhere, and where
// it belongs in the YYYY/YYYY-MM-DD/ layout. It performs no I/O.
package organizer

import (
	"path"
	"strings"

	"github.com/vmunix/takeoutsort/internal/metadata"
	"golang.org/x/text/unicode/norm"
)

// Entry is one file of an import batch.
type Entry struct {
	// Path is the full path inside the archive, slash separated.
	Path string

	// Metadata holds parsed EXIF fields; nil when absent or unreadable.
	Metadata *metadata.Metadata
}

// Name returns the entry's base name.
func (e Entry) Name() string {
	return Basename(e.Path)
}

// Basename strips any archive directory prefix. Both slash styles are
// accepted since some zip tools write Windows separators.
func Basename(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	return path.Base(p)
}

// FilenameSet is the set of base names present in a batch. It is built once
// before any classification and is read-only afterwards. Names are compared
// in Unicode NFC form so archives written on macOS (NFD) still match.
type FilenameSet struct {
	names map[string]struct{}
}

// NewFilenameSet builds the set from archive paths.
func NewFilenameSet(paths []string) *FilenameSet {
	s := &FilenameSet{names: make(map[string]struct{}, len(paths))}
	for _, p := range paths {
		s.names[norm.NFC.String(Basename(p))] = struct{}{}
	}
	return s
}

// Contains reports whether a file with the given base name is in the batch.
// The lookup is case-sensitive.
func (s *FilenameSet) Contains(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.names[norm.NFC.String(name)]
	return ok
}

// Len returns the number of distinct base names.
func (s *FilenameSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}
