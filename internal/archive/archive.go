// Package archive reads Google Photos Takeout exports, either as the
// downloaded zip file or as an already extracted directory.
package archive

import (
	"errors"
	"io"
	"os"
	"path"
	"strings"
	"time"
)

var (
	// ErrOpenArchive indicates the input could not be opened or listed.
	ErrOpenArchive = errors.New("cannot open archive")

	// ErrNotFound indicates the input path does not exist.
	ErrNotFound = errors.New("input not found")
)

// Entry is one image file in a Source. Path uses forward slashes and is
// relative to the archive root.
type Entry struct {
	Path    string
	Size    int64
	ModTime time.Time

	open func() (io.ReadCloser, error)
}

// Open returns the entry's content. The caller closes it.
func (e Entry) Open() (io.ReadCloser, error) {
	if e.open == nil {
		return nil, ErrNotFound
	}
	return e.open()
}

// Source is an opened Takeout export.
type Source interface {
	// Name identifies the source, used in history and cache keys.
	Name() string
	// Entries lists the image files in archive order.
	Entries() []Entry
	Close() error
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".heic": true,
	".heif": true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
}

// IsImageFile checks if a path has a known image extension.
func IsImageFile(name string) bool {
	return imageExtensions[strings.ToLower(path.Ext(name))]
}

// Matcher selects the files a Source yields.
type Matcher struct {
	extra map[string]bool
}

// NewMatcher accepts the built-in image extensions plus extra ones.
// Extensions may be given with or without the leading dot.
func NewMatcher(extra []string) Matcher {
	m := Matcher{extra: make(map[string]bool, len(extra))}
	for _, ext := range extra {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		m.extra[ext] = true
	}
	return m
}

// Match reports whether name should be organized.
func (m Matcher) Match(name string) bool {
	if IsImageFile(name) {
		return true
	}
	return m.extra[strings.ToLower(path.Ext(name))]
}

// Open opens a directory with OpenDir and anything else with OpenZip.
func Open(p string, m Matcher) (Source, error) {
	info, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, wrap(err)
	}
	if info.IsDir() {
		d, err := OpenDir(p, m)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
	z, err := OpenZip(p, m)
	if err != nil {
		return nil, err
	}
	return z, nil
}
