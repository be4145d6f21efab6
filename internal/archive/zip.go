package archive

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
)

// Zip is a Takeout zip file.
type Zip struct {
	name    string
	rc      *zip.ReadCloser
	entries []Entry
}

// OpenZip opens a zip file and lists its image entries in archive order.
func OpenZip(p string, m Matcher) (*Zip, error) {
	rc, err := zip.OpenReader(p)
	if err != nil {
		return nil, wrap(err)
	}

	z := &Zip{name: filepath.Base(p), rc: rc}
	for _, f := range rc.File {
		if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
			continue
		}
		name := strings.ReplaceAll(f.Name, `\`, "/")
		if !m.Match(name) {
			continue
		}
		z.entries = append(z.entries, Entry{
			Path:    name,
			Size:    int64(f.UncompressedSize64),
			ModTime: f.Modified,
			open:    func() (io.ReadCloser, error) { return f.Open() },
		})
	}
	return z, nil
}

// Name returns the zip file's base name.
func (z *Zip) Name() string { return z.name }

// Entries returns the image entries.
func (z *Zip) Entries() []Entry { return z.entries }

// Close closes the underlying file.
func (z *Zip) Close() error {
	return z.rc.Close()
}

func wrap(err error) error {
	return fmt.Errorf("%w: %v", ErrOpenArchive, err)
}
