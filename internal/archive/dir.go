package archive

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Dir is an extracted Takeout directory.
type Dir struct {
	root    string
	entries []Entry
}

// OpenDir walks root (recursive, lexical order) and lists image files.
func OpenDir(root string, m Matcher) (*Dir, error) {
	d := &Dir{root: root}

	err := filepath.WalkDir(root, func(p string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if de.IsDir() || !de.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !m.Match(rel) {
			return nil
		}
		info, err := de.Info()
		if err != nil {
			return err
		}
		d.entries = append(d.entries, Entry{
			Path:    rel,
			Size:    info.Size(),
			ModTime: info.ModTime(),
			open:    func() (io.ReadCloser, error) { return os.Open(p) },
		})
		return nil
	})
	if err != nil {
		return nil, wrap(err)
	}

	return d, nil
}

// Name returns the directory's base name.
func (d *Dir) Name() string { return filepath.Base(filepath.Clean(d.root)) }

// Entries returns the image files.
func (d *Dir) Entries() []Entry { return d.entries }

// Close is a no-op.
func (d *Dir) Close() error { return nil }
