// internal/importer/copy.go
package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteFile copies r to dst.
// Creates destination directory if it doesn't exist.
// Returns ErrDestinationExists if dst already exists.
func WriteFile(r io.Reader, dst string) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return 0, fmt.Errorf("%w: create directory: %v", ErrCopyFailed, err)
	}

	// O_EXCL so a file created between the collision check and here is not clobbered.
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return 0, ErrDestinationExists
		}
		return 0, fmt.Errorf("%w: create destination: %v", ErrCopyFailed, err)
	}

	size, err := writeAndSync(f, r)
	if err != nil {
		_ = os.Remove(dst)
		return 0, err
	}
	return size, nil
}

// ReplaceFile copies r to dst, replacing any existing file. The content is
// written to a temporary file in the same directory and renamed into place.
func ReplaceFile(r io.Reader, dst string) (int64, error) {
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("%w: create directory: %v", ErrCopyFailed, err)
	}

	f, err := os.CreateTemp(dir, ".takeoutsort-*")
	if err != nil {
		return 0, fmt.Errorf("%w: create temp file: %v", ErrCopyFailed, err)
	}
	tmp := f.Name()

	size, err := writeAndSync(f, r)
	if err != nil {
		_ = os.Remove(tmp)
		return 0, err
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		_ = os.Remove(tmp)
		return 0, fmt.Errorf("%w: chmod: %v", ErrCopyFailed, err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return 0, fmt.Errorf("%w: rename: %v", ErrCopyFailed, err)
	}
	return size, nil
}

// writeAndSync copies r into f, syncs and closes f.
func writeAndSync(f *os.File, r io.Reader) (int64, error) {
	size, err := io.Copy(f, r)
	if err != nil {
		_ = f.Close()
		return 0, fmt.Errorf("%w: copy content: %v", ErrCopyFailed, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return 0, fmt.Errorf("%w: sync: %v", ErrCopyFailed, err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("%w: close: %v", ErrCopyFailed, err)
	}
	return size, nil
}
