// internal/importer/copy_test.go
package importer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	dstDir := t.TempDir()
	content := "test image content"

	dstPath := filepath.Join(dstDir, "copied.jpg")
	size, err := WriteFile(strings.NewReader(content), dstPath)
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), size)

	got, err := os.ReadFile(dstPath)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

func TestWriteFile_CreatesDirectory(t *testing.T) {
	dstPath := filepath.Join(t.TempDir(), "2014", "2014-09-29", "a.jpg")
	_, err := WriteFile(strings.NewReader("content"), dstPath)
	require.NoError(t, err)
	assert.FileExists(t, dstPath)
}

func TestWriteFile_DestinationExists(t *testing.T) {
	dstPath := filepath.Join(t.TempDir(), "existing.jpg")
	require.NoError(t, os.WriteFile(dstPath, []byte("existing"), 0644))

	_, err := WriteFile(strings.NewReader("new"), dstPath)
	assert.ErrorIs(t, err, ErrDestinationExists)

	got, err := os.ReadFile(dstPath)
	require.NoError(t, err)
	assert.Equal(t, "existing", string(got), "existing file untouched")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("truncated entry") }

func TestWriteFile_RemovesPartialFile(t *testing.T) {
	dstPath := filepath.Join(t.TempDir(), "partial.jpg")
	_, err := WriteFile(failingReader{}, dstPath)
	assert.ErrorIs(t, err, ErrCopyFailed)
	assert.NoFileExists(t, dstPath)
}

func TestReplaceFile(t *testing.T) {
	dir := t.TempDir()
	dstPath := filepath.Join(dir, "existing.jpg")
	require.NoError(t, os.WriteFile(dstPath, []byte("old"), 0644))

	size, err := ReplaceFile(strings.NewReader("newer"), dstPath)
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)

	got, err := os.ReadFile(dstPath)
	require.NoError(t, err)
	assert.Equal(t, "newer", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestReplaceFile_FailureKeepsOriginal(t *testing.T) {
	dir := t.TempDir()
	dstPath := filepath.Join(dir, "existing.jpg")
	require.NoError(t, os.WriteFile(dstPath, []byte("old"), 0644))

	_, err := ReplaceFile(failingReader{}, dstPath)
	assert.ErrorIs(t, err, ErrCopyFailed)

	got, err := os.ReadFile(dstPath)
	require.NoError(t, err)
	assert.Equal(t, "old", string(got))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
