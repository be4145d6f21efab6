package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/takeoutsort/internal/config"
	"github.com/vmunix/takeoutsort/internal/importer"
	"github.com/vmunix/takeoutsort/internal/metadata/metadatatest"
)

// testLogger returns a discard logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeTakeout writes the README example archive.
func writeTakeout(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "takeout-20240101T000000Z-001.zip")
	f, err := os.Create(p)
	require.NoError(t, err)
	zw := zip.NewWriter(f)

	files := []struct {
		name string
		data []byte
	}{
		{"Takeout/Google Photos/Photos from 2016/DSC_9157.JPG", metadatatest.JPEG(metadatatest.Fields{
			Make: "NIKON CORPORATION", Model: "NIKON D750", DateTimeOriginal: "2016:04:12 09:30:11",
		})},
		{"Takeout/Google Photos/Photos from 2015/IMG-20150108-WA0000.jpg", metadatatest.PlainJPEG()},
		{"Takeout/Google Photos/Photos from 2014/2014-09-29.jpg", metadatatest.PlainJPEG()},
		{"Takeout/Google Photos/Photos from 2014/photo-edited.jpg", metadatatest.PlainJPEG()},
		{"Takeout/Google Photos/Photos from 2014/photo.jpg", metadatatest.PlainJPEG()},
	}
	for _, file := range files {
		w, err := zw.Create(file.name)
		require.NoError(t, err)
		_, err = w.Write(file.data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return p
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.History.Path = filepath.Join(t.TempDir(), "history.db")
	return cfg
}

func TestRunOrganize(t *testing.T) {
	out := t.TempDir()
	cfg := testConfig(t)
	var buf bytes.Buffer

	report, err := runOrganize(context.Background(), cfg, organizeOptions{Input: writeTakeout(t), Output: out}, &buf, testLogger())
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(out, "2014", "2014-09-29", "2014-09-29.jpg"))
	assert.FileExists(t, filepath.Join(out, "2015", "2015-01-08", "IMG-20150108-WA0000.jpg"))
	assert.FileExists(t, filepath.Join(out, "unknown", "photo.jpg"))
	assert.NoFileExists(t, filepath.Join(out, "2016", "2016-04-12", "DSC_9157.JPG"))
	assert.NoFileExists(t, filepath.Join(out, "unknown", "photo-edited.jpg"))

	assert.Equal(t, 3, report.Written)
	assert.Equal(t, 1, report.Skipped["DslrCamera"])
	assert.Equal(t, 1, report.Skipped["EditedOriginalExists"])

	text := buf.String()
	assert.Contains(t, text, "Total files:    5")
	assert.Contains(t, text, "Skipped:        2")
	assert.Contains(t, text, "DslrCamera:")

	// The run is in the history database.
	db, err := openDB(cfg.History.Path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	records, err := importer.NewHistoryStore(db).List(context.Background(), importer.HistoryFilter{})
	require.NoError(t, err)
	assert.Len(t, records, 5)
}

func TestRunOrganize_NoFilter(t *testing.T) {
	out := t.TempDir()
	cfg := testConfig(t)

	report, err := runOrganize(context.Background(), cfg,
		organizeOptions{Input: writeTakeout(t), Output: out, NoFilter: true, NoHistory: true},
		io.Discard, testLogger())
	require.NoError(t, err)

	assert.Equal(t, 5, report.Written)
	assert.FileExists(t, filepath.Join(out, "2016", "2016-04-12", "DSC_9157.JPG"))
	assert.FileExists(t, filepath.Join(out, "unknown", "photo-edited.jpg"))
	assert.NoFileExists(t, cfg.History.Path, "--no-history skips the database")
}

func TestRunOrganize_DryRun(t *testing.T) {
	out := filepath.Join(t.TempDir(), "photos")
	var buf bytes.Buffer

	report, err := runOrganize(context.Background(), testConfig(t),
		organizeOptions{Input: writeTakeout(t), Output: out, DryRun: true},
		&buf, testLogger())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Written)
	assert.NoDirExists(t, out)
	assert.Contains(t, buf.String(), "Dry run")
	assert.Contains(t, buf.String(), "would organize")
}

func TestRunOrganize_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts organizeOptions
		want string
	}{
		{"missing output", organizeOptions{Input: "x.zip"}, "--output is required"},
		{"bad collision", organizeOptions{Input: "x.zip", Output: "/tmp/x", Collision: "merge"}, "output.collision"},
		{"missing input", organizeOptions{Input: "/nonexistent/takeout.zip", Output: "/tmp/x", NoHistory: true}, "input not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runOrganize(context.Background(), testConfig(t), tt.opts, io.Discard, testLogger())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRunOrganize_OutputIsFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(out, nil, 0644))

	_, err := runOrganize(context.Background(), testConfig(t),
		organizeOptions{Input: writeTakeout(t), Output: out, NoHistory: true},
		io.Discard, testLogger())
	assert.ErrorIs(t, err, importer.ErrOutputUnwritable)
}

func TestApplyOverrides(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Root = "/from/config"

	require.NoError(t, applyOverrides(cfg, organizeOptions{Workers: 9, Collision: "skip", History: "/tmp/h.db"}))
	assert.Equal(t, "/from/config", cfg.Output.Root)
	assert.Equal(t, 9, cfg.Run.Workers)
	assert.Equal(t, "skip", cfg.Output.Collision)
	assert.Equal(t, "/tmp/h.db", cfg.History.Path)
	assert.True(t, cfg.Filter.Enabled)

	require.NoError(t, applyOverrides(cfg, organizeOptions{Output: "/from/flag", NoFilter: true}))
	assert.Equal(t, "/from/flag", cfg.Output.Root)
	assert.False(t, cfg.Filter.Enabled)
}

func TestRunOrganize_DefaultIgnoresNamedDateFolder(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(out, "2014", "2014-09-29 Birthday"), 0755))

	_, err := runOrganize(context.Background(), testConfig(t),
		organizeOptions{Input: writeTakeout(t), Output: out, NoHistory: true},
		io.Discard, testLogger())
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(out, "2014", "2014-09-29", "2014-09-29.jpg"))
	assert.NoFileExists(t, filepath.Join(out, "2014", "2014-09-29 Birthday", "2014-09-29.jpg"))
}

func TestRunOrganize_ReuseDateDirsOptIn(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(out, "2014", "2014-09-29 Birthday"), 0755))
	cfg := testConfig(t)
	cfg.Output.ReuseDateDirs = true

	_, err := runOrganize(context.Background(), cfg,
		organizeOptions{Input: writeTakeout(t), Output: out, NoHistory: true},
		io.Discard, testLogger())
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(out, "2014", "2014-09-29 Birthday", "2014-09-29.jpg"))
}
