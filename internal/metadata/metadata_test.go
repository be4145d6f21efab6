package metadata_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/takeoutsort/internal/metadata"
	"github.com/vmunix/takeoutsort/internal/metadata/metadatatest"
)

func TestParse_JPEG(t *testing.T) {
	data := metadatatest.JPEG(metadatatest.Fields{
		Make:             "NIKON CORPORATION",
		Model:            "NIKON D750",
		Software:         "Ver.1.10",
		DateTimeOriginal: "2016:04:12 09:30:11",
	})

	m, err := metadata.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "NIKON CORPORATION", m.Make)
	assert.Equal(t, "NIKON D750", m.Model)
	assert.Equal(t, "Ver.1.10", m.Software)
	assert.Equal(t, "2016:04:12 09:30:11", m.DateTimeOriginal)
	assert.Equal(t, "NIKON CORPORATION NIKON D750", m.Camera())
}

func TestParse_TIFF(t *testing.T) {
	data := metadatatest.TIFF(metadatatest.Fields{Software: "Adobe Photoshop Lightroom Classic 9.0 (Windows)"})

	m, err := metadata.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "Adobe Photoshop Lightroom Classic 9.0 (Windows)", m.Software)
	assert.Empty(t, m.DateTimeOriginal)
}

func TestParse_OnlyTimestamp(t *testing.T) {
	data := metadatatest.JPEG(metadatatest.Fields{DateTimeOriginal: "2012:10:06 13:09:32"})

	m, err := metadata.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "2012:10:06 13:09:32", m.DateTimeOriginal)
	assert.Empty(t, m.Make)
}

func TestParse_NoMetadata(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"nil", nil},
		{"empty", []byte{}},
		{"jpeg without exif", metadatatest.PlainJPEG()},
		{"text", []byte("definitely not an image")},
		{"truncated exif", metadatatest.JPEG(metadatatest.Fields{Make: "Canon"})[:12]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := metadata.Parse(tt.data)
			assert.ErrorIs(t, err, metadata.ErrNoMetadata)
			assert.Nil(t, m)
		})
	}
}

func TestRead_Limit(t *testing.T) {
	data := metadatatest.JPEG(metadatatest.Fields{Make: "Canon"})

	m, err := metadata.Read(bytes.NewReader(data), 0)
	require.NoError(t, err)
	assert.Equal(t, "Canon", m.Make)

	_, err = metadata.Read(strings.NewReader(string(data)), 4)
	assert.ErrorIs(t, err, metadata.ErrNoMetadata, "a 4 byte prefix holds no EXIF")
}

func TestMetadata_IsEmpty(t *testing.T) {
	var nilMeta *metadata.Metadata
	assert.True(t, nilMeta.IsEmpty())
	assert.True(t, (&metadata.Metadata{}).IsEmpty())
	assert.False(t, (&metadata.Metadata{Model: "Pixel 3"}).IsEmpty())
	assert.Equal(t, "", nilMeta.Camera())
}
