// Package metadata reads the EXIF fields the organizer cares about from raw
// image bytes: camera make and model, processing software and the
// original-capture timestamp.
package metadata

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrNoMetadata indicates the image carries none of the wanted fields.
	ErrNoMetadata = errors.New("no metadata found")

	// ErrDecodeFailed indicates a decoder rejected the image data.
	ErrDecodeFailed = errors.New("metadata decode failed")
)

// DefaultReadLimit caps how many bytes Read consumes from a single image.
const DefaultReadLimit = 64 << 20

// Metadata holds the EXIF fields used for dating and classification.
// Empty strings mean the field was absent.
type Metadata struct {
	Make             string `json:"make,omitempty"`
	Model            string `json:"model,omitempty"`
	Software         string `json:"software,omitempty"`
	DateTimeOriginal string `json:"date_time_original,omitempty"`
}

// IsEmpty reports whether no field was found.
func (m *Metadata) IsEmpty() bool {
	return m == nil || (m.Make == "" && m.Model == "" && m.Software == "" && m.DateTimeOriginal == "")
}

// Camera returns make and model joined by a space.
func (m *Metadata) Camera() string {
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m.Make + " " + m.Model)
}

// Parse extracts metadata from raw image bytes. goexif handles JPEG and TIFF;
// anything it rejects is retried with imagemeta, which also understands
// HEIF, PNG, WebP and AVIF containers.
// Returns ErrNoMetadata when neither decoder finds a wanted field.
func Parse(data []byte) (*Metadata, error) {
	if len(data) == 0 {
		return nil, ErrNoMetadata
	}

	m, exifErr := decodeEXIF(data)
	if exifErr == nil && !m.IsEmpty() {
		return m, nil
	}

	m, metaErr := decodeImagemeta(data)
	if metaErr == nil && !m.IsEmpty() {
		return m, nil
	}

	if exifErr != nil && metaErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoMetadata, exifErr)
	}
	return nil, ErrNoMetadata
}

// Read consumes at most limit bytes from r and parses them.
// A non-positive limit uses DefaultReadLimit.
func Read(r io.Reader, limit int64) (*Metadata, error) {
	if limit <= 0 {
		limit = DefaultReadLimit
	}
	data, err := io.ReadAll(io.LimitReader(r, limit))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return Parse(data)
}

// clean trims whitespace and the NUL padding some cameras leave in ASCII tags.
func clean(s string) string {
	return strings.TrimSpace(strings.Trim(s, "\x00 "))
}
