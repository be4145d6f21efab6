package metadata

import (
	"bytes"
	"fmt"
	"time"

	"github.com/bep/imagemeta"
)

// wantedTags lists the EXIF tag names imagemeta should hand back.
var wantedTags = map[string]bool{
	"Make":             true,
	"Model":            true,
	"Software":         true,
	"DateTimeOriginal": true,
}

// decodeImagemeta reads EXIF from any container imagemeta supports.
func decodeImagemeta(data []byte) (m *Metadata, err error) {
	format, ok := sniffFormat(data)
	if !ok {
		return nil, ErrNoMetadata
	}

	defer func() {
		if r := recover(); r != nil {
			m, err = nil, fmt.Errorf("%w: imagemeta panic: %v", ErrDecodeFailed, r)
		}
	}()

	m = &Metadata{}
	_, err = imagemeta.Decode(imagemeta.Options{
		R:           bytes.NewReader(data),
		ImageFormat: format,
		Sources:     imagemeta.EXIF,
		ShouldHandleTag: func(ti imagemeta.TagInfo) bool {
			return ti.Source == imagemeta.EXIF && wantedTags[ti.Tag]
		},
		HandleTag: func(ti imagemeta.TagInfo) error {
			v := tagValueString(ti.Value)
			switch ti.Tag {
			case "Make":
				m.Make = v
			case "Model":
				m.Model = v
			case "Software":
				m.Software = v
			case "DateTimeOriginal":
				m.DateTimeOriginal = v
			}
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	return m, nil
}

// tagValueString extracts a string from a tag value.
func tagValueString(v any) string {
	switch val := v.(type) {
	case string:
		return clean(val)
	case []byte:
		return clean(string(val))
	case time.Time:
		return val.Format("2006:01:02 15:04:05")
	case []string:
		if len(val) > 0 {
			return clean(val[0])
		}
	}
	return ""
}

// sniffFormat identifies the container from its magic bytes.
func sniffFormat(data []byte) (imagemeta.ImageFormat, bool) {
	switch {
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return imagemeta.JPEG, true
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return imagemeta.PNG, true
	case bytes.HasPrefix(data, []byte("II*\x00")), bytes.HasPrefix(data, []byte("MM\x00*")):
		return imagemeta.TIFF, true
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return imagemeta.WebP, true
	case len(data) >= 12 && string(data[4:8]) == "ftyp":
		switch string(data[8:12]) {
		case "avif", "avis":
			return imagemeta.AVIF, true
		case "heic", "heix", "heim", "heis", "hevc", "hevx", "mif1", "msf1":
			return imagemeta.HEIF, true
		}
	}
	return 0, false
}
