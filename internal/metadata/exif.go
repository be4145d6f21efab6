package metadata

import (
	"bytes"
	"fmt"

	"github.com/rwcarlsen/goexif/exif"
)

// exifFields maps goexif field names onto Metadata setters.
var exifFields = []struct {
	name exif.FieldName
	set  func(m *Metadata, v string)
}{
	{exif.Make, func(m *Metadata, v string) { m.Make = v }},
	{exif.Model, func(m *Metadata, v string) { m.Model = v }},
	{exif.Software, func(m *Metadata, v string) { m.Software = v }},
	{exif.DateTimeOriginal, func(m *Metadata, v string) { m.DateTimeOriginal = v }},
}

// decodeEXIF reads JPEG/TIFF EXIF with goexif.
// Decoder panics on hostile input are turned into errors.
func decodeEXIF(data []byte) (m *Metadata, err error) {
	defer func() {
		if r := recover(); r != nil {
			m, err = nil, fmt.Errorf("%w: goexif panic: %v", ErrDecodeFailed, r)
		}
	}()

	x, err := exif.Decode(bytes.NewReader(data))
	if x == nil || (err != nil && exif.IsCriticalError(err)) {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}

	m = &Metadata{}
	for _, f := range exifFields {
		tag, err := x.Get(f.name)
		if err != nil {
			continue
		}
		v, err := tag.StringVal()
		if err != nil {
			continue
		}
		f.set(m, clean(v))
	}
	return m, nil
}
