// Package metadatatest builds small EXIF-bearing images for tests.
package metadatatest

import (
	"bytes"
	"encoding/binary"
)

// Fields are the EXIF values written into a test image. Empty fields are omitted.
type Fields struct {
	Make             string
	Model            string
	Software         string
	DateTimeOriginal string
}

// TIFF tag IDs.
const (
	tagMake             = 0x010F
	tagModel            = 0x0110
	tagSoftware         = 0x0131
	tagExifIFDPointer   = 0x8769
	tagDateTimeOriginal = 0x9003
)

// TIFF field types.
const (
	typeASCII = 2
	typeLong  = 4
)

type asciiTag struct {
	id    uint16
	value string
}

// TIFF returns a little-endian TIFF header and IFDs carrying f.
// DateTimeOriginal goes into the Exif sub-IFD, the rest into IFD0.
func TIFF(f Fields) []byte {
	var ifd0, exifIFD []asciiTag
	for _, t := range []asciiTag{{tagMake, f.Make}, {tagModel, f.Model}, {tagSoftware, f.Software}} {
		if t.value != "" {
			ifd0 = append(ifd0, t)
		}
	}
	if f.DateTimeOriginal != "" {
		exifIFD = append(exifIFD, asciiTag{tagDateTimeOriginal, f.DateTimeOriginal})
	}

	ifd0Count := len(ifd0)
	if len(exifIFD) > 0 {
		ifd0Count++
	}

	const ifd0Off = 8
	ifd0Size := 2 + 12*ifd0Count + 4
	exifOff := ifd0Off + ifd0Size
	exifSize := 0
	if len(exifIFD) > 0 {
		exifSize = 2 + 12*len(exifIFD) + 4
	}
	dataOff := exifOff + exifSize

	var data bytes.Buffer
	le := binary.LittleEndian

	entry := func(buf *bytes.Buffer, t asciiTag) {
		v := t.value + "\x00"
		_ = binary.Write(buf, le, t.id)
		_ = binary.Write(buf, le, uint16(typeASCII))
		_ = binary.Write(buf, le, uint32(len(v)))
		if len(v) <= 4 {
			var inline [4]byte
			copy(inline[:], v)
			buf.Write(inline[:])
			return
		}
		_ = binary.Write(buf, le, uint32(dataOff+data.Len()))
		data.WriteString(v)
		if data.Len()%2 == 1 {
			data.WriteByte(0)
		}
	}

	var out bytes.Buffer
	out.WriteString("II")
	_ = binary.Write(&out, le, uint16(42))
	_ = binary.Write(&out, le, uint32(ifd0Off))

	_ = binary.Write(&out, le, uint16(ifd0Count))
	for _, t := range ifd0 {
		entry(&out, t)
	}
	if len(exifIFD) > 0 {
		_ = binary.Write(&out, le, uint16(tagExifIFDPointer))
		_ = binary.Write(&out, le, uint16(typeLong))
		_ = binary.Write(&out, le, uint32(1))
		_ = binary.Write(&out, le, uint32(exifOff))
	}
	_ = binary.Write(&out, le, uint32(0))

	if len(exifIFD) > 0 {
		_ = binary.Write(&out, le, uint16(len(exifIFD)))
		for _, t := range exifIFD {
			entry(&out, t)
		}
		_ = binary.Write(&out, le, uint32(0))
	}

	out.Write(data.Bytes())
	return out.Bytes()
}

// JPEG wraps TIFF(f) in an APP1 segment between SOI and EOI markers.
// The result has no image data but is enough for EXIF readers.
func JPEG(f Fields) []byte {
	tiff := TIFF(f)
	var out bytes.Buffer
	out.Write([]byte{0xFF, 0xD8})
	out.Write([]byte{0xFF, 0xE1})
	_ = binary.Write(&out, binary.BigEndian, uint16(2+6+len(tiff)))
	out.WriteString("Exif\x00\x00")
	out.Write(tiff)
	out.Write([]byte{0xFF, 0xD9})
	return out.Bytes()
}

// PlainJPEG returns a JPEG byte stream without any EXIF segment.
func PlainJPEG() []byte {
	return []byte{0xFF, 0xD8, 0xFF, 0xD9}
}
