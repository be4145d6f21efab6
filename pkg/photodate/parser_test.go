package photodate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromTimestamp(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"exif", "2012:10:06 13:09:32", "2012-10-06", true},
		{"trailing nul", "2012:10:06 13:09:32\x00", "2012-10-06", true},
		{"dashes", "2012-10-06 13:09:32", "2012-10-06", true},
		{"iso with zone", "2012-10-06T13:09:32+02:00", "2012-10-06", true},
		{"date only", "2012:10:06", "2012-10-06", true},
		{"zeroed", "0000:00:00 00:00:00", "", false},
		{"blank", "    ", "", false},
		{"empty", "", "", false},
		{"month 13", "2012:13:06 13:09:32", "", false},
		{"february 30", "2013:02:30 10:00:00", "", false},
		{"hour 25", "2012:10:06 25:09:32", "", false},
		{"garbage", "yesterday", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromTimestamp(tt.input)
			assert.Equal(t, tt.wantOK, ok, "FromTimestamp(%q)", tt.input)
			if tt.wantOK {
				assert.Equal(t, tt.want, got.String())
			}
		})
	}
}

func TestFromTimestamp_Clock(t *testing.T) {
	got, ok := FromTimestamp("2012:10:06 13:09:32")
	require.True(t, ok)
	require.NotNil(t, got.Clock)
	assert.Equal(t, Clock{Hour: 13, Minute: 9, Second: 32}, *got.Clock)
}

func TestFromFilename(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		wantDate    string
		wantPattern Pattern
		wantOK      bool
	}{
		{"iso date", "2014-09-29.jpg", "2014-09-29", PatternISODate, true},
		{"iso date in text", "Screenshot 2019-03-01 at 10.00.00.png", "2019-03-01", PatternISODate, true},
		{"compact", "20150108_142210.jpg", "2015-01-08", PatternCompact, true},
		{"compact with prefix", "PXL_20210704_101010.jpg", "2021-07-04", PatternCompact, true},
		{"messaging", "IMG-20150108-WA0000.jpg", "2015-01-08", PatternMessaging, true},
		{"messaging lowercase", "img-20150108-wa0001.jpeg", "2015-01-08", PatternMessaging, true},
		{"camera", "IMG_20160412_093011.jpg", "2016-04-12", PatternCompact, true},
		{"camera millis", "IMG_20160412_093011123.jpg", "2016-04-12", PatternCompact, true},
		{"compact millis", "20150108_142210123.jpg", "2015-01-08", PatternCompact, true},
		{"pixel millis", "PXL_20210704_101010123.jpg", "2021-07-04", PatternCompact, true},
		{"pixel motion photo", "PXL_20210704_101010123.MP.jpg", "2021-07-04", PatternCompact, true},
		{"video compact", "VID_20150108_142210.jpg", "2015-01-08", PatternCompact, true},
		{"compact digit before", "120140929_101010.jpg", "", PatternNone, false},
		{"month 13 iso", "2014-13-29.jpg", "", PatternNone, false},
		{"day 32 messaging", "IMG-20150132-WA0000.jpg", "", PatternNone, false},
		{"february 29 non leap", "2015-02-29.jpg", "", PatternNone, false},
		{"february 29 leap", "2016-02-29.jpg", "2016-02-29", PatternISODate, true},
		{"invalid then valid", "2014-13-01_2014-09-29.jpg", "2014-09-29", PatternISODate, true},
		{"digits glued", "12014-09-290.jpg", "", PatternNone, false},
		{"no date", "DSC_9157.JPG", "", PatternNone, false},
		{"edited", "photo-edited.jpg", "", PatternNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, pattern, ok := FromFilename(tt.filename)
			assert.Equal(t, tt.wantOK, ok, "FromFilename(%q)", tt.filename)
			assert.Equal(t, tt.wantPattern, pattern, "pattern for %q", tt.filename)
			if tt.wantOK {
				assert.Equal(t, tt.wantDate, got.String())
				assert.True(t, got.Valid())
			} else {
				assert.True(t, got.IsZero())
			}
		})
	}
}

func TestFromFilename_CompactKeepsClock(t *testing.T) {
	got, _, ok := FromFilename("20150108_142210.jpg")
	require.True(t, ok)
	require.NotNil(t, got.Clock)
	assert.Equal(t, 14, got.Clock.Hour)
	assert.Equal(t, 22, got.Clock.Minute)
	assert.Equal(t, 10, got.Clock.Second)
}

func TestExtract_MetadataWins(t *testing.T) {
	// The filename carries a different, valid date; metadata still wins.
	filenames := []string{"2014-09-29.jpg", "IMG-20150108-WA0000.jpg", "IMG_20160412_093011.jpg", "DSC_9157.JPG"}
	for _, name := range filenames {
		got, src := Extract(name, "2012:10:06 13:09:32")
		assert.Equal(t, SourceMetadata, src, name)
		assert.Equal(t, "2012-10-06", got.String(), name)
	}
}

func TestExtract_FallsBackToFilename(t *testing.T) {
	got, src := Extract("IMG-20150108-WA0000.jpg", "0000:00:00 00:00:00")
	assert.Equal(t, SourceFilename, src)
	assert.Equal(t, "2015-01-08", got.String())
}

func TestExtract_Unknown(t *testing.T) {
	got, src := Extract("DSC_9157.JPG", "")
	assert.Equal(t, SourceUnknown, src)
	assert.True(t, got.IsZero())
	assert.Equal(t, "unknown", got.String())
}
