package photodate

import (
	"regexp"
	"strconv"
	"strings"
)

// timestampRegex matches EXIF "YYYY:MM:DD HH:MM:SS" timestamps. Dashes and an
// ISO "T" separator are tolerated; sub-seconds and zone offsets are ignored.
var timestampRegex = regexp.MustCompile(`^(\d{4})[:-](\d{2})[:-](\d{2})(?:[ T](\d{2}):(\d{2})(?::(\d{2}))?)?`)

// FromTimestamp parses an EXIF original-capture timestamp.
// Blank, zeroed ("0000:00:00 00:00:00") and impossible values are rejected.
func FromTimestamp(s string) (Date, bool) {
	s = strings.TrimSpace(strings.Trim(s, "\x00"))
	m := timestampRegex.FindStringSubmatch(s)
	if m == nil {
		return Date{}, false
	}
	d := Date{Year: atoi(m[1]), Month: atoi(m[2]), Day: atoi(m[3])}
	if m[4] != "" {
		d.Clock = &Clock{Hour: atoi(m[4]), Minute: atoi(m[5]), Second: atoi(m[6])}
	}
	if !d.Valid() {
		return Date{}, false
	}
	return d, true
}

// filenamePattern is one filename convention. Groups are year, month, day and
// optionally hour, minute, second. A guarded side must not touch another
// digit, so "120140929_101010" is not read as a date. Compact names only
// guard the left side since sub-second digits often follow the time.
type filenamePattern struct {
	pattern    Pattern
	regex      *regexp.Regexp
	guardLeft  bool
	guardRight bool
}

// filenamePatterns are tried in order; first valid match wins.
var filenamePatterns = []filenamePattern{
	// 2014-09-29.jpg, Screenshot 2019-03-01 at 10.00.00.png
	{PatternISODate, regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`), true, true},
	// 20150108_142210.jpg, PXL_20210704_101010123.jpg
	{PatternCompact, regexp.MustCompile(`(\d{4})(\d{2})(\d{2})_(\d{2})(\d{2})(\d{2})`), true, false},
	// IMG-20150108-WA0000.jpg
	{PatternMessaging, regexp.MustCompile(`(?i)^IMG-(\d{4})(\d{2})(\d{2})`), false, false},
	// IMG_20150108_142210_HDR.jpg
	{PatternCamera, regexp.MustCompile(`(?i)^IMG_(\d{4})(\d{2})(\d{2})_(\d{2})(\d{2})(\d{2})`), false, false},
}

// FromFilename extracts a capture date embedded in a file name.
// Candidates that are not real calendar dates (month 13, February 30) are
// skipped and the search continues with later matches and patterns.
func FromFilename(name string) (Date, Pattern, bool) {
	for _, p := range filenamePatterns {
		for _, loc := range p.regex.FindAllStringSubmatchIndex(name, -1) {
			if p.guardLeft && loc[0] > 0 && isDigit(name[loc[0]-1]) {
				continue
			}
			if p.guardRight && loc[1] < len(name) && isDigit(name[loc[1]]) {
				continue
			}
			d := Date{
				Year:  atoi(name[loc[2]:loc[3]]),
				Month: atoi(name[loc[4]:loc[5]]),
				Day:   atoi(name[loc[6]:loc[7]]),
			}
			if len(loc) > 8 && loc[8] >= 0 {
				d.Clock = &Clock{
					Hour:   atoi(name[loc[8]:loc[9]]),
					Minute: atoi(name[loc[10]:loc[11]]),
					Second: atoi(name[loc[12]:loc[13]]),
				}
			}
			if d.Valid() {
				return d, p.pattern, true
			}
		}
	}
	return Date{}, PatternNone, false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// Extract resolves a capture date. The metadata timestamp takes precedence;
// the filename is consulted only when the timestamp is missing or malformed.
// When neither yields a date the zero Date and SourceUnknown are returned.
func Extract(name, timestamp string) (Date, Source) {
	if d, ok := FromTimestamp(timestamp); ok {
		return d, SourceMetadata
	}
	if d, _, ok := FromFilename(name); ok {
		return d, SourceFilename
	}
	return Date{}, SourceUnknown
}

func atoi(s string) int {
	if s == "" {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}
