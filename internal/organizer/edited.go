package organizer

import (
	"path"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultEditedSuffixes are the suffixes Google Photos appends to edited
// copies, including the localized forms seen in non-English exports.
var DefaultEditedSuffixes = []string{
	"-edited",
	"-bearbeitet",
	"-modifié",
	"-editado",
	"-modificato",
	"-bewerkt",
}

// dupCounter matches the "(1)" Takeout appends when names collide.
var dupCounter = regexp.MustCompile(`\(\d+\)$`)

// splitName splits a base name into stem, duplicate counter and extension:
// "photo-edited(1).jpg" -> "photo-edited", "(1)", ".jpg".
func splitName(name string) (stem, counter, ext string) {
	ext = path.Ext(name)
	stem = strings.TrimSuffix(name, ext)
	if loc := dupCounter.FindStringIndex(stem); loc != nil {
		counter = stem[loc[0]:]
		stem = stem[:loc[0]]
	}
	return stem, counter, ext
}

// EditedOriginal reports whether name carries one of the edited suffixes and,
// if so, returns the name its unedited original would have. Matching ignores
// case and accents, so "-Modifie" matches "-modifié".
func EditedOriginal(name string, suffixes []string) (string, bool) {
	stem, counter, ext := splitName(norm.NFC.String(name))
	for _, suffix := range suffixes {
		suffix = norm.NFC.String(suffix)
		n := utf8.RuneCountInString(suffix)
		if n == 0 || utf8.RuneCountInString(stem) <= n {
			continue
		}
		cut := lastRunesIndex(stem, n)
		if foldEqual(stem[cut:], suffix) {
			return stem[:cut] + counter + ext, true
		}
	}
	return "", false
}

// lastRunesIndex returns the byte offset where the last n runes of s begin.
func lastRunesIndex(s string, n int) int {
	i := len(s)
	for ; n > 0 && i > 0; n-- {
		_, size := utf8.DecodeLastRuneInString(s[:i])
		i -= size
	}
	return i
}

// foldEqual compares two strings ignoring case and diacritics.
func foldEqual(a, b string) bool {
	return strings.EqualFold(removeAccents(a), removeAccents(b))
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// isMix reports whether name is a Google-generated composite ("-MIX" right
// before the extension, ignoring case and a duplicate counter).
func isMix(name string) bool {
	stem, _, _ := splitName(name)
	return strings.HasSuffix(strings.ToUpper(stem), "-MIX")
}
