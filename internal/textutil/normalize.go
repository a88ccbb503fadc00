package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	parentheticalPattern = regexp.MustCompile(`\s*\([^)]*\)\s*`)
	whitespacePattern    = regexp.MustCompile(`\s+`)
	featuringPattern     = regexp.MustCompile(`(?i)\s+f(?:ea)?t\.?\s+.+$`)
	collabPattern        = regexp.MustCompile(`(?i)\s+x\s+.+$`)
)

// diacriticFolder decomposes characters and drops combining marks so that
// accented titles compare equal to their plain-ASCII spellings.
var diacriticFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicalizes free text for comparison: lowercase, diacritics
// folded, everything that is not a letter, digit, or whitespace removed, and
// whitespace runs collapsed to single spaces.
func Normalize(s string) string {
	lowered := strings.ToLower(s)
	if folded, _, err := transform.String(diacriticFolder, lowered); err == nil {
		lowered = folded
	}

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return CollapseWhitespace(b.String())
}

// CleanTitle removes parenthetical suffixes such as "(Remastered 2019)" and
// collapses the remaining whitespace.
func CleanTitle(title string) string {
	cleaned := parentheticalPattern.ReplaceAllString(title, " ")
	return CollapseWhitespace(cleaned)
}

// Simplify strips punctuation while preserving case, keeping only letters,
// digits, and whitespace. Used for the looser search query variants.
func Simplify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return CollapseWhitespace(b.String())
}

// CleanArtist reduces an artist credit to the primary artist: the string is
// truncated at the first slash, then trailing "ft."/"feat." and " x Other"
// collaborator suffixes are removed case-insensitively.
func CleanArtist(artist string) string {
	primary := artist
	if idx := strings.IndexByte(primary, '/'); idx >= 0 {
		primary = primary[:idx]
	}
	primary = strings.TrimSpace(primary)
	primary = featuringPattern.ReplaceAllString(primary, "")
	primary = collabPattern.ReplaceAllString(primary, "")
	return strings.TrimSpace(primary)
}

// CollapseWhitespace reduces whitespace runs to single spaces and trims.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}
