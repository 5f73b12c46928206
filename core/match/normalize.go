package match

import (
	"strings"
	"unicode"
)

// quoteFolder maps typographic punctuation to its ASCII form before the
// punctuation strip, so curly and straight variants normalize identically.
var quoteFolder = strings.NewReplacer(
	"’", "'",
	"‘", "'",
	"“", `"`,
	"”", `"`,
	"&", " and ",
)

// Normalize canonicalizes a free-text item name for matching: lowercase,
// fold typographic quotes and ampersands, drop punctuation, collapse
// whitespace. "B.F. Sword" and "BF Sword" normalize to the same string.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = quoteFolder.Replace(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
		// Everything else (periods, apostrophes, quotes) is dropped.
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
