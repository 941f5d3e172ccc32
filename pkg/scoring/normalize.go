package scoring

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases the text, strips diacritics and collapses runs of
// whitespace to single spaces. Field comparison always happens on
// normalized values.
func Normalize(text string) string {
	out, _, err := transform.String(stripAccents, text)
	if err != nil {
		out = text
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}
