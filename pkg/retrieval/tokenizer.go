package retrieval

import (
	"regexp"
	"strings"
)

var wordPattern = regexp.MustCompile(`\w+`)

// Tokenize lowercases the text and splits it into word tokens. The same
// tokenizer is used to build the index and to search it.
func Tokenize(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}
