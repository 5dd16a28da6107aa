package vectorizer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Tokenizer splits text into word tokens. Text is NFKC-normalized first so
// full-width and compatibility forms map onto the same token.
type Tokenizer struct {
	PreserveCase bool
	MinLength    int
}

// Tokens returns the tokens of text in order of appearance.
func (t Tokenizer) Tokens(text string) []string {
	s := norm.NFKC.String(text)
	if !t.PreserveCase {
		// Casers are stateful; one per call keeps Tokens safe for concurrent use.
		s = cases.Lower(language.Und).String(s)
	}

	fields := strings.FieldsFunc(s, isBoundary)
	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= t.MinLength {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func isBoundary(r rune) bool {
	return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
}
