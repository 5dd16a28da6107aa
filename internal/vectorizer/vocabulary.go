package vectorizer

import (
	"fmt"
	"slices"
)

// Vocabulary maps tokens to stable column indices. It is immutable once built.
type Vocabulary struct {
	tokens []string
	index  map[string]int
}

// NewVocabulary assigns index i to tokens[i]. Duplicate or empty tokens are rejected.
func NewVocabulary(tokens []string) (*Vocabulary, error) {
	index := make(map[string]int, len(tokens))
	for i, tok := range tokens {
		if tok == "" {
			return nil, fmt.Errorf("empty token at index %d", i)
		}
		if prev, dup := index[tok]; dup {
			return nil, fmt.Errorf("duplicate token %q at indices %d and %d", tok, prev, i)
		}
		index[tok] = i
	}
	return &Vocabulary{tokens: slices.Clone(tokens), index: index}, nil
}

func (v *Vocabulary) Index(token string) (int, bool) {
	i, ok := v.index[token]
	return i, ok
}

func (v *Vocabulary) Token(i int) string {
	return v.tokens[i]
}

func (v *Vocabulary) Size() int {
	return len(v.tokens)
}

// Tokens returns a copy of the tokens in index order.
func (v *Vocabulary) Tokens() []string {
	return slices.Clone(v.tokens)
}
