// Package vectorizer turns free text into TF-IDF weighted sparse vectors over
// a vocabulary learned from a training corpus.
//
// The same tokenization runs at fit and at transform time, so a fitted
// Vectorizer restored from its State produces identical vectors to the one
// that was trained. Tokens that were not in the training vocabulary are
// dropped without error.
package vectorizer

import (
	"cmp"
	"math"
	"slices"

	"github.com/samber/lo"
	"github.com/trknhr/tonecheck/internal/errs"
	"gonum.org/v1/gonum/floats"
)

type Norm string

const (
	NormL2   Norm = "l2"
	NormL1   Norm = "l1"
	NormNone Norm = "none"
)

const (
	DefaultMaxFeatures    = 5000
	DefaultMinTokenLength = 2
)

// Config controls tokenization and weighting. The zero value is usable:
// lowercase, minimum token length 2, smoothed idf, raw term counts, l2 norm,
// unlimited vocabulary.
type Config struct {
	// MaxFeatures caps the vocabulary to the most frequent tokens. 0 = no cap.
	MaxFeatures    int  `json:"max_features"`
	MinTokenLength int  `json:"min_token_length"`
	PreserveCase   bool `json:"preserve_case,omitempty"`
	// DisableSmoothIDF switches idf from ln((1+N)/(1+df))+1 to ln(N/df)+1.
	DisableSmoothIDF bool `json:"disable_smooth_idf,omitempty"`
	// SublinearTF replaces a raw count tf with 1+ln(tf).
	SublinearTF bool `json:"sublinear_tf,omitempty"`
	Norm        Norm `json:"norm"`
}

func DefaultConfig() Config {
	return Config{
		MaxFeatures:    DefaultMaxFeatures,
		MinTokenLength: DefaultMinTokenLength,
		Norm:           NormL2,
	}
}

func (n Norm) valid() bool {
	switch n {
	case "", NormL2, NormL1, NormNone:
		return true
	}
	return false
}

func (c *Config) applyDefaults() {
	if c.MinTokenLength <= 0 {
		c.MinTokenLength = DefaultMinTokenLength
	}
	if c.Norm == "" {
		c.Norm = NormL2
	}
}

func (c Config) tokenizer() Tokenizer {
	return Tokenizer{PreserveCase: c.PreserveCase, MinLength: c.MinTokenLength}
}

// Vectorizer is not safe for concurrent Fit; once fitted, Transform may be
// called from any number of goroutines.
type Vectorizer struct {
	cfg       Config
	tokenizer Tokenizer
	vocab     *Vocabulary
	idf       []float64
	nDocs     int
}

func New(cfg Config) *Vectorizer {
	cfg.applyDefaults()
	return &Vectorizer{cfg: cfg, tokenizer: cfg.tokenizer()}
}

func (v *Vectorizer) Config() Config {
	return v.cfg
}

func (v *Vectorizer) Fitted() bool {
	return v.vocab != nil
}

// Vocabulary returns nil before Fit.
func (v *Vectorizer) Vocabulary() *Vocabulary {
	return v.vocab
}

// Dim is the length of every vector Transform returns.
func (v *Vectorizer) Dim() int {
	if v.vocab == nil {
		return 0
	}
	return v.vocab.Size()
}

// IDF returns the inverse document frequency of token, if it is in the vocabulary.
func (v *Vectorizer) IDF(token string) (float64, bool) {
	if v.vocab == nil {
		return 0, false
	}
	i, ok := v.vocab.Index(token)
	if !ok {
		return 0, false
	}
	return v.idf[i], true
}

// Fit learns the vocabulary and idf table from corpus. On error the
// vectorizer keeps its previous state.
func (v *Vectorizer) Fit(corpus []string) error {
	if len(corpus) == 0 {
		return errs.Input("cannot fit vectorizer on an empty corpus")
	}

	termCount := make(map[string]int)
	docFreq := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range v.tokenizer.Tokens(doc) {
			termCount[tok]++
			if _, ok := seen[tok]; !ok {
				seen[tok] = struct{}{}
				docFreq[tok]++
			}
		}
	}
	if len(termCount) == 0 {
		return errs.Input("corpus of %d documents yields no tokens of length >= %d", len(corpus), v.cfg.MinTokenLength)
	}

	terms := lo.Keys(termCount)
	if v.cfg.MaxFeatures > 0 && len(terms) > v.cfg.MaxFeatures {
		slices.SortFunc(terms, func(a, b string) int {
			if c := cmp.Compare(termCount[b], termCount[a]); c != 0 {
				return c
			}
			return cmp.Compare(a, b)
		})
		terms = terms[:v.cfg.MaxFeatures]
	}
	slices.Sort(terms)

	vocab, err := NewVocabulary(terms)
	if err != nil {
		return errs.Internal("build vocabulary: %v", err)
	}

	n := len(corpus)
	idf := make([]float64, len(terms))
	for i, term := range terms {
		idf[i] = inverseDocFreq(n, docFreq[term], !v.cfg.DisableSmoothIDF)
	}

	v.vocab = vocab
	v.idf = idf
	v.nDocs = n
	return nil
}

func inverseDocFreq(nDocs, df int, smooth bool) float64 {
	if smooth {
		return math.Log(float64(1+nDocs)/float64(1+df)) + 1
	}
	return math.Log(float64(nDocs)/float64(df)) + 1
}

// Transform maps text onto the fitted vocabulary.
func (v *Vectorizer) Transform(text string) (Vector, error) {
	if v.vocab == nil {
		return Vector{}, errs.NotReady("vectorizer is not fitted")
	}

	counts := make(map[int]int)
	for _, tok := range v.tokenizer.Tokens(text) {
		if i, ok := v.vocab.Index(tok); ok {
			counts[i]++
		}
	}

	indices := lo.Keys(counts)
	slices.Sort(indices)
	values := make([]float64, len(indices))
	for k, i := range indices {
		tf := float64(counts[i])
		if v.cfg.SublinearTF {
			tf = 1 + math.Log(tf)
		}
		values[k] = tf * v.idf[i]
	}
	normalize(values, v.cfg.Norm)

	return Vector{Dim: v.vocab.Size(), Indices: indices, Values: values}, nil
}

func normalize(values []float64, norm Norm) {
	var n float64
	switch norm {
	case NormL2:
		n = floats.Norm(values, 2)
	case NormL1:
		n = floats.Norm(values, 1)
	default:
		return
	}
	if n > 0 {
		floats.Scale(1/n, values)
	}
}

// TransformAll transforms every text, in order.
func (v *Vectorizer) TransformAll(texts []string) ([]Vector, error) {
	out := make([]Vector, len(texts))
	for i, text := range texts {
		vec, err := v.Transform(text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (v *Vectorizer) FitTransform(corpus []string) ([]Vector, error) {
	if err := v.Fit(corpus); err != nil {
		return nil, err
	}
	return v.TransformAll(corpus)
}
