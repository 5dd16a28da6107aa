package dataset

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/samber/lo"
	"github.com/trknhr/tonecheck/internal/errs"
	"github.com/trknhr/tonecheck/internal/utils"
)

// Split shuffles examples with a PCG source seeded by seed and holds out
// ceil(testSize*n) of them. testSize 0 keeps everything for training.
func Split(examples []Example, testSize float64, seed uint64) (train, test []Example, err error) {
	if testSize < 0 || testSize >= 1 || math.IsNaN(testSize) {
		return nil, nil, errs.Input("test size must be in [0, 1), got %v", testSize)
	}
	if testSize == 0 {
		return slices.Clone(examples), nil, nil
	}

	n := len(examples)
	nTest := int(math.Ceil(testSize * float64(n)))
	if nTest == 0 || nTest >= n {
		return nil, nil, errs.Input("cannot hold out %d of %d examples", nTest, n)
	}

	perm := rand.New(rand.NewPCG(seed, seed)).Perm(n)
	test = make([]Example, 0, nTest)
	train = make([]Example, 0, n-nTest)
	for k, i := range perm {
		if k < nTest {
			test = append(test, examples[i])
		} else {
			train = append(train, examples[i])
		}
	}
	return train, test, nil
}

// Texts and Labels unzip examples.
func Texts(examples []Example) []string {
	return lo.Map(examples, func(e Example, _ int) string { return e.Text })
}

func Labels(examples []Example) []string {
	return lo.Map(examples, func(e Example, _ int) string { return e.Label })
}

// LabelCounts returns how many examples carry each label.
func LabelCounts(examples []Example) map[string]int {
	return lo.CountValues(Labels(examples))
}

// Fingerprint identifies the ordered content of a dataset.
func Fingerprint(examples []Example) string {
	parts := make([]string, 0, 2*len(examples))
	for _, e := range examples {
		parts = append(parts, e.Text, e.Label)
	}
	return utils.Hash(parts...)
}
