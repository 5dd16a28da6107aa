package vectorizer

import "sort"

// Vector is a sparse weight vector over a vocabulary. Indices are strictly
// ascending and Values[i] is the weight of column Indices[i]; absent columns
// are zero.
type Vector struct {
	Dim     int
	Indices []int
	Values  []float64
}

func (v Vector) NNZ() int {
	return len(v.Indices)
}

// At returns the weight of column i.
func (v Vector) At(i int) float64 {
	k := sort.SearchInts(v.Indices, i)
	if k < len(v.Indices) && v.Indices[k] == i {
		return v.Values[k]
	}
	return 0
}

// Dense expands v into a slice of length Dim.
func (v Vector) Dense() []float64 {
	out := make([]float64, v.Dim)
	for k, i := range v.Indices {
		out[i] = v.Values[k]
	}
	return out
}
