package data

import (
	"math/rand/v2"
	"sort"
)

// NewRand returns a PCG-backed source. A nil seed draws one from the global generator,
// so only seeded runs are reproducible.
func NewRand(seed *int64) *rand.Rand {
	if seed == nil {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s := uint64(*seed)
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

func newIndexList(size int) []int {
	indices := make([]int, size)
	for i := range indices {
		indices[i] = i
	}
	return indices
}

// SampleIndices draws min(k, n) distinct indices from [0, n) uniformly at random.
// When k >= n every index is returned in order and rng is not consumed.
// The result is sorted so callers visit files in listing order.
func SampleIndices(rng *rand.Rand, n, k int) []int {
	indices := newIndexList(n)
	if k >= n {
		return indices
	}
	if k <= 0 {
		return nil
	}
	rng.Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})
	picked := indices[:k]
	sort.Ints(picked)
	return picked
}

// SamplePaths picks at most k of paths with SampleIndices.
func SamplePaths(rng *rand.Rand, paths []string, k int) []string {
	idx := SampleIndices(rng, len(paths), k)
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = paths[j]
	}
	return out
}
