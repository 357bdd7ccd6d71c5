package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleIndices(t *testing.T) {
	t.Run("fewer items than k returns all", func(t *testing.T) {
		assert.Equal(t, []int{0, 1, 2}, SampleIndices(NewRand(seed(1)), 3, 10))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, SampleIndices(NewRand(seed(1)), 0, 10))
	})

	t.Run("distinct and in range", func(t *testing.T) {
		idx := SampleIndices(NewRand(seed(7)), 50, 10)
		require.Len(t, idx, 10)
		seen := map[int]bool{}
		for _, i := range idx {
			assert.False(t, seen[i], "index %d drawn twice", i)
			assert.True(t, i >= 0 && i < 50)
			seen[i] = true
		}
	})

	t.Run("same seed same draw", func(t *testing.T) {
		a := SampleIndices(NewRand(seed(42)), 100, 10)
		b := SampleIndices(NewRand(seed(42)), 100, 10)
		assert.Equal(t, a, b)
	})

	t.Run("different seeds differ", func(t *testing.T) {
		a := SampleIndices(NewRand(seed(1)), 1000, 10)
		b := SampleIndices(NewRand(seed(2)), 1000, 10)
		assert.NotEqual(t, a, b)
	})
}

func TestSamplePaths(t *testing.T) {
	paths := []string{"a", "b", "c", "d", "e", "f"}
	got := SamplePaths(NewRand(seed(3)), paths, 4)
	require.Len(t, got, 4)
	for _, p := range got {
		assert.Contains(t, paths, p)
	}
}
