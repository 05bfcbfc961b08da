package sampling_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wordsprint/wordsprint-api/internal/sampling"
)

func TestIndices_DistinctAndInRange(t *testing.T) {
	t.Parallel()

	s := sampling.NewSeeded(42)
	for k := 0; k <= 12; k++ {
		got := s.Indices(10, k)
		want := min(k, 10)
		require.Len(t, got, want)

		seen := make(map[int]bool)
		for _, idx := range got {
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, 10)
			assert.False(t, seen[idx], "duplicate index %d", idx)
			seen[idx] = true
		}
	}
}

func TestIndices_EmptyInputs(t *testing.T) {
	t.Parallel()

	s := sampling.NewSeeded(1)
	assert.Empty(t, s.Indices(0, 5))
	assert.Empty(t, s.Indices(5, 0))
	assert.Empty(t, s.Indices(-1, 3))
}

func TestIndices_Deterministic(t *testing.T) {
	t.Parallel()

	a := sampling.NewSeeded(7)
	b := sampling.NewSeeded(7)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Indices(50, 10), b.Indices(50, 10))
	}
}

func TestIndices_Uniform(t *testing.T) {
	t.Parallel()

	const (
		n      = 5
		k      = 2
		trials = 50000
	)
	s := sampling.NewSeeded(2024)
	counts := make([]int, n)
	for i := 0; i < trials; i++ {
		for _, idx := range s.Indices(n, k) {
			counts[idx]++
		}
	}

	expected := float64(trials*k) / n
	for idx, c := range counts {
		deviation := math.Abs(float64(c)-expected) / expected
		assert.Less(t, deviation, 0.03, "index %d drawn %d times, expected about %.0f", idx, c, expected)
	}
}

func TestWalk_StopsEarly(t *testing.T) {
	t.Parallel()

	s := sampling.NewSeeded(3)
	var visited []int
	s.Walk(100, func(i int) bool {
		visited = append(visited, i)
		return len(visited) < 4
	})
	assert.Len(t, visited, 4)
}

func TestWalk_VisitsEveryIndexOnce(t *testing.T) {
	t.Parallel()

	s := sampling.NewSeeded(9)
	seen := make(map[int]int)
	s.Walk(25, func(i int) bool {
		seen[i]++
		return true
	})
	require.Len(t, seen, 25)
	for idx, c := range seen {
		assert.Equal(t, 1, c, "index %d", idx)
	}
}

func TestSampleAndShuffle(t *testing.T) {
	t.Parallel()

	s := sampling.NewSeeded(11)
	items := []string{"apple", "book", "car", "water", "school"}

	picked := sampling.Sample(s, items, 3)
	assert.Len(t, picked, 3)
	assert.Subset(t, items, picked)
	assert.Equal(t, []string{"apple", "book", "car", "water", "school"}, items, "input must not change")

	all := sampling.Sample(s, items, 99)
	assert.ElementsMatch(t, items, all)

	shuffled := append([]string(nil), items...)
	sampling.Shuffle(s, shuffled)
	assert.ElementsMatch(t, items, shuffled)
}

func TestNew_NilSourcePanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { sampling.New(nil) })
}
