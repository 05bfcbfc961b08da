// Package sampling provides uniform random selection without replacement over
// an explicitly seeded random source, so every random decision the learning
// engine makes can be reproduced in tests.
package sampling

import (
	"math/rand/v2"
	"sync"
)

// Sampler draws uniform random samples. It is safe for concurrent use.
type Sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Sampler over the given source.
func New(src rand.Source) *Sampler {
	if src == nil {
		panic("random source cannot be nil")
	}
	return &Sampler{rng: rand.New(src)}
}

// NewSeeded creates a deterministic Sampler. Two samplers built with the same
// seed produce the same sequence of draws.
func NewSeeded(seed uint64) *Sampler {
	return New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewRandom creates a Sampler seeded from the runtime's random generator.
func NewRandom() *Sampler {
	return New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Indices returns k distinct indices from [0, n) in random order. Every
// k-subset, and every ordering of it, is equally likely. If k >= n the result
// is a random permutation of all n indices.
func (s *Sampler) Indices(n, k int) []int {
	if n <= 0 || k <= 0 {
		return []int{}
	}
	if k > n {
		k = n
	}

	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// partial Fisher-Yates: after step i, pool[:i+1] is the sample
	for i := 0; i < k; i++ {
		j := i + s.rng.IntN(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	return pool[:k]
}

// Walk visits the indices of [0, n) in uniformly random order until visit
// returns false or every index has been seen. It lets a caller draw lazily
// and stop as soon as it has enough acceptable items.
func (s *Sampler) Walk(n int, visit func(i int) bool) {
	if n <= 0 {
		return
	}

	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}

	for i := 0; i < n; i++ {
		s.mu.Lock()
		j := i + s.rng.IntN(n-i)
		s.mu.Unlock()

		pool[i], pool[j] = pool[j], pool[i]
		if !visit(pool[i]) {
			return
		}
	}
}

// Sample returns up to k items drawn uniformly without replacement, in the
// order they were drawn. The input slice is not modified.
func Sample[T any](s *Sampler, items []T, k int) []T {
	indices := s.Indices(len(items), k)
	out := make([]T, len(indices))
	for i, idx := range indices {
		out[i] = items[idx]
	}
	return out
}

// Shuffle permutes items in place uniformly at random.
func Shuffle[T any](s *Sampler, items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}
