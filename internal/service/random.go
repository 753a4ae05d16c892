package service

import (
	"math/rand"
	"sync"
	"time"
)

// Random is a goroutine-safe source of randomness.
// Tests build it from a fixed seed to get reproducible games.
type Random struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandom creates a Random seeded with seed.
func NewRandom(seed int64) *Random {
	return &Random{rnd: rand.New(rand.NewSource(seed))}
}

// NewTimeRandom creates a Random seeded with the current time.
func NewTimeRandom() *Random {
	return NewRandom(time.Now().UnixNano())
}

// Intn returns a uniform value in [0, n). It returns 0 when n <= 0.
func (r *Random) Intn(n int) int {
	if n <= 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Intn(n)
}

// Float64 returns a uniform value in [0.0, 1.0).
func (r *Random) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Float64()
}

// Shuffle permutes items in place with the Fisher–Yates algorithm.
func Shuffle[T any](r *Random, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// Shuffled returns a shuffled copy of items.
func Shuffled[T any](r *Random, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	Shuffle(r, out)
	return out
}
