package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/palabras-bot/internal/domain/entities"
)

func TestBuildDistractors(t *testing.T) {
	catalog := []entities.WordPair{
		{Number: 1, English: "dog", Spanish: "perro"},
		{Number: 2, English: "Cat (n.)", Spanish: "gato"},
		{Number: 3, English: "house", Spanish: "casa"},
		{Number: 4, English: "water", Spanish: "agua"},
		{Number: 5, English: "house", Spanish: "hogar"},
	}
	rnd := NewRandom(7)

	t.Run("correct answer plus distinct distractors", func(t *testing.T) {
		options := BuildDistractors(rnd, "Dog", catalog, entities.ModeSpanishToEnglish, 2)

		require.Len(t, options, 3)
		assert.Contains(t, options, "dog")

		seen := map[string]bool{}
		for _, o := range options {
			assert.False(t, seen[o], "duplicate option %q", o)
			seen[o] = true
			assert.Equal(t, Normalize(o), o)
			assert.Contains(t, []string{"dog", "cat", "house", "water"}, o)
		}
	})

	t.Run("uses the answer side of the mode", func(t *testing.T) {
		options := BuildDistractors(rnd, "perro", catalog, entities.ModeEnglishToSpanish, 4)

		assert.ElementsMatch(t, []string{"perro", "gato", "casa", "agua", "hogar"}, options)
	})

	t.Run("short catalog yields fewer options", func(t *testing.T) {
		options := BuildDistractors(rnd, "dog", catalog[:2], entities.ModeSpanishToEnglish, 5)

		assert.ElementsMatch(t, []string{"dog", "cat"}, options)
	})

	t.Run("no candidates", func(t *testing.T) {
		options := BuildDistractors(rnd, "dog", catalog[:1], entities.ModeSpanishToEnglish, 2)

		assert.Equal(t, []string{"dog"}, options)
	})

	t.Run("negative count", func(t *testing.T) {
		options := BuildDistractors(rnd, "dog", catalog, entities.ModeSpanishToEnglish, -1)

		assert.Equal(t, []string{"dog"}, options)
	})
}

func TestShuffled(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}

	out := Shuffled(NewRandom(1), items)

	assert.ElementsMatch(t, items, out)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, items, "input must not be modified")
	assert.Equal(t, out, Shuffled(NewRandom(1), items), "same seed, same permutation")
}

func TestShuffle_Uniform(t *testing.T) {
	const (
		size   = 5
		trials = 50000
	)

	rnd := NewRandom(11)
	items := make([]int, size)
	var counts [size][size]int

	for range trials {
		for i := range items {
			items[i] = i
		}
		Shuffle(rnd, items)

		require.ElementsMatch(t, []int{0, 1, 2, 3, 4}, items)
		for pos, v := range items {
			counts[v][pos]++
		}
	}

	want := trials / size
	for v := range size {
		for pos := range size {
			assert.InDelta(t, want, counts[v][pos], float64(want)*0.05,
				"element %d at position %d", v, pos)
		}
	}
}

func TestRandom_Intn(t *testing.T) {
	r := NewRandom(3)

	assert.Equal(t, 0, r.Intn(0))
	assert.Equal(t, 0, r.Intn(-4))
	for i := 0; i < 100; i++ {
		n := r.Intn(3)
		assert.True(t, n >= 0 && n < 3)
	}
}
