package service

import (
	"github.com/aliskhannn/palabras-bot/internal/domain/entities"
)

// DefaultDistractors is the number of wrong options offered next to the correct one.
const DefaultDistractors = 2

// OptionGenerator generates multiple choice options for quiz questions.
type OptionGenerator struct {
	catalog []entities.WordPair
	rnd     *Random
}

// NewOptionGenerator creates a new option generator.
func NewOptionGenerator(catalog []entities.WordPair, rnd *Random) *OptionGenerator {
	return &OptionGenerator{
		catalog: catalog,
		rnd:     rnd,
	}
}

// GenerateOptions returns the normalized correct answer mixed with count distractors.
func (g *OptionGenerator) GenerateOptions(correctAnswer string, mode entities.Mode, count int) []string {
	return BuildDistractors(g.rnd, correctAnswer, g.catalog, mode, count)
}

// BuildDistractors picks count distinct translations from catalog that differ from
// correctAnswer, and returns them together with the correct answer in random order.
//
// Every option is normalized. When the catalog lacks enough distinct candidates the
// result is shorter; with no candidates at all it is just the correct answer.
func BuildDistractors(
	rnd *Random,
	correctAnswer string,
	catalog []entities.WordPair,
	mode entities.Mode,
	count int,
) []string {
	correct := Normalize(correctAnswer)

	// Create a pool of distinct candidates.
	seen := map[string]struct{}{correct: {}}
	candidates := make([]string, 0, len(catalog))
	for _, w := range catalog {
		option := Normalize(mode.Expected(w))
		if option == "" {
			continue
		}
		if _, ok := seen[option]; ok {
			continue
		}
		seen[option] = struct{}{}
		candidates = append(candidates, option)
	}

	if count < 0 {
		count = 0
	}
	picks := min(count, len(candidates))

	// Partial Fisher–Yates: the first picks entries become a uniform sample.
	for i := 0; i < picks; i++ {
		j := i + rnd.Intn(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}

	options := make([]string, 0, picks+1)
	options = append(options, correct)
	options = append(options, candidates[:picks]...)

	Shuffle(rnd, options)

	return options
}
