package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aliskhannn/palabras-bot/internal/domain/entities"
)

var (
	ErrWordNotFound  = errors.New("word not found")
	ErrInvalidNumber = errors.New("invalid word number")
	ErrEmptyCatalog  = errors.New("word catalog is empty")
)

// WordRepository provides read-only access to the vocabulary catalog.
// The catalog is loaded from a JSON file once and kept in memory.
type WordRepository struct {
	words    []entities.WordPair
	byNumber map[int]entities.WordPair
}

// NewWordRepository loads the catalog from path.
// When expectedSize is positive the catalog must contain exactly that many words.
func NewWordRepository(path string, expectedSize int) (*WordRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read word catalog: %w", err)
	}

	words, err := parseCatalog(data, expectedSize)
	if err != nil {
		return nil, err
	}

	return NewWordRepositoryFromWords(words), nil
}

// NewWordRepositoryFromWords wraps an in-memory catalog.
func NewWordRepositoryFromWords(words []entities.WordPair) *WordRepository {
	byNumber := make(map[int]entities.WordPair, len(words))
	for _, w := range words {
		byNumber[w.Number] = w
	}

	return &WordRepository{
		words:    words,
		byNumber: byNumber,
	}
}

// GetByNumber retrieves a word by its catalog number.
func (r *WordRepository) GetByNumber(_ context.Context, number int) (entities.WordPair, error) {
	if number < 1 {
		return entities.WordPair{}, ErrInvalidNumber
	}

	w, ok := r.byNumber[number]
	if !ok {
		return entities.WordPair{}, ErrWordNotFound
	}
	return w, nil
}

// GetAll returns a copy of the whole catalog.
func (r *WordRepository) GetAll(_ context.Context) ([]entities.WordPair, error) {
	out := make([]entities.WordPair, len(r.words))
	copy(out, r.words)
	return out, nil
}

// Size returns the number of words in the catalog.
func (r *WordRepository) Size() int {
	return len(r.words)
}

func parseCatalog(data []byte, expectedSize int) ([]entities.WordPair, error) {
	var wrapper struct {
		Words []entities.WordPair `json:"words"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal words JSON: %w", err)
	}

	if len(wrapper.Words) == 0 {
		return nil, ErrEmptyCatalog
	}

	if expectedSize > 0 && len(wrapper.Words) != expectedSize {
		return nil, fmt.Errorf("expected %d words, got %d", expectedSize, len(wrapper.Words))
	}

	seen := make(map[int]struct{}, len(wrapper.Words))
	for i, w := range wrapper.Words {
		if strings.TrimSpace(w.English) == "" || strings.TrimSpace(w.Spanish) == "" {
			return nil, fmt.Errorf("word #%d (number %d) has an empty side", i, w.Number)
		}
		if _, dup := seen[w.Number]; dup {
			return nil, fmt.Errorf("duplicate word number %d", w.Number)
		}
		seen[w.Number] = struct{}{}
	}

	return wrapper.Words, nil
}
