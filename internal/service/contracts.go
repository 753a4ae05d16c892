package service

import (
	"context"

	"github.com/aliskhannn/palabras-bot/internal/domain/entities"
)

type WordRepository interface {
	GetAll(ctx context.Context) ([]entities.WordPair, error)
}

// ProgressStore persists per-mode snapshots of every player.
type ProgressStore interface {
	// Load never fails: missing or corrupted data yields empty progress.
	Load(ctx context.Context, userID int64) entities.Progress
	Save(ctx context.Context, userID int64, mode entities.Mode, snapshot entities.Snapshot, lastMode entities.Mode) error
	Clear(ctx context.Context, userID int64, mode entities.Mode) error
}

// HintProvider searches hint animations for a term.
type HintProvider interface {
	Search(ctx context.Context, query string) ([]entities.Gif, error)
}
