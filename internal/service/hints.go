package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/palabras-bot/internal/domain/entities"
)

// HintToken identifies one hint fetch for one word.
type HintToken struct {
	Key string    // word identity, see entities.Question.HintKey
	ID  uuid.UUID // distinguishes repeated fetches for the same word
}

type hintFetch struct {
	token     HintToken
	cancel    context.CancelFunc
	startedAt time.Time
}

// HintTracker remembers the hint fetch each player is waiting for.
// Only the fetch for the word currently on screen may deliver its result.
type HintTracker struct {
	mu      sync.Mutex
	current map[int64]hintFetch
	now     func() time.Time
}

// NewHintTracker creates an empty tracker.
func NewHintTracker() *HintTracker {
	return &HintTracker{
		current: make(map[int64]hintFetch),
		now:     time.Now,
	}
}

// Begin registers a new fetch for key and cancels the previous one.
func (t *HintTracker) Begin(ctx context.Context, userID int64, key string) (context.Context, HintToken) {
	ctx, cancel := context.WithCancel(ctx)
	token := HintToken{Key: key, ID: uuid.New()}

	t.mu.Lock()
	prev, ok := t.current[userID]
	t.current[userID] = hintFetch{token: token, cancel: cancel, startedAt: t.now()}
	t.mu.Unlock()

	if ok {
		prev.cancel()
	}

	return ctx, token
}

// IsCurrent reports whether token belongs to the latest fetch of the player.
func (t *HintTracker) IsCurrent(userID int64, token HintToken) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	f, ok := t.current[userID]
	return ok && f.token == token
}

// Deliver runs fn only if token is still current, then forgets the fetch.
// It reports whether fn ran. fn runs without the tracker lock held, so a slow
// delivery never blocks other players.
func (t *HintTracker) Deliver(userID int64, token HintToken, fn func()) bool {
	t.mu.Lock()
	f, ok := t.current[userID]
	if !ok || f.token != token {
		t.mu.Unlock()
		return false
	}
	delete(t.current, userID)
	t.mu.Unlock()

	f.cancel()
	fn()

	return true
}

// Cancel abandons the pending fetch of the player, if any.
func (t *HintTracker) Cancel(userID int64) {
	t.mu.Lock()
	f, ok := t.current[userID]
	delete(t.current, userID)
	t.mu.Unlock()

	if ok {
		f.cancel()
	}
}

// Sweep cancels fetches started before cutoff.
func (t *HintTracker) Sweep(cutoff time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	dropped := 0
	for userID, f := range t.current {
		if f.startedAt.Before(cutoff) {
			f.cancel()
			delete(t.current, userID)
			dropped++
		}
	}
	return dropped
}

// HintService fetches GIF hints for the word on screen.
type HintService struct {
	provider HintProvider
	tracker  *HintTracker
	rnd      *Random
	logger   *zap.Logger
}

// NewHintService creates a hint service. A nil provider disables hints.
func NewHintService(provider HintProvider, tracker *HintTracker, rnd *Random, logger *zap.Logger) *HintService {
	return &HintService{
		provider: provider,
		tracker:  tracker,
		rnd:      rnd,
		logger:   logger,
	}
}

// Enabled reports whether a hint provider is configured.
func (s *HintService) Enabled() bool {
	return s != nil && s.provider != nil
}

// Fetch looks up a hint for q and hands a random result to deliver, unless the
// player has moved on to another word in the meantime. Failures only mean
// "no hint" and are logged.
func (s *HintService) Fetch(ctx context.Context, userID int64, q entities.Question, deliver func(entities.Gif)) bool {
	if !s.Enabled() {
		return false
	}

	ctx, token := s.tracker.Begin(ctx, userID, q.HintKey())

	gifs, err := s.provider.Search(ctx, q.Prompt)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn("hint lookup failed",
				zap.Int64("user_id", userID),
				zap.String("term", q.Prompt),
				zap.Error(err),
			)
		}
		s.tracker.Deliver(userID, token, func() {})
		return false
	}

	if len(gifs) == 0 {
		s.logger.Debug("no hint found", zap.String("term", q.Prompt))
		s.tracker.Deliver(userID, token, func() {})
		return false
	}

	gif := gifs[s.rnd.Intn(len(gifs))]

	delivered := s.tracker.Deliver(userID, token, func() { deliver(gif) })
	if !delivered {
		s.logger.Debug("stale hint discarded",
			zap.Int64("user_id", userID),
			zap.String("key", token.Key),
		)
	}

	return delivered
}

// Cancel drops the pending hint of the player, e.g. when the word changes.
func (s *HintService) Cancel(userID int64) {
	if s == nil {
		return
	}
	s.tracker.Cancel(userID)
}
