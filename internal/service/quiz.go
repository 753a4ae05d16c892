package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/palabras-bot/internal/domain/entities"
)

// AnyCursor accepts a skip for whatever word is current.
const AnyCursor = -1

var (
	ErrStaleQuestion     = errors.New("question is no longer current")
	ErrInvalidOption     = errors.New("invalid option")
	ErrNothingToContinue = errors.New("no game to continue")
)

// GameConfig tunes how questions are asked.
type GameConfig struct {
	SkipLimit           int
	Distractors         int
	MultipleChoiceRatio float64 // share of multiple choice questions
	HintRatio           float64 // share of free-text questions with a GIF hint
}

// DefaultGameConfig returns the default game balance: a third of the words are
// multiple choice, a third come with a hint.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		SkipLimit:           DefaultSkipLimit,
		Distractors:         DefaultDistractors,
		MultipleChoiceRatio: 0.33,
		HintRatio:           0.33,
	}
}

// Turn is the result of an answer or a skip.
type Turn struct {
	Feedback Feedback
	Score    Score
	Next     *entities.Question // nil when the pass is finished
}

// State is a read-only view of a player's live game.
type State struct {
	Status SessionStatus
	Mode   entities.Mode
	Score  Score
}

// Overview is what the mode selection screen shows.
type Overview struct {
	Status      SessionStatus
	Active      entities.Mode // empty in mode selection
	LastMode    *entities.Mode
	CanContinue bool
	Continue    Score // position of the game that can be continued
	Learned     map[entities.Mode]int
}

// Focus returns the mode whose learned total should be highlighted.
func (o *Overview) Focus() entities.Mode {
	if o.Active != "" {
		return o.Active
	}
	if o.LastMode != nil {
		return *o.LastMode
	}
	return entities.ModeSpanishToEnglish
}

type player struct {
	mu       sync.Mutex
	session  *Session
	question *entities.Question
	lastSeen time.Time
}

// GameService owns the live sessions of all players and keeps their progress
// persisted after every change.
type GameService struct {
	catalog []entities.WordPair
	store   ProgressStore
	options *OptionGenerator
	rnd     *Random
	cfg     GameConfig
	logger  *zap.Logger
	now     func() time.Time

	mu      sync.Mutex
	players map[int64]*player
}

func NewGameService(
	catalog []entities.WordPair,
	store ProgressStore,
	rnd *Random,
	cfg GameConfig,
	logger *zap.Logger,
) *GameService {
	return &GameService{
		catalog: catalog,
		store:   store,
		options: NewOptionGenerator(catalog, rnd),
		rnd:     rnd,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
		players: make(map[int64]*player),
	}
}

// Overview loads the progress of both modes for the mode selection screen.
func (s *GameService) Overview(ctx context.Context, userID int64) *Overview {
	p := s.player(userID)
	p.mu.Lock()
	defer p.mu.Unlock()

	progress := s.store.Load(ctx, userID)

	ov := &Overview{
		Status:   p.session.Status(),
		Active:   p.session.Mode(),
		LastMode: progress.LastMode,
		Learned:  make(map[entities.Mode]int, len(entities.Modes())),
	}

	for _, m := range entities.Modes() {
		if m == ov.Active {
			ov.Learned[m] = p.session.Score().LearnedTotal
			continue
		}
		ov.Learned[m] = progress.Snapshot(m).LearnedTotal()
	}

	if ov.Active == "" && progress.LastMode != nil {
		snap := progress.Snapshot(*progress.LastMode)
		if snap.InProgress() {
			ov.CanContinue = true
			ov.Continue = Score{
				Cursor:  snap.Cursor,
				Total:   snap.Total(),
				Correct: snap.Correct,
				Wrong:   snap.Wrong,
				Skipped: snap.Skipped,
			}
		}
	}

	return ov
}

// SelectMode starts or resumes the game for mode and returns the first question.
func (s *GameService) SelectMode(ctx context.Context, userID int64, mode entities.Mode) (*entities.Question, error) {
	p := s.player(userID)
	p.mu.Lock()
	defer p.mu.Unlock()

	return s.selectMode(ctx, userID, p, mode)
}

// Continue resumes the last played mode when it has words left.
func (s *GameService) Continue(ctx context.Context, userID int64) (*entities.Question, error) {
	p := s.player(userID)
	p.mu.Lock()
	defer p.mu.Unlock()

	progress := s.store.Load(ctx, userID)
	if progress.LastMode == nil || !progress.Snapshot(*progress.LastMode).InProgress() {
		return nil, ErrNothingToContinue
	}

	return s.selectMode(ctx, userID, p, *progress.LastMode)
}

func (s *GameService) selectMode(
	ctx context.Context, userID int64, p *player, mode entities.Mode,
) (*entities.Question, error) {
	progress := s.store.Load(ctx, userID)
	if err := p.session.SelectMode(mode, progress.Snapshot(mode)); err != nil {
		return nil, err
	}

	s.save(ctx, userID, p.session)

	score := p.session.Score()
	s.logger.Info("mode selected",
		zap.Int64("user_id", userID),
		zap.String("mode", string(mode)),
		zap.Int("cursor", score.Cursor),
		zap.Int("total", score.Total),
	)

	p.question = s.nextQuestion(p.session)
	if p.question == nil {
		return nil, ErrNoCurrentWord
	}

	q := *p.question
	return &q, nil
}

// Submit grades a free-text answer for the current word.
func (s *GameService) Submit(ctx context.Context, userID int64, answer string) (*Turn, error) {
	p := s.player(userID)
	p.mu.Lock()
	defer p.mu.Unlock()

	fb, err := p.session.Submit(answer)
	if err != nil {
		return nil, err
	}

	return s.finishTurn(ctx, userID, p, fb), nil
}

// Choose answers a multiple choice question.
// The cursor must match the question the options were generated for.
func (s *GameService) Choose(ctx context.Context, userID int64, cursor, option int) (*Turn, error) {
	p := s.player(userID)
	p.mu.Lock()
	defer p.mu.Unlock()

	q := p.question
	if q == nil || q.Kind != entities.QuestionChoice || !s.isCurrent(p, cursor) {
		return nil, ErrStaleQuestion
	}
	if option < 0 || option >= len(q.Options) {
		return nil, ErrInvalidOption
	}

	fb, err := p.session.Submit(q.Options[option])
	if err != nil {
		return nil, err
	}

	return s.finishTurn(ctx, userID, p, fb), nil
}

// Skip moves past the current word. Pass AnyCursor to skip without checking
// which question the player saw.
func (s *GameService) Skip(ctx context.Context, userID int64, cursor int) (*Turn, error) {
	p := s.player(userID)
	p.mu.Lock()
	defer p.mu.Unlock()

	if cursor != AnyCursor && !s.isCurrent(p, cursor) {
		return nil, ErrStaleQuestion
	}

	fb, err := p.session.Skip()
	if err != nil {
		return nil, err
	}

	return s.finishTurn(ctx, userID, p, fb), nil
}

// CurrentQuestion returns the question awaiting an answer.
func (s *GameService) CurrentQuestion(userID int64) (*entities.Question, bool) {
	p := s.player(userID)
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.question == nil || p.session.Status() != StatusPlaying {
		return nil, false
	}

	q := *p.question
	return &q, true
}

// State returns the live game of the player.
func (s *GameService) State(userID int64) State {
	p := s.player(userID)
	p.mu.Lock()
	defer p.mu.Unlock()

	return State{
		Status: p.session.Status(),
		Mode:   p.session.Mode(),
		Score:  p.session.Score(),
	}
}

// ChangeMode returns the player to mode selection.
func (s *GameService) ChangeMode(userID int64) {
	p := s.player(userID)
	p.mu.Lock()
	defer p.mu.Unlock()

	p.session.ChangeMode()
	p.question = nil
}

// ResetMode wipes the stored progress of mode, including learned words and
// missed words. It reports whether the live game was reset as well.
func (s *GameService) ResetMode(ctx context.Context, userID int64, mode entities.Mode) (bool, error) {
	if !mode.Valid() {
		return false, entities.ErrUnknownMode
	}

	p := s.player(userID)
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := s.store.Clear(ctx, userID, mode); err != nil {
		return false, err
	}

	live := p.session.Reset(mode)
	if live {
		p.question = nil
	}

	s.logger.Info("mode progress reset",
		zap.Int64("user_id", userID),
		zap.String("mode", string(mode)),
		zap.Bool("live", live),
	)

	return live, nil
}

// ClearMissed empties the missed-word list of mode. The live game is cleared
// when it plays mode, the stored snapshot otherwise.
func (s *GameService) ClearMissed(ctx context.Context, userID int64, mode entities.Mode) error {
	if !mode.Valid() {
		return entities.ErrUnknownMode
	}

	p := s.player(userID)
	p.mu.Lock()
	defer p.mu.Unlock()

	if s.isLive(p, mode) {
		if err := p.session.ClearMissed(); err != nil {
			return err
		}
		s.save(ctx, userID, p.session)
		return nil
	}

	progress := s.store.Load(ctx, userID)
	snap := progress.Snapshot(mode)
	if len(snap.Missed) == 0 {
		return nil
	}

	snap.Missed = nil
	snap.LastUpdated = s.now()

	var lastMode entities.Mode
	if progress.LastMode != nil {
		lastMode = *progress.LastMode
	}

	return s.store.Save(ctx, userID, mode, snap, lastMode)
}

// Missed returns the missed words of mode. An empty mode means the active mode,
// or the last played one when the player is choosing a mode. The returned mode
// is empty when nothing was played yet.
func (s *GameService) Missed(ctx context.Context, userID int64, mode entities.Mode) (entities.Mode, []entities.MissedEntry) {
	p := s.player(userID)
	p.mu.Lock()
	defer p.mu.Unlock()

	if mode == "" && p.session.Status() != StatusModeSelect {
		mode = p.session.Mode()
	}
	if s.isLive(p, mode) {
		return mode, p.session.Snapshot().Missed
	}

	progress := s.store.Load(ctx, userID)
	if mode == "" {
		if progress.LastMode == nil {
			return "", nil
		}
		mode = *progress.LastMode
	}

	return mode, progress.Snapshot(mode).Missed
}

// Sweep drops live sessions not touched since cutoff. Their progress stays in the
// store. It returns the number of dropped sessions.
func (s *GameService) Sweep(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := 0
	for userID, p := range s.players {
		if !p.lastSeen.Before(cutoff) {
			continue
		}
		// A busy player is not idle.
		if !p.mu.TryLock() {
			continue
		}
		delete(s.players, userID)
		p.mu.Unlock()
		dropped++
	}

	return dropped
}

func (s *GameService) player(userID int64) *player {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.players[userID]
	if !ok {
		p = &player{session: NewSession(s.catalog, s.rnd, s.cfg.SkipLimit)}
		s.players[userID] = p
	}
	p.lastSeen = s.now()

	return p
}

// isLive reports whether the player's live game belongs to mode.
func (s *GameService) isLive(p *player, mode entities.Mode) bool {
	return mode != "" && p.session.Status() != StatusModeSelect && p.session.Mode() == mode
}

func (s *GameService) isCurrent(p *player, cursor int) bool {
	if p.session.Status() != StatusPlaying {
		return false
	}
	return p.session.Score().Cursor == cursor
}

func (s *GameService) finishTurn(ctx context.Context, userID int64, p *player, fb Feedback) *Turn {
	s.save(ctx, userID, p.session)

	turn := &Turn{
		Feedback: fb,
		Score:    p.session.Score(),
	}

	if fb.Finished {
		s.logger.Info("pass finished",
			zap.Int64("user_id", userID),
			zap.String("mode", string(fb.Mode)),
			zap.Int("correct", turn.Score.Correct),
			zap.Int("learned_words", turn.Score.LearnedWords),
		)
	} else {
		turn.Next = s.nextQuestion(p.session)
	}

	p.question = turn.Next
	if turn.Next != nil {
		q := *turn.Next
		turn.Next = &q
	}

	return turn
}

// save writes the live snapshot. A failed write is logged and the game goes on:
// the next successful write replaces the whole snapshot anyway.
func (s *GameService) save(ctx context.Context, userID int64, session *Session) {
	mode := session.Mode()
	if err := s.store.Save(ctx, userID, mode, session.Snapshot(), mode); err != nil {
		s.logger.Error("failed to save progress",
			zap.Int64("user_id", userID),
			zap.String("mode", string(mode)),
			zap.Error(err),
		)
	}
}

func (s *GameService) nextQuestion(session *Session) *entities.Question {
	word, ok := session.Current()
	if !ok {
		return nil
	}

	mode := session.Mode()
	score := session.Score()

	q := &entities.Question{
		Cursor: score.Cursor,
		Total:  score.Total,
		Mode:   mode,
		Word:   word,
		Kind:   s.randomQuestionKind(),
		Prompt: CleanWord(mode.Prompt(word)),
	}

	if q.Kind == entities.QuestionChoice {
		q.Options = s.options.GenerateOptions(mode.Expected(word), mode, s.cfg.Distractors)
		if len(q.Options) < 2 {
			q.Kind = entities.QuestionText
			q.Options = nil
		}
	}

	return q
}

func (s *GameService) randomQuestionKind() entities.QuestionKind {
	x := s.rnd.Float64()
	switch {
	case x < s.cfg.MultipleChoiceRatio:
		return entities.QuestionChoice
	case x < s.cfg.MultipleChoiceRatio+s.cfg.HintRatio:
		return entities.QuestionTextHint
	default:
		return entities.QuestionText
	}
}
