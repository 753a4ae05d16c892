package service

import (
	"errors"
	"time"

	"github.com/aliskhannn/palabras-bot/internal/domain/entities"
)

// DefaultSkipLimit is the number of skips allowed per pass through the catalog.
const DefaultSkipLimit = 20

var (
	ErrNotPlaying       = errors.New("no game in progress")
	ErrNoCurrentWord    = errors.New("no word to answer")
	ErrSkipLimitReached = errors.New("skip limit reached")
)

// SessionStatus is the state of a live game.
type SessionStatus string

const (
	StatusModeSelect SessionStatus = "mode_select"
	StatusPlaying    SessionStatus = "playing"
	StatusFinished   SessionStatus = "finished"
)

// Feedback describes the outcome of one answer or skip.
type Feedback struct {
	Word       entities.WordPair
	Mode       entities.Mode
	UserAnswer string
	Correct    bool
	Skipped    bool
	Expected   string // raw catalog translation
	Finished   bool   // this answer completed the pass
}

// Session is the live game of one player.
// It is not safe for concurrent use; GameService serializes access per player.
type Session struct {
	catalog   []entities.WordPair
	rnd       *Random
	grader    *AnswerGrader
	skipLimit int
	now       func() time.Time

	status   SessionStatus
	mode     entities.Mode
	snapshot entities.Snapshot
}

// NewSession creates a session in the mode-select state.
func NewSession(catalog []entities.WordPair, rnd *Random, skipLimit int) *Session {
	if skipLimit < 0 {
		skipLimit = 0
	}

	return &Session{
		catalog:   catalog,
		rnd:       rnd,
		grader:    NewAnswerGrader(),
		skipLimit: skipLimit,
		now:       time.Now,
		status:    StatusModeSelect,
	}
}

func (s *Session) Status() SessionStatus { return s.status }

func (s *Session) Mode() entities.Mode { return s.mode }

// Snapshot returns a copy of the live snapshot.
func (s *Session) Snapshot() entities.Snapshot { return s.snapshot.Clone() }

// SkipsLeft returns how many skips remain in the current pass.
func (s *Session) SkipsLeft() int {
	return max(0, s.skipLimit-s.snapshot.Skipped)
}

// Current returns the word to answer while playing.
func (s *Session) Current() (entities.WordPair, bool) {
	if s.status != StatusPlaying {
		return entities.WordPair{}, false
	}
	return s.snapshot.Current()
}

// Score summarizes the live counters without copying the word order.
type Score struct {
	Cursor       int
	Total        int
	Correct      int
	Wrong        int
	Skipped      int
	SkipsLeft    int
	LearnedWords int
	LearnedTotal int
	Accuracy     int
	MissedCount  int
}

// Score returns the live counters.
func (s *Session) Score() Score {
	snap := s.snapshot
	return Score{
		Cursor:       snap.Cursor,
		Total:        snap.Total(),
		Correct:      snap.Correct,
		Wrong:        snap.Wrong,
		Skipped:      snap.Skipped,
		SkipsLeft:    s.SkipsLeft(),
		LearnedWords: snap.LearnedWords,
		LearnedTotal: snap.LearnedTotal(),
		Accuracy:     snap.Accuracy(),
		MissedCount:  len(snap.Missed),
	}
}

// SelectMode enters Playing for m starting from the stored snapshot.
// An empty or completed order starts a new pass over a fresh permutation of the
// catalog with zeroed counters; LearnedWords and missed words are kept.
func (s *Session) SelectMode(m entities.Mode, stored entities.Snapshot) error {
	if !m.Valid() {
		return entities.ErrUnknownMode
	}

	snap := stored.Clone()
	if len(snap.Order) == 0 || snap.Finished() {
		snap.Order = Shuffled(s.rnd, s.catalog)
		snap.Cursor = 0
		snap.Correct = 0
		snap.Wrong = 0
		snap.Skipped = 0
		snap.LastUpdated = s.now()
	}

	s.mode = m
	s.snapshot = snap
	s.status = StatusPlaying

	return nil
}

// Submit grades answer against the current word and moves to the next one.
func (s *Session) Submit(answer string) (Feedback, error) {
	word, err := s.currentWord()
	if err != nil {
		return Feedback{}, err
	}

	expected := s.mode.Expected(word)
	ok := s.grader.Grade(answer, expected)

	if ok {
		s.snapshot.Correct++
	} else {
		s.snapshot.Wrong++
		s.snapshot.Missed = append(s.snapshot.Missed, entities.MissedEntry{
			Prompt:     s.mode.Prompt(word),
			Expected:   expected,
			UserAnswer: answer,
		})
	}

	s.advance()

	return Feedback{
		Word:       word,
		Mode:       s.mode,
		UserAnswer: answer,
		Correct:    ok,
		Expected:   expected,
		Finished:   s.status == StatusFinished,
	}, nil
}

// Skip moves past the current word without grading it.
// Once the skip limit is reached it is rejected without changing state.
func (s *Session) Skip() (Feedback, error) {
	word, err := s.currentWord()
	if err != nil {
		return Feedback{}, err
	}

	if s.snapshot.Skipped >= s.skipLimit {
		return Feedback{}, ErrSkipLimitReached
	}

	s.snapshot.Skipped++
	s.advance()

	return Feedback{
		Word:     word,
		Mode:     s.mode,
		Skipped:  true,
		Expected: s.mode.Expected(word),
		Finished: s.status == StatusFinished,
	}, nil
}

// ChangeMode returns to mode selection and drops the live counters.
// The persisted snapshot is untouched; the next SelectMode reloads it.
func (s *Session) ChangeMode() {
	s.status = StatusModeSelect
	s.mode = ""
	s.snapshot = entities.Snapshot{}
}

// Reset drops the live state when m is the active mode.
// It reports whether the live state was reset.
func (s *Session) Reset(m entities.Mode) bool {
	if s.status == StatusModeSelect || s.mode != m {
		return false
	}

	s.ChangeMode()
	return true
}

// ClearMissed empties the missed-word list of the active mode.
func (s *Session) ClearMissed() error {
	if s.status == StatusModeSelect {
		return ErrNotPlaying
	}

	s.snapshot.Missed = nil
	s.snapshot.LastUpdated = s.now()
	return nil
}

func (s *Session) currentWord() (entities.WordPair, error) {
	if s.status != StatusPlaying {
		return entities.WordPair{}, ErrNotPlaying
	}

	word, ok := s.snapshot.Current()
	if !ok {
		return entities.WordPair{}, ErrNoCurrentWord
	}
	return word, nil
}

// advance moves the cursor and finishes the pass when the last word is done.
// The Playing→Finished transition happens once per pass, so LearnedWords is
// credited exactly once.
func (s *Session) advance() {
	s.snapshot.Cursor++
	s.snapshot.LastUpdated = s.now()

	if s.snapshot.Finished() {
		s.status = StatusFinished
		s.snapshot.LearnedWords += s.snapshot.Correct
	}
}
