package entities

import "time"

// MissedEntry records one incorrectly answered prompt.
// JSON keys match the persisted blob format.
type MissedEntry struct {
	Prompt     string `json:"word"`        // word as it was shown to the player
	Expected   string `json:"translation"` // raw catalog translation
	UserAnswer string `json:"userAnswer"`  // answer exactly as typed
}

// Snapshot is the persisted state of one mode's game.
//
// Invariants while a pass is active:
//   - 0 <= Cursor <= len(Order)
//   - Correct + Wrong + Skipped == Cursor
type Snapshot struct {
	LearnedWords int           `json:"learnedWords"` // accumulated over completed passes
	Order        []WordPair    `json:"ordered"`      // shuffled catalog for the current pass
	Cursor       int           `json:"index"`        // position of the current word in Order
	Correct      int           `json:"correct"`
	Wrong        int           `json:"wrong"`
	Skipped      int           `json:"skipped"`
	Missed       []MissedEntry `json:"wrongAnswers"`
	LastUpdated  time.Time     `json:"lastUpdated"`
}

// Total returns the number of words in the current pass.
func (s Snapshot) Total() int {
	return len(s.Order)
}

// Answered returns how many words were answered or skipped.
func (s Snapshot) Answered() int {
	return s.Correct + s.Wrong + s.Skipped
}

// Finished reports whether the current pass is complete.
func (s Snapshot) Finished() bool {
	return len(s.Order) > 0 && s.Cursor >= len(s.Order)
}

// InProgress reports whether the pass has words left to play.
func (s Snapshot) InProgress() bool {
	return len(s.Order) > 0 && s.Cursor < len(s.Order)
}

// Current returns the word under the cursor.
func (s Snapshot) Current() (WordPair, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Order) {
		return WordPair{}, false
	}
	return s.Order[s.Cursor], true
}

// Accuracy returns the share of correct answers in percent, rounded.
func (s Snapshot) Accuracy() int {
	answered := s.Answered()
	if answered == 0 {
		return 0
	}
	return (s.Correct*100 + answered/2) / answered
}

// LearnedTotal returns learned words including the pass in flight.
// A finished pass is already folded into LearnedWords.
func (s Snapshot) LearnedTotal() int {
	if s.Finished() {
		return s.LearnedWords
	}
	return s.LearnedWords + s.Correct
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	c := s
	if s.Order != nil {
		c.Order = append([]WordPair(nil), s.Order...)
	}
	if s.Missed != nil {
		c.Missed = append([]MissedEntry(nil), s.Missed...)
	}
	return c
}

// Progress holds both per-mode snapshots and the last played mode.
type Progress struct {
	Snapshots map[Mode]Snapshot
	LastMode  *Mode // nil when no mode was played yet
}

// NewProgress creates empty progress for both modes.
func NewProgress() Progress {
	snapshots := make(map[Mode]Snapshot, len(Modes()))
	for _, m := range Modes() {
		snapshots[m] = Snapshot{}
	}
	return Progress{Snapshots: snapshots}
}

// Snapshot returns the snapshot stored for m, or an empty one.
func (p Progress) Snapshot(m Mode) Snapshot {
	if p.Snapshots == nil {
		return Snapshot{}
	}
	return p.Snapshots[m]
}
