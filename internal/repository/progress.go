package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/palabras-bot/internal/domain/entities"
)

const (
	progressKeyPrefix = "progress:"
	lastModeField     = "lastMode"
)

// ProgressStore keeps one JSON blob per user holding both mode snapshots and
// the last played mode:
//
//	{"es-en": Snapshot, "en-es": Snapshot, "lastMode": "es-en"|"en-es"|null}
type ProgressStore struct {
	kv     KVStore
	logger *zap.Logger
}

// NewProgressStore creates a progress store on top of kv.
func NewProgressStore(kv KVStore, logger *zap.Logger) *ProgressStore {
	return &ProgressStore{kv: kv, logger: logger}
}

func progressKey(userID int64) string {
	return progressKeyPrefix + strconv.FormatInt(userID, 10)
}

// Load reads the progress of a user. Missing or malformed data yields empty
// progress; broken parts of an otherwise valid blob are dropped individually.
func (s *ProgressStore) Load(ctx context.Context, userID int64) entities.Progress {
	progress := entities.NewProgress()

	data, err := s.kv.Get(ctx, progressKey(userID))
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			s.logger.Error("failed to read progress",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
		}
		return progress
	}

	fields, err := decodeFields(data)
	if err != nil {
		s.logger.Warn("discarding malformed progress",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return progress
	}

	for _, m := range entities.Modes() {
		raw, ok := fields[string(m)]
		if !ok {
			continue
		}
		snap, err := decodeSnapshot(raw)
		if err != nil {
			s.logger.Warn("discarding malformed snapshot",
				zap.Int64("user_id", userID),
				zap.String("mode", string(m)),
				zap.Error(err),
			)
			continue
		}
		progress.Snapshots[m] = snap
	}

	if raw, ok := fields[lastModeField]; ok {
		var name string
		if err := json.Unmarshal(raw, &name); err == nil {
			if m := entities.Mode(name); m.Valid() {
				progress.LastMode = &m
			}
		}
	}

	return progress
}

// Save replaces the snapshot of mode and the last mode pointer.
// The other mode's snapshot and unknown fields are kept as stored.
func (s *ProgressStore) Save(
	ctx context.Context,
	userID int64,
	mode entities.Mode,
	snapshot entities.Snapshot,
	lastMode entities.Mode,
) error {
	if !mode.Valid() {
		return entities.ErrUnknownMode
	}

	encoded, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	lastRaw := json.RawMessage("null")
	if lastMode.Valid() {
		lastRaw, _ = json.Marshal(string(lastMode))
	}

	err = s.kv.Update(ctx, progressKey(userID), func(current []byte) ([]byte, error) {
		fields := s.existingFields(userID, current)
		fields[string(mode)] = encoded
		fields[lastModeField] = lastRaw
		return json.Marshal(fields)
	})
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}

	return nil
}

// Clear replaces the snapshot of mode with an empty one.
func (s *ProgressStore) Clear(ctx context.Context, userID int64, mode entities.Mode) error {
	if !mode.Valid() {
		return entities.ErrUnknownMode
	}

	empty, err := json.Marshal(entities.Snapshot{})
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	err = s.kv.Update(ctx, progressKey(userID), func(current []byte) ([]byte, error) {
		fields := s.existingFields(userID, current)
		fields[string(mode)] = empty
		if _, ok := fields[lastModeField]; !ok {
			fields[lastModeField] = json.RawMessage("null")
		}
		return json.Marshal(fields)
	})
	if err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}

	return nil
}

func (s *ProgressStore) existingFields(userID int64, current []byte) map[string]json.RawMessage {
	if len(current) == 0 {
		return make(map[string]json.RawMessage)
	}

	fields, err := decodeFields(current)
	if err != nil {
		s.logger.Warn("overwriting malformed progress",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return make(map[string]json.RawMessage)
	}
	return fields
}

func decodeFields(data []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, errors.New("progress is null")
	}
	return fields, nil
}

// looseInt accepts a JSON number or a numeric string. Anything else is zero.
type looseInt int

func (n *looseInt) UnmarshalJSON(data []byte) error {
	*n = 0

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var text string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return nil
		}
	} else {
		text = string(data)
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(f) || f > 1e9 || f < -1e9 {
		return nil
	}
	*n = looseInt(int(f))
	return nil
}

type snapshotWire struct {
	LearnedWords looseInt        `json:"learnedWords"`
	OrderRaw     json.RawMessage `json:"ordered"`
	Cursor       looseInt        `json:"index"`
	Correct      looseInt        `json:"correct"`
	Wrong        looseInt        `json:"wrong"`
	Skipped      looseInt        `json:"skipped"`
	MissedRaw    json.RawMessage `json:"wrongAnswers"`
	LastUpdated  json.RawMessage `json:"lastUpdated"`
}

type wordWire struct {
	Number  looseInt `json:"number"`
	English string   `json:"english"`
	Spanish string   `json:"spanish"`
}

// decodeSnapshot validates a stored snapshot and coerces it into a consistent
// shape: invalid words and missed entries are dropped, counters are made
// non-negative and the cursor is kept within the order.
func decodeSnapshot(raw json.RawMessage) (entities.Snapshot, error) {
	var w snapshotWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return entities.Snapshot{}, err
	}

	snap := entities.Snapshot{
		LearnedWords: max(0, int(w.LearnedWords)),
		Order:        decodeOrder(w.OrderRaw),
		Cursor:       max(0, int(w.Cursor)),
		Correct:      max(0, int(w.Correct)),
		Wrong:        max(0, int(w.Wrong)),
		Skipped:      max(0, int(w.Skipped)),
		Missed:       decodeMissed(w.MissedRaw),
		LastUpdated:  decodeTime(w.LastUpdated),
	}

	snap.Cursor = min(snap.Cursor, len(snap.Order))

	if answered := snap.Answered(); answered != snap.Cursor {
		if answered <= len(snap.Order) {
			snap.Cursor = answered
		} else {
			snap.Cursor = 0
			snap.Correct = 0
			snap.Wrong = 0
			snap.Skipped = 0
		}
	}

	return snap, nil
}

func decodeOrder(raw json.RawMessage) []entities.WordPair {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	words := make([]entities.WordPair, 0, len(items))
	for _, item := range items {
		var w wordWire
		if err := json.Unmarshal(item, &w); err != nil {
			continue
		}
		if strings.TrimSpace(w.English) == "" || strings.TrimSpace(w.Spanish) == "" {
			continue
		}
		words = append(words, entities.WordPair{
			Number:  int(w.Number),
			English: w.English,
			Spanish: w.Spanish,
		})
	}

	if len(words) == 0 {
		return nil
	}
	return words
}

func decodeMissed(raw json.RawMessage) []entities.MissedEntry {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	missed := make([]entities.MissedEntry, 0, len(items))
	for _, item := range items {
		var m entities.MissedEntry
		if err := json.Unmarshal(item, &m); err != nil {
			continue
		}
		if m.Prompt == "" || m.Expected == "" {
			continue
		}
		missed = append(missed, m)
	}

	if len(missed) == 0 {
		return nil
	}
	return missed
}

// decodeTime accepts an RFC 3339 string or Unix milliseconds.
func decodeTime(raw json.RawMessage) time.Time {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		t, err := time.Parse(time.RFC3339Nano, text)
		if err != nil {
			return time.Time{}
		}
		return t
	}

	var ms int64
	if err := json.Unmarshal(raw, &ms); err == nil && ms > 0 {
		return time.UnixMilli(ms).UTC()
	}

	return time.Time{}
}
