package storage

import (
	"sync"
	"time"
)

// PromptMessage is a question message that still carries an answer keyboard.
type PromptMessage struct {
	ChatID    int64
	MessageID int
	Cursor    int
	SentAt    time.Time
}

// PromptStorage remembers the last keyboard-carrying prompt of every user so
// its buttons can be removed once the question is answered or replaced.
type PromptStorage struct {
	mu       sync.RWMutex
	messages map[int64]PromptMessage
	now      func() time.Time
}

func NewPromptStorage() *PromptStorage {
	return &PromptStorage{
		messages: make(map[int64]PromptMessage),
		now:      time.Now,
	}
}

func (s *PromptStorage) Get(userID int64) (PromptMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msg, ok := s.messages[userID]
	return msg, ok
}

// Take returns and forgets the stored prompt.
func (s *PromptStorage) Take(userID int64) (PromptMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := s.messages[userID]
	delete(s.messages, userID)
	return msg, ok
}

// UpsertAndGetPrev stores a new prompt and returns the one it replaces.
func (s *PromptStorage) UpsertAndGetPrev(userID int64, chatID int64, messageID int, cursor int) (prev PromptMessage, hadPrev bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, hadPrev = s.messages[userID]

	s.messages[userID] = PromptMessage{
		ChatID:    chatID,
		MessageID: messageID,
		Cursor:    cursor,
		SentAt:    s.now(),
	}

	return prev, hadPrev
}

// Sweep forgets prompts sent before cutoff.
func (s *PromptStorage) Sweep(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := 0
	for userID, msg := range s.messages {
		if msg.SentAt.Before(cutoff) {
			delete(s.messages, userID)
			dropped++
		}
	}
	return dropped
}
