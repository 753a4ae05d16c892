package entities

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownMode = errors.New("unknown game mode")

// Mode is the translation direction of a game.
type Mode string

const (
	ModeSpanishToEnglish Mode = "es-en" // prompt in Spanish, answer in English
	ModeEnglishToSpanish Mode = "en-es" // prompt in English, answer in Spanish
)

// Modes lists every supported mode in display order.
func Modes() []Mode {
	return []Mode{ModeSpanishToEnglish, ModeEnglishToSpanish}
}

// ParseMode converts a raw string into a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.TrimSpace(strings.ToLower(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
	return m, nil
}

// Valid reports whether m is one of the supported modes.
func (m Mode) Valid() bool {
	return m == ModeSpanishToEnglish || m == ModeEnglishToSpanish
}

// Prompt returns the side of the pair shown to the player.
func (m Mode) Prompt(w WordPair) string {
	if m == ModeEnglishToSpanish {
		return w.English
	}
	return w.Spanish
}

// Expected returns the side of the pair the player has to type.
func (m Mode) Expected(w WordPair) string {
	if m == ModeEnglishToSpanish {
		return w.Spanish
	}
	return w.English
}

// Label returns a human-readable direction, e.g. "Español → Inglés".
func (m Mode) Label() string {
	switch m {
	case ModeSpanishToEnglish:
		return "Español → Inglés"
	case ModeEnglishToSpanish:
		return "Inglés → Español"
	default:
		return string(m)
	}
}

// TargetLanguage returns the name of the answer language in Spanish.
func (m Mode) TargetLanguage() string {
	if m == ModeEnglishToSpanish {
		return "español"
	}
	return "inglés"
}

// SourceLanguage returns the name of the prompt language in Spanish.
func (m Mode) SourceLanguage() string {
	if m == ModeEnglishToSpanish {
		return "inglés"
	}
	return "español"
}
