// Package entities contains domain entities used across the application.
package entities

// WordPair represents one entry of the vocabulary catalog.
// The catalog is loaded once at startup and never mutated.
type WordPair struct {
	Number  int    `json:"number"`  // stable identifier, not used for lookup during a game
	English string `json:"english"` // English form, may carry annotations like "(n.)" or "run / ran"
	Spanish string `json:"spanish"` // Spanish form, same annotation rules as English
}
