package entities

import "strconv"

// QuestionKind defines how a word is asked.
type QuestionKind string

const (
	QuestionText     QuestionKind = "text"      // free-text answer
	QuestionTextHint QuestionKind = "text_hint" // free-text answer with a GIF hint
	QuestionChoice   QuestionKind = "choice"    // multiple choice
)

type Question struct {
	Cursor  int // position in the pass, used to reject stale answers
	Total   int
	Mode    Mode
	Word    WordPair
	Kind    QuestionKind
	Prompt  string   // cleaned prompt shown to the player
	Options []string // normalized options, only for QuestionChoice
}

// HintKey identifies the word a hint was requested for.
func (q Question) HintKey() string {
	return string(q.Mode) + ":" + strconv.Itoa(q.Cursor) + ":" + strconv.Itoa(q.Word.Number)
}
