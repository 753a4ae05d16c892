package service

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	parentheticalPattern = regexp.MustCompile(`\s*\([^)]*\)`)
	bracketedPattern     = regexp.MustCompile(`\s*\[[^\]]*\]`)
	alternatesPattern    = regexp.MustCompile(`(?s)\s*[/,].*$`)
)

// punctuation is removed from both prompts and answers.
const punctuation = ".,;!?:¡¿"

// CleanWord strips catalog annotations from a word while keeping its accents.
// "correr (v.) / run" becomes "correr".
func CleanWord(s string) string {
	s = parentheticalPattern.ReplaceAllString(s, "")
	s = bracketedPattern.ReplaceAllString(s, "")
	s = alternatesPattern.ReplaceAllString(s, "")

	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, s)

	return strings.Join(strings.Fields(s), " ")
}

// Normalize prepares a string for accent, case and punctuation insensitive comparison.
// Normalize(Normalize(x)) == Normalize(x) for every x.
//
// Diacritics are folded before cleaning: some characters only decompose into
// punctuation under NFD, e.g. U+037E becomes ";". Removing annotations can
// leave composable neighbours, so the result is folded once more.
func Normalize(s string) string {
	s = foldDiacritics(strings.ToLower(s))
	s = foldDiacritics(CleanWord(s))
	return strings.Join(strings.Fields(s), " ")
}

// foldDiacritics removes combining marks: "canción" becomes "cancion".
func foldDiacritics(s string) string {
	// Transformers keep internal state, so a chain is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// AnswerGrader checks free-text answers against the expected translation.
type AnswerGrader struct{}

// NewAnswerGrader creates a new AnswerGrader.
func NewAnswerGrader() *AnswerGrader {
	return &AnswerGrader{}
}

// Grade reports whether userAnswer matches expected after normalization.
// Answers that normalize to an empty string are always wrong.
func (g *AnswerGrader) Grade(userAnswer, expected string) bool {
	got := Normalize(userAnswer)
	if got == "" {
		return false
	}
	return got == Normalize(expected)
}
