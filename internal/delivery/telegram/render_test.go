package telegram

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aliskhannn/palabras-bot/internal/domain/entities"
	"github.com/aliskhannn/palabras-bot/internal/service"
)

func TestRenderFeedback(t *testing.T) {
	word := entities.WordPair{Number: 1, English: "run / ran", Spanish: "correr (v.)"}

	correct := renderFeedback(service.Feedback{Word: word, Correct: true, Expected: word.English})
	assert.Equal(t, md(msgCorrect), correct)

	wrong := renderFeedback(service.Feedback{Word: word, Expected: word.Spanish, UserAnswer: "corer"})
	assert.Contains(t, wrong, "Incorrecto")
	assert.Contains(t, wrong, "*correr*")

	skipped := renderFeedback(service.Feedback{Word: word, Skipped: true, Expected: word.English})
	assert.Contains(t, skipped, "Saltada")
	assert.Contains(t, skipped, "*run*")
}

func TestRenderQuestion(t *testing.T) {
	q := entities.Question{
		Cursor: 4,
		Total:  1000,
		Mode:   entities.ModeEnglishToSpanish,
		Kind:   entities.QuestionText,
		Prompt: "a.m.",
	}

	text := renderQuestion(q, service.Score{Correct: 3, Wrong: 1, Accuracy: 75})

	assert.Contains(t, text, "Palabra 5 de 1000")
	assert.Contains(t, text, "*a\\.m\\.*")
	assert.Contains(t, text, "español")
	assert.Contains(t, text, "75%")
}

func TestGameOverMessage(t *testing.T) {
	assert.Equal(t, "No te rindas, puedes mejorar.", gameOverMessage(0))
	assert.Equal(t, "No te rindas, puedes mejorar.", gameOverMessage(69))
	assert.Equal(t, "Muy bien, sigue practicando.", gameOverMessage(70))
	assert.Equal(t, "Muy bien, sigue practicando.", gameOverMessage(89))
	assert.Equal(t, "¡Excelente trabajo!", gameOverMessage(90))
	assert.Equal(t, "¡Excelente trabajo!", gameOverMessage(100))
}

func TestBuildProgressBar(t *testing.T) {
	assert.Equal(t, "[█████░░░░░] 50%", buildProgressBar(50, 100, 10))
	assert.Equal(t, "[░░░░░░░░░░] 0%", buildProgressBar(0, 100, 10))
	assert.Equal(t, "[██████████] 100%", buildProgressBar(150, 100, 10))
	assert.Equal(t, "[░░░░]", buildProgressBar(3, 0, 4))
}

func TestRenderMissed(t *testing.T) {
	missed := make([]entities.MissedEntry, 0, 35)
	for i := 0; i < 35; i++ {
		missed = append(missed, entities.MissedEntry{
			Prompt:     fmt.Sprintf("palabra%d", i),
			Expected:   fmt.Sprintf("word%d", i),
			UserAnswer: "x",
		})
	}

	text := renderMissed(entities.ModeSpanishToEnglish, missed)

	assert.Contains(t, text, "y 5 más")
	assert.Contains(t, text, "palabra34")
	assert.NotContains(t, text, "palabra4*")
	assert.Less(t, strings.Index(text, "palabra34"), strings.Index(text, "palabra33"))
}

func TestRenderMilestone(t *testing.T) {
	table := entities.DefaultMilestones()

	assert.Equal(t, 1000, milestoneGoal(table))
	assert.Zero(t, milestoneGoal(nil))
	assert.Empty(t, renderMilestone(nil, 10))

	text := renderMilestone(table, 75)
	assert.Contains(t, text, "Palabras aprendidas: 75 / 1000")
	assert.Contains(t, text, "en 26 palabras")

	done := renderMilestone(table, 1000)
	assert.Contains(t, done, "Master")
	assert.NotContains(t, done, "Siguiente meta")
}

func TestRenderOverview(t *testing.T) {
	last := entities.ModeEnglishToSpanish
	ov := &service.Overview{
		Status:      service.StatusModeSelect,
		LastMode:    &last,
		CanContinue: true,
		Continue:    service.Score{Cursor: 9, Total: 1000},
		Learned: map[entities.Mode]int{
			entities.ModeSpanishToEnglish: 12,
			entities.ModeEnglishToSpanish: 40,
		},
	}

	text := renderOverview(ov, 1000)
	assert.Contains(t, text, "Palabra 10 de 1000")
	assert.Contains(t, text, "12 / 1000")
	assert.Contains(t, text, "40 / 1000")

	kb := buildModeKeyboard(ov)
	assert.Equal(t, buildContinueCallback(), *kb.InlineKeyboard[0][0].CallbackData)
}
