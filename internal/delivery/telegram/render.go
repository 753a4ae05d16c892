package telegram

import (
	"fmt"
	"strings"

	"github.com/aliskhannn/palabras-bot/internal/domain/entities"
	"github.com/aliskhannn/palabras-bot/internal/service"
)

// missedPreviewLimit caps how many missed words are listed in chat.
const missedPreviewLimit = 30

// renderOverview renders the mode selection screen.
func renderOverview(ov *service.Overview, goal int) string {
	var sb strings.Builder

	sb.WriteString(bold("🎯 Elige un modo"))
	sb.WriteString("\n\n")

	if ov.CanContinue && ov.LastMode != nil {
		sb.WriteString(md(fmt.Sprintf("▶️ Juego en curso: Palabra %d de %d - %s",
			ov.Continue.Cursor+1, ov.Continue.Total, ov.LastMode.Label())))
		sb.WriteString("\n\n")
	}

	for _, m := range entities.Modes() {
		sb.WriteString(md(fmt.Sprintf("%s: %d / %d palabras aprendidas", m.Label(), ov.Learned[m], goal)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// renderQuestion renders a word to translate together with the scoreboard.
func renderQuestion(q entities.Question, score service.Score) string {
	var sb strings.Builder

	sb.WriteString(md(fmt.Sprintf("Palabra %d de %d - %s", q.Cursor+1, q.Total, q.Mode.Label())))
	sb.WriteString("\n")
	sb.WriteString(md(renderScoreLine(score)))
	sb.WriteString("\n\n")

	sb.WriteString(md(fmt.Sprintf("Traduce al %s:", q.Mode.TargetLanguage())))
	sb.WriteString("\n")
	sb.WriteString(bold(q.Prompt))
	sb.WriteString("\n\n")

	if q.Kind == entities.QuestionChoice {
		sb.WriteString(italic("Elige la opción correcta"))
	} else {
		sb.WriteString(italic(fmt.Sprintf("Escribe tu respuesta en %s", q.Mode.TargetLanguage())))
	}

	return sb.String()
}

func renderScoreLine(score service.Score) string {
	return fmt.Sprintf("✅ %d  ❌ %d  ⏭️ %d  🎯 %d%%",
		score.Correct, score.Wrong, score.Skipped, score.Accuracy)
}

// renderFeedback renders the outcome of an answer or a skip.
func renderFeedback(fb service.Feedback) string {
	expected := service.CleanWord(fb.Expected)

	switch {
	case fb.Correct:
		return md(msgCorrect)
	case fb.Skipped:
		return md("⏭️ Saltada. Respuesta: ") + bold(expected)
	default:
		return md("❌ Incorrecto. Respuesta: ") + bold(expected)
	}
}

// gameOverMessage picks the closing message by accuracy.
func gameOverMessage(accuracy int) string {
	switch {
	case accuracy < 70:
		return "No te rindas, puedes mejorar."
	case accuracy < 90:
		return "Muy bien, sigue practicando."
	default:
		return "¡Excelente trabajo!"
	}
}

// renderGameOver renders the summary of a finished pass.
func renderGameOver(mode entities.Mode, score service.Score, milestone string) string {
	var sb strings.Builder

	sb.WriteString(bold("🏁 ¡Ronda completada!"))
	sb.WriteString("\n")
	sb.WriteString(md(mode.Label()))
	sb.WriteString("\n\n")

	sb.WriteString(md(fmt.Sprintf("✅ Aciertos: %d", score.Correct)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("❌ Errores: %d", score.Wrong)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("⏭️ Saltos: %d", score.Skipped)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("🎯 Precisión: %d%%", score.Accuracy)))
	sb.WriteString("\n\n")

	sb.WriteString(bold(gameOverMessage(score.Accuracy)))

	if milestone != "" {
		sb.WriteString("\n\n")
		sb.WriteString(milestone)
	}

	return sb.String()
}

// renderMilestone renders the level reached with learned words.
func renderMilestone(table []entities.Milestone, learned int) string {
	mp, ok := service.LookupMilestone(table, learned)
	if !ok {
		return ""
	}

	goal := milestoneGoal(table)

	var sb strings.Builder
	sb.WriteString(bold(mp.Current.Level))
	sb.WriteString(md(" " + mp.Current.LevelMessage))
	sb.WriteString("\n")
	sb.WriteString(md(mp.Current.Message))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("Palabras aprendidas: %d / %d", learned, goal)))
	sb.WriteString("\n")
	sb.WriteString(md(buildProgressBar(learned, goal, 20)))
	sb.WriteString("\n")

	if learned < goal {
		sb.WriteString(md(fmt.Sprintf("Te faltan %d palabras para completar el reto", goal-learned)))
	} else {
		sb.WriteString(md(fmt.Sprintf("¡Has completado todas las %d palabras!", goal)))
	}

	if !mp.IsLast && mp.Remaining() > 0 {
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("Siguiente meta: %s en %d palabras", mp.Next.Level, mp.Remaining())))
	}

	return sb.String()
}

// milestoneGoal is the learned-words count that completes the ladder.
func milestoneGoal(table []entities.Milestone) int {
	if len(table) == 0 {
		return 0
	}
	return table[len(table)-1].Max
}

// renderMissed renders the missed words, most recent first.
func renderMissed(mode entities.Mode, missed []entities.MissedEntry) string {
	var sb strings.Builder

	sb.WriteString(bold(fmt.Sprintf("📚 Palabras para estudiar (%d)", len(missed))))
	sb.WriteString("\n")
	sb.WriteString(md(mode.Label()))
	sb.WriteString("\n\n")

	shown := 0
	for i := len(missed) - 1; i >= 0 && shown < missedPreviewLimit; i-- {
		m := missed[i]
		sb.WriteString(md("• "))
		sb.WriteString(bold(service.CleanWord(m.Prompt)))
		sb.WriteString(md(" → " + service.CleanWord(m.Expected)))
		if strings.TrimSpace(m.UserAnswer) != "" {
			sb.WriteString(" ")
			sb.WriteString(italic("(tu respuesta: " + m.UserAnswer + ")"))
		}
		sb.WriteString("\n")
		shown++
	}

	if rest := len(missed) - shown; rest > 0 {
		sb.WriteString(md(fmt.Sprintf("… y %d más. Descarga la lista completa.", rest)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(md("💡 Repasa estas palabras y vuelve a intentar para mejorar tu precisión"))

	return sb.String()
}
