package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/palabras-bot/internal/domain/entities"
	"github.com/aliskhannn/palabras-bot/internal/service"
)

// progressHandler sends the progress screen.
func (h *Handler) progressHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		text, kb := h.renderProgress(ctx, userID)

		msg := newMessage(chatID, text)
		msg.ReplyMarkup = kb
		h.send(msg)
		return nil
	}
}

// renderProgress renders learned words of both modes, the milestone of the
// focused mode and the live scoreboard when a game is running.
func (h *Handler) renderProgress(ctx context.Context, userID int64) (string, tgbotapi.InlineKeyboardMarkup) {
	ov := h.game.Overview(ctx, userID)
	goal := milestoneGoal(h.milestones)

	var sb strings.Builder
	sb.WriteString(bold("📊 Tu progreso"))
	sb.WriteString("\n\n")

	for _, m := range entities.Modes() {
		learned := ov.Learned[m]
		sb.WriteString(md(fmt.Sprintf("%s: %d / %d", m.Label(), learned, goal)))
		sb.WriteString("\n")
		sb.WriteString(md(buildProgressBar(learned, goal, 20)))
		sb.WriteString("\n")
	}

	if ov.Status == service.StatusPlaying {
		state := h.game.State(userID)
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("🎮 En juego: Palabra %d de %d - %s",
			state.Score.Cursor+1, state.Score.Total, state.Mode.Label())))
		sb.WriteString("\n")
		sb.WriteString(md(renderScoreLine(state.Score)))
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("⏭️ Saltos restantes: %d", state.Score.SkipsLeft)))
		sb.WriteString("\n")
	}

	if milestone := renderMilestone(h.milestones, ov.Learned[ov.Focus()]); milestone != "" {
		sb.WriteString("\n")
		sb.WriteString(md(ov.Focus().Label()))
		sb.WriteString("\n")
		sb.WriteString(milestone)
	}

	return sb.String(), buildProgressKeyboard()
}

// buildProgressBar creates ASCII progress bar.
func buildProgressBar(current, total, length int) string {
	if total <= 0 {
		return fmt.Sprintf("[%s]", strings.Repeat("░", length))
	}

	filled := int(float64(current) / float64(total) * float64(length))
	filled = max(0, min(filled, length))

	empty := length - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	return fmt.Sprintf("[%s] %d%%", bar, min(100, current*100/total))
}
