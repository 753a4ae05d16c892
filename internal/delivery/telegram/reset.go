package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/palabras-bot/internal/domain/entities"
)

// resetHandler asks for confirmation, then wipes the progress of mode.
func (h *Handler) resetHandler(userID int64, cb *tgbotapi.CallbackQuery, mode entities.Mode, confirm string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		messageID := cb.Message.MessageID

		switch confirm {
		case "":
			text := fmt.Sprintf(
				"¿Estás seguro de que quieres reiniciar el progreso de %s? Esta acción no se puede deshacer.",
				mode.Label(),
			)
			edit := newEdit(chatID, messageID, md(text))
			kb := buildConfirmKeyboard(
				buildResetCallback(mode, confirmYes),
				buildResetCallback(mode, confirmNo),
			)
			edit.ReplyMarkup = &kb
			h.send(edit)

		case confirmYes:
			live, err := h.game.ResetMode(ctx, userID, mode)
			if err != nil {
				return err
			}

			h.send(newEdit(chatID, messageID, md(fmt.Sprintf("🔄 Progreso de %s reiniciado.", mode.Label()))))

			if live {
				h.dropPending(userID)
				h.sendOverview(ctx, chatID, userID)
			}

		default:
			h.send(newEdit(chatID, messageID, md(msgNoChanges)))
		}

		return nil
	}
}
