package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/palabras-bot/internal/domain/entities"
)

// missedHandler lists the words to study. An empty mode picks the active or
// last played mode.
func (h *Handler) missedHandler(userID int64, mode entities.Mode) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		listMode, missed := h.game.Missed(ctx, userID, mode)
		if len(missed) == 0 {
			h.send(newPlainMessage(chatID, msgNoMissedWords))
			return nil
		}

		msg := newMessage(chatID, renderMissed(listMode, missed))
		msg.ReplyMarkup = buildMissedKeyboard(listMode)
		h.send(msg)
		return nil
	}
}

// exportHandler sends the missed words as a study sheet document.
func (h *Handler) exportHandler(userID int64, mode entities.Mode) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		listMode, missed := h.game.Missed(ctx, userID, mode)

		sheet, err := h.exporter.Export(missed, listMode)
		if err != nil {
			return err
		}

		h.send(buildStudySheetDocument(chatID, sheet))

		h.logger.Info("study sheet exported",
			zap.Int64("user_id", userID),
			zap.String("mode", string(listMode)),
			zap.Int("words", sheet.Words),
		)
		return nil
	}
}

// clearMissedHandler asks for confirmation, then clears the list of mode.
func (h *Handler) clearMissedHandler(userID int64, cb *tgbotapi.CallbackQuery, mode entities.Mode, confirm string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		messageID := cb.Message.MessageID

		switch confirm {
		case "":
			edit := newEdit(chatID, messageID, md(fmt.Sprintf(msgConfirmClearMissed, mode.Label())))
			kb := buildConfirmKeyboard(
				buildMissedClearCallback(mode, confirmYes),
				buildMissedClearCallback(mode, confirmNo),
			)
			edit.ReplyMarkup = &kb
			h.send(edit)

		case confirmYes:
			if err := h.game.ClearMissed(ctx, userID, mode); err != nil {
				return err
			}
			h.send(newEdit(chatID, messageID, md(msgMissedCleared)))

		default:
			h.send(newEdit(chatID, messageID, md(msgNoChanges)))
		}

		return nil
	}
}
