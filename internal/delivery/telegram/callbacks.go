package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/palabras-bot/internal/domain/entities"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Remove the user's "clock".
	defer h.request(tgbotapi.NewCallback(cb.ID, ""))

	if cb.Message == nil || cb.From == nil {
		return
	}

	chatID := cb.Message.Chat.ID
	userID := cb.From.ID

	fn, ok := h.routeCallback(userID, cb)
	if !ok {
		h.logger.Warn("invalid callback data",
			zap.Int64("user_id", userID),
			zap.String("data", cb.Data),
		)
		return
	}

	_ = h.withErrorHandling(fn)(ctx, chatID)
}

// routeCallback maps callback data to a handler.
func (h *Handler) routeCallback(userID int64, cb *tgbotapi.CallbackQuery) (HandlerFunc, bool) {
	data := decodeCallback(cb.Data)

	switch data.Action {
	case actionPlay:
		return h.playHandler(userID), true

	case actionMode:
		mode, err := entities.ParseMode(data.param(0))
		if err != nil {
			return nil, false
		}
		return h.startHandler(userID, mode), true

	case actionContinue:
		return h.continueHandler(userID), true

	case actionAnswer:
		cursor, ok1 := data.intParam(0)
		option, ok2 := data.intParam(1)
		if !ok1 || !ok2 {
			return nil, false
		}
		return h.chooseHandler(userID, cursor, option), true

	case actionSkip:
		cursor, ok := data.intParam(0)
		if !ok {
			return nil, false
		}
		return h.skipHandler(userID, cursor), true

	case actionChange:
		return h.changeModeHandler(userID), true

	case actionMissed:
		if data.param(0) == missedClear {
			mode, err := entities.ParseMode(data.param(1))
			if err != nil {
				return nil, false
			}
			return h.clearMissedHandler(userID, cb, mode, data.param(2)), true
		}
		mode, ok := optionalMode(data.param(0))
		if !ok {
			return nil, false
		}
		return h.missedHandler(userID, mode), true

	case actionExport:
		mode, ok := optionalMode(data.param(0))
		if !ok {
			return nil, false
		}
		return h.exportHandler(userID, mode), true

	case actionReset:
		mode, err := entities.ParseMode(data.param(0))
		if err != nil {
			return nil, false
		}
		return h.resetHandler(userID, cb, mode, data.param(1)), true

	case actionProgress:
		return h.progressCallbackHandler(userID, cb), true

	default:
		return nil, false
	}
}

// optionalMode parses a mode parameter that may be left out.
func optionalMode(raw string) (entities.Mode, bool) {
	if raw == "" {
		return "", true
	}
	mode, err := entities.ParseMode(raw)
	return mode, err == nil
}

// progressCallbackHandler refreshes the progress screen in place.
func (h *Handler) progressCallbackHandler(userID int64, cb *tgbotapi.CallbackQuery) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		text, kb := h.renderProgress(ctx, userID)

		if isProgressMessage(cb.Message) {
			edit := newEdit(chatID, cb.Message.MessageID, text)
			edit.ReplyMarkup = &kb
			h.send(edit)
			return nil
		}

		msg := newMessage(chatID, text)
		msg.ReplyMarkup = kb
		h.send(msg)
		return nil
	}
}

// isProgressMessage reports whether m is a progress screen sent by the bot.
func isProgressMessage(m *tgbotapi.Message) bool {
	if m.ReplyMarkup == nil {
		return false
	}
	for _, row := range m.ReplyMarkup.InlineKeyboard {
		for _, b := range row {
			if b.CallbackData != nil && *b.CallbackData == buildProgressCallback() && b.Text == progressRefreshLabel {
				return true
			}
		}
	}
	return false
}
