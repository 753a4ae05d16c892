package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/palabras-bot/internal/service"
)

// Commands lists the bot commands shown in the Telegram menu.
func Commands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "start", Description: "Iniciar el bot"},
		{Command: "play", Description: "Elegir modo o continuar"},
		{Command: "skip", Description: "Saltar la palabra actual"},
		{Command: "mode", Description: "Cambiar de modo"},
		{Command: "progress", Description: "Ver tu progreso"},
		{Command: "missed", Description: "Palabras para estudiar"},
		{Command: "export", Description: "Descargar palabras para estudiar"},
		{Command: "reset", Description: "Reiniciar el progreso de un modo"},
		{Command: "help", Description: "Ayuda"},
	}
}

func (h *Handler) handleCommand(ctx context.Context, m *tgbotapi.Message) {
	chatID := m.Chat.ID
	userID := m.From.ID

	switch m.Command() {
	case "start":
		h.send(newMessage(chatID, welcomeMessage()))
		_ = h.withErrorHandling(h.overviewHandler(userID))(ctx, chatID)

	case "play":
		_ = h.withErrorHandling(h.playHandler(userID))(ctx, chatID)

	case "skip":
		_ = h.withErrorHandling(h.skipCommandHandler(userID))(ctx, chatID)

	case "mode":
		_ = h.withErrorHandling(h.changeModeHandler(userID))(ctx, chatID)

	case "progress":
		_ = h.withErrorHandling(h.progressHandler(userID))(ctx, chatID)

	case "missed":
		_ = h.withErrorHandling(h.missedHandler(userID, ""))(ctx, chatID)

	case "export":
		_ = h.withErrorHandling(h.exportHandler(userID, ""))(ctx, chatID)

	case "reset":
		msg := newPlainMessage(chatID, msgChooseResetMode)
		msg.ReplyMarkup = buildResetModeKeyboard()
		h.send(msg)

	case "help":
		h.send(newMessage(chatID, helpMessage()))

	default:
		h.send(newPlainMessage(chatID, msgUnknownCommand))
	}
}

// skipCommandHandler skips the word on screen. While the next word is still
// pending it only shows that word, so a player never skips a word unseen.
func (h *Handler) skipCommandHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if h.pacer.Flush(userID) {
			return nil
		}

		turn, err := h.game.Skip(ctx, userID, service.AnyCursor)
		if err != nil {
			return err
		}

		h.handleTurn(ctx, chatID, userID, turn)
		return nil
	}
}
