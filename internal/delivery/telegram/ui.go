package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/palabras-bot/internal/domain/entities"
	"github.com/aliskhannn/palabras-bot/internal/service"
)

// buildModeKeyboard builds the mode selection keyboard, with a continue button
// on top when a game can be resumed.
func buildModeKeyboard(ov *service.Overview) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	if ov != nil && ov.CanContinue {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ Continuar juego", buildContinueCallback()),
		))
	}

	row := make([]tgbotapi.InlineKeyboardButton, 0, len(entities.Modes()))
	for _, m := range entities.Modes() {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(m.Label(), buildModeCallback(m)))
	}
	rows = append(rows, row)

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📊 Mi progreso", buildProgressCallback()),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuestionKeyboard builds the answer buttons of a multiple choice
// question and the skip button. It returns nil when there is nothing to show.
func buildQuestionKeyboard(q entities.Question, skipsLeft int) *tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	if q.Kind == entities.QuestionChoice {
		for i, option := range q.Options {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(option, buildAnswerCallback(q.Cursor, i)),
			))
		}
	}

	if skipsLeft > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("⏭️ Saltar (%d)", skipsLeft), buildSkipCallback(q.Cursor)),
		))
	}

	if len(rows) == 0 {
		return nil
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

// buildGameOverKeyboard builds keyboard for the end of a pass.
func buildGameOverKeyboard(mode entities.Mode, missed int) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Jugar otra ronda", buildModeCallback(mode)),
		),
	}

	if missed > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("📚 Palabras para estudiar (%d)", missed), buildMissedCallback(mode)),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("← Cambiar modo", buildChangeModeCallback()),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildMissedKeyboard builds keyboard under the missed words list of mode.
func buildMissedKeyboard(mode entities.Mode) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📄 Descargar", buildExportCallback(mode)),
			tgbotapi.NewInlineKeyboardButtonData("🗑️ Limpiar lista", buildMissedClearCallback(mode)),
		),
	)
}

// buildConfirmKeyboard builds a yes/no keyboard for destructive actions.
func buildConfirmKeyboard(yesData, noData string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Sí", yesData),
			tgbotapi.NewInlineKeyboardButtonData("❌ No", noData),
		),
	)
}

// buildResetModeKeyboard lets the user pick which mode to reset.
func buildResetModeKeyboard() tgbotapi.InlineKeyboardMarkup {
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(entities.Modes()))
	for _, m := range entities.Modes() {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("🔄 "+m.Label(), buildResetCallback(m)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

const progressRefreshLabel = "🔄 Actualizar"

// buildProgressKeyboard builds keyboard for progress screen.
func buildProgressKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(progressRefreshLabel, buildProgressCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Jugar", buildPlayCallback()),
		),
	)
}

// emptyKeyboard removes inline buttons from a message.
func emptyKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
}
