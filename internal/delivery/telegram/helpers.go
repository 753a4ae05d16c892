package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/palabras-bot/internal/domain/entities"
	"github.com/aliskhannn/palabras-bot/internal/service"
)

func buildStudySheetDocument(chatID int64, sheet *service.StudySheet) tgbotapi.DocumentConfig {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  sheet.FileName,
		Bytes: sheet.Content,
	})
	doc.Caption = fmt.Sprintf("%s (%d)", msgExportCaption, sheet.Words)
	return doc
}

func buildHintAnimation(chatID int64, gif entities.Gif) tgbotapi.AnimationConfig {
	anim := tgbotapi.NewAnimation(chatID, tgbotapi.FileURL(gif.URL))
	anim.Caption = msgHintCaption
	return anim
}
