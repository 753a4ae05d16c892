package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/palabras-bot/internal/domain/entities"
	"github.com/aliskhannn/palabras-bot/internal/service"
	"github.com/aliskhannn/palabras-bot/internal/storage"
)

// Bot is the part of *tgbotapi.BotAPI the handler uses.
type Bot interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type GameService interface {
	Overview(ctx context.Context, userID int64) *service.Overview
	SelectMode(ctx context.Context, userID int64, mode entities.Mode) (*entities.Question, error)
	Continue(ctx context.Context, userID int64) (*entities.Question, error)
	Submit(ctx context.Context, userID int64, answer string) (*service.Turn, error)
	Choose(ctx context.Context, userID int64, cursor, option int) (*service.Turn, error)
	Skip(ctx context.Context, userID int64, cursor int) (*service.Turn, error)
	CurrentQuestion(userID int64) (*entities.Question, bool)
	State(userID int64) service.State
	ChangeMode(userID int64)
	ResetMode(ctx context.Context, userID int64, mode entities.Mode) (bool, error)
	ClearMissed(ctx context.Context, userID int64, mode entities.Mode) error
	Missed(ctx context.Context, userID int64, mode entities.Mode) (entities.Mode, []entities.MissedEntry)
}

type HintService interface {
	Enabled() bool
	Fetch(ctx context.Context, userID int64, q entities.Question, deliver func(entities.Gif)) bool
	Cancel(userID int64)
}

type StudySheetExporter interface {
	Export(missed []entities.MissedEntry, mode entities.Mode) (*service.StudySheet, error)
}

type PromptStorage interface {
	UpsertAndGetPrev(userID int64, chatID int64, messageID int, cursor int) (storage.PromptMessage, bool)
	Take(userID int64) (storage.PromptMessage, bool)
	Sweep(cutoff time.Time) int
}
