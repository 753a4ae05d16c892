package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/palabras-bot/internal/domain/entities"
)

type Handler struct {
	bot        Bot
	logger     *zap.Logger
	game       GameService
	hints      HintService
	exporter   StudySheetExporter
	prompts    PromptStorage
	pacer      *Pacer
	milestones []entities.Milestone

	// background hint fetches; no new ones start once closed is set
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewHandler(
	bot Bot,
	logger *zap.Logger,
	game GameService,
	hints HintService,
	exporter StudySheetExporter,
	prompts PromptStorage,
	pacer *Pacer,
	milestones []entities.Milestone,
) *Handler {
	return &Handler{
		bot:        bot,
		logger:     logger,
		game:       game,
		hints:      hints,
		exporter:   exporter,
		prompts:    prompts,
		pacer:      pacer,
		milestones: milestones,
	}
}

// Run processes updates until ctx is done or the updates channel is closed.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	defer func() {
		h.pacer.Stop()

		h.mu.Lock()
		h.closed = true
		h.mu.Unlock()

		h.wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	if update.Message.IsCommand() {
		h.handleCommand(ctx, update.Message)
		return
	}

	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	_ = h.withErrorHandling(h.answerHandler(userID, update.Message.Text))(ctx, chatID)
}

func (h *Handler) sendError(chatID int64, err string) {
	h.send(newPlainMessage(chatID, err))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}

// request is used for calls whose result is not a message, e.g. edits of
// reply markup and callback answers.
func (h *Handler) request(c tgbotapi.Chattable) {
	if _, err := h.bot.Request(c); err != nil {
		h.logger.Warn("telegram request failed",
			zap.Error(err),
		)
	}
}
