package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/palabras-bot/internal/domain/entities"
	"github.com/aliskhannn/palabras-bot/internal/service"
	"github.com/aliskhannn/palabras-bot/internal/storage"
)

// overviewHandler sends the mode selection screen.
func (h *Handler) overviewHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.sendOverview(ctx, chatID, userID)
		return nil
	}
}

func (h *Handler) sendOverview(ctx context.Context, chatID, userID int64) {
	ov := h.game.Overview(ctx, userID)

	msg := newMessage(chatID, renderOverview(ov, milestoneGoal(h.milestones)))
	msg.ReplyMarkup = buildModeKeyboard(ov)
	h.send(msg)
}

// playHandler shows the word on screen again, or the mode selection when no
// game is running.
func (h *Handler) playHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if h.pacer.Flush(userID) {
			return nil
		}

		if q, ok := h.game.CurrentQuestion(userID); ok {
			h.sendQuestion(ctx, chatID, userID, *q, h.game.State(userID).Score)
			return nil
		}

		h.sendOverview(ctx, chatID, userID)
		return nil
	}
}

// startHandler starts or resumes mode.
func (h *Handler) startHandler(userID int64, mode entities.Mode) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.dropPending(userID)

		q, err := h.game.SelectMode(ctx, userID, mode)
		if err != nil {
			return err
		}

		h.sendQuestion(ctx, chatID, userID, *q, h.game.State(userID).Score)
		return nil
	}
}

// continueHandler resumes the last played mode.
func (h *Handler) continueHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.dropPending(userID)

		q, err := h.game.Continue(ctx, userID)
		if err != nil {
			return err
		}

		h.sendQuestion(ctx, chatID, userID, *q, h.game.State(userID).Score)
		return nil
	}
}

// changeModeHandler leaves the current game and shows the mode selection.
func (h *Handler) changeModeHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.dropPending(userID)
		h.game.ChangeMode(userID)
		h.sendOverview(ctx, chatID, userID)
		return nil
	}
}

// answerHandler grades a typed answer. A message that arrives while the next
// word is still pending only brings that word on screen and is not graded.
func (h *Handler) answerHandler(userID int64, text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if h.pacer.Flush(userID) {
			return nil
		}

		if h.game.State(userID).Status != service.StatusPlaying {
			h.sendError(chatID, msgChooseModeFirst)
			h.sendOverview(ctx, chatID, userID)
			return nil
		}

		turn, err := h.game.Submit(ctx, userID, text)
		if err != nil {
			return err
		}

		h.handleTurn(ctx, chatID, userID, turn)
		return nil
	}
}

// chooseHandler answers a multiple choice question.
func (h *Handler) chooseHandler(userID int64, cursor, option int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		turn, err := h.game.Choose(ctx, userID, cursor, option)
		if err != nil {
			return err
		}

		h.handleTurn(ctx, chatID, userID, turn)
		return nil
	}
}

// skipHandler skips the question the button belongs to.
func (h *Handler) skipHandler(userID int64, cursor int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		turn, err := h.game.Skip(ctx, userID, cursor)
		if err != nil {
			return err
		}

		h.handleTurn(ctx, chatID, userID, turn)
		return nil
	}
}

// handleTurn sends feedback at once and paces what comes next.
func (h *Handler) handleTurn(ctx context.Context, chatID, userID int64, turn *service.Turn) {
	h.hints.Cancel(userID)
	h.clearPromptKeyboard(userID)

	h.send(newMessage(chatID, renderFeedback(turn.Feedback)))

	score := turn.Score
	if turn.Next != nil {
		next := *turn.Next
		h.pacer.Schedule(userID, score.Cursor, func() {
			h.sendQuestion(ctx, chatID, userID, next, score)
		})
		return
	}

	mode := turn.Feedback.Mode
	h.pacer.Schedule(userID, score.Cursor, func() {
		h.sendGameOver(chatID, mode, score)
	})
}

func (h *Handler) sendQuestion(ctx context.Context, chatID, userID int64, q entities.Question, score service.Score) {
	msg := newMessage(chatID, renderQuestion(q, score))

	kb := buildQuestionKeyboard(q, score.SkipsLeft)
	if kb != nil {
		msg.ReplyMarkup = kb
	}

	sent, err := h.bot.Send(msg)
	if err != nil {
		h.logger.Error("failed to send question",
			zap.Int64("user_id", userID),
			zap.Int("cursor", q.Cursor),
			zap.Error(err),
		)
		return
	}

	if kb != nil {
		if prev, ok := h.prompts.UpsertAndGetPrev(userID, chatID, sent.MessageID, q.Cursor); ok && prev.MessageID != sent.MessageID {
			h.removeKeyboard(prev)
		}
	}

	if q.Kind == entities.QuestionTextHint && h.hints.Enabled() {
		h.fetchHint(ctx, chatID, userID, q)
	}
}

func (h *Handler) sendGameOver(chatID int64, mode entities.Mode, score service.Score) {
	text := renderGameOver(mode, score, renderMilestone(h.milestones, score.LearnedWords))

	msg := newMessage(chatID, text)
	msg.ReplyMarkup = buildGameOverKeyboard(mode, score.MissedCount)
	h.send(msg)
}

// fetchHint looks up a GIF for q in the background. The hint service only
// delivers it while q is still the word on screen.
func (h *Handler) fetchHint(ctx context.Context, chatID, userID int64, q entities.Question) {
	if ctx.Err() != nil {
		return
	}

	// A paced display may fire after Run has started waiting.
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.wg.Add(1)
	h.mu.Unlock()

	go func() {
		defer h.wg.Done()

		h.hints.Fetch(ctx, userID, q, func(gif entities.Gif) {
			h.send(buildHintAnimation(chatID, gif))
		})
	}()
}

// dropPending forgets everything queued for the word on screen.
func (h *Handler) dropPending(userID int64) {
	h.pacer.Cancel(userID)
	h.hints.Cancel(userID)
	h.clearPromptKeyboard(userID)
}

func (h *Handler) clearPromptKeyboard(userID int64) {
	if prev, ok := h.prompts.Take(userID); ok {
		h.removeKeyboard(prev)
	}
}

func (h *Handler) removeKeyboard(prompt storage.PromptMessage) {
	h.request(tgbotapi.NewEditMessageReplyMarkup(prompt.ChatID, prompt.MessageID, emptyKeyboard()))
}
