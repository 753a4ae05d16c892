package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/palabras-bot/internal/domain/entities"
	"github.com/aliskhannn/palabras-bot/internal/service"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling turns expected game errors into notices and everything
// else into a generic error message plus an error log.
func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := fn(ctx, chatID)
		if err == nil {
			return nil
		}

		if notice, ok := userNotice(err); ok {
			h.logger.Debug("handler notice",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, notice)
			return nil
		}

		h.logger.Error("handle error",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
		return nil
	}
}

func userNotice(err error) (string, bool) {
	switch {
	case errors.Is(err, service.ErrStaleQuestion):
		return msgStaleQuestion, true
	case errors.Is(err, service.ErrInvalidOption):
		return msgInvalidOption, true
	case errors.Is(err, service.ErrSkipLimitReached):
		return msgSkipLimit, true
	case errors.Is(err, service.ErrNotPlaying), errors.Is(err, service.ErrNoCurrentWord):
		return msgChooseModeFirst, true
	case errors.Is(err, service.ErrNothingToContinue):
		return msgNothingToContinue, true
	case errors.Is(err, service.ErrNothingToExport):
		return msgNothingToExport, true
	case errors.Is(err, entities.ErrUnknownMode):
		return msgChooseModeFirst, true
	default:
		return "", false
	}
}
