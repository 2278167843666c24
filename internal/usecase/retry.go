package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/vida-ativa-leads/internal/entity"
)

const readRetryBackoff = 50 * time.Millisecond

// retryRead runs an idempotent read and retries it once. Not-found and
// caller cancellation are final. Writes never go through here.
func retryRead(ctx context.Context, logger *zap.Logger, op string, fn func(context.Context) error) error {
	err := fn(ctx)
	if err == nil || errors.Is(err, entity.ErrLeadNotFound) || ctx.Err() != nil {
		return err
	}

	logger.Warn("retrying read after store error", zap.String("op", op), zap.Error(err))

	timer := time.NewTimer(readRetryBackoff)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return err
	case <-timer.C:
	}

	return fn(ctx)
}
