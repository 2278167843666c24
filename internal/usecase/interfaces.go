package usecase

import (
	"context"

	"github.com/xavierca1/vida-ativa-leads/internal/infra/queue"
)

type LeadEventPublisher interface {
	PublishLeadCaptured(ctx context.Context, payload queue.LeadCapturedPayload) error
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishLeadCaptured(context.Context, queue.LeadCapturedPayload) error {
	return nil
}
