package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/vida-ativa-leads/internal/entity"
)

var flagMessages = map[entity.LeadFlag]string{
	entity.FlagWhatsAppJoined: "Lead marcado como membro do WhatsApp",
	entity.FlagEbookSent:      "E-book marcado como enviado",
}

type MarkLeadStatusUseCase struct {
	Repo   entity.LeadRepositoryInterface
	Logger *zap.Logger
	Now    func() time.Time
}

func NewMarkLeadStatusUseCase(repo entity.LeadRepositoryInterface, logger *zap.Logger) *MarkLeadStatusUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MarkLeadStatusUseCase{Repo: repo, Logger: logger, Now: time.Now}
}

// Execute sets flag to true and bumps updated_at. Repeating it on a flag that
// is already set still succeeds.
func (uc *MarkLeadStatusUseCase) Execute(ctx context.Context, id string, flag entity.LeadFlag) (*MessageOutput, error) {
	msg, ok := flagMessages[flag]
	if !ok {
		return nil, &DomainError{Code: CodeValidation, Message: "Status de lead inválido", Field: "flag"}
	}

	err := uc.Repo.SetFlag(ctx, id, flag, uc.Now().UTC().Truncate(time.Millisecond))
	if errors.Is(err, entity.ErrLeadNotFound) {
		return nil, leadNotFoundError()
	}
	if err != nil {
		return nil, databaseError("Erro ao atualizar lead", err)
	}

	uc.Logger.Info("lead flag set", zap.String("lead_id", id), zap.String("flag", string(flag)))
	return &MessageOutput{Message: msg}, nil
}
