package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/xavierca1/vida-ativa-leads/internal/entity"
)

const MsgLeadDeleted = "Lead removido com sucesso"

type DeleteLeadUseCase struct {
	Repo   entity.LeadRepositoryInterface
	Logger *zap.Logger
}

func NewDeleteLeadUseCase(repo entity.LeadRepositoryInterface, logger *zap.Logger) *DeleteLeadUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DeleteLeadUseCase{Repo: repo, Logger: logger}
}

func (uc *DeleteLeadUseCase) Execute(ctx context.Context, id string) (*MessageOutput, error) {
	err := uc.Repo.Delete(ctx, id)
	if errors.Is(err, entity.ErrLeadNotFound) {
		return nil, leadNotFoundError()
	}
	if err != nil {
		return nil, databaseError("Erro ao remover lead", err)
	}

	uc.Logger.Info("lead deleted", zap.String("lead_id", id))
	return &MessageOutput{Message: MsgLeadDeleted}, nil
}
