package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/xavierca1/vida-ativa-leads/internal/entity"
)

type GetLeadUseCase struct {
	Repo   entity.LeadRepositoryInterface
	Logger *zap.Logger
}

func NewGetLeadUseCase(repo entity.LeadRepositoryInterface, logger *zap.Logger) *GetLeadUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GetLeadUseCase{Repo: repo, Logger: logger}
}

func (uc *GetLeadUseCase) Execute(ctx context.Context, id string) (*entity.Lead, error) {
	var lead *entity.Lead
	err := retryRead(ctx, uc.Logger, "get_lead", func(ctx context.Context) error {
		var err error
		lead, err = uc.Repo.FindByID(ctx, id)
		return err
	})
	if errors.Is(err, entity.ErrLeadNotFound) {
		return nil, leadNotFoundError()
	}
	if err != nil {
		return nil, databaseError("Erro ao buscar lead", err)
	}
	return lead, nil
}
