package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/xavierca1/vida-ativa-leads/internal/entity"
)

type ListLeadsUseCase struct {
	Repo   entity.LeadRepositoryInterface
	Logger *zap.Logger
}

func NewListLeadsUseCase(repo entity.LeadRepositoryInterface, logger *zap.Logger) *ListLeadsUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ListLeadsUseCase{Repo: repo, Logger: logger}
}

// Execute returns leads newest first. An empty page is an empty slice, never nil.
func (uc *ListLeadsUseCase) Execute(ctx context.Context, input ListLeadsInput) ([]*entity.Lead, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	input = input.normalized()

	var leads []*entity.Lead
	err := retryRead(ctx, uc.Logger, "list_leads", func(ctx context.Context) error {
		var err error
		leads, err = uc.Repo.List(ctx, input.Skip, input.Limit)
		return err
	})
	if err != nil {
		return nil, databaseError("Erro ao buscar leads", err)
	}

	if leads == nil {
		leads = []*entity.Lead{}
	}
	return leads, nil
}
