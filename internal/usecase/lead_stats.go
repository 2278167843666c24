package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/vida-ativa-leads/internal/entity"
)

const (
	statsWeekWindow  = 7 * 24 * time.Hour
	statsMonthWindow = 30 * 24 * time.Hour
)

type LeadStatsUseCase struct {
	Repo   entity.LeadRepositoryInterface
	Logger *zap.Logger
	Now    func() time.Time
}

func NewLeadStatsUseCase(repo entity.LeadRepositoryInterface, logger *zap.Logger) *LeadStatsUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeadStatsUseCase{Repo: repo, Logger: logger, Now: time.Now}
}

// Execute counts against a single instant: today is the UTC calendar day,
// week and month are rolling 7 and 30 day windows.
func (uc *LeadStatsUseCase) Execute(ctx context.Context) (*LeadStatsOutput, error) {
	now := uc.Now().UTC()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	out := &LeadStatsOutput{}
	windows := []struct {
		since time.Time
		dst   *int64
	}{
		{time.Time{}, &out.TotalLeads},
		{todayStart, &out.LeadsToday},
		{now.Add(-statsWeekWindow), &out.LeadsThisWeek},
		{now.Add(-statsMonthWindow), &out.LeadsThisMonth},
	}

	for _, w := range windows {
		since, dst := w.since, w.dst
		err := retryRead(ctx, uc.Logger, "lead_stats", func(ctx context.Context) error {
			n, err := uc.Repo.CountSince(ctx, since)
			*dst = n
			return err
		})
		if err != nil {
			return nil, databaseError("Erro ao buscar estatísticas", err)
		}
	}

	return out, nil
}
