package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"bizdesk/internal/domain"
	"bizdesk/internal/port"
)

const (
	dashboardMonths = 6
	dashboardRecent = 5
)

// StatsService defines the dashboard aggregation contract.
type StatsService interface {
	Dashboard(ctx context.Context, tenantID uuid.UUID) (*domain.DashboardStats, error)
}

type statsService struct {
	statsRepo port.StatsRepository
}

// NewStatsService creates a new StatsService implementation.
func NewStatsService(statsRepo port.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) Dashboard(ctx context.Context, tenantID uuid.UUID) (*domain.DashboardStats, error) {
	stats, err := s.statsRepo.Counts(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("stats.Dashboard: %w", err)
	}

	stats.MonthlyRevenue, err = s.statsRepo.MonthlyRevenue(ctx, tenantID, dashboardMonths)
	if err != nil {
		return nil, fmt.Errorf("stats.Dashboard: %w", err)
	}
	stats.RecentInvoices, err = s.statsRepo.RecentInvoices(ctx, tenantID, dashboardRecent)
	if err != nil {
		return nil, fmt.Errorf("stats.Dashboard: %w", err)
	}
	stats.RecentCreditNotes, err = s.statsRepo.RecentCreditNotes(ctx, tenantID, dashboardRecent)
	if err != nil {
		return nil, fmt.Errorf("stats.Dashboard: %w", err)
	}

	return stats, nil
}
