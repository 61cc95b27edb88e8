package services

import (
	"context"

	"klinika.admin/configs/configslog"
	"klinika.admin/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type IDashboardService interface {
	GetNetworkCounts(ctx context.Context) (repositories.NetworkCounts, error)
}

type DashboardService struct {
	repo repositories.IDashboardRepository
}

// NewDashboardService creates a DashboardService.
func NewDashboardService(db *gorm.DB) IDashboardService {
	return &DashboardService{repo: repositories.NewDashboardRepository(db)}
}

// GetNetworkCounts returns how many rows each table holds.
func (s *DashboardService) GetNetworkCounts(ctx context.Context) (repositories.NetworkCounts, error) {
	counts, err := s.repo.CountAll(ctx)
	if err != nil {
		configslog.Log.Error("GetNetworkCounts failed", zap.Error(err))
		return repositories.NetworkCounts{}, err
	}
	return counts, nil
}
