package services

import (
	"context"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/types"

	"go.uber.org/zap"
)

const recentActivityLimit = 10

type DashboardServiceInterface interface {
	GetDashboard(ctx context.Context) (*dto.DashboardDTO, error)
}

type DashboardService struct {
	dashboard repositories.DashboardRepositoryInterface
	logs      repositories.ActivityLogRepositoryInterface
	logger    *zap.Logger
}

func NewDashboardService(
	dashboard repositories.DashboardRepositoryInterface,
	logs repositories.ActivityLogRepositoryInterface,
	logger *zap.Logger,
) DashboardServiceInterface {
	return &DashboardService{dashboard: dashboard, logs: logs, logger: logger}
}

func (s *DashboardService) GetDashboard(ctx context.Context) (*dto.DashboardDTO, error) {
	byStatus, err := s.dashboard.CountRequestsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byPriority, err := s.dashboard.CountRequestsByPriority(ctx)
	if err != nil {
		return nil, err
	}
	equipmentByStatus, err := s.dashboard.CountEquipmentByStatus(ctx)
	if err != nil {
		return nil, err
	}

	recent, _, err := s.logs.GetActivityLogs(ctx, types.Filter{
		WithPagination: true,
		Limit:          recentActivityLimit,
	})
	if err != nil {
		return nil, err
	}

	return &dto.DashboardDTO{
		RequestsByStatus:   byStatus,
		RequestsByPriority: byPriority,
		OpenRequests:       byStatus[entities.RequestStatusNew] + byStatus[entities.RequestStatusInProgress],
		EquipmentActive:    equipmentByStatus[entities.AssetStatusActive],
		EquipmentScrapped:  equipmentByStatus[entities.AssetStatusScrapped],
		RecentActivity:     recent,
	}, nil
}
