package services

import (
	"context"

	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/types"

	"go.uber.org/zap"
)

type ActivityLogServiceInterface interface {
	GetActivityLogs(ctx context.Context, filter types.Filter) ([]entities.ActivityLog, uint64, error)
	GetLogsByReference(ctx context.Context, referenceType string, referenceID uint64) ([]entities.ActivityLog, error)
}

type ActivityLogService struct {
	repo   repositories.ActivityLogRepositoryInterface
	logger *zap.Logger
}

func NewActivityLogService(repo repositories.ActivityLogRepositoryInterface, logger *zap.Logger) ActivityLogServiceInterface {
	return &ActivityLogService{repo: repo, logger: logger}
}

func (s *ActivityLogService) GetActivityLogs(ctx context.Context, filter types.Filter) ([]entities.ActivityLog, uint64, error) {
	return s.repo.GetActivityLogs(ctx, filter)
}

func (s *ActivityLogService) GetLogsByReference(ctx context.Context, referenceType string, referenceID uint64) ([]entities.ActivityLog, error) {
	return s.repo.GetLogsByReference(ctx, referenceType, referenceID)
}
