package services

import (
	"context"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/events"
	"gearguard/internal/repositories"
	"gearguard/pkg/eventbus"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"

	"go.uber.org/zap"
)

type WorkCenterServiceInterface interface {
	GetWorkCenters(ctx context.Context, filter types.Filter) ([]entities.WorkCenter, uint64, error)
	FindWorkCenter(ctx context.Context, id uint64) (*entities.WorkCenter, error)
	CreateWorkCenter(ctx context.Context, payload dto.CreateWorkCenterDTO) (*entities.WorkCenter, error)
	UpdateWorkCenter(ctx context.Context, id uint64, payload dto.UpdateWorkCenterDTO) (*entities.WorkCenter, error)
}

type WorkCenterService struct {
	repo   repositories.WorkCenterRepositoryInterface
	bus    *eventbus.Bus
	logger *zap.Logger
}

func NewWorkCenterService(repo repositories.WorkCenterRepositoryInterface, bus *eventbus.Bus, logger *zap.Logger) WorkCenterServiceInterface {
	return &WorkCenterService{repo: repo, bus: bus, logger: logger}
}

func (s *WorkCenterService) GetWorkCenters(ctx context.Context, filter types.Filter) ([]entities.WorkCenter, uint64, error) {
	return s.repo.GetWorkCenters(ctx, filter)
}

func (s *WorkCenterService) FindWorkCenter(ctx context.Context, id uint64) (*entities.WorkCenter, error) {
	return s.repo.FindWorkCenter(ctx, id)
}

func (s *WorkCenterService) CreateWorkCenter(ctx context.Context, payload dto.CreateWorkCenterDTO) (*entities.WorkCenter, error) {
	wc := entities.WorkCenter{
		Name:                   payload.Name,
		Code:                   payload.Code,
		Tag:                    payload.Tag,
		AlternativeWorkcenters: payload.AlternativeWorkcenters,
		CostPerHour:            payload.CostPerHour,
		Capacity:               payload.Capacity,
		TimeEfficiency:         payload.TimeEfficiency,
		OEETarget:              payload.OEETarget,
		Status:                 entities.AssetStatusActive,
	}
	if wc.AlternativeWorkcenters == nil {
		wc.AlternativeWorkcenters = []uint64{}
	}
	return s.repo.CreateWorkCenter(ctx, wc)
}

func (s *WorkCenterService) UpdateWorkCenter(ctx context.Context, id uint64, payload dto.UpdateWorkCenterDTO) (*entities.WorkCenter, error) {
	wc, err := s.repo.FindWorkCenter(ctx, id)
	if err != nil {
		return nil, err
	}
	wasScrapped := wc.Status == entities.AssetStatusScrapped

	if payload.Name != nil {
		wc.Name = *payload.Name
	}
	if payload.Code != nil {
		wc.Code = *payload.Code
	}
	applyNullableString(&wc.Tag, payload.Tag)
	if payload.AlternativeWorkcenters != nil {
		wc.AlternativeWorkcenters = *payload.AlternativeWorkcenters
	}
	if payload.CostPerHour != nil {
		wc.CostPerHour = *payload.CostPerHour
	}
	if payload.Capacity != nil {
		wc.Capacity = *payload.Capacity
	}
	if payload.TimeEfficiency != nil {
		wc.TimeEfficiency = *payload.TimeEfficiency
	}
	if payload.OEETarget != nil {
		wc.OEETarget = *payload.OEETarget
	}
	if payload.Status != nil {
		wc.Status = *payload.Status
	}

	updated, err := s.repo.UpdateWorkCenter(ctx, *wc)
	if err != nil {
		return nil, err
	}

	if !wasScrapped && updated.Status == entities.AssetStatusScrapped {
		if userID, ctxErr := utils.GetUserIDFromCtx(ctx); ctxErr == nil {
			s.bus.Publish(ctx, events.WorkCenterScrapped{WorkCenterID: updated.ID, PerformedBy: userID})
		}
	}
	return updated, nil
}
