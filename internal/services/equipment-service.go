package services

import (
	"context"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/events"
	"gearguard/internal/repositories"
	"gearguard/pkg/eventbus"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"

	"go.uber.org/zap"
)

type EquipmentServiceInterface interface {
	GetEquipment(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error)
	UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*entities.Equipment, error)
}

type EquipmentService struct {
	repo   repositories.EquipmentRepositoryInterface
	bus    *eventbus.Bus
	logger *zap.Logger
}

func NewEquipmentService(repo repositories.EquipmentRepositoryInterface, bus *eventbus.Bus, logger *zap.Logger) EquipmentServiceInterface {
	return &EquipmentService{repo: repo, bus: bus, logger: logger}
}

func (s *EquipmentService) GetEquipment(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	return s.repo.GetEquipment(ctx, filter)
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	return s.repo.FindEquipment(ctx, id)
}

// CreateEquipment: статус не принимается с клиента, он выводится из scrap_date.
func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error) {
	item := entities.Equipment{
		Name:                payload.Name,
		SerialNumber:        payload.SerialNumber,
		CategoryID:          payload.CategoryID,
		DepartmentID:        payload.DepartmentID,
		AssignedEmployeeID:  payload.AssignedEmployeeID,
		Location:            payload.Location,
		PurchaseDate:        payload.PurchaseDate,
		WarrantyExpiryDate:  payload.WarrantyExpiryDate,
		MaintenanceTeamID:   payload.MaintenanceTeamID,
		DefaultTechnicianID: payload.DefaultTechnicianID,
		AssignedDate:        payload.AssignedDate,
		ScrapDate:           payload.ScrapDate,
		Notes:               payload.Notes,
		Status:              entities.AssetStatusActive,
	}
	if payload.ScrapDate != nil {
		item.Status = entities.AssetStatusScrapped
	}

	created, err := s.repo.CreateEquipment(ctx, item)
	if err != nil {
		return nil, err
	}

	if userID, ctxErr := utils.GetUserIDFromCtx(ctx); ctxErr == nil {
		s.bus.Publish(ctx, events.EquipmentCreated{EquipmentID: created.ID, PerformedBy: userID})
		if created.Status == entities.AssetStatusScrapped {
			s.bus.Publish(ctx, events.EquipmentScrapped{EquipmentID: created.ID, PerformedBy: userID})
		}
	}
	return created, nil
}

// UpdateEquipment применяет частичное обновление и согласует пару
// status/scrap_date: присланный scrap_date главнее присланного status.
func (s *EquipmentService) UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*entities.Equipment, error) {
	item, err := s.repo.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	wasScrapped := item.Status == entities.AssetStatusScrapped

	if payload.Name != nil {
		item.Name = *payload.Name
	}
	if payload.SerialNumber != nil {
		item.SerialNumber = *payload.SerialNumber
	}
	if payload.CategoryID != nil {
		item.CategoryID = *payload.CategoryID
	}
	applyNullableUint64(&item.DepartmentID, payload.DepartmentID)
	applyNullableUint64(&item.AssignedEmployeeID, payload.AssignedEmployeeID)
	applyNullableString(&item.Location, payload.Location)
	applyNullableTime(&item.PurchaseDate, payload.PurchaseDate)
	applyNullableTime(&item.WarrantyExpiryDate, payload.WarrantyExpiryDate)
	applyNullableUint64(&item.MaintenanceTeamID, payload.MaintenanceTeamID)
	applyNullableUint64(&item.DefaultTechnicianID, payload.DefaultTechnicianID)
	applyNullableTime(&item.AssignedDate, payload.AssignedDate)
	applyNullableString(&item.Notes, payload.Notes)

	switch {
	case payload.ScrapDate.Set:
		if payload.ScrapDate.Valid {
			v := payload.ScrapDate.Time.Time
			item.ScrapDate = &v
			item.Status = entities.AssetStatusScrapped
		} else {
			item.ScrapDate = nil
			item.Status = entities.AssetStatusActive
		}
	case payload.Status != nil:
		item.Status = *payload.Status
		if item.Status == entities.AssetStatusScrapped {
			if item.ScrapDate == nil {
				now := time.Now()
				item.ScrapDate = &now
			}
		} else {
			item.ScrapDate = nil
		}
	}

	updated, err := s.repo.UpdateEquipment(ctx, *item)
	if err != nil {
		return nil, err
	}

	if !wasScrapped && updated.Status == entities.AssetStatusScrapped {
		if userID, ctxErr := utils.GetUserIDFromCtx(ctx); ctxErr == nil {
			s.bus.Publish(ctx, events.EquipmentScrapped{EquipmentID: updated.ID, PerformedBy: userID})
		}
	}
	return updated, nil
}
