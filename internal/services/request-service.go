package services

import (
	"context"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/events"
	"gearguard/internal/repositories"
	"gearguard/pkg/eventbus"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RequestServiceInterface interface {
	GetRequests(ctx context.Context, filter types.Filter) ([]entities.MaintenanceRequest, uint64, error)
	FindRequest(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error)
	CreateRequest(ctx context.Context, payload dto.CreateRequestDTO) (*entities.MaintenanceRequest, error)
	UpdateRequest(ctx context.Context, id uint64, payload dto.UpdateRequestDTO) (*entities.MaintenanceRequest, error)
}

type RequestService struct {
	requests  repositories.RequestRepositoryInterface
	equipment repositories.EquipmentRepositoryInterface
	txManager repositories.TxManagerInterface
	bus       *eventbus.Bus
	logger    *zap.Logger
}

func NewRequestService(
	requests repositories.RequestRepositoryInterface,
	equipment repositories.EquipmentRepositoryInterface,
	txManager repositories.TxManagerInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) RequestServiceInterface {
	return &RequestService{
		requests:  requests,
		equipment: equipment,
		txManager: txManager,
		bus:       bus,
		logger:    logger,
	}
}

func (s *RequestService) GetRequests(ctx context.Context, filter types.Filter) ([]entities.MaintenanceRequest, uint64, error) {
	return s.requests.GetRequests(ctx, filter)
}

func (s *RequestService) FindRequest(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error) {
	return s.requests.FindRequest(ctx, id)
}

// CreateRequest: автор берётся из сессии, а для заявок по оборудованию
// настроенная на нём сервисная команда и техник по умолчанию подставляются
// автоматически. Для рабочих центров авто-назначений нет.
func (s *RequestService) CreateRequest(ctx context.Context, payload dto.CreateRequestDTO) (*entities.MaintenanceRequest, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	if (payload.EquipmentID == nil) == (payload.WorkCenterID == nil) {
		return nil, apperrors.NewInvalidInputError("Заявка должна ссылаться ровно на одно: оборудование или рабочий центр.")
	}

	request := entities.MaintenanceRequest{
		Subject:              payload.Subject,
		Description:          payload.Description,
		RequestType:          payload.RequestType,
		EquipmentID:          payload.EquipmentID,
		WorkCenterID:         payload.WorkCenterID,
		MaintenanceTeamID:    payload.MaintenanceTeamID,
		AssignedTechnicianID: payload.AssignedTechnicianID,
		ScheduledDate:        payload.ScheduledDate,
		ActualStartDate:      payload.ActualStartDate,
		CompletedDate:        payload.CompletedDate,
		DurationHours:        payload.DurationHours,
		Priority:             payload.Priority,
		Status:               payload.Status,
		CreatedBy:            userID,
	}
	if request.Priority == "" {
		request.Priority = entities.PriorityMedium
	}
	if request.Status == "" {
		request.Status = entities.RequestStatusNew
	}

	technicianIDs := payload.TechnicianIDs

	if payload.EquipmentID != nil {
		item, err := s.equipment.FindEquipment(ctx, *payload.EquipmentID)
		if err != nil {
			return nil, err
		}
		if item.MaintenanceTeamID != nil {
			request.MaintenanceTeamID = item.MaintenanceTeamID
		}
		if item.DefaultTechnicianID != nil {
			if request.AssignedTechnicianID == nil {
				request.AssignedTechnicianID = item.DefaultTechnicianID
			}
			if len(technicianIDs) == 0 {
				technicianIDs = []uint64{*item.DefaultTechnicianID}
			}
		}
	}

	created, err := s.requests.CreateRequest(ctx, request, technicianIDs)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.RequestCreated{
		RequestID:   created.ID,
		Subject:     created.Subject,
		PerformedBy: userID,
	})
	return created, nil
}

// UpdateRequest выполняет обновление строки, пересборку назначений и каскад
// списания оборудования в одной транзакции.
func (s *RequestService) UpdateRequest(ctx context.Context, id uint64, payload dto.UpdateRequestDTO) (*entities.MaintenanceRequest, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	var oldStatus, newStatus string
	var equipmentScrapped *uint64

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		request, err := s.requests.FindRequestInTx(ctx, tx, id)
		if err != nil {
			return err
		}
		oldStatus = request.Status

		if payload.Subject != nil {
			request.Subject = *payload.Subject
		}
		if payload.Description != nil {
			request.Description = *payload.Description
		}
		if payload.RequestType != nil {
			request.RequestType = *payload.RequestType
		}
		applyNullableUint64(&request.MaintenanceTeamID, payload.MaintenanceTeamID)
		applyNullableUint64(&request.AssignedTechnicianID, payload.AssignedTechnicianID)
		applyNullableTime(&request.ActualStartDate, payload.ActualStartDate)
		applyNullableTime(&request.CompletedDate, payload.CompletedDate)
		if payload.DurationHours.Set {
			if payload.DurationHours.Valid {
				v := int(payload.DurationHours.Uint64.Uint64)
				request.DurationHours = &v
			} else {
				request.DurationHours = nil
			}
		}
		if payload.Priority != nil {
			request.Priority = *payload.Priority
		}
		if payload.Status != nil {
			request.Status = *payload.Status
		}

		// Назначение даты переводит новую заявку в работу; очистка даты
		// обратного перехода не делает. Правило смотрит на сохранённый статус:
		// срабатывает даже поверх явного статуса в том же запросе и никогда
		// не срабатывает из in_progress и позже.
		if payload.ScheduledDate.Set {
			if payload.ScheduledDate.Valid {
				v := payload.ScheduledDate.Time.Time
				request.ScheduledDate = &v
				if oldStatus == entities.RequestStatusNew {
					request.Status = entities.RequestStatusInProgress
				}
			} else {
				request.ScheduledDate = nil
			}
		}
		newStatus = request.Status

		if err := s.requests.UpdateRequestInTx(ctx, tx, *request); err != nil {
			return err
		}

		if payload.TechnicianIDs != nil {
			if err := s.requests.ReplaceTechniciansInTx(ctx, tx, id, *payload.TechnicianIDs); err != nil {
				return err
			}
		}

		// Итоговый статус scrap списывает связанное оборудование той же
		// транзакцией: либо применяется всё, либо ничего.
		if oldStatus != entities.RequestStatusScrap &&
			request.Status == entities.RequestStatusScrap &&
			request.EquipmentID != nil {
			if err := s.equipment.MarkScrappedInTx(ctx, tx, *request.EquipmentID, time.Now()); err != nil {
				return err
			}
			equipmentScrapped = request.EquipmentID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if oldStatus != newStatus {
		s.bus.Publish(ctx, events.RequestStatusChanged{
			RequestID:   id,
			OldStatus:   oldStatus,
			NewStatus:   newStatus,
			PerformedBy: userID,
		})
	}
	if equipmentScrapped != nil {
		s.bus.Publish(ctx, events.EquipmentScrapped{EquipmentID: *equipmentScrapped, PerformedBy: userID})
	}

	// Перечитываем строку, чтобы клиент увидел применённые правила.
	return s.requests.FindRequest(ctx, id)
}
