package services

import (
	"context"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/utils"

	"go.uber.org/zap"
)

type WorksheetServiceInterface interface {
	GetWorksheets(ctx context.Context, requestID uint64) ([]entities.Worksheet, *dto.WorksheetSummaryDTO, error)
	CreateWorksheet(ctx context.Context, requestID uint64, payload dto.CreateWorksheetDTO) (*entities.Worksheet, error)
	DeleteWorksheet(ctx context.Context, id uint64) error
}

type WorksheetService struct {
	worksheets repositories.WorksheetRepositoryInterface
	requests   repositories.RequestRepositoryInterface
	logger     *zap.Logger
}

func NewWorksheetService(
	worksheets repositories.WorksheetRepositoryInterface,
	requests repositories.RequestRepositoryInterface,
	logger *zap.Logger,
) WorksheetServiceInterface {
	return &WorksheetService{worksheets: worksheets, requests: requests, logger: logger}
}

// GetWorksheets возвращает записи вместе с агрегатом. Инвертированные интервалы
// дают 0 часов, переработка оценивается только при заданной ненулевой оценке.
func (s *WorksheetService) GetWorksheets(ctx context.Context, requestID uint64) ([]entities.Worksheet, *dto.WorksheetSummaryDTO, error) {
	request, err := s.requests.FindRequest(ctx, requestID)
	if err != nil {
		return nil, nil, err
	}

	sheets, err := s.worksheets.GetWorksheetsByRequest(ctx, requestID)
	if err != nil {
		return nil, nil, err
	}

	summary := &dto.WorksheetSummaryDTO{}
	for _, sheet := range sheets {
		summary.TotalHours += sheet.Hours()
	}
	if request.DurationHours != nil {
		summary.EstimatedHours = *request.DurationHours
		if summary.EstimatedHours > 0 {
			summary.Overtime = summary.TotalHours > float64(summary.EstimatedHours)
		}
	}
	return sheets, summary, nil
}

func (s *WorksheetService) CreateWorksheet(ctx context.Context, requestID uint64, payload dto.CreateWorksheetDTO) (*entities.Worksheet, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.requests.FindRequest(ctx, requestID); err != nil {
		return nil, err
	}

	return s.worksheets.CreateWorksheet(ctx, entities.Worksheet{
		RequestID:   requestID,
		UserID:      userID,
		StartTime:   payload.StartTime,
		EndTime:     payload.EndTime,
		Description: payload.Description,
	})
}

func (s *WorksheetService) DeleteWorksheet(ctx context.Context, id uint64) error {
	return s.worksheets.DeleteWorksheet(ctx, id)
}
