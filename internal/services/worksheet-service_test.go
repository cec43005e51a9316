package services

import (
	"context"
	"testing"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/eventbus"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newWorksheetServiceForTest(t *testing.T, durationHours *int) (WorksheetServiceInterface, uint64) {
	t.Helper()
	requestRepo := newFakeRequestRepo()
	equipmentRepo := newFakeEquipmentRepo()
	item := seedEquipmentItem(equipmentRepo, nil, nil)

	requestSvc := NewRequestService(requestRepo, equipmentRepo, &fakeTxManager{}, eventbus.New(zap.NewNop()), zap.NewNop())
	created, err := requestSvc.CreateRequest(authedCtx(1), dto.CreateRequestDTO{
		Subject:       "Ремонт",
		Description:   "Описание",
		RequestType:   entities.RequestTypeCorrective,
		EquipmentID:   &item.ID,
		DurationHours: durationHours,
	})
	require.NoError(t, err)

	worksheetRepo := newFakeWorksheetRepo()
	svc := NewWorksheetService(worksheetRepo, requestRepo, zap.NewNop())
	return svc, created.ID
}

func TestWorksheetSummaryAggregatesHours(t *testing.T) {
	svc, requestID := newWorksheetServiceForTest(t, utils.ToPtr(4))

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	_, err := svc.CreateWorksheet(authedCtx(1), requestID, dto.CreateWorksheetDTO{
		StartTime: base, EndTime: base.Add(2 * time.Hour),
	})
	require.NoError(t, err)
	_, err = svc.CreateWorksheet(authedCtx(1), requestID, dto.CreateWorksheetDTO{
		StartTime: base.Add(3 * time.Hour), EndTime: base.Add(4*time.Hour + 30*time.Minute),
	})
	require.NoError(t, err)

	sheets, summary, err := svc.GetWorksheets(authedCtx(1), requestID)
	require.NoError(t, err)

	assert.Len(t, sheets, 2)
	assert.InDelta(t, 3.5, summary.TotalHours, 0.001)
	assert.Equal(t, 4, summary.EstimatedHours)
	assert.False(t, summary.Overtime)
}

func TestWorksheetInvertedIntervalCountsAsZero(t *testing.T) {
	svc, requestID := newWorksheetServiceForTest(t, utils.ToPtr(2))

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	// Конец раньше начала: вклад записи 0, а не отрицательное значение.
	_, err := svc.CreateWorksheet(authedCtx(1), requestID, dto.CreateWorksheetDTO{
		StartTime: base.Add(5 * time.Hour), EndTime: base,
	})
	require.NoError(t, err)
	_, err = svc.CreateWorksheet(authedCtx(1), requestID, dto.CreateWorksheetDTO{
		StartTime: base, EndTime: base.Add(time.Hour),
	})
	require.NoError(t, err)

	_, summary, err := svc.GetWorksheets(authedCtx(1), requestID)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, summary.TotalHours, 0.001)
}

func TestWorksheetOvertimeFlag(t *testing.T) {
	svc, requestID := newWorksheetServiceForTest(t, utils.ToPtr(1))

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	_, err := svc.CreateWorksheet(authedCtx(1), requestID, dto.CreateWorksheetDTO{
		StartTime: base, EndTime: base.Add(3 * time.Hour),
	})
	require.NoError(t, err)

	_, summary, err := svc.GetWorksheets(authedCtx(1), requestID)
	require.NoError(t, err)
	assert.True(t, summary.Overtime)
}

func TestWorksheetOvertimeSkippedWithoutEstimate(t *testing.T) {
	svc, requestID := newWorksheetServiceForTest(t, nil)

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	_, err := svc.CreateWorksheet(authedCtx(1), requestID, dto.CreateWorksheetDTO{
		StartTime: base, EndTime: base.Add(10 * time.Hour),
	})
	require.NoError(t, err)

	_, summary, err := svc.GetWorksheets(authedCtx(1), requestID)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.EstimatedHours)
	assert.False(t, summary.Overtime)
}

func TestCreateWorksheetStampsAuthorFromSession(t *testing.T) {
	svc, requestID := newWorksheetServiceForTest(t, nil)

	base := time.Now()
	sheet, err := svc.CreateWorksheet(authedCtx(77), requestID, dto.CreateWorksheetDTO{
		StartTime: base, EndTime: base.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(77), sheet.UserID)
}

func TestCreateWorksheetUnknownRequest(t *testing.T) {
	svc, _ := newWorksheetServiceForTest(t, nil)

	base := time.Now()
	_, err := svc.CreateWorksheet(authedCtx(1), 999, dto.CreateWorksheetDTO{
		StartTime: base, EndTime: base.Add(time.Hour),
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteWorksheet(t *testing.T) {
	svc, requestID := newWorksheetServiceForTest(t, nil)

	base := time.Now()
	sheet, err := svc.CreateWorksheet(authedCtx(1), requestID, dto.CreateWorksheetDTO{
		StartTime: base, EndTime: base.Add(time.Hour),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteWorksheet(context.Background(), sheet.ID))
	assert.ErrorIs(t, svc.DeleteWorksheet(context.Background(), sheet.ID), apperrors.ErrNotFound)
}
