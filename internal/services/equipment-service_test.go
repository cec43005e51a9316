package services

import (
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

func newEquipmentServiceForTest() (*fakeEquipmentRepo, EquipmentServiceInterface) {
	repo := newFakeEquipmentRepo()
	svc := NewEquipmentService(repo, eventbus.New(zap.NewNop()), zap.NewNop())
	return repo, svc
}

func TestCreateEquipmentDefaultsToActive(t *testing.T) {
	_, svc := newEquipmentServiceForTest()

	created, err := svc.CreateEquipment(authedCtx(1), dto.CreateEquipmentDTO{
		Name:         "Компрессор",
		SerialNumber: "SN-CMP-01",
		CategoryID:   1,
	})
	require.NoError(t, err)

	assert.Equal(t, entities.AssetStatusActive, created.Status)
	assert.Nil(t, created.ScrapDate)
}

func TestCreateEquipmentWithScrapDateIsScrapped(t *testing.T) {
	_, svc := newEquipmentServiceForTest()

	scrapDate := time.Now().Add(-24 * time.Hour)
	created, err := svc.CreateEquipment(authedCtx(1), dto.CreateEquipmentDTO{
		Name:         "Старый станок",
		SerialNumber: "SN-OLD-01",
		CategoryID:   1,
		ScrapDate:    &scrapDate,
	})
	require.NoError(t, err)

	assert.Equal(t, entities.AssetStatusScrapped, created.Status)
	require.NotNil(t, created.ScrapDate)
}

func TestCreateEquipmentDuplicateSerialNumber(t *testing.T) {
	_, svc := newEquipmentServiceForTest()

	_, err := svc.CreateEquipment(authedCtx(1), dto.CreateEquipmentDTO{
		Name: "А", SerialNumber: "SN-DUP", CategoryID: 1,
	})
	require.NoError(t, err)

	_, err = svc.CreateEquipment(authedCtx(1), dto.CreateEquipmentDTO{
		Name: "Б", SerialNumber: "SN-DUP", CategoryID: 1,
	})
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "serial_number", httpErr.Details["field"])
}

func TestUpdateEquipmentScrapDateDerivesStatus(t *testing.T) {
	_, svc := newEquipmentServiceForTest()

	created, err := svc.CreateEquipment(authedCtx(1), dto.CreateEquipmentDTO{
		Name: "Станок", SerialNumber: "SN-01", CategoryID: 1,
	})
	require.NoError(t, err)

	scrapDate := time.Now()
	updated, err := svc.UpdateEquipment(authedCtx(1), created.ID, dto.UpdateEquipmentDTO{
		ScrapDate: setTime(scrapDate),
	})
	require.NoError(t, err)
	assert.Equal(t, entities.AssetStatusScrapped, updated.Status)
	require.NotNil(t, updated.ScrapDate)

	// Явный null возвращает в строй.
	updated, err = svc.UpdateEquipment(authedCtx(1), created.ID, dto.UpdateEquipmentDTO{
		ScrapDate: clearTime(),
	})
	require.NoError(t, err)
	assert.Equal(t, entities.AssetStatusActive, updated.Status)
	assert.Nil(t, updated.ScrapDate)
}

func TestUpdateEquipmentStatusDerivesScrapDate(t *testing.T) {
	_, svc := newEquipmentServiceForTest()

	created, err := svc.CreateEquipment(authedCtx(1), dto.CreateEquipmentDTO{
		Name: "Станок", SerialNumber: "SN-02", CategoryID: 1,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateEquipment(authedCtx(1), created.ID, dto.UpdateEquipmentDTO{
		Status: utils.ToPtr(entities.AssetStatusScrapped),
	})
	require.NoError(t, err)
	assert.Equal(t, entities.AssetStatusScrapped, updated.Status)
	require.NotNil(t, updated.ScrapDate)

	updated, err = svc.UpdateEquipment(authedCtx(1), created.ID, dto.UpdateEquipmentDTO{
		Status: utils.ToPtr(entities.AssetStatusActive),
	})
	require.NoError(t, err)
	assert.Equal(t, entities.AssetStatusActive, updated.Status)
	assert.Nil(t, updated.ScrapDate)
}

func TestUpdateEquipmentScrapDateWinsOverStatus(t *testing.T) {
	_, svc := newEquipmentServiceForTest()

	created, err := svc.CreateEquipment(authedCtx(1), dto.CreateEquipmentDTO{
		Name: "Станок", SerialNumber: "SN-03", CategoryID: 1,
	})
	require.NoError(t, err)

	// Оба поля в запросе: авторитетен scrap_date.
	updated, err := svc.UpdateEquipment(authedCtx(1), created.ID, dto.UpdateEquipmentDTO{
		Status:    utils.ToPtr(entities.AssetStatusActive),
		ScrapDate: setTime(time.Now()),
	})
	require.NoError(t, err)
	assert.Equal(t, entities.AssetStatusScrapped, updated.Status)
}

func TestUpdateEquipmentUntouchedFieldsSurvive(t *testing.T) {
	_, svc := newEquipmentServiceForTest()

	created, err := svc.CreateEquipment(authedCtx(1), dto.CreateEquipmentDTO{
		Name:         "Станок",
		SerialNumber: "SN-04",
		CategoryID:   1,
		Location:     utils.ToPtr("Цех 2"),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateEquipment(authedCtx(1), created.ID, dto.UpdateEquipmentDTO{
		Name: utils.ToPtr("Станок (модернизирован)"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Станок (модернизирован)", updated.Name)
	require.NotNil(t, updated.Location)
	assert.Equal(t, "Цех 2", *updated.Location)
	assert.Equal(t, "SN-04", updated.SerialNumber)
}

func TestUpdateEquipmentNotFound(t *testing.T) {
	_, svc := newEquipmentServiceForTest()

	_, err := svc.UpdateEquipment(authedCtx(1), 999, dto.UpdateEquipmentDTO{
		Name: utils.ToPtr("Нет такого"),
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
