package services

import (
	"context"
	"testing"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/contextkeys"
	"gearguard/pkg/eventbus"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"
	"gearguard/pkg/validation"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func authedCtx(userID uint64) context.Context {
	ctx := context.WithValue(context.Background(), contextkeys.UserIDKey, userID)
	return context.WithValue(ctx, contextkeys.UserRoleKey, entities.RoleEmployee)
}

func setTime(t time.Time) validation.NullableTime {
	return validation.NullableTime{Time: null.TimeFrom(t), Set: true}
}

func clearTime() validation.NullableTime {
	return validation.NullableTime{Time: null.NewTime(time.Time{}, false), Set: true}
}

func newRequestServiceForTest() (*fakeRequestRepo, *fakeEquipmentRepo, RequestServiceInterface) {
	requestRepo := newFakeRequestRepo()
	equipmentRepo := newFakeEquipmentRepo()
	svc := NewRequestService(requestRepo, equipmentRepo, &fakeTxManager{}, eventbus.New(zap.NewNop()), zap.NewNop())
	return requestRepo, equipmentRepo, svc
}

func seedEquipmentItem(repo *fakeEquipmentRepo, teamID, technicianID *uint64) *entities.Equipment {
	item, _ := repo.CreateEquipment(context.Background(), entities.Equipment{
		Name:                "Станок",
		SerialNumber:        "SN-001",
		CategoryID:          1,
		MaintenanceTeamID:   teamID,
		DefaultTechnicianID: technicianID,
		Status:              entities.AssetStatusActive,
	})
	return item
}

func TestCreateRequestAutoAssignsFromEquipment(t *testing.T) {
	_, equipmentRepo, svc := newRequestServiceForTest()
	item := seedEquipmentItem(equipmentRepo, utils.ToPtr(uint64(7)), utils.ToPtr(uint64(42)))

	created, err := svc.CreateRequest(authedCtx(3), dto.CreateRequestDTO{
		Subject:     "Не работает шпиндель",
		Description: "Вибрация при запуске",
		RequestType: entities.RequestTypeCorrective,
		EquipmentID: &item.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(3), created.CreatedBy)
	assert.Equal(t, entities.RequestStatusNew, created.Status)
	assert.Equal(t, entities.PriorityMedium, created.Priority)
	require.NotNil(t, created.MaintenanceTeamID)
	assert.Equal(t, uint64(7), *created.MaintenanceTeamID)
	require.NotNil(t, created.AssignedTechnicianID)
	assert.Equal(t, uint64(42), *created.AssignedTechnicianID)
	assert.Equal(t, []uint64{42}, created.TechnicianIDs)
}

func TestCreateRequestKeepsClientTechnicians(t *testing.T) {
	_, equipmentRepo, svc := newRequestServiceForTest()
	item := seedEquipmentItem(equipmentRepo, nil, utils.ToPtr(uint64(42)))

	created, err := svc.CreateRequest(authedCtx(3), dto.CreateRequestDTO{
		Subject:       "Плановое ТО",
		Description:   "Замена масла",
		RequestType:   entities.RequestTypePreventive,
		EquipmentID:   &item.ID,
		TechnicianIDs: []uint64{5, 6},
	})
	require.NoError(t, err)

	// Присланные техники не затираются дефолтным.
	assert.Equal(t, []uint64{5, 6}, created.TechnicianIDs)
}

func TestCreateRequestTeamOverridesClientValue(t *testing.T) {
	_, equipmentRepo, svc := newRequestServiceForTest()
	item := seedEquipmentItem(equipmentRepo, utils.ToPtr(uint64(7)), nil)

	created, err := svc.CreateRequest(authedCtx(3), dto.CreateRequestDTO{
		Subject:           "Ремонт",
		Description:       "Описание",
		RequestType:       entities.RequestTypeCorrective,
		EquipmentID:       &item.ID,
		MaintenanceTeamID: utils.ToPtr(uint64(99)),
	})
	require.NoError(t, err)

	require.NotNil(t, created.MaintenanceTeamID)
	assert.Equal(t, uint64(7), *created.MaintenanceTeamID)
}

func TestCreateRequestRejectsAmbiguousTarget(t *testing.T) {
	_, _, svc := newRequestServiceForTest()

	_, err := svc.CreateRequest(authedCtx(3), dto.CreateRequestDTO{
		Subject:      "Без цели",
		Description:  "Описание",
		RequestType:  entities.RequestTypeCorrective,
		EquipmentID:  nil,
		WorkCenterID: nil,
	})
	assert.Error(t, err)

	_, err = svc.CreateRequest(authedCtx(3), dto.CreateRequestDTO{
		Subject:      "Две цели",
		Description:  "Описание",
		RequestType:  entities.RequestTypeCorrective,
		EquipmentID:  utils.ToPtr(uint64(1)),
		WorkCenterID: utils.ToPtr(uint64(2)),
	})
	assert.Error(t, err)
}

func TestCreateRequestRequiresAuthenticatedUser(t *testing.T) {
	_, _, svc := newRequestServiceForTest()

	_, err := svc.CreateRequest(context.Background(), dto.CreateRequestDTO{
		Subject:     "Без сессии",
		Description: "Описание",
		RequestType: entities.RequestTypeCorrective,
		EquipmentID: utils.ToPtr(uint64(1)),
	})
	assert.ErrorIs(t, err, apperrors.ErrUserIDNotFoundInContext)
}

func TestUpdateRequestScheduledDateMovesNewToInProgress(t *testing.T) {
	_, equipmentRepo, svc := newRequestServiceForTest()
	item := seedEquipmentItem(equipmentRepo, nil, nil)

	created, err := svc.CreateRequest(authedCtx(3), dto.CreateRequestDTO{
		Subject:     "Ремонт",
		Description: "Описание",
		RequestType: entities.RequestTypeCorrective,
		EquipmentID: &item.ID,
	})
	require.NoError(t, err)
	require.Equal(t, entities.RequestStatusNew, created.Status)

	scheduled := time.Now().Add(24 * time.Hour)
	updated, err := svc.UpdateRequest(authedCtx(3), created.ID, dto.UpdateRequestDTO{
		ScheduledDate: setTime(scheduled),
	})
	require.NoError(t, err)

	assert.Equal(t, entities.RequestStatusInProgress, updated.Status)
	require.NotNil(t, updated.ScheduledDate)
}

func TestUpdateRequestClearingScheduledDateKeepsStatus(t *testing.T) {
	_, equipmentRepo, svc := newRequestServiceForTest()
	item := seedEquipmentItem(equipmentRepo, nil, nil)

	created, err := svc.CreateRequest(authedCtx(3), dto.CreateRequestDTO{
		Subject:       "Ремонт",
		Description:   "Описание",
		RequestType:   entities.RequestTypeCorrective,
		EquipmentID:   &item.ID,
		ScheduledDate: utils.ToPtr(time.Now()),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateRequest(authedCtx(3), created.ID, dto.UpdateRequestDTO{
		ScheduledDate: clearTime(),
	})
	require.NoError(t, err)

	assert.Nil(t, updated.ScheduledDate)
	assert.Equal(t, entities.RequestStatusNew, updated.Status)
}

func TestUpdateRequestScheduledDateDoesNotDemoteLaterStatus(t *testing.T) {
	_, equipmentRepo, svc := newRequestServiceForTest()
	item := seedEquipmentItem(equipmentRepo, nil, nil)

	created, err := svc.CreateRequest(authedCtx(3), dto.CreateRequestDTO{
		Subject:     "Ремонт",
		Description: "Описание",
		RequestType: entities.RequestTypeCorrective,
		EquipmentID: &item.ID,
		Status:      entities.RequestStatusRepaired,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateRequest(authedCtx(3), created.ID, dto.UpdateRequestDTO{
		ScheduledDate: setTime(time.Now()),
	})
	require.NoError(t, err)

	// Переход срабатывает только из статуса new.
	assert.Equal(t, entities.RequestStatusRepaired, updated.Status)
}

// Правило смотрит на сохранённый статус, а не на присланный в том же запросе.
func TestUpdateRequestScheduledDateOverridesExplicitStatusFromNew(t *testing.T) {
	_, equipmentRepo, svc := newRequestServiceForTest()
	item := seedEquipmentItem(equipmentRepo, nil, nil)

	created, err := svc.CreateRequest(authedCtx(3), dto.CreateRequestDTO{
		Subject:     "Ремонт",
		Description: "Описание",
		RequestType: entities.RequestTypeCorrective,
		EquipmentID: &item.ID,
	})
	require.NoError(t, err)
	require.Equal(t, entities.RequestStatusNew, created.Status)

	updated, err := svc.UpdateRequest(authedCtx(3), created.ID, dto.UpdateRequestDTO{
		Status:        utils.ToPtr(entities.RequestStatusRepaired),
		ScheduledDate: setTime(time.Now()),
	})
	require.NoError(t, err)

	assert.Equal(t, entities.RequestStatusInProgress, updated.Status)
}

func TestUpdateRequestScheduledDateHonorsExplicitStatusFromInProgress(t *testing.T) {
	_, equipmentRepo, svc := newRequestServiceForTest()
	item := seedEquipmentItem(equipmentRepo, nil, nil)

	created, err := svc.CreateRequest(authedCtx(3), dto.CreateRequestDTO{
		Subject:     "Ремонт",
		Description: "Описание",
		RequestType: entities.RequestTypeCorrective,
		EquipmentID: &item.ID,
		Status:      entities.RequestStatusInProgress,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateRequest(authedCtx(3), created.ID, dto.UpdateRequestDTO{
		Status:        utils.ToPtr(entities.RequestStatusNew),
		ScheduledDate: setTime(time.Now()),
	})
	require.NoError(t, err)

	// Из in_progress правило не срабатывает: явный статус клиента сохраняется.
	assert.Equal(t, entities.RequestStatusNew, updated.Status)
}

func TestUpdateRequestScrapCascadesToEquipment(t *testing.T) {
	_, equipmentRepo, svc := newRequestServiceForTest()
	item := seedEquipmentItem(equipmentRepo, nil, nil)

	created, err := svc.CreateRequest(authedCtx(3), dto.CreateRequestDTO{
		Subject:     "Списание",
		Description: "Оборудование не подлежит ремонту",
		RequestType: entities.RequestTypeCorrective,
		EquipmentID: &item.ID,
	})
	require.NoError(t, err)

	_, err = svc.UpdateRequest(authedCtx(3), created.ID, dto.UpdateRequestDTO{
		Status: utils.ToPtr(entities.RequestStatusScrap),
	})
	require.NoError(t, err)

	scrapped, err := equipmentRepo.FindEquipment(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.AssetStatusScrapped, scrapped.Status)
	assert.NotNil(t, scrapped.ScrapDate)
	assert.Equal(t, []uint64{item.ID}, equipmentRepo.scrapped)
}

func TestUpdateRequestScrapIsIdempotentForCascade(t *testing.T) {
	_, equipmentRepo, svc := newRequestServiceForTest()
	item := seedEquipmentItem(equipmentRepo, nil, nil)

	created, err := svc.CreateRequest(authedCtx(3), dto.CreateRequestDTO{
		Subject:     "Списание",
		Description: "Описание",
		RequestType: entities.RequestTypeCorrective,
		EquipmentID: &item.ID,
	})
	require.NoError(t, err)

	_, err = svc.UpdateRequest(authedCtx(3), created.ID, dto.UpdateRequestDTO{
		Status: utils.ToPtr(entities.RequestStatusScrap),
	})
	require.NoError(t, err)

	// Повторное сохранение уже списанной заявки не дублирует каскад.
	_, err = svc.UpdateRequest(authedCtx(3), created.ID, dto.UpdateRequestDTO{
		Subject: utils.ToPtr("Списание (уточнение)"),
	})
	require.NoError(t, err)
	assert.Len(t, equipmentRepo.scrapped, 1)
}

func TestUpdateRequestTechnicianReplaceSemantics(t *testing.T) {
	requestRepo, equipmentRepo, svc := newRequestServiceForTest()
	item := seedEquipmentItem(equipmentRepo, nil, nil)

	created, err := svc.CreateRequest(authedCtx(3), dto.CreateRequestDTO{
		Subject:       "Ремонт",
		Description:   "Описание",
		RequestType:   entities.RequestTypeCorrective,
		EquipmentID:   &item.ID,
		TechnicianIDs: []uint64{5, 6},
	})
	require.NoError(t, err)

	// Отсутствующее поле не трогает состав.
	updated, err := svc.UpdateRequest(authedCtx(3), created.ID, dto.UpdateRequestDTO{
		Priority: utils.ToPtr(entities.PriorityHigh),
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{5, 6}, updated.TechnicianIDs)

	// Новый список замещает старый целиком.
	updated, err = svc.UpdateRequest(authedCtx(3), created.ID, dto.UpdateRequestDTO{
		TechnicianIDs: &[]uint64{9},
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{9}, updated.TechnicianIDs)

	// Пустой срез очищает назначения.
	updated, err = svc.UpdateRequest(authedCtx(3), created.ID, dto.UpdateRequestDTO{
		TechnicianIDs: &[]uint64{},
	})
	require.NoError(t, err)
	assert.Empty(t, updated.TechnicianIDs)
	assert.Empty(t, requestRepo.technicians[created.ID])
}

func TestUpdateRequestNotFound(t *testing.T) {
	_, _, svc := newRequestServiceForTest()

	_, err := svc.UpdateRequest(authedCtx(3), 12345, dto.UpdateRequestDTO{
		Priority: utils.ToPtr(entities.PriorityLow),
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
