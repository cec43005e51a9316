package services

import (
	"context"
	"time"

	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"

	"github.com/jackc/pgx/v5"
)

// Фейки уровня репозитория: хранят состояние в памяти и повторяют контракт
// настоящих реализаций (ErrNotFound на отсутствующих строках и т.д.).

type fakeTxManager struct{}

func (f *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

// --- пользователи ---

type fakeUserRepo struct {
	users  map[uint64]*entities.User
	teams  map[uint64][]uint64
	nextID uint64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[uint64]*entities.User),
		teams:  make(map[uint64][]uint64),
		nextID: 1,
	}
}

func (f *fakeUserRepo) GetUsers(ctx context.Context) ([]entities.User, error) {
	out := make([]entities.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) FindUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserRepo) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserRepo) FindUserByResetToken(ctx context.Context, token string) (*entities.User, error) {
	for _, u := range f.users {
		if u.ResetToken != nil && *u.ResetToken == token &&
			u.ResetTokenExpiry != nil && u.ResetTokenExpiry.After(time.Now()) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user entities.User, teamIDs []uint64) (*entities.User, error) {
	for _, u := range f.users {
		if u.Username == user.Username {
			return nil, apperrors.NewFieldConflictError("username", "Имя пользователя уже занято.", nil)
		}
		if u.Email == user.Email {
			return nil, apperrors.NewFieldConflictError("email", "Email уже зарегистрирован.", nil)
		}
	}
	user.ID = f.nextID
	f.nextID++
	now := time.Now()
	user.CreatedAt = &now
	f.users[user.ID] = &user
	f.teams[user.ID] = append([]uint64{}, teamIDs...)
	copied := user
	return &copied, nil
}

func (f *fakeUserRepo) UpdateUser(ctx context.Context, user entities.User) (*entities.User, error) {
	stored, ok := f.users[user.ID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	user.Password = stored.Password
	user.ResetToken = stored.ResetToken
	user.ResetTokenExpiry = stored.ResetTokenExpiry
	f.users[user.ID] = &user
	copied := user
	return &copied, nil
}

func (f *fakeUserRepo) UpdateResetToken(ctx context.Context, id uint64, token *string, expiry *time.Time) error {
	u, ok := f.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.ResetToken = token
	u.ResetTokenExpiry = expiry
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uint64, passwordHash string) error {
	u, ok := f.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.Password = passwordHash
	u.ResetToken = nil
	u.ResetTokenExpiry = nil
	return nil
}

func (f *fakeUserRepo) GetTeamIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	return append([]uint64{}, f.teams[userID]...), nil
}

func (f *fakeUserRepo) ReplaceTeamMemberships(ctx context.Context, userID uint64, teamIDs []uint64) error {
	f.teams[userID] = append([]uint64{}, teamIDs...)
	return nil
}

// --- оборудование ---

type fakeEquipmentRepo struct {
	items    map[uint64]*entities.Equipment
	nextID   uint64
	scrapped []uint64 // id, списанные через MarkScrappedInTx
}

func newFakeEquipmentRepo() *fakeEquipmentRepo {
	return &fakeEquipmentRepo{items: make(map[uint64]*entities.Equipment), nextID: 1}
}

func (f *fakeEquipmentRepo) GetEquipment(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	out := make([]entities.Equipment, 0, len(f.items))
	for _, it := range f.items {
		out = append(out, *it)
	}
	return out, uint64(len(out)), nil
}

func (f *fakeEquipmentRepo) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *it
	return &copied, nil
}

func (f *fakeEquipmentRepo) CreateEquipment(ctx context.Context, item entities.Equipment) (*entities.Equipment, error) {
	for _, it := range f.items {
		if it.SerialNumber == item.SerialNumber {
			return nil, apperrors.NewFieldConflictError("serial_number", "Серийный номер уже зарегистрирован.", nil)
		}
	}
	item.ID = f.nextID
	f.nextID++
	f.items[item.ID] = &item
	copied := item
	return &copied, nil
}

func (f *fakeEquipmentRepo) UpdateEquipment(ctx context.Context, item entities.Equipment) (*entities.Equipment, error) {
	if _, ok := f.items[item.ID]; !ok {
		return nil, apperrors.ErrNotFound
	}
	f.items[item.ID] = &item
	copied := item
	return &copied, nil
}

func (f *fakeEquipmentRepo) MarkScrappedInTx(ctx context.Context, tx pgx.Tx, id uint64, scrapDate time.Time) error {
	it, ok := f.items[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	it.Status = entities.AssetStatusScrapped
	it.ScrapDate = &scrapDate
	f.scrapped = append(f.scrapped, id)
	return nil
}

// --- заявки ---

type fakeRequestRepo struct {
	requests    map[uint64]*entities.MaintenanceRequest
	technicians map[uint64][]uint64
	nextID      uint64
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{
		requests:    make(map[uint64]*entities.MaintenanceRequest),
		technicians: make(map[uint64][]uint64),
		nextID:      1,
	}
}

func (f *fakeRequestRepo) GetRequests(ctx context.Context, filter types.Filter) ([]entities.MaintenanceRequest, uint64, error) {
	out := make([]entities.MaintenanceRequest, 0, len(f.requests))
	for _, r := range f.requests {
		copied := *r
		copied.TechnicianIDs = append([]uint64{}, f.technicians[r.ID]...)
		out = append(out, copied)
	}
	return out, uint64(len(out)), nil
}

func (f *fakeRequestRepo) FindRequest(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *r
	copied.TechnicianIDs = append([]uint64{}, f.technicians[id]...)
	return &copied, nil
}

func (f *fakeRequestRepo) FindRequestInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.MaintenanceRequest, error) {
	return f.FindRequest(ctx, id)
}

func (f *fakeRequestRepo) CreateRequest(ctx context.Context, request entities.MaintenanceRequest, technicianIDs []uint64) (*entities.MaintenanceRequest, error) {
	request.ID = f.nextID
	f.nextID++
	now := time.Now()
	request.CreatedAt = &now
	f.requests[request.ID] = &request
	f.technicians[request.ID] = append([]uint64{}, technicianIDs...)
	copied := request
	copied.TechnicianIDs = append([]uint64{}, technicianIDs...)
	return &copied, nil
}

func (f *fakeRequestRepo) UpdateRequestInTx(ctx context.Context, tx pgx.Tx, request entities.MaintenanceRequest) error {
	if _, ok := f.requests[request.ID]; !ok {
		return apperrors.ErrNotFound
	}
	stored := request
	f.requests[request.ID] = &stored
	return nil
}

func (f *fakeRequestRepo) ReplaceTechniciansInTx(ctx context.Context, tx pgx.Tx, requestID uint64, technicianIDs []uint64) error {
	f.technicians[requestID] = append([]uint64{}, technicianIDs...)
	return nil
}

func (f *fakeRequestRepo) GetTechnicianIDs(ctx context.Context, requestID uint64) ([]uint64, error) {
	return append([]uint64{}, f.technicians[requestID]...), nil
}

// --- учёт времени ---

type fakeWorksheetRepo struct {
	sheets map[uint64]*entities.Worksheet
	nextID uint64
}

func newFakeWorksheetRepo() *fakeWorksheetRepo {
	return &fakeWorksheetRepo{sheets: make(map[uint64]*entities.Worksheet), nextID: 1}
}

func (f *fakeWorksheetRepo) GetWorksheetsByRequest(ctx context.Context, requestID uint64) ([]entities.Worksheet, error) {
	out := make([]entities.Worksheet, 0)
	for _, w := range f.sheets {
		if w.RequestID == requestID {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (f *fakeWorksheetRepo) FindWorksheet(ctx context.Context, id uint64) (*entities.Worksheet, error) {
	w, ok := f.sheets[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *w
	return &copied, nil
}

func (f *fakeWorksheetRepo) CreateWorksheet(ctx context.Context, sheet entities.Worksheet) (*entities.Worksheet, error) {
	sheet.ID = f.nextID
	f.nextID++
	f.sheets[sheet.ID] = &sheet
	copied := sheet
	return &copied, nil
}

func (f *fakeWorksheetRepo) UpdateWorksheet(ctx context.Context, sheet entities.Worksheet) (*entities.Worksheet, error) {
	if _, ok := f.sheets[sheet.ID]; !ok {
		return nil, apperrors.ErrNotFound
	}
	f.sheets[sheet.ID] = &sheet
	copied := sheet
	return &copied, nil
}

func (f *fakeWorksheetRepo) DeleteWorksheet(ctx context.Context, id uint64) error {
	if _, ok := f.sheets[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.sheets, id)
	return nil
}

// --- сессии, кеш, почта ---

type fakeSessionService struct {
	sessions map[string]uint64
	roles    map[string]string
	counter  int
}

func newFakeSessionService() *fakeSessionService {
	return &fakeSessionService{sessions: make(map[string]uint64), roles: make(map[string]string)}
}

func (f *fakeSessionService) Create(ctx context.Context, userID uint64, role string) (string, error) {
	f.counter++
	id := "session-" + string(rune('a'+f.counter))
	f.sessions[id] = userID
	f.roles[id] = role
	return id, nil
}

func (f *fakeSessionService) Lookup(ctx context.Context, sessionID string) (uint64, string, error) {
	id, ok := f.sessions[sessionID]
	if !ok {
		return 0, "", apperrors.ErrSessionNotFound
	}
	return id, f.roles[sessionID], nil
}

func (f *fakeSessionService) Destroy(ctx context.Context, sessionID string) error {
	delete(f.sessions, sessionID)
	delete(f.roles, sessionID)
	return nil
}

func (f *fakeSessionService) TTL() time.Duration { return time.Hour }

type fakeCacheRepo struct {
	values map[string]string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{values: make(map[string]string)}
}

func (f *fakeCacheRepo) Get(ctx context.Context, key string) (string, error) {
	v, ok := f.values[key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return v, nil
}

func (f *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	f.values[key] = "1"
	return nil
}

func (f *fakeCacheRepo) Del(ctx context.Context, key string) error {
	delete(f.values, key)
	return nil
}

func (f *fakeCacheRepo) Incr(ctx context.Context, key string) error { return nil }

func (f *fakeCacheRepo) Expire(ctx context.Context, key string, ttl time.Duration) error { return nil }

type fakeMailer struct {
	sentTo     []string
	sentTokens []string
}

func (f *fakeMailer) SendPasswordResetEmail(to, token string) error {
	f.sentTo = append(f.sentTo, to)
	f.sentTokens = append(f.sentTokens, token)
	return nil
}
