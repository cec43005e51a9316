package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const requestTable = "maintenance_requests"

const requestSelectFields = `id, subject, description, request_type, equipment_id, work_center_id,
	maintenance_team_id, assigned_technician_id, scheduled_date, actual_start_date, completed_date,
	duration_hours, priority, status, created_by, created_at`

var (
	requestAllowedFilterFields = map[string]string{
		"status":              "r.status",
		"priority":            "r.priority",
		"request_type":        "r.request_type",
		"equipment_id":        "r.equipment_id",
		"work_center_id":      "r.work_center_id",
		"maintenance_team_id": "r.maintenance_team_id",
		"created_by":          "r.created_by",
	}
	requestAllowedSortFields = map[string]string{
		"id":             "r.id",
		"scheduled_date": "r.scheduled_date",
		"priority":       "r.priority",
		"created_at":     "r.created_at",
	}
)

type RequestRepositoryInterface interface {
	GetRequests(ctx context.Context, filter types.Filter) ([]entities.MaintenanceRequest, uint64, error)
	FindRequest(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error)
	FindRequestInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.MaintenanceRequest, error)
	CreateRequest(ctx context.Context, request entities.MaintenanceRequest, technicianIDs []uint64) (*entities.MaintenanceRequest, error)
	UpdateRequestInTx(ctx context.Context, tx pgx.Tx, request entities.MaintenanceRequest) error
	ReplaceTechniciansInTx(ctx context.Context, tx pgx.Tx, requestID uint64, technicianIDs []uint64) error
	GetTechnicianIDs(ctx context.Context, requestID uint64) ([]uint64, error)
}

type RequestRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewRequestRepository(storage *pgxpool.Pool, logger *zap.Logger) RequestRepositoryInterface {
	return &RequestRepository{storage: storage, logger: logger}
}

func scanRequest(row pgx.Row) (*entities.MaintenanceRequest, error) {
	var req entities.MaintenanceRequest
	err := row.Scan(
		&req.ID, &req.Subject, &req.Description, &req.RequestType, &req.EquipmentID, &req.WorkCenterID,
		&req.MaintenanceTeamID, &req.AssignedTechnicianID, &req.ScheduledDate, &req.ActualStartDate,
		&req.CompletedDate, &req.DurationHours, &req.Priority, &req.Status, &req.CreatedBy, &req.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования maintenance_requests: %w", err)
	}
	return &req, nil
}

func mapRequestConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503":
			return apperrors.NewInvalidInputError("Нарушение внешнего ключа (неверный ID оборудования, команды или техника).")
		case "23514":
			return apperrors.NewInvalidInputError("Заявка должна ссылаться ровно на одно: оборудование или рабочий центр.")
		}
	}
	return err
}

func (r *RequestRepository) buildFilterQuery(filter types.Filter) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argCounter := 1
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("r.subject ILIKE $%d", argCounter))
		args = append(args, "%"+filter.Search+"%")
		argCounter++
	}
	for key, value := range filter.Filter {
		if dbColumn, ok := requestAllowedFilterFields[key]; ok {
			conditions = append(conditions, fmt.Sprintf("%s = $%d", dbColumn, argCounter))
			args = append(args, value)
			argCounter++
		}
	}
	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func (r *RequestRepository) GetRequests(ctx context.Context, filter types.Filter) ([]entities.MaintenanceRequest, uint64, error) {
	whereClause, args := r.buildFilterQuery(filter)

	var total uint64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s AS r %s", requestTable, whereClause)
	if err := r.storage.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.MaintenanceRequest{}, 0, nil
	}

	orderByClause := "ORDER BY r.id DESC"
	if len(filter.Sort) > 0 {
		sorts := []string{}
		for field, direction := range filter.Sort {
			if dbField, ok := requestAllowedSortFields[field]; ok {
				order := "ASC"
				if strings.ToLower(direction) == "desc" {
					order = "DESC"
				}
				sorts = append(sorts, fmt.Sprintf("%s %s", dbField, order))
			}
		}
		if len(sorts) > 0 {
			orderByClause = "ORDER BY " + strings.Join(sorts, ", ")
		}
	}

	limitClause := ""
	if filter.WithPagination {
		argCounter := len(args) + 1
		limitClause = fmt.Sprintf("LIMIT $%d OFFSET $%d", argCounter, argCounter+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	selectFields := strings.ReplaceAll(requestSelectFields, "id,", "r.id,")
	query := fmt.Sprintf(`SELECT %s FROM %s r %s %s %s`,
		selectFields, requestTable, whereClause, orderByClause, limitClause)

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	requests := make([]entities.MaintenanceRequest, 0)
	ids := make([]uint64, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		req.TechnicianIDs = []uint64{}
		requests = append(requests, *req)
		ids = append(ids, req.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(ids) > 0 {
		techRows, err := r.storage.Query(ctx,
			`SELECT request_id, technician_id FROM request_technicians WHERE request_id = ANY($1) ORDER BY technician_id`, ids)
		if err != nil {
			return nil, 0, err
		}
		defer techRows.Close()

		byRequest := make(map[uint64][]uint64, len(ids))
		for techRows.Next() {
			var requestID, technicianID uint64
			if err := techRows.Scan(&requestID, &technicianID); err != nil {
				return nil, 0, err
			}
			byRequest[requestID] = append(byRequest[requestID], technicianID)
		}
		if err := techRows.Err(); err != nil {
			return nil, 0, err
		}
		for i := range requests {
			if techIDs, ok := byRequest[requests[i].ID]; ok {
				requests[i].TechnicianIDs = techIDs
			}
		}
	}

	return requests, total, nil
}

func (r *RequestRepository) FindRequest(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, requestSelectFields, requestTable)
	req, err := scanRequest(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	req.TechnicianIDs, err = r.GetTechnicianIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return req, nil
}

// FindRequestInTx читает заявку внутри транзакции обновления, чтобы правила
// жизненного цикла считались от согласованного состояния строки.
func (r *RequestRepository) FindRequestInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.MaintenanceRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 FOR UPDATE`, requestSelectFields, requestTable)
	req, err := scanRequest(tx.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx,
		`SELECT technician_id FROM request_technicians WHERE request_id = $1 ORDER BY technician_id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	req.TechnicianIDs = []uint64{}
	for rows.Next() {
		var technicianID uint64
		if err := rows.Scan(&technicianID); err != nil {
			return nil, err
		}
		req.TechnicianIDs = append(req.TechnicianIDs, technicianID)
	}
	return req, rows.Err()
}

func (r *RequestRepository) CreateRequest(ctx context.Context, request entities.MaintenanceRequest, technicianIDs []uint64) (*entities.MaintenanceRequest, error) {
	tx, err := r.storage.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("не удалось начать транзакцию: %w", err)
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf(`
		INSERT INTO %s (subject, description, request_type, equipment_id, work_center_id,
			maintenance_team_id, assigned_technician_id, scheduled_date, actual_start_date,
			completed_date, duration_hours, priority, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING %s`, requestTable, requestSelectFields)

	created, err := scanRequest(tx.QueryRow(ctx, query,
		request.Subject, request.Description, request.RequestType, request.EquipmentID, request.WorkCenterID,
		request.MaintenanceTeamID, request.AssignedTechnicianID, request.ScheduledDate, request.ActualStartDate,
		request.CompletedDate, request.DurationHours, request.Priority, request.Status, request.CreatedBy,
	))
	if err != nil {
		return nil, mapRequestConstraint(err)
	}

	if err := r.insertTechnicians(ctx, tx, created.ID, technicianIDs); err != nil {
		return nil, mapRequestConstraint(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("не удалось зафиксировать транзакцию: %w", err)
	}

	created.TechnicianIDs = technicianIDs
	if created.TechnicianIDs == nil {
		created.TechnicianIDs = []uint64{}
	}
	return created, nil
}

func (r *RequestRepository) UpdateRequestInTx(ctx context.Context, tx pgx.Tx, request entities.MaintenanceRequest) error {
	query := fmt.Sprintf(`
		UPDATE %s SET subject = $1, description = $2, request_type = $3, equipment_id = $4,
			work_center_id = $5, maintenance_team_id = $6, assigned_technician_id = $7,
			scheduled_date = $8, actual_start_date = $9, completed_date = $10,
			duration_hours = $11, priority = $12, status = $13
		WHERE id = $14`, requestTable)

	result, err := tx.Exec(ctx, query,
		request.Subject, request.Description, request.RequestType, request.EquipmentID, request.WorkCenterID,
		request.MaintenanceTeamID, request.AssignedTechnicianID, request.ScheduledDate, request.ActualStartDate,
		request.CompletedDate, request.DurationHours, request.Priority, request.Status, request.ID,
	)
	if err != nil {
		return mapRequestConstraint(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ReplaceTechniciansInTx - полная пересборка связей: удалить всё и вставить заново.
func (r *RequestRepository) ReplaceTechniciansInTx(ctx context.Context, tx pgx.Tx, requestID uint64, technicianIDs []uint64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM request_technicians WHERE request_id = $1`, requestID); err != nil {
		return fmt.Errorf("ошибка очистки request_technicians: %w", err)
	}
	if err := r.insertTechnicians(ctx, tx, requestID, technicianIDs); err != nil {
		return mapRequestConstraint(err)
	}
	return nil
}

func (r *RequestRepository) insertTechnicians(ctx context.Context, tx pgx.Tx, requestID uint64, technicianIDs []uint64) error {
	for _, technicianID := range technicianIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO request_technicians (request_id, technician_id) VALUES ($1, $2)`,
			requestID, technicianID); err != nil {
			return err
		}
	}
	return nil
}

func (r *RequestRepository) GetTechnicianIDs(ctx context.Context, requestID uint64) ([]uint64, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT technician_id FROM request_technicians WHERE request_id = $1 ORDER BY technician_id`, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]uint64, 0)
	for rows.Next() {
		var technicianID uint64
		if err := rows.Scan(&technicianID); err != nil {
			return nil, err
		}
		ids = append(ids, technicianID)
	}
	return ids, rows.Err()
}
