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
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const activityLogSelectFields = `id, reference_type, reference_id, action, performed_by, timestamp`

type ActivityLogRepositoryInterface interface {
	GetActivityLogs(ctx context.Context, filter types.Filter) ([]entities.ActivityLog, uint64, error)
	GetLogsByReference(ctx context.Context, referenceType string, referenceID uint64) ([]entities.ActivityLog, error)
	CreateActivityLog(ctx context.Context, log entities.ActivityLog) (*entities.ActivityLog, error)
}

type ActivityLogRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewActivityLogRepository(storage *pgxpool.Pool, logger *zap.Logger) ActivityLogRepositoryInterface {
	return &ActivityLogRepository{storage: storage, logger: logger}
}

func scanActivityLog(row pgx.Row) (*entities.ActivityLog, error) {
	var l entities.ActivityLog
	err := row.Scan(&l.ID, &l.ReferenceType, &l.ReferenceID, &l.Action, &l.PerformedBy, &l.Timestamp)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования activity_logs: %w", err)
	}
	return &l, nil
}

func (r *ActivityLogRepository) GetActivityLogs(ctx context.Context, filter types.Filter) ([]entities.ActivityLog, uint64, error) {
	allowedFields := map[string]string{
		"reference_type": "reference_type",
		"reference_id":   "reference_id",
		"performed_by":   "performed_by",
		"action":         "action",
	}
	conditions := []string{}
	args := []interface{}{}
	for key, value := range filter.Filter {
		if dbColumn, ok := allowedFields[key]; ok {
			conditions = append(conditions, fmt.Sprintf("%s = $%d", dbColumn, len(args)+1))
			args = append(args, value)
		}
	}
	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total uint64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM activity_logs %s", whereClause)
	if err := r.storage.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.ActivityLog{}, 0, nil
	}

	limitClause := ""
	if filter.WithPagination {
		argCounter := len(args) + 1
		limitClause = fmt.Sprintf("LIMIT $%d OFFSET $%d", argCounter, argCounter+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	query := fmt.Sprintf(`SELECT %s FROM activity_logs %s ORDER BY timestamp DESC, id DESC %s`,
		activityLogSelectFields, whereClause, limitClause)

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	logs := make([]entities.ActivityLog, 0)
	for rows.Next() {
		log, err := scanActivityLog(rows)
		if err != nil {
			return nil, 0, err
		}
		logs = append(logs, *log)
	}
	return logs, total, rows.Err()
}

func (r *ActivityLogRepository) GetLogsByReference(ctx context.Context, referenceType string, referenceID uint64) ([]entities.ActivityLog, error) {
	query := fmt.Sprintf(`SELECT %s FROM activity_logs
		WHERE reference_type = $1 AND reference_id = $2
		ORDER BY timestamp DESC, id DESC`, activityLogSelectFields)

	rows, err := r.storage.Query(ctx, query, referenceType, referenceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]entities.ActivityLog, 0)
	for rows.Next() {
		log, err := scanActivityLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *log)
	}
	return logs, rows.Err()
}

func (r *ActivityLogRepository) CreateActivityLog(ctx context.Context, log entities.ActivityLog) (*entities.ActivityLog, error) {
	query := fmt.Sprintf(`
		INSERT INTO activity_logs (reference_type, reference_id, action, performed_by)
		VALUES ($1, $2, $3, $4)
		RETURNING %s`, activityLogSelectFields)

	return scanActivityLog(r.storage.QueryRow(ctx, query,
		log.ReferenceType, log.ReferenceID, log.Action, log.PerformedBy))
}
