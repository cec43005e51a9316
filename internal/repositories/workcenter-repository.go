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

const workCenterSelectFields = `id, name, code, tag, alternative_workcenters, cost_per_hour,
	capacity, time_efficiency, oee_target, status`

type WorkCenterRepositoryInterface interface {
	GetWorkCenters(ctx context.Context, filter types.Filter) ([]entities.WorkCenter, uint64, error)
	FindWorkCenter(ctx context.Context, id uint64) (*entities.WorkCenter, error)
	CreateWorkCenter(ctx context.Context, wc entities.WorkCenter) (*entities.WorkCenter, error)
	UpdateWorkCenter(ctx context.Context, wc entities.WorkCenter) (*entities.WorkCenter, error)
}

type WorkCenterRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewWorkCenterRepository(storage *pgxpool.Pool, logger *zap.Logger) WorkCenterRepositoryInterface {
	return &WorkCenterRepository{storage: storage, logger: logger}
}

func scanWorkCenter(row pgx.Row) (*entities.WorkCenter, error) {
	var wc entities.WorkCenter
	err := row.Scan(&wc.ID, &wc.Name, &wc.Code, &wc.Tag, &wc.AlternativeWorkcenters,
		&wc.CostPerHour, &wc.Capacity, &wc.TimeEfficiency, &wc.OEETarget, &wc.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования work_centers: %w", err)
	}
	if wc.AlternativeWorkcenters == nil {
		wc.AlternativeWorkcenters = []uint64{}
	}
	return &wc, nil
}

func mapWorkCenterConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "work_centers_code_key") {
			return apperrors.NewFieldConflictError("code", "Код рабочего центра уже занят.", err)
		}
		return fmt.Errorf("конфликт уникальности work_centers: %w", apperrors.ErrConflict)
	}
	return err
}

func (r *WorkCenterRepository) GetWorkCenters(ctx context.Context, filter types.Filter) ([]entities.WorkCenter, uint64, error) {
	conditions := []string{}
	args := []interface{}{}
	if filter.Search != "" {
		conditions = append(conditions, "(name ILIKE $1 OR code ILIKE $1)")
		args = append(args, "%"+filter.Search+"%")
	}
	if status, ok := filter.Filter["status"]; ok {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, status)
	}
	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total uint64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM work_centers %s", whereClause)
	if err := r.storage.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.WorkCenter{}, 0, nil
	}

	limitClause := ""
	if filter.WithPagination {
		argCounter := len(args) + 1
		limitClause = fmt.Sprintf("LIMIT $%d OFFSET $%d", argCounter, argCounter+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	query := fmt.Sprintf(`SELECT %s FROM work_centers %s ORDER BY code %s`,
		workCenterSelectFields, whereClause, limitClause)

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	centers := make([]entities.WorkCenter, 0)
	for rows.Next() {
		wc, err := scanWorkCenter(rows)
		if err != nil {
			return nil, 0, err
		}
		centers = append(centers, *wc)
	}
	return centers, total, rows.Err()
}

func (r *WorkCenterRepository) FindWorkCenter(ctx context.Context, id uint64) (*entities.WorkCenter, error) {
	query := fmt.Sprintf(`SELECT %s FROM work_centers WHERE id = $1`, workCenterSelectFields)
	return scanWorkCenter(r.storage.QueryRow(ctx, query, id))
}

func (r *WorkCenterRepository) CreateWorkCenter(ctx context.Context, wc entities.WorkCenter) (*entities.WorkCenter, error) {
	query := fmt.Sprintf(`
		INSERT INTO work_centers (name, code, tag, alternative_workcenters, cost_per_hour,
			capacity, time_efficiency, oee_target, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s`, workCenterSelectFields)

	created, err := scanWorkCenter(r.storage.QueryRow(ctx, query,
		wc.Name, wc.Code, wc.Tag, wc.AlternativeWorkcenters, wc.CostPerHour,
		wc.Capacity, wc.TimeEfficiency, wc.OEETarget, wc.Status))
	if err != nil {
		return nil, mapWorkCenterConflict(err)
	}
	return created, nil
}

func (r *WorkCenterRepository) UpdateWorkCenter(ctx context.Context, wc entities.WorkCenter) (*entities.WorkCenter, error) {
	query := fmt.Sprintf(`
		UPDATE work_centers SET name = $1, code = $2, tag = $3, alternative_workcenters = $4,
			cost_per_hour = $5, capacity = $6, time_efficiency = $7, oee_target = $8, status = $9
		WHERE id = $10
		RETURNING %s`, workCenterSelectFields)

	updated, err := scanWorkCenter(r.storage.QueryRow(ctx, query,
		wc.Name, wc.Code, wc.Tag, wc.AlternativeWorkcenters, wc.CostPerHour,
		wc.Capacity, wc.TimeEfficiency, wc.OEETarget, wc.Status, wc.ID))
	if err != nil {
		return nil, mapWorkCenterConflict(err)
	}
	return updated, nil
}
