package repositories

import (
	"context"
	"errors"
	"fmt"

	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const worksheetSelectFields = `id, request_id, user_id, start_time, end_time, description`

type WorksheetRepositoryInterface interface {
	GetWorksheetsByRequest(ctx context.Context, requestID uint64) ([]entities.Worksheet, error)
	FindWorksheet(ctx context.Context, id uint64) (*entities.Worksheet, error)
	CreateWorksheet(ctx context.Context, sheet entities.Worksheet) (*entities.Worksheet, error)
	UpdateWorksheet(ctx context.Context, sheet entities.Worksheet) (*entities.Worksheet, error)
	DeleteWorksheet(ctx context.Context, id uint64) error
}

type WorksheetRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewWorksheetRepository(storage *pgxpool.Pool, logger *zap.Logger) WorksheetRepositoryInterface {
	return &WorksheetRepository{storage: storage, logger: logger}
}

func scanWorksheet(row pgx.Row) (*entities.Worksheet, error) {
	var w entities.Worksheet
	err := row.Scan(&w.ID, &w.RequestID, &w.UserID, &w.StartTime, &w.EndTime, &w.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования worksheets: %w", err)
	}
	return &w, nil
}

func mapWorksheetConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return apperrors.NewInvalidInputError("Нарушение внешнего ключа (неверный ID заявки или пользователя).")
	}
	return err
}

func (r *WorksheetRepository) GetWorksheetsByRequest(ctx context.Context, requestID uint64) ([]entities.Worksheet, error) {
	query := fmt.Sprintf(`SELECT %s FROM worksheets WHERE request_id = $1 ORDER BY start_time`, worksheetSelectFields)
	rows, err := r.storage.Query(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sheets := make([]entities.Worksheet, 0)
	for rows.Next() {
		sheet, err := scanWorksheet(rows)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, *sheet)
	}
	return sheets, rows.Err()
}

func (r *WorksheetRepository) FindWorksheet(ctx context.Context, id uint64) (*entities.Worksheet, error) {
	query := fmt.Sprintf(`SELECT %s FROM worksheets WHERE id = $1`, worksheetSelectFields)
	return scanWorksheet(r.storage.QueryRow(ctx, query, id))
}

func (r *WorksheetRepository) CreateWorksheet(ctx context.Context, sheet entities.Worksheet) (*entities.Worksheet, error) {
	query := fmt.Sprintf(`
		INSERT INTO worksheets (request_id, user_id, start_time, end_time, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s`, worksheetSelectFields)

	created, err := scanWorksheet(r.storage.QueryRow(ctx, query,
		sheet.RequestID, sheet.UserID, sheet.StartTime, sheet.EndTime, sheet.Description))
	if err != nil {
		return nil, mapWorksheetConstraint(err)
	}
	return created, nil
}

func (r *WorksheetRepository) UpdateWorksheet(ctx context.Context, sheet entities.Worksheet) (*entities.Worksheet, error) {
	query := fmt.Sprintf(`
		UPDATE worksheets SET start_time = $1, end_time = $2, description = $3
		WHERE id = $4
		RETURNING %s`, worksheetSelectFields)

	updated, err := scanWorksheet(r.storage.QueryRow(ctx, query,
		sheet.StartTime, sheet.EndTime, sheet.Description, sheet.ID))
	if err != nil {
		return nil, mapWorksheetConstraint(err)
	}
	return updated, nil
}

func (r *WorksheetRepository) DeleteWorksheet(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM worksheets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
