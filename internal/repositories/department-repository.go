package repositories

import (
	"context"
	"errors"
	"fmt"

	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type DepartmentRepositoryInterface interface {
	GetDepartments(ctx context.Context) ([]entities.Department, error)
	FindDepartment(ctx context.Context, id uint64) (*entities.Department, error)
	CreateDepartment(ctx context.Context, department entities.Department) (*entities.Department, error)
}

type DepartmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDepartmentRepository(storage *pgxpool.Pool, logger *zap.Logger) DepartmentRepositoryInterface {
	return &DepartmentRepository{storage: storage, logger: logger}
}

func scanDepartment(row pgx.Row) (*entities.Department, error) {
	var d entities.Department
	err := row.Scan(&d.ID, &d.Name, &d.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования department: %w", err)
	}
	return &d, nil
}

func (r *DepartmentRepository) GetDepartments(ctx context.Context) ([]entities.Department, error) {
	rows, err := r.storage.Query(ctx, `SELECT id, name, description FROM departments ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	departments := make([]entities.Department, 0)
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		departments = append(departments, *d)
	}
	return departments, rows.Err()
}

func (r *DepartmentRepository) FindDepartment(ctx context.Context, id uint64) (*entities.Department, error) {
	return scanDepartment(r.storage.QueryRow(ctx, `SELECT id, name, description FROM departments WHERE id = $1`, id))
}

func (r *DepartmentRepository) CreateDepartment(ctx context.Context, department entities.Department) (*entities.Department, error) {
	query := `INSERT INTO departments (name, description) VALUES ($1, $2) RETURNING id, name, description`
	return scanDepartment(r.storage.QueryRow(ctx, query, department.Name, department.Description))
}
