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

type CategoryRepositoryInterface interface {
	GetCategories(ctx context.Context) ([]entities.Category, error)
	FindCategory(ctx context.Context, id uint64) (*entities.Category, error)
	CreateCategory(ctx context.Context, category entities.Category) (*entities.Category, error)
}

type CategoryRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewCategoryRepository(storage *pgxpool.Pool, logger *zap.Logger) CategoryRepositoryInterface {
	return &CategoryRepository{storage: storage, logger: logger}
}

func scanCategory(row pgx.Row) (*entities.Category, error) {
	var c entities.Category
	err := row.Scan(&c.ID, &c.Name, &c.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepository) GetCategories(ctx context.Context) ([]entities.Category, error) {
	rows, err := r.storage.Query(ctx, `SELECT id, name, description FROM categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]entities.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) FindCategory(ctx context.Context, id uint64) (*entities.Category, error) {
	return scanCategory(r.storage.QueryRow(ctx, `SELECT id, name, description FROM categories WHERE id = $1`, id))
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, category entities.Category) (*entities.Category, error) {
	query := `INSERT INTO categories (name, description) VALUES ($1, $2) RETURNING id, name, description`
	return scanCategory(r.storage.QueryRow(ctx, query, category.Name, category.Description))
}
