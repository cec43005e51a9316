package repositories

import (
	"context"

	"gearguard/internal/entities"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type DashboardRepositoryInterface interface {
	CountRequestsByStatus(ctx context.Context) (map[string]int64, error)
	CountRequestsByPriority(ctx context.Context) (map[string]int64, error)
	CountEquipmentByStatus(ctx context.Context) (map[string]int64, error)
}

type DashboardRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDashboardRepository(storage *pgxpool.Pool, logger *zap.Logger) DashboardRepositoryInterface {
	return &DashboardRepository{storage: storage, logger: logger}
}

func (r *DashboardRepository) countGrouped(ctx context.Context, query string) (map[string]int64, error) {
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		counts[key] = count
	}
	return counts, rows.Err()
}

func (r *DashboardRepository) CountRequestsByStatus(ctx context.Context) (map[string]int64, error) {
	counts, err := r.countGrouped(ctx,
		`SELECT status, COUNT(*) FROM maintenance_requests GROUP BY status`)
	if err != nil {
		return nil, err
	}
	// Нулевые статусы тоже должны присутствовать в ответе.
	for _, status := range []string{
		entities.RequestStatusNew, entities.RequestStatusInProgress,
		entities.RequestStatusRepaired, entities.RequestStatusScrap,
	} {
		if _, ok := counts[status]; !ok {
			counts[status] = 0
		}
	}
	return counts, nil
}

func (r *DashboardRepository) CountRequestsByPriority(ctx context.Context) (map[string]int64, error) {
	counts, err := r.countGrouped(ctx,
		`SELECT priority, COUNT(*) FROM maintenance_requests GROUP BY priority`)
	if err != nil {
		return nil, err
	}
	for _, priority := range []string{entities.PriorityLow, entities.PriorityMedium, entities.PriorityHigh} {
		if _, ok := counts[priority]; !ok {
			counts[priority] = 0
		}
	}
	return counts, nil
}

func (r *DashboardRepository) CountEquipmentByStatus(ctx context.Context) (map[string]int64, error) {
	counts, err := r.countGrouped(ctx,
		`SELECT status, COUNT(*) FROM equipment GROUP BY status`)
	if err != nil {
		return nil, err
	}
	for _, status := range []string{entities.AssetStatusActive, entities.AssetStatusScrapped} {
		if _, ok := counts[status]; !ok {
			counts[status] = 0
		}
	}
	return counts, nil
}
