package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const equipmentTable = "equipment"

const equipmentSelectFields = `id, name, serial_number, category_id, department_id, assigned_employee_id,
	location, purchase_date, warranty_expiry_date, maintenance_team_id, default_technician_id,
	status, assigned_date, scrap_date, notes`

var (
	equipmentAllowedFilterFields = map[string]string{
		"status":        "e.status",
		"category_id":   "e.category_id",
		"department_id": "e.department_id",
	}
	equipmentAllowedSortFields = map[string]string{
		"id":            "e.id",
		"name":          "e.name",
		"serial_number": "e.serial_number",
	}
)

type EquipmentRepositoryInterface interface {
	GetEquipment(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, item entities.Equipment) (*entities.Equipment, error)
	UpdateEquipment(ctx context.Context, item entities.Equipment) (*entities.Equipment, error)
	MarkScrappedInTx(ctx context.Context, tx pgx.Tx, id uint64, scrapDate time.Time) error
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEquipmentRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage, logger: logger}
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	err := row.Scan(
		&e.ID, &e.Name, &e.SerialNumber, &e.CategoryID, &e.DepartmentID, &e.AssignedEmployeeID,
		&e.Location, &e.PurchaseDate, &e.WarrantyExpiryDate, &e.MaintenanceTeamID, &e.DefaultTechnicianID,
		&e.Status, &e.AssignedDate, &e.ScrapDate, &e.Notes,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования equipment: %w", err)
	}
	return &e, nil
}

func mapEquipmentConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "equipment_serial_number_key") {
			return apperrors.NewFieldConflictError("serial_number", "Серийный номер уже зарегистрирован.", err)
		}
		return fmt.Errorf("конфликт уникальности equipment: %w", apperrors.ErrConflict)
	}
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return apperrors.NewInvalidInputError("Нарушение внешнего ключа (неверный ID категории, команды и т.д.).")
	}
	return err
}

func (r *EquipmentRepository) buildFilterQuery(filter types.Filter, tableAlias string) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argCounter := 1
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(%s.name ILIKE $%d OR %s.serial_number ILIKE $%d)",
			tableAlias, argCounter, tableAlias, argCounter))
		args = append(args, "%"+filter.Search+"%")
		argCounter++
	}
	for key, value := range filter.Filter {
		if dbColumn, ok := equipmentAllowedFilterFields[key]; ok {
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

func (r *EquipmentRepository) countEquipment(ctx context.Context, filter types.Filter) (uint64, error) {
	whereClause, args := r.buildFilterQuery(filter, "e")
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s AS e %s", equipmentTable, whereClause)
	var total uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *EquipmentRepository) GetEquipment(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	total, err := r.countEquipment(ctx, filter)
	if err != nil || total == 0 {
		return []entities.Equipment{}, total, err
	}

	whereClause, args := r.buildFilterQuery(filter, "e")
	orderByClause := "ORDER BY e.id DESC"
	if len(filter.Sort) > 0 {
		sorts := []string{}
		for field, direction := range filter.Sort {
			if dbField, ok := equipmentAllowedSortFields[field]; ok {
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
	argCounter := len(args) + 1
	if filter.WithPagination {
		limitClause = fmt.Sprintf("LIMIT $%d OFFSET $%d", argCounter, argCounter+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	selectFields := strings.ReplaceAll(equipmentSelectFields, "id,", "e.id,")
	query := fmt.Sprintf(`SELECT %s FROM %s e %s %s %s`,
		selectFields, equipmentTable, whereClause, orderByClause, limitClause)

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]entities.Equipment, 0)
	for rows.Next() {
		item, err := scanEquipment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *item)
	}
	return items, total, rows.Err()
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, equipmentSelectFields, equipmentTable)
	return scanEquipment(r.storage.QueryRow(ctx, query, id))
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, item entities.Equipment) (*entities.Equipment, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, serial_number, category_id, department_id, assigned_employee_id,
			location, purchase_date, warranty_expiry_date, maintenance_team_id, default_technician_id,
			status, assigned_date, scrap_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING %s`, equipmentTable, equipmentSelectFields)

	created, err := scanEquipment(r.storage.QueryRow(ctx, query,
		item.Name, item.SerialNumber, item.CategoryID, item.DepartmentID, item.AssignedEmployeeID,
		item.Location, item.PurchaseDate, item.WarrantyExpiryDate, item.MaintenanceTeamID, item.DefaultTechnicianID,
		item.Status, item.AssignedDate, item.ScrapDate, item.Notes,
	))
	if err != nil {
		return nil, mapEquipmentConflict(err)
	}
	return created, nil
}

func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, item entities.Equipment) (*entities.Equipment, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET name = $1, serial_number = $2, category_id = $3, department_id = $4,
			assigned_employee_id = $5, location = $6, purchase_date = $7, warranty_expiry_date = $8,
			maintenance_team_id = $9, default_technician_id = $10, status = $11,
			assigned_date = $12, scrap_date = $13, notes = $14
		WHERE id = $15
		RETURNING %s`, equipmentTable, equipmentSelectFields)

	updated, err := scanEquipment(r.storage.QueryRow(ctx, query,
		item.Name, item.SerialNumber, item.CategoryID, item.DepartmentID, item.AssignedEmployeeID,
		item.Location, item.PurchaseDate, item.WarrantyExpiryDate, item.MaintenanceTeamID, item.DefaultTechnicianID,
		item.Status, item.AssignedDate, item.ScrapDate, item.Notes, item.ID,
	))
	if err != nil {
		return nil, mapEquipmentConflict(err)
	}
	return updated, nil
}

// MarkScrappedInTx - каскад со стороны заявки: оборудование списывается в той же
// транзакции, что и обновление заявки.
func (r *EquipmentRepository) MarkScrappedInTx(ctx context.Context, tx pgx.Tx, id uint64, scrapDate time.Time) error {
	result, err := tx.Exec(ctx,
		`UPDATE equipment SET status = $1, scrap_date = $2 WHERE id = $3`,
		entities.AssetStatusScrapped, scrapDate, id)
	if err != nil {
		return fmt.Errorf("ошибка каскадного списания equipment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
