package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedEquipment(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Оборудование...")

	var categoryID, departmentID, teamID uint64
	if err := db.QueryRow(ctx, "SELECT id FROM categories ORDER BY id LIMIT 1").Scan(&categoryID); err != nil {
		return fmt.Errorf("не найдена ни одна категория, запустите сначала -core: %w", err)
	}
	if err := db.QueryRow(ctx, "SELECT id FROM departments ORDER BY id LIMIT 1").Scan(&departmentID); err != nil {
		return fmt.Errorf("не найдено ни одно подразделение, запустите сначала -core: %w", err)
	}
	if err := db.QueryRow(ctx, "SELECT id FROM teams ORDER BY id LIMIT 1").Scan(&teamID); err != nil {
		return fmt.Errorf("не найдена ни одна команда, запустите сначала -core: %w", err)
	}

	items := []struct {
		name, serial, location string
	}{
		{"Токарный станок ТВ-320", "SN-LATHE-001", "Цех 1"},
		{"Фрезерный станок ФС-250", "SN-MILL-002", "Цех 1"},
		{"Погрузчик Toyota 8FG", "SN-FORK-003", "Склад"},
	}
	for _, it := range items {
		var exists bool
		if err := db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM equipment WHERE serial_number = $1)", it.serial).Scan(&exists); err != nil {
			return fmt.Errorf("проверка оборудования %q: %w", it.serial, err)
		}
		if exists {
			continue
		}
		if _, err := db.Exec(ctx, `
			INSERT INTO equipment (name, serial_number, category_id, department_id, maintenance_team_id, location, status)
			VALUES ($1, $2, $3, $4, $5, $6, 'active')`,
			it.name, it.serial, categoryID, departmentID, teamID, it.location); err != nil {
			return fmt.Errorf("вставка оборудования %q: %w", it.serial, err)
		}
	}
	return nil
}

func seedWorkCenters(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Рабочие центры...")

	centers := []struct {
		name, code  string
		costPerHour float64
	}{
		{"Линия сборки 1", "WC-ASM-1", 120},
		{"Участок покраски", "WC-PAINT", 90},
	}
	for _, wc := range centers {
		var exists bool
		if err := db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM work_centers WHERE code = $1)", wc.code).Scan(&exists); err != nil {
			return fmt.Errorf("проверка рабочего центра %q: %w", wc.code, err)
		}
		if exists {
			continue
		}
		if _, err := db.Exec(ctx, `
			INSERT INTO work_centers (name, code, cost_per_hour, capacity, time_efficiency, status)
			VALUES ($1, $2, $3, 1, 100, 'active')`,
			wc.name, wc.code, wc.costPerHour); err != nil {
			return fmt.Errorf("вставка рабочего центра %q: %w", wc.code, err)
		}
	}
	return nil
}
