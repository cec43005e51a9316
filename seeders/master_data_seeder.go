package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedDepartments(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Подразделения...")
	departments := []struct {
		name, description string
	}{
		{"Производство", "Производственный цех"},
		{"Логистика", "Склад и транспорт"},
		{"Администрация", "Офис и управление"},
	}
	for _, d := range departments {
		var exists bool
		if err := db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM departments WHERE name = $1)", d.name).Scan(&exists); err != nil {
			return fmt.Errorf("проверка подразделения %q: %w", d.name, err)
		}
		if exists {
			continue
		}
		if _, err := db.Exec(ctx,
			"INSERT INTO departments (name, description) VALUES ($1, $2)", d.name, d.description); err != nil {
			return fmt.Errorf("вставка подразделения %q: %w", d.name, err)
		}
	}
	return nil
}

func seedCategories(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Категории...")
	categories := []struct {
		name, description string
	}{
		{"Станки", "Металлообрабатывающие станки"},
		{"Транспорт", "Погрузчики и внутренний транспорт"},
		{"ИТ-оборудование", "Серверы, рабочие станции, сетевое оборудование"},
	}
	for _, c := range categories {
		var exists bool
		if err := db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1)", c.name).Scan(&exists); err != nil {
			return fmt.Errorf("проверка категории %q: %w", c.name, err)
		}
		if exists {
			continue
		}
		if _, err := db.Exec(ctx,
			"INSERT INTO categories (name, description) VALUES ($1, $2)", c.name, c.description); err != nil {
			return fmt.Errorf("вставка категории %q: %w", c.name, err)
		}
	}
	return nil
}

func seedTeams(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Команды...")
	teams := []struct {
		name, specialization string
	}{
		{"Механики", "Mechanical"},
		{"Электрики", "Electrical"},
		{"ИТ-поддержка", "IT"},
	}
	for _, t := range teams {
		var exists bool
		if err := db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM teams WHERE name = $1)", t.name).Scan(&exists); err != nil {
			return fmt.Errorf("проверка команды %q: %w", t.name, err)
		}
		if exists {
			continue
		}
		if _, err := db.Exec(ctx,
			"INSERT INTO teams (name, specialization) VALUES ($1, $2)", t.name, t.specialization); err != nil {
			return fmt.Errorf("вставка команды %q: %w", t.name, err)
		}
	}
	return nil
}
