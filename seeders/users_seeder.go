package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// Тестовые учётные записи; пароли предназначены только для локальной разработки.
func seedUsers(ctx context.Context, db *pgxpool.Pool) error {
	users := []struct {
		username, email, password, name, role string
	}{
		{"admin", "admin@gearguard.local", "admin123", "Администратор", "admin"},
		{"tech", "tech@gearguard.local", "tech123", "Техник Иванов", "technician"},
		{"user", "user@gearguard.local", "user123", "Сотрудник Петров", "employee"},
	}

	for _, u := range users {
		var exists bool
		if err := db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)", u.username).Scan(&exists); err != nil {
			return fmt.Errorf("проверка пользователя %q: %w", u.username, err)
		}
		if exists {
			log.Printf("  - Пользователь %q уже существует, пропускаем", u.username)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("хеширование пароля для %q: %w", u.username, err)
		}

		if _, err := db.Exec(ctx, `
			INSERT INTO users (username, email, password, name, role, is_active)
			VALUES ($1, $2, $3, $4, $5, TRUE)`,
			u.username, u.email, string(hash), u.name, u.role); err != nil {
			return fmt.Errorf("вставка пользователя %q: %w", u.username, err)
		}
		log.Printf("  - Создан пользователь %q (%s)", u.username, u.role)
	}
	return nil
}
