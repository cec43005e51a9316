package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedCoreDictionaries наполняет справочники без зависимостей:
// подразделения, категории, команды.
func SeedCoreDictionaries(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("Запуск наполнения базовых справочников...")

	if err := seedDepartments(ctx, db); err != nil {
		log.Fatalf("Ошибка наполнения подразделений: %v", err)
	}
	if err := seedCategories(ctx, db); err != nil {
		log.Fatalf("Ошибка наполнения категорий: %v", err)
	}
	if err := seedTeams(ctx, db); err != nil {
		log.Fatalf("Ошибка наполнения команд: %v", err)
	}
	log.Println("Наполнение базовых справочников завершено")
}

// SeedUsers создаёт тройку тестовых учётных записей (admin/tech/user).
func SeedUsers(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("Запуск создания тестовых пользователей...")

	if err := seedUsers(ctx, db); err != nil {
		log.Fatalf("Ошибка создания пользователей: %v", err)
	}
	log.Println("Создание тестовых пользователей завершено")
}

// SeedDemoData наполняет базу демонстрационным оборудованием и рабочими центрами.
func SeedDemoData(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("Запуск наполнения демо-данными...")

	if err := seedEquipment(ctx, db); err != nil {
		log.Fatalf("Ошибка наполнения оборудования: %v", err)
	}
	if err := seedWorkCenters(ctx, db); err != nil {
		log.Fatalf("Ошибка наполнения рабочих центров: %v", err)
	}
	log.Println("Наполнение демо-данными завершено")
}
