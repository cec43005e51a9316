package main

import (
	"database/sql"
	"flag"
	"log"

	"gearguard/pkg/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func main() {
	direction := flag.String("direction", "up", "Направление миграции: up или down")
	flag.Parse()

	cfg := config.New()

	db, err := sql.Open("pgx", cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("не удалось открыть соединение с БД: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("не удалось установить диалект goose: %v", err)
	}

	switch *direction {
	case "up":
		if err := goose.Up(db, "migrations"); err != nil {
			log.Fatalf("ошибка применения миграций: %v", err)
		}
		log.Println("миграции успешно применены")
	case "down":
		if err := goose.Down(db, "migrations"); err != nil {
			log.Fatalf("ошибка отката миграции: %v", err)
		}
		log.Println("миграция откатана")
	default:
		log.Fatalf("неизвестное направление: %s", *direction)
	}
}
