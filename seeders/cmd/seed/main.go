package main

import (
	"flag"
	"log"

	"gearguard/pkg/config"
	"gearguard/pkg/database/postgresql"
	"gearguard/seeders"
)

func main() {
	runCore := flag.Bool("core", false, "Наполнить базовые справочники (подразделения, категории, команды)")
	runUsers := flag.Bool("users", false, "Создать тестовых пользователей (admin/tech/user)")
	runDemo := flag.Bool("demo", false, "Наполнить демо-данными (оборудование, рабочие центры)")
	runAll := flag.Bool("all", false, "Запустить все сидеры")

	flag.Parse()

	if !*runCore && !*runUsers && !*runDemo && !*runAll {
		log.Println("Не выбран ни один сидер для запуска.")
		flag.PrintDefaults()
		log.Println("Пример: go run ./seeders/cmd/seed -all")
		return
	}

	cfg := config.New()
	log.Println("Используется DSN:", cfg.Postgres.DSN)
	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	if *runAll || *runCore {
		seeders.SeedCoreDictionaries(dbPool)
	}
	if *runAll || *runUsers {
		seeders.SeedUsers(dbPool)
	}
	if *runAll || *runDemo {
		seeders.SeedDemoData(dbPool)
	}
}
