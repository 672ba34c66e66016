package main

import (
	"log"
	"os"

	"famwealth/migrations"
	"famwealth/src/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig("./settings", os.Getenv("ENV"))
	if err != nil {
		log.Fatalf("Error loading config for environment: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.Databases.SQL.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB from GORM DB: %v", err)
	}
	defer sqlDB.Close()

	if err := migrations.Up(sqlDB); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	log.Println("Database migration completed successfully")
}
