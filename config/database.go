package config

import (
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDB opens the warehouse connection from WAREHOUSE_URL.
func ConnectDB() {
	dsn := os.Getenv("WAREHOUSE_URL")

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("Failed to connect warehouse database")
	}

	DB = db
}
