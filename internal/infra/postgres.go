package infra

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"log"
	"os"

	"hoho/internal/models/db_models"
)

func InitPostgresql() *gorm.DB {

	dsn := os.Getenv("POSTGRES_URL")

	// TranslateError lets repositories detect unique-constraint violations
	// via gorm.ErrDuplicatedKey instead of driver-specific error codes.
	connectionPool, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})

	if err != nil {
		log.Printf("Error connecting to database: %v", err)
		log.Fatal("Error connecting to database")
	}

	return connectionPool
}

func AutoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&db_models.User{},
		&db_models.Hotel{},
		&db_models.Room{},
		&db_models.Favourite{},
		&db_models.Review{},
		&db_models.Payment{},
	)
	if err != nil {
		log.Fatalf("Error migrating database schema: %v", err)
	}
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting database instance: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("PostgreSQL database connection closed successfully")
	}
}
