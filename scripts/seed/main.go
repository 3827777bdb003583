// Standalone seeder for local development and demos. Migrates the schema
// and loads the starter content into an empty database.
// Run from the repo root: go run ./scripts/seed
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"deepeng_backend/pkg/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on exported variables")
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			envOr("DATABASE_USER", "deepeng"),
			envOr("DATABASE_PASSWORD", "deepeng"),
			envOr("DATABASE_HOST", "localhost"),
			envOr("DATABASE_PORT", "3306"),
			envOr("DATABASE_NAME", "deepeng"),
		)
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	if err := database.SeedIfEmpty(db); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Database ready")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
