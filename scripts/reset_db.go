//go:build ignore

// Drops and recreates every application table. Development only.
//
//	go run scripts/reset_db.go
package main

import (
	"context"
	"log"

	"barangay-backend/internal/config"
	"barangay-backend/internal/database"
	"barangay-backend/internal/db"
	"barangay-backend/migrations"
)

func main() {
	cfg := config.Load()
	pool := db.Connect(cfg)
	defer pool.Close()

	ctx := context.Background()
	tables := []string{
		"activity_logs", "disbursements", "beneficiaries", "feedbacks",
		"project_reactions", "project_files", "projects", "receipts",
		"households", "residents", "users", "schema_migrations",
	}
	for _, t := range tables {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+t+" CASCADE"); err != nil {
			log.Fatalf("drop %s failed: %v", t, err)
		}
		log.Printf("Dropped %s", t)
	}

	if err := database.NewMigrator(pool, migrations.FS).Run(ctx); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}
	log.Println("Database reset complete")
}
