package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = db.Close() }() // Error ignored: script exiting

	dropSQL := `
		DROP TABLE IF EXISTS archives CASCADE;
		DROP TABLE IF EXISTS files CASCADE;
		DROP TABLE IF EXISTS job_errors CASCADE;
		DROP TABLE IF EXISTS tasks CASCADE;
		DROP TABLE IF EXISTS snippet_versions CASCADE;
		DROP TABLE IF EXISTS snippets CASCADE;
		DROP TABLE IF EXISTS snippet_lists CASCADE;
		DROP TABLE IF EXISTS editor_documents CASCADE;
		DROP TABLE IF EXISTS document_containers CASCADE;
		DROP TABLE IF EXISTS schema_migrations CASCADE;
	`

	if _, err := db.Exec(dropSQL); err != nil {
		log.Fatalf("Failed to drop tables: %v", err)
	}

	fmt.Println("All tables dropped successfully")
}
