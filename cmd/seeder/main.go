// cmd/seeder/main.go
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/unclebandit/outreach-backend/internal/config"
	"github.com/unclebandit/outreach-backend/internal/db"
)

// Files run in order: the schema first, then fixtures that reference it.
var seedFiles = []string{
	"db/schema.sql",
	"seed/accounts.sql",
	"seed/campaigns.sql",
	"seed/leads.sql",
	"seed/interactions.sql",
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	dbCfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	conn, err := db.Open(dbCfg)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer conn.Close()

	for _, file := range seedFiles {
		content, err := os.ReadFile(file)
		if err != nil {
			log.Fatalf("failed to read %s: %v", file, err)
		}

		if _, err := conn.Exec(string(content)); err != nil {
			log.Fatalf("failed to execute %s: %v", file, err)
		}
		fmt.Printf("Seeded: %s\n", file)
	}

	fmt.Println("Database seeding completed successfully!")
}
