package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"solarserver/internal/models"
	"solarserver/internal/repository/sqlite"
	"solarserver/internal/services/auth"
)

// Creates the schema and seeds an initial owner account so the API is
// usable right after deployment.
func main() {
	dbPath := flag.String("db", filepath.Join("data", "inspection.db"), "Database path")
	adminUser := flag.String("admin-user", "admin", "Initial admin username")
	adminEmail := flag.String("admin-email", "admin@example.com", "Initial admin email")
	adminPassword := flag.String("admin-password", "", "Initial admin password (required to seed)")
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	db, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Printf("Schema created in %s\n", *dbPath)

	if *adminPassword == "" {
		fmt.Println("No -admin-password given, skipping admin seed")
		return
	}

	users := sqlite.NewUserRepository(db)
	existing, err := users.GetByUsername(*adminUser)
	if err != nil {
		log.Fatalf("Failed to check for existing admin: %v", err)
	}
	if existing != nil {
		fmt.Printf("User %q already exists, nothing to do\n", *adminUser)
		return
	}

	hashed, err := auth.HashPassword(*adminPassword)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	id, err := users.Create(&models.User{
		Username:       *adminUser,
		Email:          *adminEmail,
		HashedPassword: hashed,
		Role:           "owner",
		IsActive:       true,
	})
	if err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	fmt.Printf("Seeded admin user %q (id %d)\n", *adminUser, id)
}
