// Bootstrap an administrator account.
//
// Intended for first deployment, before any staff user exists to
// register others through the API.
//
// Usage: go run scripts/create_admin.go -regno admin -password <pw> -email admin@example.com

package main

import (
	"flag"
	"log"
	"os"

	"quizdesk_backend/internal/config"
	"quizdesk_backend/internal/model"
	"quizdesk_backend/pkg/database"
	"quizdesk_backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

func main() {
	regNo := flag.String("regno", "admin", "registration number for the new account")
	password := flag.String("password", "", "password for the new account (required)")
	email := flag.String("email", "", "email address for the new account")
	firstName := flag.String("first-name", "Site", "first name")
	lastName := flag.String("last-name", "Admin", "last name")
	flag.Parse()

	if *password == "" {
		log.Fatal("-password is required")
	}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("Failed to parse config file: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode, false)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := model.User{
		RegNo:     *regNo,
		FirstName: *firstName,
		LastName:  *lastName,
		Email:     *email,
		Password:  string(hashed),
		Role:      model.Admin,
		Active:    true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	log.Printf("Admin account %q created (id=%d)", admin.RegNo, admin.ID)
}
