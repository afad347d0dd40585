// Command adminctl provisions admin accounts.  It hashes the given password
// with bcrypt and upserts the account, so it also works for password resets.
//
//	adminctl -email admin@example.com -password 's3cret'
package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/cache2k25/registration-backend/internal/config"
	"github.com/cache2k25/registration-backend/internal/database"
	"github.com/cache2k25/registration-backend/internal/repository"
	"github.com/cache2k25/registration-backend/internal/utils"
)

func main() {
	email := flag.String("email", "", "admin email address")
	password := flag.String("password", "", "admin password")
	cost := flag.Int("cost", 12, "bcrypt cost")
	flag.Parse()

	*email = strings.ToLower(strings.TrimSpace(*email))
	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	_ = godotenv.Load()

	db, err := database.Open(config.LoadDB())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	hash, err := utils.HashPassword(*password, *cost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := repository.NewAdminRepo(db).Upsert(ctx, *email, hash); err != nil {
		log.Fatalf("save admin: %v", err)
	}
	log.Printf("admin %s provisioned", *email)
}
