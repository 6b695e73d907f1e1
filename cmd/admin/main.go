package main

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"showfolio/internal/auth"
	"showfolio/internal/config"
	"showfolio/internal/database"
)

// Bootstraps a recruiter account with a one-time random password. The
// account must change it on first login.
func main() {
	var (
		email    = flag.String("email", "", "recruiter email (required)")
		fullName = flag.String("full-name", "", "recruiter display name (required)")
	)
	flag.Parse()

	emailValue := strings.ToLower(strings.TrimSpace(*email))
	nameValue := strings.TrimSpace(*fullName)
	if emailValue == "" {
		log.Fatal("missing required flag: --email")
	}
	if nameValue == "" {
		log.Fatal("missing required flag: --full-name")
	}

	_ = godotenv.Load()
	cfg := config.MustLoad()

	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	var existing database.Profile
	switch err := db.Where("email = ?", emailValue).First(&existing).Error; {
	case err == nil:
		log.Fatalf("profile %q already exists", emailValue)
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		log.Fatalf("query profile: %v", err)
	}

	password, err := generateRandomPassword(24)
	if err != nil {
		log.Fatalf("generate password: %v", err)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	profile := database.Profile{
		Email:              emailValue,
		PasswordHash:       hashed,
		FullName:           nameValue,
		Role:               database.RoleRecruiter,
		MustChangePassword: true,
	}
	if err := db.Create(&profile).Error; err != nil {
		log.Fatalf("create profile: %v", err)
	}

	fmt.Println("recruiter account created (password change required on first login):")
	fmt.Printf("email: %s\n", emailValue)
	fmt.Printf("initial password: %s\n", password)
	fmt.Println("note: this password is shown only once.")
}

func generateRandomPassword(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	password := base64.RawURLEncoding.EncodeToString(buf)
	if len(password) > length {
		password = password[:length]
	}
	return password, nil
}
