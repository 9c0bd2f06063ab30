package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/conceptlens/conceptlens-backend/internal/config"
	"github.com/conceptlens/conceptlens-backend/internal/database"
	"github.com/conceptlens/conceptlens-backend/internal/logger"
	"github.com/conceptlens/conceptlens-backend/internal/model"
	"github.com/conceptlens/conceptlens-backend/internal/repository"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Professor Account ===")

	fmt.Print("Enter Full Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Println("Error: Name is required")
		return
	}

	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" {
		fmt.Println("Error: Email is required")
		return
	}

	fmt.Print("Enter Institution ID (optional): ")
	institution, _ := reader.ReadString('\n')
	institution = strings.TrimSpace(institution)

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println() // Newline after password input
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	professor := &model.User{
		FullName:      name,
		Email:         email,
		PasswordHash:  string(hashedPassword),
		Role:          model.RoleProfessor,
		InstitutionID: institution,
	}

	if err := userRepo.Create(ctx, professor); err != nil {
		log.Fatal().Err(err).Msg("Failed to create professor")
	}

	fmt.Printf("\nSuccess! Professor '%s' (%s) created with ID: %s\n", professor.FullName, professor.Email, professor.ID)
}
