package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/mioraralevason/suivi-backend/internal/config"
	"github.com/mioraralevason/suivi-backend/internal/database"
	"github.com/mioraralevason/suivi-backend/internal/logger"
	"github.com/mioraralevason/suivi-backend/internal/repository"
	"github.com/mioraralevason/suivi-backend/internal/service"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	userRepo := repository.NewUserRepository(pool)
	authService := service.NewAuthService(cfg, rdb)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Reset User Password ===")

	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" {
		fmt.Println("Error: Email is required")
		return
	}

	user, err := userRepo.GetByEmail(ctx, email)
	if err != nil {
		fmt.Printf("Error: no user with email %s\n", email)
		return
	}

	fmt.Print("Enter New Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println()
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	user.PasswordHash = string(hashedPassword)
	if err := userRepo.Update(ctx, user); err != nil {
		log.Fatal().Err(err).Msg("Failed to update user")
	}

	// Drop any active session so the old token stops working immediately.
	if err := authService.ResetSession(ctx, user.ID); err != nil {
		log.Warn().Err(err).Msg("Failed to reset session")
	}

	fmt.Printf("\nSuccess! Password updated for '%s' (%s)\n", user.Name, user.Email)
}
