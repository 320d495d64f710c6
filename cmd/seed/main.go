package main

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"docuserve/internal/config"
	"docuserve/internal/database"
	"docuserve/internal/domain"
	"docuserve/internal/repository"
)

// Seeds the demo identity records. Safe to re-run: existing users are left
// alone.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.ConnectWithRetry(cfg.DatabaseURL, cfg.DBMaxRetries, cfg.DBRetryDelay)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	userRepo := repository.NewUserRepository(db)
	documentRepo := repository.NewDocumentRepository(db)

	log.Println("Running AutoMigrate...")
	if err := userRepo.Migrate(); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}
	if err := documentRepo.Migrate(); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	ctx := context.Background()

	setupMode := strings.ToLower(os.Getenv("SETUP_MODE"))
	if setupMode == "" {
		setupMode = "public"
	}
	log.Println("Setup Mode:", setupMode)

	switch setupMode {
	case "private":
		log.Println("Seeding PRIVATE data...")
		ensureUser(ctx, userRepo, "test-browser-id", "Test User")
	default:
		log.Println("Seeding PUBLIC data...")
		ensureUser(ctx, userRepo, "demo-browser-id", "Demo User")
	}

	// A couple of extra anonymous identities for manual testing.
	for _, nickname := range []string{"Reviewer", "Guest"} {
		ensureUser(ctx, userRepo, uuid.NewString(), nickname)
	}

	log.Println("Seeding completed successfully.")
}

func ensureUser(ctx context.Context, repo *repository.UserRepository, browserID, nickname string) {
	_, err := repo.GetByNickname(ctx, nickname)
	if err == nil {
		log.Printf("%q already exists", nickname)
		return
	}
	if !errors.Is(err, repository.ErrNotFound) {
		log.Fatal("seed lookup failed:", err)
	}

	u := &domain.User{BrowserID: browserID, Nickname: nickname}
	if err := repo.Create(ctx, u); err != nil {
		log.Fatal("seed create failed:", err)
	}
	log.Printf("created %q", nickname)
}
