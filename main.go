package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"game-record-system/handlers"
	"game-record-system/models"
	"game-record-system/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[ENV] no .env file found, reading environment variables directly")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}
	addr := envOr("ADDR", ":5200")
	tokenTTL := durationOr("TOKEN_TTL", services.DefaultTokenTTL)
	statsInterval := durationOr("STATS_INTERVAL", 5*time.Minute)

	// TranslateError folds driver-specific duplicate-key and FK errors
	// into gorm's sentinel errors, which the store package depends on.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database: ", err)
	}

	if err := db.AutoMigrate(
		&models.Game{},
		&models.User{},
		&models.Match{},
		&models.MatchPlayer{},
		&models.MatchResult{},
	); err != nil {
		log.Fatal("failed to migrate database: ", err)
	}

	app := fiber.New(fiber.Config{AppName: "game-record-system"})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     envOr("ALLOWED_ORIGINS", "http://localhost:3000"),
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	tokens := services.NewTokenService(secret, tokenTTL)
	authService := services.NewAuthService(db, tokens)
	matchService := services.NewMatchService(db)
	recordService := services.NewRecordService(db, matchService)

	sched, err := matchService.StartStatsScheduler(statsInterval)
	if err != nil {
		log.Fatal("failed to start stats scheduler: ", err)
	}

	// Specific routes first: the record routes end in /:endpoint
	// wildcards that would otherwise swallow them.
	handlers.SetupAuthRoutes(app, db, authService)
	handlers.SetupMatchRoutes(app, db, matchService, tokens)
	handlers.SetupRecordRoutes(app, db, recordService, tokens)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(addr); err != nil {
			log.Printf("server error: %v", err)
		}
	}()
	log.Printf("game-record-system listening on %s", addr)

	<-ctx.Done()
	log.Println("shutting down...")
	if err := sched.Shutdown(); err != nil {
		log.Printf("scheduler shutdown: %v", err)
	}
	if err := app.Shutdown(); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("[ENV] %s=%q is not a duration, using %s", key, os.Getenv(key), fallback)
	}
	return fallback
}
