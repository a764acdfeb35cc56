package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/porygon/mealplanner"
	"github.com/porygon/mealplanner/internal/ai"
	"github.com/porygon/mealplanner/internal/coach"
	"github.com/porygon/mealplanner/internal/config"
	"github.com/porygon/mealplanner/internal/db"
	"github.com/porygon/mealplanner/internal/identity"
	"github.com/porygon/mealplanner/internal/repository"
	"github.com/porygon/mealplanner/internal/service"
	"github.com/porygon/mealplanner/internal/storage"
)

type App struct {
	Cfg                *config.Config
	DB                 *sqlx.DB
	AuthService        *service.AuthService
	UserService        *service.UserService
	EmailService       *service.EmailService
	PreferencesService *service.PreferencesService
	StatsService       *service.StatsService
	BadgeService       *service.BadgeService
	ProgressService    *service.ProgressService
	MealPlanService    *service.MealPlanService
	InventoryService   *service.InventoryService
	OutlookService     *service.OutlookService
	ChatService        *service.ChatService
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	preferencesRepository := repository.NewPreferencesRepository(database)
	progressRepository := repository.NewProgressRepository(database)
	statsRepository := repository.NewStatsRepository(database)
	badgeRepository := repository.NewBadgeRepository(database)
	mealPlanRepository := repository.NewMealPlanRepository(database)
	inventoryRepository := repository.NewInventoryRepository(database)

	// Meal plan archive (optional)
	var archive storage.Archive
	if cfg.ArchiveEnabled() {
		s3Archive, err := storage.New(ctx, cfg)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to initialize storage: %v", err)
		}
		archive = s3Archive
	}

	// Generative replies (optional, rule-based replies otherwise)
	var generator service.Generator
	if cfg.VertexAIActive() {
		vertex, err := ai.NewVertex(ctx, ai.VertexConfig{
			Project:  cfg.GCPProject,
			Location: cfg.VertexAILocation,
			Model:    cfg.VertexAIModel,
		})
		if err != nil {
			slog.Warn("vertex ai unavailable, using rule-based replies", "error", err)
		} else {
			generator = vertex
		}
	}

	// Identity: app session tokens first, then provider ID tokens
	session := identity.NewSession(cfg.JWTSecret, cfg.JWTExpiry)
	provider, err := identity.NewFirebase(ctx, cfg.FirebaseProjectID, cfg.IdentityJWKSURL, &http.Client{Timeout: 10 * time.Second})
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize identity provider: %v", err)
	}

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	userService := service.NewUserService(userRepository, statsRepository, inventoryRepository, emailService)
	authService := service.NewAuthService(userService, userRepository, identity.Chain{session, provider}, session)
	preferencesService := service.NewPreferencesService(preferencesRepository)
	statsService := service.NewStatsService(statsRepository)
	badgeService := service.NewBadgeService(badgeRepository)
	progressService := service.NewProgressService(progressRepository, statsService, badgeService, cfg.ProgressDefaultLimit)
	mealPlanService := service.NewMealPlanService(mealPlanRepository, archive)
	inventoryService := service.NewInventoryService(inventoryRepository)
	outlookService, err := service.NewOutlookService(mealplanner.ContentFS, "content/outlook", statsService)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to load outlook content: %v", err)
	}
	chatService := service.NewChatService(
		preferencesService,
		progressService,
		statsService,
		badgeService,
		inventoryService,
		coach.NewResponder(nil),
		generator,
	)

	return &App{
		Cfg:                cfg,
		DB:                 database,
		AuthService:        authService,
		UserService:        userService,
		EmailService:       emailService,
		PreferencesService: preferencesService,
		StatsService:       statsService,
		BadgeService:       badgeService,
		ProgressService:    progressService,
		MealPlanService:    mealPlanService,
		InventoryService:   inventoryService,
		OutlookService:     outlookService,
		ChatService:        chatService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
