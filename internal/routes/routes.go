package routes

import (
	"net/http"

	"github.com/porygon/mealplanner/internal/app"
	"github.com/porygon/mealplanner/internal/handler"
	"github.com/porygon/mealplanner/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler()
	auth := handler.NewAuthHandler(app.AuthService, app.UserService)
	preferences := handler.NewPreferencesHandler(app.PreferencesService)
	progress := handler.NewProgressHandler(app.ProgressService, app.StatsService, app.BadgeService)
	chat := handler.NewChatHandler(app.ChatService)
	mealPlan := handler.NewMealPlanHandler(app.MealPlanService)
	inventory := handler.NewInventoryHandler(app.InventoryService)
	outlook := handler.NewOutlookHandler(app.OutlookService)

	requireAuth := middleware.RequireAuth(app.AuthService)
	rateLimiter := middleware.RateLimitAuth()

	mux := http.NewServeMux()

	// Every route answers at the root and under /api.
	for _, prefix := range []string{"", "/api"} {
		handle := func(method, path string, h http.HandlerFunc) {
			mux.HandleFunc(method+" "+prefix+path, h)
		}

		// ============================================================================
		// PUBLIC ROUTES
		// ============================================================================

		handle("GET", "/health", health.Health)

		// Auth (rate limited)
		handle("POST", "/auth/session", rateLimiter(auth.Session))
		handle("POST", "/auth/register", rateLimiter(auth.Register))
		handle("POST", "/auth/login", rateLimiter(auth.Login))

		// ============================================================================
		// PROTECTED ROUTES
		// ============================================================================

		// Account
		handle("GET", "/auth/me", requireAuth(auth.Me))
		handle("DELETE", "/auth/me", requireAuth(auth.DeleteAccount))

		// Preferences
		handle("GET", "/preferences", requireAuth(preferences.Get))
		handle("POST", "/preferences", requireAuth(preferences.Update))

		// Progress & gamification
		handle("POST", "/progress", requireAuth(progress.CheckIn))
		handle("GET", "/progress", requireAuth(progress.List))
		handle("GET", "/stats", requireAuth(progress.Stats))
		handle("GET", "/outlook", requireAuth(outlook.Outlook))

		// Chat
		handle("POST", "/chat", requireAuth(chat.Chat))
		handle("POST", "/chat/turn", requireAuth(chat.Turn))

		// Meal plans
		handle("POST", "/meal-plans", requireAuth(mealPlan.Save))
		handle("GET", "/meal-plans", requireAuth(mealPlan.Latest))

		// Inventory
		handle("GET", "/inventory", requireAuth(inventory.List))
		handle("PUT", "/inventory/{key}", requireAuth(inventory.Set))
		handle("GET", "/grocery-list", requireAuth(inventory.GroceryList))
	}

	// ============================================================================
	// FALLBACK
	// ============================================================================

	mux.HandleFunc("/{path...}", handler.NotFound)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Recover,
		middleware.RequestID,
		middleware.RequestLogging,
		middleware.CORS(app.Cfg.CORSAllowedOrigins),
	)

	return handler
}
