package mcp

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/porygon/mealplanner/internal/app"
	"github.com/porygon/mealplanner/internal/config"
	"github.com/porygon/mealplanner/internal/model"
)

func setupServer(t *testing.T) *Server {
	t.Helper()

	a, err := app.New(context.Background(), &config.Config{
		AppEnv:               "development",
		DBDriver:             "sqlite",
		DBConnection:         filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)",
		JWTSecret:            "test-secret",
		JWTExpiry:            time.Hour,
		ProgressDefaultLimit: 30,
	})
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	t.Cleanup(func() { a.Close() })

	user := &model.User{Email: "mcp@example.com"}
	if err := a.UserService.Create(context.Background(), user); err != nil {
		t.Fatal(err)
	}

	return NewServer(Services{
		Chat:      a.ChatService,
		Progress:  a.ProgressService,
		MealPlans: a.MealPlanService,
		Inventory: a.InventoryService,
		Outlook:   a.OutlookService,
	}, user.ID, "test")
}

func TestNewServer(t *testing.T) {
	server := setupServer(t)
	if server.mcpServer == nil || server.userID == "" {
		t.Fatalf("server = %+v", server)
	}
}

func TestHandleChatOnboarding(t *testing.T) {
	server := setupServer(t)
	ctx := context.Background()

	_, out, err := server.handleChat(ctx, &mcp.CallToolRequest{}, chatInput{Message: "shellfish"})
	if err != nil {
		t.Fatal(err)
	}
	if out.Topic != "onboarding" || out.Response == "" || out.CheckedIn {
		t.Errorf("output = %+v", out)
	}

	_, state, err := server.handleGetState(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatal(err)
	}
	prefs := state.(map[string]any)["preferences"].(*model.Preferences)
	if prefs == nil || *prefs.FoodAllergies != "shellfish" {
		t.Errorf("preferences = %+v", prefs)
	}

	if _, _, err := server.handleChat(ctx, &mcp.CallToolRequest{}, chatInput{}); err == nil {
		t.Error("expected error for empty message")
	}
}

func TestHandleCheckIn(t *testing.T) {
	server := setupServer(t)

	_, out, err := server.handleCheckIn(context.Background(), &mcp.CallToolRequest{}, checkInInput{MealsLogged: "yogurt"})
	if err != nil {
		t.Fatal(err)
	}
	if out.Points != 10 || out.Streak != 1 {
		t.Errorf("output = %+v", out)
	}
	if len(out.NewBadges) != 1 || out.NewBadges[0] != model.BadgeFirstCheckIn {
		t.Errorf("badges = %v", out.NewBadges)
	}

	if _, _, err := server.handleCheckIn(context.Background(), &mcp.CallToolRequest{}, checkInInput{Date: "yesterday"}); err == nil {
		t.Error("expected invalid date error")
	}
}

func TestHandleInventoryAndGroceries(t *testing.T) {
	server := setupServer(t)
	ctx := context.Background()

	if _, _, err := server.handleSetInventory(ctx, &mcp.CallToolRequest{}, setInventoryInput{Key: "spinach", Quantity: 0}); err != nil {
		t.Fatal(err)
	}

	_, out, err := server.handleGroceryList(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatal(err)
	}
	items := out.(map[string]any)["items"].([]model.GroceryItem)
	if len(items) != 1 || items[0].Key != "spinach" || items[0].Quantity != 1 {
		t.Errorf("items = %+v", items)
	}
}

func TestHandleMealPlanAndOutlook(t *testing.T) {
	server := setupServer(t)
	ctx := context.Background()

	_, out, err := server.handleGetMealPlan(ctx, &mcp.CallToolRequest{}, mealPlanInput{WeekStartDate: "2026-01-05"})
	if err != nil {
		t.Fatal(err)
	}
	if plan := out.(map[string]any)["plan"].(*model.MealPlan); plan != nil {
		t.Errorf("plan = %+v", plan)
	}

	_, outlook, err := server.handleGetOutlook(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatal(err)
	}
	if o := outlook.(*model.Outlook); o.CurrentWeek != 1 || o.Current == nil {
		t.Errorf("outlook = %+v", o)
	}
}
