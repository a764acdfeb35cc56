package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/porygon/mealplanner/internal/service"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "chat",
		Description: "Send a message to the nutrition coach. Onboarding answers, meal check-ins and pantry reports are saved.",
	}, s.handleChat)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_state",
		Description: "Get the user's preferences, points, streak, badges and recent check-ins",
	}, s.handleGetState)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "check_in",
		Description: "Record a meal check-in and update points, streak and badges",
	}, s.handleCheckIn)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "grocery_list",
		Description: "List what to buy to cover the planned pantry quantities",
	}, s.handleGroceryList)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_inventory",
		Description: "Set the on-hand quantity of a pantry item",
	}, s.handleSetInventory)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_meal_plan",
		Description: "Get the newest saved meal plan for a week",
	}, s.handleGetMealPlan)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_outlook",
		Description: "Show where the user's streak sits on the weekly milestone timeline",
	}, s.handleGetOutlook)
}

type chatInput struct {
	Message string `json:"message" jsonschema:"What the user says to the coach"`
}

type chatOutput struct {
	Response  string   `json:"response"`
	Topic     string   `json:"topic"`
	CheckedIn bool     `json:"checked_in"`
	NewBadges []string `json:"new_badges"`
}

type emptyInput struct{}

type checkInInput struct {
	Date        string `json:"date,omitempty" jsonschema:"Day of the check-in (YYYY-MM-DD), defaults to today"`
	MealsLogged string `json:"meals_logged,omitempty" jsonschema:"What was eaten"`
	Notes       string `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type checkInOutput struct {
	Points    int      `json:"points"`
	Streak    int      `json:"streak"`
	NewBadges []string `json:"new_badges"`
	Message   string   `json:"message"`
}

type setInventoryInput struct {
	Key      string  `json:"key" jsonschema:"Item key such as salmon, eggs or greek-yogurt"`
	Quantity float64 `json:"quantity" jsonschema:"Amount on hand in the item's unit"`
}

type mealPlanInput struct {
	WeekStartDate string `json:"week_start_date" jsonschema:"First day of the week (YYYY-MM-DD)"`
}

func (s *Server) handleChat(ctx context.Context, req *mcp.CallToolRequest, input chatInput) (*mcp.CallToolResult, chatOutput, error) {
	result, err := s.services.Chat.Turn(ctx, s.userID, input.Message)
	if err != nil {
		return nil, chatOutput{}, err
	}

	out := chatOutput{
		Response:  result.Response,
		Topic:     string(result.Topic),
		CheckedIn: result.CheckedIn,
		NewBadges: []string{},
	}
	for _, b := range result.NewBadges {
		out.NewBadges = append(out.NewBadges, b.BadgeName)
	}
	return nil, out, nil
}

func (s *Server) handleGetState(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	state, err := s.services.Chat.State(ctx, s.userID)
	if err != nil {
		return nil, nil, err
	}
	return nil, map[string]any{
		"preferences":     state.Preferences,
		"stats":           state.Stats,
		"badges":          state.Badges,
		"recent_progress": state.RecentProgress,
	}, nil
}

func (s *Server) handleCheckIn(ctx context.Context, req *mcp.CallToolRequest, input checkInInput) (*mcp.CallToolResult, checkInOutput, error) {
	var meals, notes *string
	if input.MealsLogged != "" {
		meals = &input.MealsLogged
	}
	if input.Notes != "" {
		notes = &input.Notes
	}

	result, err := s.services.Progress.CheckIn(ctx, s.userID, input.Date, meals, notes)
	if err != nil {
		return nil, checkInOutput{}, err
	}

	out := checkInOutput{
		Points:    result.Stats.Points,
		Streak:    result.Stats.Streak,
		NewBadges: []string{},
		Message:   fmt.Sprintf("Checked in for %s. %d points, %d-day streak.", result.Entry.Date, result.Stats.Points, result.Stats.Streak),
	}
	for _, b := range result.Badges {
		out.NewBadges = append(out.NewBadges, b.BadgeName)
	}
	return nil, out, nil
}

func (s *Server) handleGroceryList(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	items, err := s.services.Inventory.GroceryList(s.userID)
	if err != nil {
		return nil, nil, err
	}
	return nil, map[string]any{"items": items}, nil
}

func (s *Server) handleSetInventory(ctx context.Context, req *mcp.CallToolRequest, input setInventoryInput) (*mcp.CallToolResult, any, error) {
	item, err := s.services.Inventory.Set(s.userID, input.Key, service.ItemInput{Quantity: input.Quantity})
	if err != nil {
		return nil, nil, err
	}
	return nil, item, nil
}

func (s *Server) handleGetMealPlan(ctx context.Context, req *mcp.CallToolRequest, input mealPlanInput) (*mcp.CallToolResult, any, error) {
	plan, err := s.services.MealPlans.Latest(s.userID, input.WeekStartDate)
	if err != nil {
		return nil, nil, err
	}
	return nil, map[string]any{"plan": plan}, nil
}

func (s *Server) handleGetOutlook(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	outlook, err := s.services.Outlook.Outlook(s.userID)
	if err != nil {
		return nil, nil, err
	}
	return nil, outlook, nil
}
