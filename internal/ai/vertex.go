// Package ai asks a hosted Gemini model for coach replies.
package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cloud.google.com/go/auth"
	"cloud.google.com/go/auth/oauth2adapt"
	"github.com/porygon/mealplanner/internal/coach"
	"golang.org/x/oauth2/google"
	"google.golang.org/genai"
)

const (
	cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"
	generateTimeout    = 30 * time.Second
)

var ErrEmptyResponse = errors.New("model returned no text")

type VertexConfig struct {
	Project  string
	Location string
	Model    string

	// Credentials default to Application Default Credentials.
	Credentials *auth.Credentials
	// BaseURL and HTTPClient override the regional endpoint and transport. Used by tests.
	BaseURL    string
	HTTPClient *http.Client
}

// Vertex asks a Gemini model on Vertex AI for replies.
type Vertex struct {
	client *genai.Client
	model  string
}

func NewVertex(ctx context.Context, cfg VertexConfig) (*Vertex, error) {
	if cfg.Credentials == nil {
		creds, err := google.FindDefaultCredentials(ctx, cloudPlatformScope)
		if err != nil {
			return nil, fmt.Errorf("failed to load google credentials: %w", err)
		}
		cfg.Credentials = oauth2adapt.AuthCredentialsFromOauth2Credentials(creds)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend:     genai.BackendVertexAI,
		Project:     cfg.Project,
		Location:    cfg.Location,
		Credentials: cfg.Credentials,
		HTTPClient:  cfg.HTTPClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL, APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Vertex{client: client, model: cfg.Model}, nil
}

// Generate returns the model's reply to message given what the coach knows.
func (v *Vertex) Generate(ctx context.Context, message string, c coach.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	resp, err := v.client.Models.GenerateContent(ctx, v.model, genai.Text(Prompt(message, c)), nil)
	if err != nil {
		return "", fmt.Errorf("failed to call vertex: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// Prompt renders the coaching context and message as a single prompt.
func Prompt(message string, c coach.Context) string {
	lines := []string{
		"You are a friendly nutrition coach for the Porygon Meal Planner app.",
		"Keep responses concise, supportive, and practical.",
	}
	if c.Preferences == nil || !c.Preferences.OnboardingComplete {
		lines = append(lines, "The user is in onboarding; help collect preferences.")
	}
	lines = append(lines, fmt.Sprintf("User stats: %d points, %d day streak.", c.Stats.Points, c.Stats.Streak))
	if len(c.RecentProgress) > 0 {
		var checkIns []string
		for i, e := range c.RecentProgress {
			if i == 5 {
				break
			}
			meals := ""
			if e.MealsLogged != nil {
				meals = *e.MealsLogged
			}
			checkIns = append(checkIns, fmt.Sprintf("%s: %s", e.Date, meals))
		}
		lines = append(lines, "Recent check-ins: "+strings.Join(checkIns, "; "))
	}

	return strings.Join(lines, "\n") + "\n\nUser: " + message + "\nCoach:"
}
