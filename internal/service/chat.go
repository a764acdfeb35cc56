package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/porygon/mealplanner/internal/coach"
	"github.com/porygon/mealplanner/internal/model"
	"github.com/porygon/mealplanner/internal/validation"
)

// recentProgressLimit is how many check-ins the coach sees when replying.
const recentProgressLimit = 7

// Generator produces a free-form coach reply. Implementations may fail; the
// rule-based responder answers instead.
type Generator interface {
	Generate(ctx context.Context, message string, c coach.Context) (string, error)
}

type ChatService struct {
	preferencesService *PreferencesService
	progressService    *ProgressService
	statsService       *StatsService
	badgeService       *BadgeService
	inventoryService   *InventoryService
	responder          *coach.Responder
	generator          Generator
	now                func() time.Time
}

func NewChatService(
	preferencesService *PreferencesService,
	progressService *ProgressService,
	statsService *StatsService,
	badgeService *BadgeService,
	inventoryService *InventoryService,
	responder *coach.Responder,
	generator Generator,
) *ChatService {
	return &ChatService{
		preferencesService: preferencesService,
		progressService:    progressService,
		statsService:       statsService,
		badgeService:       badgeService,
		inventoryService:   inventoryService,
		responder:          responder,
		generator:          generator,
		now:                time.Now,
	}
}

// TurnResult is the outcome of one chat turn and the state after it.
type TurnResult struct {
	Response  string         `json:"response"`
	Topic     coach.Topic    `json:"topic"`
	CheckedIn bool           `json:"checked_in"`
	NewBadges []*model.Badge `json:"new_badges"`
	State     *coach.State   `json:"-"`
}

// State loads everything the coach knows about the user from the store.
func (s *ChatService) State(ctx context.Context, userID string) (*coach.State, error) {
	prefs, err := s.preferencesService.Get(userID)
	if err != nil {
		return nil, err
	}
	stats, err := s.statsService.Get(userID)
	if err != nil {
		return nil, err
	}
	badges, err := s.badgeService.List(userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.progressService.List(userID, recentProgressLimit)
	if err != nil {
		return nil, err
	}
	inventory, err := s.inventoryService.List(userID)
	if err != nil {
		return nil, err
	}

	return &coach.State{
		Preferences:    prefs,
		Stats:          *stats,
		Badges:         badges,
		RecentProgress: recent,
		Inventory:      inventory,
	}, nil
}

// Respond answers message without changing anything stored.
func (s *ChatService) Respond(ctx context.Context, userID, message string) (string, error) {
	err := validation.ValidateMessage(message)
	if err != nil {
		return "", err
	}

	state, err := s.State(ctx, userID)
	if err != nil {
		return "", err
	}

	reply := s.reply(ctx, userID, message, state)
	return reply.Text, nil
}

// Turn answers message and applies its effects: onboarding answers are
// saved, meal reports become check-ins and pantry reports update the
// inventory. The returned state is reloaded from the store.
func (s *ChatService) Turn(ctx context.Context, userID, message string) (*TurnResult, error) {
	err := validation.ValidateMessage(message)
	if err != nil {
		return nil, err
	}

	state, err := s.State(ctx, userID)
	if err != nil {
		return nil, err
	}

	reply := s.reply(ctx, userID, message, state)
	result := &TurnResult{Response: reply.Text, Topic: reply.Topic, NewBadges: []*model.Badge{}}

	if !state.Onboarded() {
		next := coach.Advance(state.PreferencesOrEmpty(), message)
		_, err = s.preferencesService.Update(userID, model.UpdateFrom(next))
		if err != nil {
			return nil, err
		}
		if next.OnboardingComplete {
			slog.Info("onboarding completed", "user_id", userID)
		}
	} else {
		if reply.Topic == coach.TopicInventory && len(reply.Inventory) > 0 {
			err = s.inventoryService.ApplyUpdates(userID, reply.Inventory)
			if err != nil {
				return nil, err
			}
		}

		if reply.Topic != coach.TopicInventory && coach.IsCheckIn(message) {
			checkIn, err := s.progressService.CheckIn(ctx, userID, coach.Today(s.now()), &message, nil)
			if err != nil {
				return nil, fmt.Errorf("failed to record check-in: %w", err)
			}
			result.CheckedIn = true
			result.Topic = coach.TopicCheckIn
			result.NewBadges = checkIn.Badges
			if !reply.generated {
				result.Response = s.responder.CheckInReply(*checkIn.Stats)
			}
		}
	}

	result.State, err = s.State(ctx, userID)
	if err != nil {
		return nil, err
	}
	return result, nil
}

type chatReply struct {
	coach.Reply
	generated bool
}

// reply asks the generator first when one is configured. The rule-based
// reply is always computed because its topic drives the turn's effects.
func (s *ChatService) reply(ctx context.Context, userID, message string, state *coach.State) chatReply {
	reply := chatReply{Reply: s.responder.Reply(message, state.Context())}
	if s.generator == nil {
		return reply
	}

	text, err := s.generator.Generate(ctx, message, state.Context())
	if err != nil {
		slog.Warn("generator failed, using rule-based reply", "error", err, "user_id", userID)
		return reply
	}

	reply.Text = text
	reply.generated = true
	return reply
}
