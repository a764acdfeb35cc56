package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/porygon/mealplanner/internal/coach"
	"github.com/porygon/mealplanner/internal/identity"
	"github.com/porygon/mealplanner/internal/model"
	"github.com/porygon/mealplanner/internal/repository"
)

var ErrEmailAlreadyExists = errors.New("email already exists")

type UserService struct {
	userRepository      repository.UserRepository
	statsRepository     repository.StatsRepository
	inventoryRepository repository.InventoryRepository
	emailService        *EmailService
}

func NewUserService(
	userRepository repository.UserRepository,
	statsRepository repository.StatsRepository,
	inventoryRepository repository.InventoryRepository,
	emailService *EmailService,
) *UserService {
	return &UserService{
		userRepository:      userRepository,
		statsRepository:     statsRepository,
		inventoryRepository: inventoryRepository,
		emailService:        emailService,
	}
}

func (s *UserService) ByID(id string) (*model.User, error) {
	return s.userRepository.ByID(id)
}

func (s *UserService) ByEmail(email string) (*model.User, error) {
	return s.userRepository.ByEmail(strings.ToLower(strings.TrimSpace(email)))
}

// EnsureByEmail returns the user with email, creating a passwordless account
// when there is none. Used by local tooling acting on behalf of a user.
func (s *UserService) EnsureByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.ByEmail(email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user = &model.User{Email: strings.ToLower(strings.TrimSpace(email))}
	err = s.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create stores a new user and sets up the rows every account starts with:
// a zero stats row and a stocked inventory.
func (s *UserService) Create(ctx context.Context, user *model.User) error {
	err := s.userRepository.Create(user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	_, err = s.statsRepository.Ensure(user.ID)
	if err != nil {
		return fmt.Errorf("failed to initialize stats: %w", err)
	}

	for _, item := range coach.DefaultInventory(user.ID) {
		err = s.inventoryRepository.Upsert(item)
		if err != nil {
			return fmt.Errorf("failed to seed inventory: %w", err)
		}
	}

	if s.emailService != nil {
		name := ""
		if user.Name != nil {
			name = *user.Name
		}
		err = s.emailService.SendWelcomeEmail(ctx, user.Email, name)
		if err != nil {
			// Account creation succeeded, don't fail on email
			slog.Warn("failed to send welcome email", "error", err, "user_id", user.ID)
		}
	}

	slog.Info("user created", "user_id", user.ID)
	return nil
}

// FromIdentity returns the user for a verified token, creating provider
// accounts on first sight. nameOverride wins over the token's name claim.
func (s *UserService) FromIdentity(ctx context.Context, id *identity.Identity, nameOverride string) (*model.User, error) {
	if id.UserID != "" {
		return s.userRepository.ByID(id.UserID)
	}

	user, err := s.userRepository.ByExternalUID(id.UID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	uid := id.UID
	user = &model.User{
		Email:       strings.ToLower(strings.TrimSpace(id.Email)),
		ExternalUID: &uid,
	}
	if user.Email == "" {
		// Provider accounts without an email still need a unique address.
		user.Email = uid + "@identity.invalid"
	}
	name := nameOverride
	if name == "" {
		name = id.Name
	}
	if name != "" {
		user.Name = &name
	}

	err = s.Create(ctx, user)
	if errors.Is(err, ErrEmailAlreadyExists) {
		// A concurrent request may have created the same account.
		existing, lookupErr := s.userRepository.ByExternalUID(uid)
		if lookupErr == nil {
			return existing, nil
		}
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) Delete(id string) error {
	err := s.userRepository.Delete(id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	slog.Info("user deleted", "user_id", id)
	return nil
}
