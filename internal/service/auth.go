package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/porygon/mealplanner/internal/identity"
	"github.com/porygon/mealplanner/internal/model"
	"github.com/porygon/mealplanner/internal/repository"
	"github.com/porygon/mealplanner/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordlessLogin  = errors.New("this account signs in with its identity provider")
)

type AuthService struct {
	userService    *UserService
	userRepository repository.UserRepository
	verifier       identity.Verifier
	session        *identity.Session
}

func NewAuthService(
	userService *UserService,
	userRepository repository.UserRepository,
	verifier identity.Verifier,
	session *identity.Session,
) *AuthService {
	return &AuthService{
		userService:    userService,
		userRepository: userRepository,
		verifier:       verifier,
		session:        session,
	}
}

// Authenticate resolves a bearer token to a user. Provider tokens for
// unknown subjects create the account.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	id, err := s.verifier.Verify(ctx, token)
	if err != nil {
		return nil, identity.ErrInvalidToken
	}

	user, err := s.userService.FromIdentity(ctx, id, "")
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Session token for a deleted account
			return nil, identity.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	return user, nil
}

// Session exchanges an identity provider token for the app user, applying
// name to newly created accounts.
func (s *AuthService) Session(ctx context.Context, token, name string) (*model.User, error) {
	id, err := s.verifier.Verify(ctx, token)
	if err != nil {
		return nil, identity.ErrInvalidToken
	}

	user, err := s.userService.FromIdentity(ctx, id, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, identity.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Register(ctx context.Context, email, password, name string) (*model.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	name = strings.TrimSpace(name)

	err := validation.ValidateEmail(email)
	if err != nil {
		return nil, "", err
	}
	err = validation.ValidatePassword(password)
	if err != nil {
		return nil, "", err
	}
	err = validation.ValidateName(name)
	if err != nil {
		return nil, "", err
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{Email: email, PasswordHash: &hash}
	if name != "" {
		user.Name = &name
	}

	err = s.userService.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.session.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

func (s *AuthService) Login(email, password string) (*model.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", fmt.Errorf("invalid credentials: %w", ErrInvalidCredentials)
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	if !user.HasPassword() {
		return nil, "", ErrPasswordlessLogin
	}

	err = s.ComparePassword(password, *user.PasswordHash)
	if err != nil {
		return nil, "", fmt.Errorf("invalid credentials: %w", ErrInvalidCredentials)
	}

	token, err := s.session.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
