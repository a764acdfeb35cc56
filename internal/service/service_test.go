package service

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/porygon/mealplanner/internal/coach"
	"github.com/porygon/mealplanner/internal/db"
	"github.com/porygon/mealplanner/internal/identity"
	"github.com/porygon/mealplanner/internal/model"
	"github.com/porygon/mealplanner/internal/repository"
)

type testServices struct {
	users       *UserService
	auth        *AuthService
	preferences *PreferencesService
	stats       *StatsService
	badges      *BadgeService
	progress    *ProgressService
	mealPlans   *MealPlanService
	inventory   *InventoryService
	outlook     *OutlookService
	chat        *ChatService
	session     *identity.Session
	archive     *fakeArchive
	provider    *fakeVerifier
}

type fakeVerifier struct {
	ids map[string]*identity.Identity
}

func (f *fakeVerifier) Verify(ctx context.Context, token string) (*identity.Identity, error) {
	id, ok := f.ids[token]
	if !ok {
		return nil, identity.ErrInvalidToken
	}
	return id, nil
}

type fakeArchive struct {
	keys []string
}

func (f *fakeArchive) Put(ctx context.Context, key string, body []byte, contentType string) error {
	f.keys = append(f.keys, key)
	return nil
}

var testOutlookFS = fstest.MapFS{
	"outlook/week-01.md": {Data: []byte("---\nweek: 1\ntitle: Adjusting\n---\nStay hydrated.\n")},
	"outlook/week-02.md": {Data: []byte("---\nweek: 2\ntitle: Energy\n---\nMore energy.\n")},
	"outlook/week-04.md": {Data: []byte("---\nweek: 4\ntitle: First month\n---\nMilestone!\n")},
}

func setupServices(t *testing.T) *testServices {
	t.Helper()

	conn, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db")+"?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := db.RunMigrations(conn.DB, "sqlite"); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	userRepo := repository.NewUserRepository(conn)
	s := &testServices{
		session:  identity.NewSession("test-secret", time.Hour),
		archive:  &fakeArchive{},
		provider: &fakeVerifier{ids: map[string]*identity.Identity{}},
	}

	email := NewEmailService("", "coach@example.com", "http://localhost", "Test", true)
	s.users = NewUserService(userRepo, repository.NewStatsRepository(conn), repository.NewInventoryRepository(conn), email)
	s.auth = NewAuthService(s.users, userRepo, identity.Chain{s.session, s.provider}, s.session)
	s.preferences = NewPreferencesService(repository.NewPreferencesRepository(conn))
	s.stats = NewStatsService(repository.NewStatsRepository(conn))
	s.badges = NewBadgeService(repository.NewBadgeRepository(conn))
	s.progress = NewProgressService(repository.NewProgressRepository(conn), s.stats, s.badges, 30)
	s.mealPlans = NewMealPlanService(repository.NewMealPlanRepository(conn), s.archive)
	s.inventory = NewInventoryService(repository.NewInventoryRepository(conn))
	s.outlook, err = NewOutlookService(testOutlookFS, "outlook", s.stats)
	if err != nil {
		t.Fatalf("NewOutlookService: %v", err)
	}
	s.chat = NewChatService(s.preferences, s.progress, s.stats, s.badges, s.inventory,
		coach.NewResponder(func(int) int { return 0 }), nil)

	return s
}

func (s *testServices) createUser(t *testing.T, email string) *model.User {
	t.Helper()
	user := &model.User{Email: email}
	if err := s.users.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

// setNow pins the clock used for check-ins.
func (s *testServices) setNow(now time.Time) {
	s.progress.now = func() time.Time { return now }
	s.chat.now = func() time.Time { return now }
}

func strPtr(v string) *string { return &v }
func intPtr(v int) *int       { return &v }
