package repository

import (
	"testing"
	"time"

	"github.com/porygon/mealplanner/internal/model"
)

func TestBadgeListNewestFirstAllowsDuplicates(t *testing.T) {
	conn := setupTestDB(t)
	user := createTestUser(t, conn, "badges@example.com")
	repo := NewBadgeRepository(conn)

	base := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	for i, name := range []string{model.BadgeFirstCheckIn, model.BadgeConsistencyKing, model.BadgeFirstCheckIn} {
		err := repo.Create(&model.Badge{
			UserID:    user.ID,
			BadgeName: name,
			EarnedAt:  base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	badges, err := repo.List(user.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(badges) != 3 {
		t.Fatalf("len = %d, want 3", len(badges))
	}
	if badges[0].BadgeName != model.BadgeFirstCheckIn || badges[1].BadgeName != model.BadgeConsistencyKing {
		t.Errorf("order = %s, %s", badges[0].BadgeName, badges[1].BadgeName)
	}
	if !badges[0].EarnedAt.After(badges[2].EarnedAt) {
		t.Error("badges not newest-earned first")
	}
}
