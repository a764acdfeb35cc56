package service

import (
	"context"
	"testing"
	"time"

	"github.com/porygon/mealplanner/internal/model"
)

func TestCheckInStreaksAndBadges(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	user := s.createUser(t, "streak@example.com")
	start := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)

	s.setNow(start)
	first, err := s.progress.CheckIn(ctx, user.ID, "", strPtr("oatmeal"), nil)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if first.Entry.Date != "2026-03-02" {
		t.Errorf("entry date = %q, want today", first.Entry.Date)
	}
	if first.Stats.Points != 10 || first.Stats.Streak != 1 {
		t.Errorf("after first: %+v", first.Stats)
	}
	if len(first.Badges) != 1 || first.Badges[0].BadgeName != model.BadgeFirstCheckIn {
		t.Errorf("first badges = %+v", first.Badges)
	}

	// Same day again: points grow, streak holds.
	again, err := s.progress.CheckIn(ctx, user.ID, "", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if again.Stats.Points != 20 || again.Stats.Streak != 1 || len(again.Badges) != 0 {
		t.Errorf("same day: %+v badges=%d", again.Stats, len(again.Badges))
	}

	var last *CheckInResult
	for day := 1; day < 7; day++ {
		s.setNow(start.AddDate(0, 0, day))
		last, err = s.progress.CheckIn(ctx, user.ID, "", nil, nil)
		if err != nil {
			t.Fatal(err)
		}
	}
	if last.Stats.Streak != 7 {
		t.Errorf("streak = %d, want 7", last.Stats.Streak)
	}
	if len(last.Badges) != 1 || last.Badges[0].BadgeName != model.BadgeConsistencyKing {
		t.Errorf("seventh day badges = %+v", last.Badges)
	}

	// A gap resets the streak to one.
	s.setNow(start.AddDate(0, 0, 10))
	gap, err := s.progress.CheckIn(ctx, user.ID, "", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if gap.Stats.Streak != 1 || gap.Stats.Points != 90 {
		t.Errorf("after gap: %+v", gap.Stats)
	}

	badges, err := s.badges.List(user.ID)
	if err != nil || len(badges) != 2 {
		t.Fatalf("badges = %d, %v", len(badges), err)
	}
	if badges[0].Icon == "" || badges[0].Color == "" {
		t.Errorf("listed badge not decorated: %+v", badges[0])
	}
}

func TestCheckInRejectsBadDate(t *testing.T) {
	s := setupServices(t)
	user := s.createUser(t, "date@example.com")

	if _, err := s.progress.CheckIn(context.Background(), user.ID, "03/02/2026", nil, nil); err == nil {
		t.Error("expected invalid date error")
	}
	entries, err := s.progress.List(user.ID, 0)
	if err != nil || len(entries) != 0 {
		t.Errorf("entries = %d, %v", len(entries), err)
	}
}

func TestProgressListLimit(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	user := s.createUser(t, "list@example.com")
	s.setNow(time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC))

	for _, date := range []string{"2026-05-01", "2026-05-03", "2026-05-02"} {
		if _, err := s.progress.CheckIn(ctx, user.ID, date, nil, nil); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := s.progress.List(user.ID, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].Date != "2026-05-03" || entries[1].Date != "2026-05-02" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestStatsApplyUpdatePartial(t *testing.T) {
	s := setupServices(t)
	user := s.createUser(t, "stats@example.com")
	ctx := context.Background()

	if _, err := s.stats.ApplyUpdate(ctx, user.ID, model.StatsUpdate{Points: intPtr(10)}); err != nil {
		t.Fatal(err)
	}
	got, err := s.stats.ApplyUpdate(ctx, user.ID, model.StatsUpdate{Streak: intPtr(5)})
	if err != nil {
		t.Fatal(err)
	}
	if got.Points != 10 || got.Streak != 5 || got.LastCheckInDate != nil {
		t.Errorf("stats = %+v", got)
	}
}
