package repository

import (
	"errors"
	"testing"

	"github.com/porygon/mealplanner/internal/model"
)

func TestPreferencesByUserIDMissing(t *testing.T) {
	conn := setupTestDB(t)
	user := createTestUser(t, conn, "new@example.com")

	prefs, err := NewPreferencesRepository(conn).ByUserID(user.ID)
	if !errors.Is(err, ErrPreferencesNotFound) {
		t.Errorf("err = %v, want ErrPreferencesNotFound", err)
	}
	if prefs != nil {
		t.Errorf("prefs = %+v, want nil", prefs)
	}
}

func TestPreferencesUpsertMergesPartialWrites(t *testing.T) {
	conn := setupTestDB(t)
	user := createTestUser(t, conn, "merge@example.com")
	repo := NewPreferencesRepository(conn)

	first, err := repo.Upsert(user.ID, model.PreferencesUpdate{
		FoodAllergies: strPtr("None"),
		MealsPerDay:   intPtr(3),
	})
	if err != nil {
		t.Fatalf("first Upsert: %v", err)
	}
	if first.OnboardingComplete {
		t.Error("new row should not be onboarding complete")
	}

	second, err := repo.Upsert(user.ID, model.PreferencesUpdate{
		Goals:              strPtr("more energy"),
		OnboardingComplete: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("second Upsert: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("row id changed from %s to %s", first.ID, second.ID)
	}
	if second.FoodAllergies == nil || *second.FoodAllergies != "None" {
		t.Errorf("FoodAllergies = %v, want None kept", second.FoodAllergies)
	}
	if second.MealsPerDay == nil || *second.MealsPerDay != 3 {
		t.Errorf("MealsPerDay = %v, want 3 kept", second.MealsPerDay)
	}
	if second.Goals == nil || *second.Goals != "more energy" {
		t.Errorf("Goals = %v", second.Goals)
	}
	if !second.OnboardingComplete {
		t.Error("OnboardingComplete should be true")
	}
	if second.FoodsLike != nil {
		t.Errorf("FoodsLike = %v, want nil", *second.FoodsLike)
	}

	var rows int
	if err := conn.Get(&rows, `SELECT COUNT(*) FROM user_preferences WHERE user_id = $1`, user.ID); err != nil {
		t.Fatal(err)
	}
	if rows != 1 {
		t.Errorf("rows = %d, want 1", rows)
	}
}
