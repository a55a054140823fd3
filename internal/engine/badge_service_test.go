package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/remardo/nutrios/internal/models"
)

type stubMealReader struct {
	meals []models.Meal
	err   error
}

func (stub *stubMealReader) ListMealsForClient(uint) ([]models.Meal, error) {
	if stub.err != nil {
		return nil, stub.err
	}
	result := make([]models.Meal, len(stub.meals))
	copy(result, stub.meals)
	return result, nil
}

type stubTargetsReader struct {
	row   models.ClientTargets
	found bool
	err   error
}

func (stub *stubTargetsReader) FindTargetsForClient(uint) (models.ClientTargets, bool, error) {
	return stub.row, stub.found, stub.err
}

type stubAwardStore struct {
	awards  []models.ClientBadgeAward
	nextID  uint
	creates int
	saves   int
}

func (stub *stubAwardStore) ListAwardsForClient(uint) ([]models.ClientBadgeAward, error) {
	result := make([]models.ClientBadgeAward, len(stub.awards))
	copy(result, stub.awards)
	return result, nil
}

func (stub *stubAwardStore) Create(award *models.ClientBadgeAward) error {
	stub.nextID++
	award.ID = stub.nextID
	stub.awards = append(stub.awards, *award)
	stub.creates++
	return nil
}

func (stub *stubAwardStore) Save(award *models.ClientBadgeAward) error {
	for index := range stub.awards {
		if stub.awards[index].ID == award.ID {
			stub.awards[index] = *award
			stub.saves++
			return nil
		}
	}
	return fmt.Errorf("award %d not found", award.ID)
}

func (stub *stubAwardStore) byCode(code string) *models.ClientBadgeAward {
	for index := range stub.awards {
		if stub.awards[index].BadgeCode == code {
			return &stub.awards[index]
		}
	}
	return nil
}

func newBadgeServiceForTest(meals []models.Meal, awards *stubAwardStore) *BadgeService {
	service := NewBadgeService(&stubMealReader{meals: meals}, &stubTargetsReader{}, awards, time.UTC)
	service.now = func() time.Time { return mustParseDay("2025-06-20") }
	return service
}

func TestEvaluateBadgesWritesNothing(t *testing.T) {
	awards := &stubAwardStore{}
	service := newBadgeServiceForTest([]models.Meal{compliantMeal("2025-06-01")}, awards)

	statuses, err := service.EvaluateBadges(1)
	if err != nil {
		t.Fatalf("evaluate badges: %v", err)
	}
	if len(statuses) != 5 {
		t.Fatalf("expected 5 badge statuses, got %d", len(statuses))
	}
	if awards.creates != 0 || awards.saves != 0 {
		t.Fatalf("expected no storage writes, got %d creates %d saves", awards.creates, awards.saves)
	}
	if status := badgeByCode(t, statuses, BadgeFirstMeal); !status.Earned {
		t.Fatalf("expected first_meal earned, got %+v", status)
	}
}

func TestRefreshCreatesAwardsOnlyForEarned(t *testing.T) {
	awards := &stubAwardStore{}
	service := newBadgeServiceForTest([]models.Meal{compliantMeal("2025-06-01")}, awards)

	statuses, err := service.RefreshClientBadges(1)
	if err != nil {
		t.Fatalf("refresh badges: %v", err)
	}

	if len(awards.awards) != 1 {
		t.Fatalf("expected exactly one award row, got %d", len(awards.awards))
	}
	award := awards.byCode(BadgeFirstMeal)
	if award == nil || !award.Earned {
		t.Fatalf("expected earned first_meal award, got %+v", award)
	}
	if award.FirstEarnedAt == nil || award.LatestAwardAt == nil {
		t.Fatalf("expected award timestamps to be set")
	}
	if status := badgeByCode(t, statuses, BadgeFirstMeal); status.LatestAwardAt == nil {
		t.Fatalf("expected status to carry latest_award_at")
	}
	if status := badgeByCode(t, statuses, BadgeSteadyWeek); status.LatestAwardAt != nil {
		t.Fatalf("expected unearned badge to carry no award timestamp")
	}
}

func TestRefreshIsIdempotent(t *testing.T) {
	awards := &stubAwardStore{}
	service := newBadgeServiceForTest([]models.Meal{compliantMeal("2025-06-01")}, awards)

	if _, err := service.RefreshClientBadges(1); err != nil {
		t.Fatalf("first refresh: %v", err)
	}
	firstAwardAt := *awards.byCode(BadgeFirstMeal).LatestAwardAt

	service.now = func() time.Time { return mustParseDay("2025-06-25") }
	if _, err := service.RefreshClientBadges(1); err != nil {
		t.Fatalf("second refresh: %v", err)
	}

	if len(awards.awards) != 1 {
		t.Fatalf("expected still one award row, got %d", len(awards.awards))
	}
	award := awards.byCode(BadgeFirstMeal)
	if !award.LatestAwardAt.Equal(firstAwardAt) {
		t.Fatalf("expected latest_award_at to stay at %v, got %v", firstAwardAt, award.LatestAwardAt)
	}
}

func TestRefreshMovesAwardTimeOnReearn(t *testing.T) {
	earnedAt := mustParseDay("2025-05-01")
	awards := &stubAwardStore{
		awards: []models.ClientBadgeAward{{
			ID:            1,
			ClientID:      1,
			BadgeCode:     BadgeSteadyWeek,
			Earned:        false,
			FirstEarnedAt: &earnedAt,
			LatestAwardAt: &earnedAt,
		}},
		nextID: 1,
	}

	meals := make([]models.Meal, 0, 7)
	for day := 1; day <= 7; day++ {
		meals = append(meals, compliantMeal(fmt.Sprintf("2025-06-%02d", day)))
	}
	service := newBadgeServiceForTest(meals, awards)

	if _, err := service.RefreshClientBadges(1); err != nil {
		t.Fatalf("refresh badges: %v", err)
	}

	award := awards.byCode(BadgeSteadyWeek)
	if !award.Earned {
		t.Fatalf("expected steady_week to be earned")
	}
	if !award.LatestAwardAt.Equal(mustParseDay("2025-06-20")) {
		t.Fatalf("expected latest_award_at to move on re-earn, got %v", award.LatestAwardAt)
	}
	if !award.FirstEarnedAt.Equal(earnedAt) {
		t.Fatalf("expected first_earned_at to stay at %v, got %v", earnedAt, award.FirstEarnedAt)
	}
}
