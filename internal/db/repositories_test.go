package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/remardo/nutrios/internal/models"
)

func openTestRepos(t *testing.T) *Repositories {
	t.Helper()
	database, err := OpenSQLite(filepath.Join(t.TempDir(), "nutrios_test.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	return NewRepositories(database)
}

func createTestClient(t *testing.T, repos *Repositories, telegramUserID int64) models.Client {
	t.Helper()
	client := models.Client{TelegramUserID: telegramUserID, TelegramUsername: "tester"}
	if err := repos.Clients.Create(&client); err != nil {
		t.Fatalf("create client: %v", err)
	}
	return client
}

func TestClientRepositoryRoundTrip(t *testing.T) {
	repos := openTestRepos(t)
	created := createTestClient(t, repos, 4242)

	found, ok, err := repos.Clients.FindByTelegramUserID(4242)
	if err != nil || !ok {
		t.Fatalf("find by telegram id: ok=%v err=%v", ok, err)
	}
	if found.ID != created.ID {
		t.Fatalf("expected client %d, got %d", created.ID, found.ID)
	}

	if _, ok, _ := repos.Clients.FindByID(999); ok {
		t.Fatalf("expected missing client to report not found")
	}

	clients, err := repos.Clients.List()
	if err != nil {
		t.Fatalf("list clients: %v", err)
	}
	if len(clients) != 1 {
		t.Fatalf("expected 1 client, got %d", len(clients))
	}
}

func TestMealRepositoryUpsertByMessage(t *testing.T) {
	repos := openTestRepos(t)
	client := createTestClient(t, repos, 1)

	meal := models.Meal{
		ClientID:   client.ID,
		MessageID:  100,
		Title:      "Овсянка",
		Kcal:       350,
		CapturedAt: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC),
		Extras:     map[string]any{"water_ml": 200.0},
	}
	if err := repos.Meals.Create(&meal); err != nil {
		t.Fatalf("create meal: %v", err)
	}

	stored, found, err := repos.Meals.FindByClientAndMessage(client.ID, 100)
	if err != nil || !found {
		t.Fatalf("find meal: found=%v err=%v", found, err)
	}
	stored.Kcal = 420
	if err := repos.Meals.Save(&stored); err != nil {
		t.Fatalf("save meal: %v", err)
	}

	meals, err := repos.Meals.ListMealsForClient(client.ID)
	if err != nil {
		t.Fatalf("list meals: %v", err)
	}
	if len(meals) != 1 {
		t.Fatalf("expected 1 meal after update, got %d", len(meals))
	}
	if meals[0].Kcal != 420 {
		t.Fatalf("expected updated kcal 420, got %d", meals[0].Kcal)
	}
	if meals[0].Extras["water_ml"] == nil {
		t.Fatalf("expected extras to survive the round trip")
	}
}

func TestMealRepositoryListBetween(t *testing.T) {
	repos := openTestRepos(t)
	client := createTestClient(t, repos, 1)

	for hour, messageID := range map[int]int64{9: 1, 14: 2, 30: 3} {
		meal := models.Meal{
			ClientID:   client.ID,
			MessageID:  messageID,
			CapturedAt: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC).Add(time.Duration(hour) * time.Hour),
		}
		if err := repos.Meals.Create(&meal); err != nil {
			t.Fatalf("create meal: %v", err)
		}
	}

	from := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	meals, err := repos.Meals.ListMealsBetween(client.ID, from, to)
	if err != nil {
		t.Fatalf("list between: %v", err)
	}
	if len(meals) != 2 {
		t.Fatalf("expected 2 meals inside the day, got %d", len(meals))
	}
}

func TestChallengeRepositoriesLifecycle(t *testing.T) {
	repos := openTestRepos(t)
	client := createTestClient(t, repos, 1)

	definition := models.ChallengeDefinition{
		Code:   "water_daily",
		Name:   "Вода в норме",
		Period: models.ChallengePeriodDaily,
		Metric: "water_ml",
		Config: map[string]any{"default_target": 1800.0},
	}
	if err := repos.Definitions.CreateDefinition(&definition); err != nil {
		t.Fatalf("create definition: %v", err)
	}

	found, ok, err := repos.Definitions.FindDefinitionByCode("water_daily")
	if err != nil || !ok {
		t.Fatalf("find definition: ok=%v err=%v", ok, err)
	}
	if found.ID != definition.ID {
		t.Fatalf("expected definition %d, got %d", definition.ID, found.ID)
	}

	challenge := models.ClientChallenge{
		ClientID:              client.ID,
		ChallengeDefinitionID: definition.ID,
		Status:                models.ChallengeStatusActive,
		StartDate:             time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		EndDate:               time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		TargetValue:           1980,
	}
	if err := repos.Challenges.CreateChallenge(&challenge); err != nil {
		t.Fatalf("create challenge: %v", err)
	}

	rows, err := repos.Challenges.ListChallengesForClient(client.ID, []string{models.ChallengeStatusActive})
	if err != nil {
		t.Fatalf("list challenges: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 active challenge, got %d", len(rows))
	}
	if rows[0].Definition == nil || rows[0].Definition.Code != "water_daily" {
		t.Fatalf("expected preloaded definition, got %+v", rows[0].Definition)
	}

	progress := models.ClientChallengeProgress{
		ClientChallengeID: challenge.ID,
		Value:             1500,
		TargetValue:       1980,
	}
	if err := repos.Progress.CreateProgress(&progress); err != nil {
		t.Fatalf("create progress: %v", err)
	}
	progress.Value = 2100
	progress.Completed = true
	if err := repos.Progress.SaveProgress(&progress); err != nil {
		t.Fatalf("save progress: %v", err)
	}

	stored, ok, err := repos.Progress.FindProgressForChallenge(challenge.ID)
	if err != nil || !ok {
		t.Fatalf("find progress: ok=%v err=%v", ok, err)
	}
	if stored.Value != 2100 || !stored.Completed {
		t.Fatalf("unexpected progress row: %+v", stored)
	}
}

func TestHabitLogRepositoryRange(t *testing.T) {
	repos := openTestRepos(t)
	client := createTestClient(t, repos, 1)

	for day := 10; day <= 14; day++ {
		log := models.DailyHabitLog{
			ClientID: client.ID,
			Date:     time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC),
			WaterML:  day * 100,
		}
		if err := repos.HabitLogs.CreateHabitLog(&log); err != nil {
			t.Fatalf("create habit log: %v", err)
		}
	}

	from := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC)
	logs, err := repos.HabitLogs.ListHabitLogsBetween(client.ID, from, to)
	if err != nil {
		t.Fatalf("list habit logs: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("expected 3 logs in the inclusive range, got %d", len(logs))
	}
	if logs[0].WaterML != 1100 {
		t.Fatalf("expected oldest-first ordering, got %d first", logs[0].WaterML)
	}

	stored, found, err := repos.HabitLogs.FindHabitLogForDay(client.ID, from)
	if err != nil || !found {
		t.Fatalf("find habit log: found=%v err=%v", found, err)
	}
	stored.Steps = 9000
	if err := repos.HabitLogs.SaveHabitLog(&stored); err != nil {
		t.Fatalf("save habit log: %v", err)
	}
	updated, _, _ := repos.HabitLogs.FindHabitLogForDay(client.ID, from)
	if updated.Steps != 9000 {
		t.Fatalf("expected updated steps 9000, got %d", updated.Steps)
	}
}

func TestBadgeAwardRepositoryUniquePerBadge(t *testing.T) {
	repos := openTestRepos(t)
	client := createTestClient(t, repos, 1)

	now := time.Now().UTC()
	award := models.ClientBadgeAward{
		ClientID:      client.ID,
		BadgeCode:     "first_meal",
		Earned:        true,
		Progress:      1,
		FirstEarnedAt: &now,
		LatestAwardAt: &now,
	}
	if err := repos.BadgeAwards.Create(&award); err != nil {
		t.Fatalf("create award: %v", err)
	}

	duplicate := models.ClientBadgeAward{ClientID: client.ID, BadgeCode: "first_meal"}
	if err := repos.BadgeAwards.Create(&duplicate); err == nil {
		t.Fatalf("expected unique index to reject a duplicate (client, badge) award")
	}

	award.Progress = 1
	award.Earned = true
	if err := repos.BadgeAwards.Save(&award); err != nil {
		t.Fatalf("save award: %v", err)
	}

	awards, err := repos.BadgeAwards.ListAwardsForClient(client.ID)
	if err != nil {
		t.Fatalf("list awards: %v", err)
	}
	if len(awards) != 1 {
		t.Fatalf("expected 1 award row, got %d", len(awards))
	}
}
