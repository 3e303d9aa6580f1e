package scheduling

import (
	"context"
	"testing"
	"time"

	sessionRepo "studiofit/database/repository/session"
	settingsRepo "studiofit/database/repository/settings"
	"studiofit/models"

	"go.uber.org/zap"
)

func TestWeekWindow(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	cases := []struct {
		name       string
		date       time.Time
		wantMonday time.Time
	}{
		{
			name:       "midweek",
			date:       time.Date(2026, 3, 4, 15, 30, 0, 0, loc), // Wednesday
			wantMonday: time.Date(2026, 3, 2, 0, 0, 0, 0, loc),
		},
		{
			name:       "monday maps to itself",
			date:       time.Date(2026, 3, 2, 0, 0, 0, 0, loc),
			wantMonday: time.Date(2026, 3, 2, 0, 0, 0, 0, loc),
		},
		{
			name:       "sunday belongs to the preceding monday",
			date:       time.Date(2026, 3, 8, 23, 59, 0, 0, loc),
			wantMonday: time.Date(2026, 3, 2, 0, 0, 0, 0, loc),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			monday, sundayEnd := WeekWindow(tc.date)
			if !monday.Equal(tc.wantMonday) {
				t.Errorf("monday = %v, want %v", monday, tc.wantMonday)
			}
			wantEnd := tc.wantMonday.AddDate(0, 0, 6).
				Add(23*time.Hour + 59*time.Minute + 59*time.Second + 999*time.Millisecond)
			if !sundayEnd.Equal(wantEnd) {
				t.Errorf("sundayEnd = %v, want %v", sundayEnd, wantEnd)
			}
			if monday.Location() != tc.date.Location() {
				t.Error("week window must stay in the caller's calendar, not UTC")
			}
		})
	}
}

func TestWeekWindowsAreDisjoint(t *testing.T) {
	lastMs := time.Date(2026, 3, 8, 23, 59, 59, 999_000_000, time.UTC) // Sunday
	firstMs := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)             // next Monday

	m1, _ := WeekWindow(lastMs)
	m2, _ := WeekWindow(firstMs)
	if m1.Equal(m2) {
		t.Fatal("the last millisecond of Sunday and the first of Monday must fall in different weeks")
	}
	if got := m2.Sub(m1); got != 7*24*time.Hour {
		t.Fatalf("adjacent week starts are %v apart, want 168h", got)
	}
}

func newQuotaFixture(t *testing.T, quota int) (*QuotaChecker, *sessionRepo.MemorySessionRepo) {
	t.Helper()
	sessions := sessionRepo.NewMemorySessionRepo()
	return &QuotaChecker{
		Sessions: sessions,
		Settings: settingsRepo.NewMemorySettingsRepo(quota),
		Logger:   zap.NewNop(),
	}, sessions
}

func seedTypedSession(t *testing.T, repo *sessionRepo.MemorySessionRepo, id string, sessionType models.SessionType, start time.Time) {
	t.Helper()
	s := &models.Session{
		ID:              id,
		MachineID:       "machine-1",
		StartTime:       start,
		EndTime:         start.Add(time.Hour),
		Status:          models.SessionScheduled,
		Type:            sessionType,
		MaxParticipants: 1,
	}
	if err := repo.CreateSession(context.Background(), s, nil); err != nil {
		t.Fatalf("seed session %s: %v", id, err)
	}
}

func TestCheckStudioQuotaCountsOnlyCapacityTypesInWindow(t *testing.T) {
	checker, sessions := newQuotaFixture(t, 10)
	wednesday := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

	seedTypedSession(t, sessions, "in-week-1", models.TypeMember, wednesday)
	seedTypedSession(t, sessions, "in-week-2", models.TypeTrial, wednesday.Add(2*time.Hour))
	seedTypedSession(t, sessions, "blocker", models.TypeNonBookable, wednesday.Add(4*time.Hour))
	seedTypedSession(t, sessions, "next-week", models.TypeMember, wednesday.AddDate(0, 0, 7))

	status, err := checker.CheckStudioQuota(context.Background(), wednesday)
	if err != nil {
		t.Fatalf("CheckStudioQuota: %v", err)
	}
	if status.CurrentCount != 2 {
		t.Fatalf("CurrentCount = %d, want 2 (non_bookable and next week excluded)", status.CurrentCount)
	}
	if !status.CanBook {
		t.Fatal("2 of 10 must allow booking")
	}
	if status.Tier != models.QuotaTierNominal {
		t.Fatalf("Tier = %s, want nominal", status.Tier)
	}
}

func TestCheckStudioQuotaAtCeiling(t *testing.T) {
	checker, sessions := newQuotaFixture(t, 2)
	wednesday := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	seedTypedSession(t, sessions, "a", models.TypeMember, wednesday)
	seedTypedSession(t, sessions, "b", models.TypeMakeup, wednesday.Add(time.Hour))

	status, err := checker.CheckStudioQuota(context.Background(), wednesday)
	if err != nil {
		t.Fatalf("CheckStudioQuota: %v", err)
	}
	if status.CanBook {
		t.Fatal("count == max must block booking")
	}
	if status.Percentage != 100 || status.Tier != models.QuotaTierCritical {
		t.Fatalf("got %d%% / %s, want 100%% / critical", status.Percentage, status.Tier)
	}
}

func TestCheckStudioQuotaSaturatesOverCeiling(t *testing.T) {
	// The concurrent-booking race can leave count > max; percentage clamps.
	checker, sessions := newQuotaFixture(t, 2)
	wednesday := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		seedTypedSession(t, sessions, id, models.TypeMember, wednesday.Add(time.Duration(i)*time.Hour))
	}

	status, err := checker.CheckStudioQuota(context.Background(), wednesday)
	if err != nil {
		t.Fatalf("CheckStudioQuota: %v", err)
	}
	if status.Percentage != 100 {
		t.Fatalf("Percentage = %d, want saturated 100", status.Percentage)
	}
	if status.CanBook {
		t.Fatal("over-ceiling week must block booking")
	}
}

func TestCheckStudioQuotaZeroCeiling(t *testing.T) {
	checker, _ := newQuotaFixture(t, 0)
	status, err := checker.CheckStudioQuota(context.Background(), time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("CheckStudioQuota: %v", err)
	}
	if status.CanBook || status.Percentage != 100 {
		t.Fatalf("zero ceiling must read as fully booked, got CanBook=%v pct=%d", status.CanBook, status.Percentage)
	}
}

func TestQuotaTiers(t *testing.T) {
	cases := []struct {
		current, max int
		wantTier     string
	}{
		{0, 50, models.QuotaTierNominal},
		{39, 50, models.QuotaTierNominal},  // 78%
		{40, 50, models.QuotaTierWarning},  // 80%
		{47, 50, models.QuotaTierWarning},  // 94%
		{48, 50, models.QuotaTierCritical}, // 96%
		{50, 50, models.QuotaTierCritical},
	}
	for _, tc := range cases {
		if got := quotaTier(quotaPercentage(tc.current, tc.max)); got != tc.wantTier {
			t.Errorf("%d/%d: tier = %s, want %s", tc.current, tc.max, got, tc.wantTier)
		}
	}
}
