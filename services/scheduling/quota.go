package scheduling

import (
	"context"
	"fmt"
	"math"
	"time"

	sessionRepo "studiofit/database/repository/session"
	settingsRepo "studiofit/database/repository/settings"
	"studiofit/models"

	"go.uber.org/zap"
)

// QuotaChecker compares the studio-wide committed-session count for a week
// against the administrator-configured ceiling. Reads committed state only:
// two concurrent bookings may both pass the same check and jointly exceed
// the ceiling by one, an accepted race favouring availability.
type QuotaChecker struct {
	Sessions sessionRepo.SessionRepository
	Settings settingsRepo.SettingsRepository
	Logger   *zap.Logger
}

// WeekWindow returns the Monday 00:00:00.000 through Sunday 23:59:59.999
// span containing date, in date's own calendar (not UTC). Sunday carries
// weekday index 0 and maps to an offset of -6 days; every other weekday maps
// to 1 - weekday.
func WeekWindow(date time.Time) (time.Time, time.Time) {
	weekday := int(date.Weekday())
	offset := 1 - weekday
	if weekday == 0 {
		offset = -6
	}
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	monday := midnight.AddDate(0, 0, offset)
	sundayEnd := monday.AddDate(0, 0, 6).
		Add(23*time.Hour + 59*time.Minute + 59*time.Second + 999*time.Millisecond)
	return monday, sundayEnd
}

// CheckStudioQuota reports the quota position for the week containing date.
func (c *QuotaChecker) CheckStudioQuota(ctx context.Context, date time.Time) (*models.QuotaStatus, error) {
	maxAllowed, err := c.Settings.GetWeeklyQuota(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read weekly quota ceiling: %w", err)
	}

	from, to := WeekWindow(date)
	current, err := c.Sessions.CountInWindow(ctx, from, to, CapacityCountingTypes())
	if err != nil {
		return nil, fmt.Errorf("failed to count sessions in week window: %w", err)
	}

	status := &models.QuotaStatus{
		CurrentCount: current,
		MaxAllowed:   maxAllowed,
		CanBook:      current < maxAllowed,
		Percentage:   quotaPercentage(current, maxAllowed),
	}
	status.Tier = quotaTier(status.Percentage)

	if !status.CanBook {
		c.Logger.Info("weekly quota exhausted",
			zap.Int("currentCount", current),
			zap.Int("maxAllowed", maxAllowed),
			zap.Time("weekStart", from))
	}
	return status, nil
}

// quotaPercentage rounds current/max to a whole percentage, saturating at
// 100 when the accepted quota race has pushed the count over the ceiling.
func quotaPercentage(current, max int) int {
	if max <= 0 {
		return 100
	}
	pct := int(math.Round(float64(current) / float64(max) * 100))
	if pct > 100 {
		return 100
	}
	return pct
}

// quotaTier maps a percentage onto the presentation tiers. Display hints
// only; the engine's booking decision is CanBook.
func quotaTier(pct int) string {
	switch {
	case pct >= 95:
		return models.QuotaTierCritical
	case pct >= 80:
		return models.QuotaTierWarning
	default:
		return models.QuotaTierNominal
	}
}
