package scheduling

import (
	"context"
	"fmt"
	"sort"
	"time"

	sessionRepo "studiofit/database/repository/session"
	"studiofit/models"

	"go.uber.org/zap"
)

// AvailabilityChecker reports interval conflicts for a trainer. It is
// advisory: a conflict is information for the operator, never a hard gate,
// so the checker degrades to permissive when it cannot evaluate — with an
// explanatory message and a log line, never silently.
type AvailabilityChecker struct {
	Repo   sessionRepo.SessionRepository
	Logger *zap.Logger
}

// CheckAvailability determines whether the proposed [start, end) interval
// overlaps any existing non-cancelled session for the trainer. Intervals are
// half-open: a session ending exactly when the proposal starts does not
// conflict. excludeSessionID, when non-empty, omits that session from the
// comparison set (editing flow).
func (c *AvailabilityChecker) CheckAvailability(ctx context.Context, trainerID string, start, end time.Time, excludeSessionID string) *models.AvailabilityResult {
	if trainerID == "" {
		return c.permissive("no trainer specified; availability not evaluated")
	}
	if start.IsZero() || end.IsZero() || !end.After(start) {
		return c.permissive(fmt.Sprintf("malformed interval [%s, %s); availability not evaluated",
			start.Format(time.RFC3339), end.Format(time.RFC3339)))
	}

	start = start.UTC()
	end = end.UTC()

	candidates, err := c.Repo.ListByTrainerWindow(ctx, trainerID, start, end)
	if err != nil {
		return c.permissive(fmt.Sprintf("availability check failed: %v", err))
	}

	var conflicts []models.Session
	for _, s := range candidates {
		if s.ID == excludeSessionID {
			continue
		}
		if s.Status == models.SessionCancelled {
			continue
		}
		// Half-open overlap: [s.Start, s.End) ∩ [start, end) is non-empty
		// iff s.Start < end && s.End > start. Equal boundaries never touch.
		if s.StartTime.UTC().Before(end) && s.EndTime.UTC().After(start) {
			conflicts = append(conflicts, s)
		}
	}
	sort.Slice(conflicts, func(i, j int) bool {
		return conflicts[i].StartTime.Before(conflicts[j].StartTime)
	})

	if len(conflicts) == 0 {
		return &models.AvailabilityResult{
			Available: true,
			Conflicts: []models.Session{},
			Message:   "available",
		}
	}
	return &models.AvailabilityResult{
		Available: false,
		Conflicts: conflicts,
		Message:   fmt.Sprintf("%d conflicting session(s) for this trainer", len(conflicts)),
	}
}

// permissive is the degrade path: report available with an explanation
// rather than blocking the operator on an unanswerable question.
func (c *AvailabilityChecker) permissive(reason string) *models.AvailabilityResult {
	c.Logger.Warn("availability check degraded to permissive", zap.String("reason", reason))
	return &models.AvailabilityResult{
		Available: true,
		Conflicts: []models.Session{},
		Message:   reason,
	}
}
