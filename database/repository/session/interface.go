// File: database/repository/session/interface.go
package sessionRepo

import (
	"context"
	"errors"
	"time"

	"studiofit/models"
)

// Sentinel errors surfaced by repository implementations. The scheduling
// engine maps these onto its caller-facing error taxonomy.
var (
	// ErrNotFound is returned when a referenced session or participant row
	// does not exist.
	ErrNotFound = errors.New("session repository: not found")
	// ErrTxConflict is returned when the per-session transactional unit
	// could not be serialized. The whole operation is safe to retry.
	ErrTxConflict = errors.New("session repository: transaction conflict")
)

// SessionTx is the per-session transactional unit of work. All reads observe
// the row-locked state of exactly one session and its participant rows;
// writes become visible atomically when the enclosing transaction commits.
type SessionTx interface {
	// Session returns the locked session row.
	Session() (*models.Session, error)
	// Participants returns every participant row of the session, in
	// insertion order.
	Participants() ([]models.Participant, error)
	// UpdateSession persists changes to the session row (counter, ceiling,
	// status).
	UpdateSession(s *models.Session) error
	// InsertParticipant persists a new participant row.
	InsertParticipant(p *models.Participant) error
	// UpdateParticipant persists changes to an existing participant row.
	UpdateParticipant(p *models.Participant) error
	// DeleteParticipant physically removes a row. Only the administrative
	// waitlist-removal path uses this; status changes never delete.
	DeleteParticipant(participantID string) error
}

// SessionRepository defines the data access methods used by the scheduling
// engine. Reads outside a transaction observe committed state only.
type SessionRepository interface {
	// GetSession retrieves a session by its unique ID.
	GetSession(ctx context.Context, id string) (*models.Session, error)
	// GetParticipants retrieves the participant rows of a session.
	GetParticipants(ctx context.Context, sessionID string) ([]models.Participant, error)
	// ListByTrainerWindow retrieves non-cancelled sessions for a trainer
	// whose interval intersects the coarse [from, to) window. Exact overlap
	// semantics belong to the conflict checker.
	ListByTrainerWindow(ctx context.Context, trainerID string, from, to time.Time) ([]models.Session, error)
	// CountInWindow counts non-cancelled sessions of the given types whose
	// start time falls inside [from, to] inclusive.
	CountInWindow(ctx context.Context, from, to time.Time, types []models.SessionType) (int, error)
	// CreateSession inserts the session row and runs admit inside the same
	// transaction, so the session and its first participant are either both
	// visible or neither.
	CreateSession(ctx context.Context, s *models.Session, admit func(tx SessionTx) error) error
	// InSessionTx runs fn as a serialized read-modify-write unit scoped to
	// one session. Concurrent units on the same session never interleave;
	// different sessions proceed in parallel.
	InSessionTx(ctx context.Context, sessionID string, fn func(tx SessionTx) error) error
	// DeleteSessionCascade removes a session and all of its participant
	// rows. Only the orchestrator may call this.
	DeleteSessionCascade(ctx context.Context, id string) error
	// ReconcileCounts recomputes current_participants from a fresh confirmed
	// count for every session and repairs any drift, returning the number of
	// sessions fixed.
	ReconcileCounts(ctx context.Context) (int, error)
}
