package scheduling

import (
	"context"
	"errors"
	"time"

	memberRepo "studiofit/database/repository/member"
	sessionRepo "studiofit/database/repository/session"
	"studiofit/models"
	"studiofit/services/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBookingEngine composes the policy table, conflict checker, quota
// checker and capacity machine into the engine's entry point. It is the only
// component that mutates the session store.
type DefaultBookingEngine struct {
	Sessions     sessionRepo.SessionRepository
	Members      memberRepo.MemberRepository
	Availability *AvailabilityChecker
	Quota        *QuotaChecker
	Capacity     *CapacityMachine
	Notifier     notification.Notifier
	Logger       *zap.Logger
}

// CreateBooking validates and commits a new booking as a single atomic unit:
// classify, resolve the member, advisory conflict check, blocking quota
// check, then session + participant creation in one transaction.
func (e *DefaultBookingEngine) CreateBooking(ctx context.Context, req CreateBookingRequest) (*BookingResult, error) {
	if !KnownType(req.Type) {
		return nil, NewValidationError("policy", "unknown session type %q", req.Type)
	}
	flags := Classify(req.Type)

	if req.MachineID == "" {
		return nil, NewValidationError("validation", "machine is required")
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() || !req.EndTime.After(req.StartTime) {
		return nil, NewValidationError("validation", "end time must be strictly after start time")
	}
	if req.MaxParticipants < 1 {
		return nil, NewValidationError("validation", "max participants must be at least 1")
	}

	participant, err := e.resolveParticipant(ctx, flags, ParticipantRequest{
		MemberID:       req.MemberID,
		NewMemberName:  req.NewMemberName,
		NewMemberPhone: req.NewMemberPhone,
		GuestName:      req.GuestName,
		GuestPhone:     req.GuestPhone,
	}, req.Type)
	if err != nil {
		return nil, err
	}

	// Trainer conflicts are surfaced to the operator, never enforced:
	// double-booking a trainer is a business judgment call.
	var advisory *models.AvailabilityResult
	if req.TrainerID != "" {
		advisory = e.Availability.CheckAvailability(ctx, req.TrainerID, req.StartTime, req.EndTime, "")
	}

	if !flags.BypassesQuota {
		quota, err := e.Quota.CheckStudioQuota(ctx, req.StartTime)
		if err != nil {
			return nil, NewConcurrencyError("quota", "quota check unavailable: %v", err)
		}
		if !quota.CanBook {
			return nil, NewCapacityError("quota", "weekly studio quota reached (%d/%d)", quota.CurrentCount, quota.MaxAllowed)
		}
	}

	now := time.Now().UTC()
	session := &models.Session{
		ID:              uuid.New().String(),
		TrainerID:       req.TrainerID,
		MachineID:       req.MachineID,
		StartTime:       req.StartTime.UTC(),
		EndTime:         req.EndTime.UTC(),
		Status:          models.SessionScheduled,
		Type:            req.Type,
		MaxParticipants: req.MaxParticipants,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var event *models.NotificationEvent
	var admit func(tx sessionRepo.SessionTx) error
	if participant != nil {
		admit = func(tx sessionRepo.SessionTx) error {
			var err error
			event, err = e.Capacity.Admit(tx, participant)
			return err
		}
	}
	if err := e.Sessions.CreateSession(ctx, session, admit); err != nil {
		return nil, e.mapRepoError("persist", err)
	}

	if event != nil {
		e.Notifier.Publish(ctx, *event)
	}
	e.Logger.Info("booking created",
		zap.String("sessionId", session.ID),
		zap.String("type", string(session.Type)))

	return &BookingResult{Session: session, Participant: participant, Advisory: advisory}, nil
}

// AddParticipant books one more member (or guest) onto an existing session,
// entering the waitlist when the session is full.
func (e *DefaultBookingEngine) AddParticipant(ctx context.Context, sessionID string, req ParticipantRequest) (*StatusChangeResult, error) {
	session, err := e.Sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, e.mapRepoError("validation", err)
	}
	flags := Classify(session.Type)

	participant, err := e.resolveParticipant(ctx, flags, req, session.Type)
	if err != nil {
		return nil, err
	}
	if participant == nil {
		return nil, NewValidationError("validation", "%s sessions do not take participants", session.Type)
	}

	var event *models.NotificationEvent
	err = e.Sessions.InSessionTx(ctx, sessionID, func(tx sessionRepo.SessionTx) error {
		var err error
		event, err = e.Capacity.Admit(tx, participant)
		return err
	})
	if err != nil {
		return nil, e.mapRepoError("capacity", err)
	}

	result := &StatusChangeResult{Participant: participant}
	if event != nil {
		result.Events = []models.NotificationEvent{*event}
		e.Notifier.Publish(ctx, *event)
	}
	return result, nil
}

// UpdateParticipantStatus runs one state machine transition, including any
// promotion and renumbering it triggers, as a single transactional unit.
func (e *DefaultBookingEngine) UpdateParticipantStatus(ctx context.Context, sessionID, memberID string, status models.BookingStatus) (*StatusChangeResult, error) {
	switch status {
	case models.BookingConfirmed, models.BookingWaitlisted, models.BookingCancelled, models.BookingNoShow:
	default:
		return nil, NewValidationError("validation", "unknown booking status %q", status)
	}
	if memberID == "" {
		return nil, NewValidationError("validation", "member id is required")
	}

	var row *models.Participant
	var events []models.NotificationEvent
	err := e.Sessions.InSessionTx(ctx, sessionID, func(tx sessionRepo.SessionTx) error {
		var err error
		row, events, err = e.Capacity.Transition(tx, memberID, status)
		return err
	})
	if err != nil {
		return nil, e.mapRepoError("capacity", err)
	}

	for _, ev := range events {
		e.Notifier.Publish(ctx, ev)
	}
	return &StatusChangeResult{Participant: row, Events: events}, nil
}

// RemoveWaitlisted administratively deletes a waitlisted row; remaining
// positions close the gap without any promotion.
func (e *DefaultBookingEngine) RemoveWaitlisted(ctx context.Context, sessionID, participantID string) error {
	err := e.Sessions.InSessionTx(ctx, sessionID, func(tx sessionRepo.SessionTx) error {
		return e.Capacity.Remove(tx, participantID)
	})
	return e.mapRepoError("capacity", err)
}

// UpdateSessionStatus advances the session lifecycle monotonically, allowing
// cancellation as a short-circuit.
func (e *DefaultBookingEngine) UpdateSessionStatus(ctx context.Context, sessionID string, status models.SessionStatus) error {
	switch status {
	case models.SessionScheduled, models.SessionInProgress, models.SessionCompleted, models.SessionCancelled:
	default:
		return NewValidationError("validation", "unknown session status %q", status)
	}
	err := e.Sessions.InSessionTx(ctx, sessionID, func(tx sessionRepo.SessionTx) error {
		session, err := tx.Session()
		if err != nil {
			return err
		}
		if !session.CanAdvanceTo(status) {
			return NewValidationError("lifecycle", "session %s cannot move from %s to %s", sessionID, session.Status, status)
		}
		session.Status = status
		return tx.UpdateSession(session)
	})
	return e.mapRepoError("lifecycle", err)
}

// ResizeSession changes the seat ceiling through the capacity machine.
func (e *DefaultBookingEngine) ResizeSession(ctx context.Context, sessionID string, maxParticipants int) error {
	var events []models.NotificationEvent
	err := e.Sessions.InSessionTx(ctx, sessionID, func(tx sessionRepo.SessionTx) error {
		var err error
		events, err = e.Capacity.Resize(tx, maxParticipants)
		return err
	})
	if err != nil {
		return e.mapRepoError("capacity", err)
	}
	for _, ev := range events {
		e.Notifier.Publish(ctx, ev)
	}
	return nil
}

// DeleteSession removes a session and its participant rows. The cascade runs
// only through the orchestrator.
func (e *DefaultBookingEngine) DeleteSession(ctx context.Context, sessionID string) error {
	return e.mapRepoError("persist", e.Sessions.DeleteSessionCascade(ctx, sessionID))
}

func (e *DefaultBookingEngine) GetSession(ctx context.Context, sessionID string) (*models.Session, []models.Participant, error) {
	session, err := e.Sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, e.mapRepoError("read", err)
	}
	participants, err := e.Sessions.GetParticipants(ctx, sessionID)
	if err != nil {
		return nil, nil, e.mapRepoError("read", err)
	}
	return session, participants, nil
}

func (e *DefaultBookingEngine) CheckAvailability(ctx context.Context, trainerID string, start, end time.Time, excludeSessionID string) *models.AvailabilityResult {
	return e.Availability.CheckAvailability(ctx, trainerID, start, end, excludeSessionID)
}

func (e *DefaultBookingEngine) CheckStudioQuota(ctx context.Context, date time.Time) (*models.QuotaStatus, error) {
	return e.Quota.CheckStudioQuota(ctx, date)
}

// resolveParticipant applies the member rules of the policy flags and builds
// the participant row. Returns nil for types that take no participant.
func (e *DefaultBookingEngine) resolveParticipant(ctx context.Context, flags PolicyFlags, req ParticipantRequest, sessionType models.SessionType) (*models.Participant, error) {
	now := time.Now().UTC()
	p := &models.Participant{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	switch {
	case flags.CreatesMember:
		if req.NewMemberName == "" {
			return nil, NewValidationError("validation", "%s bookings require the new member's name", sessionType)
		}
		member := &models.Member{
			ID:        uuid.New().String(),
			Name:      req.NewMemberName,
			Phone:     req.NewMemberPhone,
			Type:      models.MemberTrial,
			CreatedAt: now,
		}
		if err := e.Members.Create(ctx, member); err != nil {
			return nil, NewConcurrencyError("member", "failed to create trial member: %v", err)
		}
		e.Logger.Info("trial member created", zap.String("memberId", member.ID))
		p.MemberID = member.ID

	case flags.RequiresMember:
		if req.MemberID == "" {
			return nil, NewValidationError("validation", "%s bookings require an existing member", sessionType)
		}
		member, err := e.Members.GetByID(ctx, req.MemberID)
		if err != nil {
			if errors.Is(err, memberRepo.ErrNotFound) {
				return nil, NewNotFoundError("validation", "member %s does not exist", req.MemberID)
			}
			return nil, NewConcurrencyError("member", "member lookup failed: %v", err)
		}
		if flags.RequiredMemberType != "" && member.Type != flags.RequiredMemberType {
			return nil, NewValidationError("validation", "%s bookings require a %s member; %s is %s",
				sessionType, flags.RequiredMemberType, member.ID, member.Type)
		}
		p.MemberID = member.ID

	case sessionType == models.TypeMultiSite:
		if req.GuestName == "" {
			return nil, NewValidationError("validation", "multi_site bookings require inline guest details")
		}
		p.GuestName = req.GuestName
		p.GuestPhone = req.GuestPhone

	default:
		// non_bookable blocks time without participants.
		return nil, nil
	}
	return p, nil
}

// mapRepoError resolves repository sentinels onto the caller-facing
// taxonomy. Typed engine errors pass through unchanged.
func (e *DefaultBookingEngine) mapRepoError(step string, err error) error {
	if err == nil {
		return nil
	}
	var ee *EngineError
	if errors.As(err, &ee) {
		return err
	}
	if errors.Is(err, sessionRepo.ErrNotFound) {
		return NewNotFoundError(step, "session or participant does not exist")
	}
	if errors.Is(err, sessionRepo.ErrTxConflict) {
		return NewConcurrencyError(step, "session is contended; retry the operation")
	}
	return err
}
