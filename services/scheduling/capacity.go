package scheduling

import (
	sessionRepo "studiofit/database/repository/session"
	"studiofit/models"

	"go.uber.org/zap"
)

// CapacityMachine owns the booking-status lifecycle of every participant row:
// seat ceiling enforcement, waitlist position assignment and renumbering, and
// promotion when a seat is vacated. It is the only writer of
// current_participants; the counter equals a fresh confirmed count after
// every operation. All methods run inside the caller's per-session
// transactional unit and are never invoked concurrently for one session.
type CapacityMachine struct {
	Logger *zap.Logger
}

// Admit creates the participant row for a new booking, confirming it while a
// seat is free and waitlisting it otherwise. Returns the waitlist-assignment
// event when one must be emitted after commit.
func (m *CapacityMachine) Admit(tx sessionRepo.SessionTx, p *models.Participant) (*models.NotificationEvent, error) {
	session, err := tx.Session()
	if err != nil {
		return nil, err
	}
	if session.Status == models.SessionCancelled || session.Status == models.SessionCompleted {
		return nil, NewValidationError("capacity", "session %s is %s and not open for booking", session.ID, session.Status)
	}

	participants, err := tx.Participants()
	if err != nil {
		return nil, err
	}
	if p.MemberID != "" {
		for _, existing := range participants {
			if existing.MemberID == p.MemberID && existing.Active() {
				return nil, NewValidationError("capacity", "member %s already has an active booking on session %s", p.MemberID, session.ID)
			}
		}
	}

	p.SessionID = session.ID
	if session.CurrentParticipants < session.MaxParticipants {
		p.Status = models.BookingConfirmed
		p.WaitlistPosition = 0
		session.CurrentParticipants++
		if err := tx.InsertParticipant(p); err != nil {
			return nil, err
		}
		if err := tx.UpdateSession(session); err != nil {
			return nil, err
		}
		return nil, nil
	}

	maxPos := 0
	for _, existing := range participants {
		if existing.Status == models.BookingWaitlisted && existing.WaitlistPosition > maxPos {
			maxPos = existing.WaitlistPosition
		}
	}
	p.Status = models.BookingWaitlisted
	p.WaitlistPosition = maxPos + 1
	if err := tx.InsertParticipant(p); err != nil {
		return nil, err
	}

	m.Logger.Info("participant waitlisted",
		zap.String("sessionId", session.ID),
		zap.String("memberId", p.MemberID),
		zap.Int("position", p.WaitlistPosition))
	return &models.NotificationEvent{
		Type:      models.EventWaitlistAssigned,
		SessionID: session.ID,
		MemberID:  p.MemberID,
		Position:  p.WaitlistPosition,
	}, nil
}

// Transition moves the member's active booking to newStatus and applies the
// resulting counter changes, promotion and renumbering as one unit.
func (m *CapacityMachine) Transition(tx sessionRepo.SessionTx, memberID string, newStatus models.BookingStatus) (*models.Participant, []models.NotificationEvent, error) {
	session, err := tx.Session()
	if err != nil {
		return nil, nil, err
	}
	participants, err := tx.Participants()
	if err != nil {
		return nil, nil, err
	}

	row := findActiveByMember(participants, memberID)
	if row == nil {
		for _, existing := range participants {
			if existing.MemberID == memberID {
				return nil, nil, NewValidationError("capacity", "member %s has no active booking on session %s", memberID, session.ID)
			}
		}
		return nil, nil, NewNotFoundError("capacity", "member %s is not a participant of session %s", memberID, session.ID)
	}

	switch row.Status {
	case models.BookingConfirmed:
		if !newStatus.Terminal() {
			return nil, nil, NewValidationError("capacity", "confirmed booking may only move to cancelled or no_show, not %s", newStatus)
		}
		row.Status = newStatus
		session.CurrentParticipants--
		if err := tx.UpdateParticipant(row); err != nil {
			return nil, nil, err
		}
		events, err := m.promote(tx, session, participants)
		if err != nil {
			return nil, nil, err
		}
		if err := tx.UpdateSession(session); err != nil {
			return nil, nil, err
		}
		return row, events, nil

	case models.BookingWaitlisted:
		switch newStatus {
		case models.BookingCancelled:
			freed := row.WaitlistPosition
			row.Status = models.BookingCancelled
			row.WaitlistPosition = 0
			if err := tx.UpdateParticipant(row); err != nil {
				return nil, nil, err
			}
			if err := renumberAfter(tx, participants, row.ID, freed); err != nil {
				return nil, nil, err
			}
			return row, nil, nil

		case models.BookingConfirmed:
			// Operator queue-jump: permitted only while a seat is free.
			if session.CurrentParticipants >= session.MaxParticipants {
				return nil, nil, NewValidationError("capacity", "session %s is full; waitlisted booking cannot be confirmed", session.ID)
			}
			freed := row.WaitlistPosition
			row.Status = models.BookingConfirmed
			row.WaitlistPosition = 0
			session.CurrentParticipants++
			if err := tx.UpdateParticipant(row); err != nil {
				return nil, nil, err
			}
			if err := renumberAfter(tx, participants, row.ID, freed); err != nil {
				return nil, nil, err
			}
			if err := tx.UpdateSession(session); err != nil {
				return nil, nil, err
			}
			return row, nil, nil

		default:
			return nil, nil, NewValidationError("capacity", "waitlisted booking may only move to cancelled or confirmed, not %s", newStatus)
		}

	default:
		return nil, nil, NewValidationError("capacity", "booking in terminal status %s cannot transition", row.Status)
	}
}

// Remove administratively deletes a waitlisted row outright. Later positions
// close the gap; no promotion occurs because no seat was freed.
func (m *CapacityMachine) Remove(tx sessionRepo.SessionTx, participantID string) error {
	participants, err := tx.Participants()
	if err != nil {
		return err
	}
	var row *models.Participant
	for i := range participants {
		if participants[i].ID == participantID {
			row = &participants[i]
			break
		}
	}
	if row == nil {
		return NewNotFoundError("capacity", "participant %s does not exist", participantID)
	}
	if row.Status != models.BookingWaitlisted {
		return NewValidationError("capacity", "only waitlisted rows may be removed; participant %s is %s", participantID, row.Status)
	}
	freed := row.WaitlistPosition
	if err := tx.DeleteParticipant(participantID); err != nil {
		return err
	}
	return renumberAfter(tx, participants, participantID, freed)
}

// Resize changes the seat ceiling. Lowering never demotes confirmed rows:
// the session simply confirms nothing new until the count drains back under
// the ceiling. Raising frees seats and promotes waitlisted rows in position
// order.
func (m *CapacityMachine) Resize(tx sessionRepo.SessionTx, maxParticipants int) ([]models.NotificationEvent, error) {
	if maxParticipants < 1 {
		return nil, NewValidationError("capacity", "max participants must be at least 1, got %d", maxParticipants)
	}
	session, err := tx.Session()
	if err != nil {
		return nil, err
	}
	if session.MaxParticipants == maxParticipants {
		return nil, nil
	}
	lowered := maxParticipants < session.MaxParticipants
	session.MaxParticipants = maxParticipants
	if lowered && session.CurrentParticipants > maxParticipants {
		m.Logger.Warn("seat ceiling lowered below confirmed count; confirmed rows retained",
			zap.String("sessionId", session.ID),
			zap.Int("confirmed", session.CurrentParticipants),
			zap.Int("ceiling", maxParticipants))
	}

	var events []models.NotificationEvent
	if !lowered {
		participants, err := tx.Participants()
		if err != nil {
			return nil, err
		}
		events, err = m.promoteAll(tx, session, participants)
		if err != nil {
			return nil, err
		}
	}
	if err := tx.UpdateSession(session); err != nil {
		return nil, err
	}
	return events, nil
}

// promote fills at most one vacated seat from the waitlist. The lowered
// ceiling edge case is covered by the count check: while the session remains
// over its ceiling nothing is promoted.
func (m *CapacityMachine) promote(tx sessionRepo.SessionTx, session *models.Session, participants []models.Participant) ([]models.NotificationEvent, error) {
	if session.CurrentParticipants >= session.MaxParticipants {
		return nil, nil
	}
	next := lowestWaitlisted(participants)
	if next == nil {
		return nil, nil
	}

	freed := next.WaitlistPosition
	next.Status = models.BookingConfirmed
	next.WaitlistPosition = 0
	session.CurrentParticipants++
	if err := tx.UpdateParticipant(next); err != nil {
		return nil, err
	}
	if err := renumberAfter(tx, participants, next.ID, freed); err != nil {
		return nil, err
	}

	m.Logger.Info("participant promoted from waitlist",
		zap.String("sessionId", session.ID),
		zap.String("memberId", next.MemberID))
	return []models.NotificationEvent{{
		Type:      models.EventWaitlistPromoted,
		SessionID: session.ID,
		MemberID:  next.MemberID,
	}}, nil
}

// promoteAll drains the waitlist into newly freed seats, in position order.
func (m *CapacityMachine) promoteAll(tx sessionRepo.SessionTx, session *models.Session, participants []models.Participant) ([]models.NotificationEvent, error) {
	var events []models.NotificationEvent
	for session.CurrentParticipants < session.MaxParticipants {
		batch, err := m.promote(tx, session, participants)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}
		events = append(events, batch...)
	}
	return events, nil
}

// renumberAfter closes the gap left at freedPosition: every waitlisted row
// other than movedID holding a higher position slides down by one, keeping
// positions a contiguous 1..k sequence.
func renumberAfter(tx sessionRepo.SessionTx, participants []models.Participant, movedID string, freedPosition int) error {
	if freedPosition <= 0 {
		return nil
	}
	for i := range participants {
		p := &participants[i]
		if p.ID == movedID || p.Status != models.BookingWaitlisted {
			continue
		}
		if p.WaitlistPosition > freedPosition {
			p.WaitlistPosition--
			if err := tx.UpdateParticipant(p); err != nil {
				return err
			}
		}
	}
	return nil
}

func findActiveByMember(participants []models.Participant, memberID string) *models.Participant {
	for i := range participants {
		if participants[i].MemberID == memberID && participants[i].Active() {
			return &participants[i]
		}
	}
	return nil
}

func lowestWaitlisted(participants []models.Participant) *models.Participant {
	var next *models.Participant
	for i := range participants {
		p := &participants[i]
		if p.Status != models.BookingWaitlisted {
			continue
		}
		if next == nil || p.WaitlistPosition < next.WaitlistPosition {
			next = p
		}
	}
	return next
}
