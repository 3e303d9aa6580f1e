package sessionRepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"studiofit/models"
)

func newTestSession(id string) *models.Session {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	return &models.Session{
		ID:              id,
		MachineID:       "machine-1",
		StartTime:       start,
		EndTime:         start.Add(time.Hour),
		Status:          models.SessionScheduled,
		Type:            models.TypeMember,
		MaxParticipants: 2,
	}
}

func TestCreateSessionRollsBackWhenAdmitFails(t *testing.T) {
	repo := NewMemorySessionRepo()
	admitErr := errors.New("admission refused")

	err := repo.CreateSession(context.Background(), newTestSession("s1"), func(tx SessionTx) error {
		if err := tx.InsertParticipant(&models.Participant{ID: "p1", MemberID: "m1"}); err != nil {
			return err
		}
		return admitErr
	})
	if !errors.Is(err, admitErr) {
		t.Fatalf("err = %v, want admit error", err)
	}

	// Neither the session nor the staged participant became visible.
	if _, err := repo.GetSession(context.Background(), "s1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("session lookup after rollback: err = %v, want ErrNotFound", err)
	}
}

func TestCreateSessionCommitsSessionAndParticipantTogether(t *testing.T) {
	repo := NewMemorySessionRepo()

	err := repo.CreateSession(context.Background(), newTestSession("s1"), func(tx SessionTx) error {
		s, err := tx.Session()
		if err != nil {
			return err
		}
		s.CurrentParticipants = 1
		if err := tx.UpdateSession(s); err != nil {
			return err
		}
		return tx.InsertParticipant(&models.Participant{ID: "p1", MemberID: "m1", Status: models.BookingConfirmed})
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	session, err := repo.GetSession(context.Background(), "s1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if session.CurrentParticipants != 1 {
		t.Fatalf("current_participants = %d, want 1", session.CurrentParticipants)
	}
	participants, err := repo.GetParticipants(context.Background(), "s1")
	if err != nil {
		t.Fatalf("GetParticipants: %v", err)
	}
	if len(participants) != 1 || participants[0].ID != "p1" {
		t.Fatalf("participants = %+v, want [p1]", participants)
	}
}

func TestInSessionTxDiscardsStagedWritesOnError(t *testing.T) {
	repo := NewMemorySessionRepo()
	if err := repo.CreateSession(context.Background(), newTestSession("s1"), nil); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	boom := errors.New("unit of work failed")
	err := repo.InSessionTx(context.Background(), "s1", func(tx SessionTx) error {
		s, err := tx.Session()
		if err != nil {
			return err
		}
		s.MaxParticipants = 99
		if err := tx.UpdateSession(s); err != nil {
			return err
		}
		if err := tx.InsertParticipant(&models.Participant{ID: "p1", MemberID: "m1"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want staged error", err)
	}

	session, err := repo.GetSession(context.Background(), "s1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if session.MaxParticipants != 2 || session.Version != 0 {
		t.Fatalf("session = %+v, want untouched state", session)
	}
	participants, _ := repo.GetParticipants(context.Background(), "s1")
	if len(participants) != 0 {
		t.Fatalf("participants = %+v, want none", participants)
	}
}

func TestInSessionTxBumpsVersionOnCommit(t *testing.T) {
	repo := NewMemorySessionRepo()
	if err := repo.CreateSession(context.Background(), newTestSession("s1"), nil); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	for i := 0; i < 3; i++ {
		err := repo.InSessionTx(context.Background(), "s1", func(tx SessionTx) error { return nil })
		if err != nil {
			t.Fatalf("InSessionTx: %v", err)
		}
	}
	session, err := repo.GetSession(context.Background(), "s1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if session.Version != 3 {
		t.Fatalf("version = %d, want 3", session.Version)
	}

	if err := repo.InSessionTx(context.Background(), "missing", func(tx SessionTx) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown session: err = %v, want ErrNotFound", err)
	}
}

func TestDeleteSessionCascadeRemovesParticipants(t *testing.T) {
	repo := NewMemorySessionRepo()
	err := repo.CreateSession(context.Background(), newTestSession("s1"), func(tx SessionTx) error {
		return tx.InsertParticipant(&models.Participant{ID: "p1", MemberID: "m1", Status: models.BookingConfirmed})
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if err := repo.DeleteSessionCascade(context.Background(), "s1"); err != nil {
		t.Fatalf("DeleteSessionCascade: %v", err)
	}
	if _, err := repo.GetParticipants(context.Background(), "s1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("participants after cascade: err = %v, want ErrNotFound", err)
	}
	if err := repo.DeleteSessionCascade(context.Background(), "s1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double cascade: err = %v, want ErrNotFound", err)
	}
}

func TestReconcileCountsRepairsDrift(t *testing.T) {
	repo := NewMemorySessionRepo()
	err := repo.CreateSession(context.Background(), newTestSession("s1"), func(tx SessionTx) error {
		s, err := tx.Session()
		if err != nil {
			return err
		}
		s.CurrentParticipants = 5 // drifted counter
		if err := tx.UpdateSession(s); err != nil {
			return err
		}
		return tx.InsertParticipant(&models.Participant{ID: "p1", MemberID: "m1", Status: models.BookingConfirmed})
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	fixed, err := repo.ReconcileCounts(context.Background())
	if err != nil {
		t.Fatalf("ReconcileCounts: %v", err)
	}
	if fixed != 1 {
		t.Fatalf("fixed = %d, want 1", fixed)
	}
	session, _ := repo.GetSession(context.Background(), "s1")
	if session.CurrentParticipants != 1 {
		t.Fatalf("current_participants = %d, want reconciled 1", session.CurrentParticipants)
	}

	// A second pass finds nothing to repair.
	fixed, err = repo.ReconcileCounts(context.Background())
	if err != nil || fixed != 0 {
		t.Fatalf("second pass: fixed = %d err = %v, want 0/nil", fixed, err)
	}
}
