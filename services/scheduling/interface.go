package scheduling

import (
	"context"
	"time"

	"studiofit/models"
)

// CreateBookingRequest is the caller's input for a new booking. Depending on
// the session type it references an existing member, carries inline guest
// fields, or carries the details of a member to be created (trial).
type CreateBookingRequest struct {
	Type           models.SessionType `json:"type"`
	MemberID       string             `json:"memberId,omitempty"`
	NewMemberName  string             `json:"newMemberName,omitempty"`
	NewMemberPhone string             `json:"newMemberPhone,omitempty"`
	GuestName      string             `json:"guestName,omitempty"`
	GuestPhone     string             `json:"guestPhone,omitempty"`

	TrainerID       string    `json:"trainerId,omitempty"`
	MachineID       string    `json:"machineId"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	MaxParticipants int       `json:"maxParticipants"`
}

// ParticipantRequest adds one participant to an existing session.
type ParticipantRequest struct {
	MemberID       string `json:"memberId,omitempty"`
	NewMemberName  string `json:"newMemberName,omitempty"`
	NewMemberPhone string `json:"newMemberPhone,omitempty"`
	GuestName      string `json:"guestName,omitempty"`
	GuestPhone     string `json:"guestPhone,omitempty"`
}

// BookingResult is the success payload of CreateBooking. Trainer conflicts
// ride along as an advisory, never as a failure.
type BookingResult struct {
	Session     *models.Session            `json:"session"`
	Participant *models.Participant        `json:"participant,omitempty"`
	Advisory    *models.AvailabilityResult `json:"advisory,omitempty"`
}

// StatusChangeResult reports a participant transition together with any
// promotion it triggered.
type StatusChangeResult struct {
	Participant *models.Participant        `json:"participant"`
	Events      []models.NotificationEvent `json:"events,omitempty"`
}

// BookingEngine is the single entry point for every mutation of the session
// store. The caller is trusted to have authorized the request already.
type BookingEngine interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*BookingResult, error)
	AddParticipant(ctx context.Context, sessionID string, req ParticipantRequest) (*StatusChangeResult, error)
	UpdateParticipantStatus(ctx context.Context, sessionID, memberID string, status models.BookingStatus) (*StatusChangeResult, error)
	RemoveWaitlisted(ctx context.Context, sessionID, participantID string) error
	UpdateSessionStatus(ctx context.Context, sessionID string, status models.SessionStatus) error
	ResizeSession(ctx context.Context, sessionID string, maxParticipants int) error
	DeleteSession(ctx context.Context, sessionID string) error

	GetSession(ctx context.Context, sessionID string) (*models.Session, []models.Participant, error)
	CheckAvailability(ctx context.Context, trainerID string, start, end time.Time, excludeSessionID string) *models.AvailabilityResult
	CheckStudioQuota(ctx context.Context, date time.Time) (*models.QuotaStatus, error)
}
