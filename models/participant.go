package models

import "time"

// BookingStatus is the state of one participant's booking on a session.
type BookingStatus string

const (
	BookingConfirmed  BookingStatus = "confirmed"
	BookingWaitlisted BookingStatus = "waitlisted"
	BookingCancelled  BookingStatus = "cancelled"
	BookingNoShow     BookingStatus = "no_show"
)

// Terminal reports whether the status admits no further transitions.
func (s BookingStatus) Terminal() bool {
	return s == BookingCancelled || s == BookingNoShow
}

// Participant links one member (or inline guest) to one session. Rows are
// never physically deleted on cancellation; the status transition preserves
// history. WaitlistPosition is 0 unless the row is currently waitlisted, in
// which case positions for a session form a contiguous 1..k sequence.
type Participant struct {
	ID               string        `bson:"id" json:"id"`
	SessionID        string        `bson:"session_id" json:"sessionId"`
	MemberID         string        `bson:"member_id,omitempty" json:"memberId,omitempty"`
	GuestName        string        `bson:"guest_name,omitempty" json:"guestName,omitempty"`
	GuestPhone       string        `bson:"guest_phone,omitempty" json:"guestPhone,omitempty"`
	Status           BookingStatus `bson:"status" json:"status"`
	WaitlistPosition int           `bson:"waitlist_position,omitempty" json:"waitlistPosition,omitempty"`
	CreatedAt        time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time     `bson:"updated_at" json:"updatedAt"`
}

// Active reports whether the row currently occupies a seat or a waitlist slot.
func (p *Participant) Active() bool {
	return p.Status == BookingConfirmed || p.Status == BookingWaitlisted
}
