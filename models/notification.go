package models

import "time"

// Notification event kinds emitted by the capacity state machine.
const (
	EventWaitlistAssigned = "waitlist_assigned"
	EventWaitlistPromoted = "waitlist_promoted"
)

// NotificationEvent is an outbound fact handed to the notification
// collaborator. Once emitted it is not owned or retried by the engine.
type NotificationEvent struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId"`
	MemberID  string `json:"memberId,omitempty"`
	Position  int    `json:"position,omitempty"`
}

// Notification is the persisted form of a delivered event, written by the
// background worker.
type Notification struct {
	ID        string    `bson:"id" json:"id"`
	Type      string    `bson:"type" json:"type"`
	SessionID string    `bson:"session_id" json:"sessionId"`
	MemberID  string    `bson:"member_id,omitempty" json:"memberId,omitempty"`
	Position  int       `bson:"position,omitempty" json:"position,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
