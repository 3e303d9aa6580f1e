package models

import "time"

// SessionStatus is the lifecycle state of a scheduled training session.
type SessionStatus string

const (
	SessionScheduled  SessionStatus = "scheduled"
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
	SessionCancelled  SessionStatus = "cancelled"
)

// SessionType is one of the seven booking categories recognised by the studio.
type SessionType string

const (
	TypeTrial         SessionType = "trial"
	TypeMember        SessionType = "member"
	TypeContractual   SessionType = "contractual"
	TypeMultiSite     SessionType = "multi_site"
	TypeCollaboration SessionType = "collaboration"
	TypeMakeup        SessionType = "makeup"
	TypeNonBookable   SessionType = "non_bookable"
)

// Session represents a scheduled block of time bound to one machine slot and,
// optionally, one trainer. Times are stored UTC-normalized; `[start, end)` is
// half-open for conflict purposes.
type Session struct {
	ID                  string        `bson:"id" json:"id"`
	TrainerID           string        `bson:"trainer_id,omitempty" json:"trainerId,omitempty"`
	MachineID           string        `bson:"machine_id" json:"machineId"`
	StartTime           time.Time     `bson:"start_time" json:"startTime"`
	EndTime             time.Time     `bson:"end_time" json:"endTime"`
	Status              SessionStatus `bson:"status" json:"status"`
	Type                SessionType   `bson:"type" json:"type"`
	MaxParticipants     int           `bson:"max_participants" json:"maxParticipants"`
	CurrentParticipants int           `bson:"current_participants" json:"currentParticipants"`
	// Version guards the per-session read-modify-write unit of work.
	Version   int       `bson:"version" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// lifecycleRank orders the monotonic part of the session lifecycle.
var lifecycleRank = map[SessionStatus]int{
	SessionScheduled:  0,
	SessionInProgress: 1,
	SessionCompleted:  2,
}

// CanAdvanceTo reports whether the session status may move to next. The
// lifecycle advances monotonically scheduled → in_progress → completed, with
// cancellation allowed as a short-circuit from any non-terminal state.
func (s *Session) CanAdvanceTo(next SessionStatus) bool {
	if s.Status == SessionCompleted || s.Status == SessionCancelled {
		return false
	}
	if next == SessionCancelled {
		return true
	}
	cur, ok := lifecycleRank[s.Status]
	if !ok {
		return false
	}
	nxt, ok := lifecycleRank[next]
	if !ok {
		return false
	}
	return nxt > cur
}
