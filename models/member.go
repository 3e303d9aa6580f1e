package models

import "time"

// MemberType records how a member entered the studio's books. Trial members
// are created at trial-booking time and are the only members eligible for
// contractual sessions; collaboration members come from partner studios.
type MemberType string

const (
	MemberTrial         MemberType = "trial"
	MemberRegular       MemberType = "member"
	MemberCollaboration MemberType = "collaboration"
)

// Member is the minimal member record the engine needs for booking
// validation. Profile management proper lives outside the engine.
type Member struct {
	ID        string     `bson:"id" json:"id"`
	Name      string     `bson:"name" json:"name"`
	Phone     string     `bson:"phone,omitempty" json:"phone,omitempty"`
	Type      MemberType `bson:"type" json:"type"`
	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
}
