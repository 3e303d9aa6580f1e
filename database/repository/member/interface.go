// File: database/repository/member/interface.go
package memberRepo

import (
	"context"
	"errors"

	"studiofit/models"
)

// ErrNotFound is returned when no member exists for the given ID.
var ErrNotFound = errors.New("member repository: not found")

// MemberRepository covers the member lookups the booking engine needs:
// existence and type validation, plus creation for trial bookings. Full
// member profile management lives outside the engine.
type MemberRepository interface {
	GetByID(ctx context.Context, id string) (*models.Member, error)
	Create(ctx context.Context, m *models.Member) error
}
