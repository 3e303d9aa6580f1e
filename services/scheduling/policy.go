package scheduling

import (
	"fmt"

	"studiofit/models"
)

// PolicyFlags classifies a session type along four independent axes.
type PolicyFlags struct {
	// RequiresMember: the booking must reference an existing member.
	RequiresMember bool
	// CreatesMember: accepting the booking creates a new member record.
	CreatesMember bool
	// BypassesQuota: the booking skips the studio-wide weekly quota check.
	BypassesQuota bool
	// CountsTowardCapacity: the session counts against the weekly quota
	// ceiling once booked.
	CountsTowardCapacity bool
	// RequiredMemberType restricts which kind of member may book, when
	// non-empty.
	RequiredMemberType models.MemberType
}

// policyTable is the single source of truth for session type rules. Every
// component consults Classify; duplicating these flags elsewhere is
// forbidden.
var policyTable = map[models.SessionType]PolicyFlags{
	models.TypeTrial: {
		RequiresMember:       false,
		CreatesMember:        true,
		BypassesQuota:        true,
		CountsTowardCapacity: true,
	},
	models.TypeMember: {
		RequiresMember:       true,
		BypassesQuota:        false,
		CountsTowardCapacity: true,
	},
	models.TypeContractual: {
		RequiresMember:       true,
		BypassesQuota:        true,
		CountsTowardCapacity: true,
		RequiredMemberType:   models.MemberTrial,
	},
	models.TypeMultiSite: {
		// Guest fields are captured inline; no member record involved.
		RequiresMember:       false,
		BypassesQuota:        true,
		CountsTowardCapacity: true,
	},
	models.TypeCollaboration: {
		RequiresMember:       true,
		BypassesQuota:        true,
		CountsTowardCapacity: true,
		RequiredMemberType:   models.MemberCollaboration,
	},
	models.TypeMakeup: {
		RequiresMember:       true,
		BypassesQuota:        true,
		CountsTowardCapacity: true,
	},
	models.TypeNonBookable: {
		RequiresMember:       false,
		BypassesQuota:        true,
		CountsTowardCapacity: false,
	},
}

// Classify returns the policy flags for a session type. The type set is
// closed; passing an unknown type is a programming error, not a runtime
// condition, and panics.
func Classify(t models.SessionType) PolicyFlags {
	flags, ok := policyTable[t]
	if !ok {
		panic(fmt.Sprintf("scheduling: unknown session type %q", t))
	}
	return flags
}

// KnownType reports whether t is one of the seven recognised session types.
// Request validation uses this so unknown types surface as validation errors
// before Classify is ever reached.
func KnownType(t models.SessionType) bool {
	_, ok := policyTable[t]
	return ok
}

// CapacityCountingTypes lists the session types whose bookings count toward
// the weekly studio quota.
func CapacityCountingTypes() []models.SessionType {
	var out []models.SessionType
	for t, flags := range policyTable {
		if flags.CountsTowardCapacity {
			out = append(out, t)
		}
	}
	return out
}
