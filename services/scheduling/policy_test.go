package scheduling

import (
	"testing"

	"studiofit/models"
)

func TestClassifyAxes(t *testing.T) {
	cases := []struct {
		sessionType models.SessionType
		want        PolicyFlags
	}{
		{models.TypeTrial, PolicyFlags{CreatesMember: true, BypassesQuota: true, CountsTowardCapacity: true}},
		{models.TypeMember, PolicyFlags{RequiresMember: true, CountsTowardCapacity: true}},
		{models.TypeContractual, PolicyFlags{RequiresMember: true, BypassesQuota: true, CountsTowardCapacity: true, RequiredMemberType: models.MemberTrial}},
		{models.TypeMultiSite, PolicyFlags{BypassesQuota: true, CountsTowardCapacity: true}},
		{models.TypeCollaboration, PolicyFlags{RequiresMember: true, BypassesQuota: true, CountsTowardCapacity: true, RequiredMemberType: models.MemberCollaboration}},
		{models.TypeMakeup, PolicyFlags{RequiresMember: true, BypassesQuota: true, CountsTowardCapacity: true}},
		{models.TypeNonBookable, PolicyFlags{BypassesQuota: true}},
	}
	for _, tc := range cases {
		got := Classify(tc.sessionType)
		if got != tc.want {
			t.Errorf("Classify(%s) = %+v, want %+v", tc.sessionType, got, tc.want)
		}
	}
}

func TestMemberTypeIsOnlyQuotaBoundType(t *testing.T) {
	for sessionType := range policyTable {
		flags := Classify(sessionType)
		if (sessionType == models.TypeMember) == flags.BypassesQuota {
			t.Errorf("%s: BypassesQuota = %v", sessionType, flags.BypassesQuota)
		}
	}
}

func TestKnownType(t *testing.T) {
	if !KnownType(models.TypeMakeup) {
		t.Error("makeup should be a known type")
	}
	if KnownType("yoga_retreat") {
		t.Error("yoga_retreat should not be a known type")
	}
}

func TestClassifyPanicsOnUnknownType(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown session type")
		}
	}()
	Classify("yoga_retreat")
}

func TestCapacityCountingTypesExcludesNonBookable(t *testing.T) {
	types := CapacityCountingTypes()
	if len(types) != 6 {
		t.Fatalf("expected 6 capacity-counting types, got %d", len(types))
	}
	for _, sessionType := range types {
		if sessionType == models.TypeNonBookable {
			t.Fatal("non_bookable must not count toward the weekly quota")
		}
	}
}
