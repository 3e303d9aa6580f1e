package models

// Quota presentation tiers. Display hints for the caller, not engine
// decisions.
const (
	QuotaTierNominal  = "nominal"
	QuotaTierWarning  = "warning"
	QuotaTierCritical = "critical"
)

// QuotaStatus is the studio-wide weekly booking quota position for the week
// containing a given date.
type QuotaStatus struct {
	CurrentCount int    `json:"currentCount"`
	MaxAllowed   int    `json:"maxAllowed"`
	CanBook      bool   `json:"canBook"`
	Percentage   int    `json:"percentage"`
	Tier         string `json:"tier"`
}
