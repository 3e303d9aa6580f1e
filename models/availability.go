package models

// AvailabilityResult reports whether a proposed interval is free of conflicts
// on a trainer. It is advisory: the booking flow surfaces conflicts to the
// operator but never blocks on them.
type AvailabilityResult struct {
	Available bool      `json:"available"`
	Conflicts []Session `json:"conflicts"`
	Message   string    `json:"message"`
}
