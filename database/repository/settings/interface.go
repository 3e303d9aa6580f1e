// File: database/repository/settings/interface.go
package settingsRepo

import "context"

// SettingsRepository exposes the studio-wide weekly session ceiling. The
// value is administrator-mutable and read on every quota check, so
// implementations are expected to cache it.
type SettingsRepository interface {
	GetWeeklyQuota(ctx context.Context) (int, error)
	SetWeeklyQuota(ctx context.Context, quota int) error
}
