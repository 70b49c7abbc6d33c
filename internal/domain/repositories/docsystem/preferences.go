package docsystem

import (
	"context"

	"contractpad/internal/domain/models/docsystem"
)

// PreferencesRepository persists editor settings as a single keyed record
type PreferencesRepository interface {
	// Get returns domain.ErrNotFound if nothing has been saved yet
	Get(ctx context.Context) (*docsystem.Preferences, error)
	Put(ctx context.Context, prefs *docsystem.Preferences) error
}
