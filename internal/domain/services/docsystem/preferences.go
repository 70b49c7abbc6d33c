package docsystem

import (
	"context"

	"contractpad/internal/domain/models/docsystem"
)

// PreferencesService reads and updates editor settings
type PreferencesService interface {
	GetPreferences(ctx context.Context) (*docsystem.Preferences, error)
	UpdatePreferences(ctx context.Context, req *UpdatePreferencesRequest) (*docsystem.Preferences, error)
}

// UpdatePreferencesRequest is a partial update; nil fields are left alone
type UpdatePreferencesRequest struct {
	Theme    *string `json:"theme,omitempty"`
	FontSize *int    `json:"font_size,omitempty"`
	AutoSave *bool   `json:"auto_save,omitempty"`
}
