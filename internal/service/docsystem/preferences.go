package docsystem

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"contractpad/internal/config"
	"contractpad/internal/domain"
	models "contractpad/internal/domain/models/docsystem"
	docsysRepo "contractpad/internal/domain/repositories/docsystem"
	docsysSvc "contractpad/internal/domain/services/docsystem"
)

// preferencesService implements the PreferencesService interface
type preferencesService struct {
	prefsRepo docsysRepo.PreferencesRepository
	logger    *slog.Logger
}

// NewPreferencesService creates a new preferences service
func NewPreferencesService(
	prefsRepo docsysRepo.PreferencesRepository,
	logger *slog.Logger,
) docsysSvc.PreferencesService {
	return &preferencesService{
		prefsRepo: prefsRepo,
		logger:    logger,
	}
}

// GetPreferences returns saved preferences, or the defaults if nothing has
// been saved yet
func (s *preferencesService) GetPreferences(ctx context.Context) (*models.Preferences, error) {
	prefs, err := s.prefsRepo.Get(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		s.logger.Debug("no preferences found, returning defaults")
		return models.DefaultPreferences(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	return prefs, nil
}

// UpdatePreferences applies a partial update on top of the current values
func (s *preferencesService) UpdatePreferences(ctx context.Context, req *docsysSvc.UpdatePreferencesRequest) (*models.Preferences, error) {
	if err := validateUpdatePreferences(req); err != nil {
		return nil, domain.Invalid(err)
	}

	prefs, err := s.GetPreferences(ctx)
	if err != nil {
		return nil, err
	}

	if req.Theme != nil {
		prefs.Theme = *req.Theme
	}
	if req.FontSize != nil {
		prefs.FontSize = *req.FontSize
	}
	if req.AutoSave != nil {
		prefs.AutoSave = *req.AutoSave
	}
	prefs.UpdatedAt = time.Now()

	if err := s.prefsRepo.Put(ctx, prefs); err != nil {
		return nil, fmt.Errorf("save preferences: %w", err)
	}

	s.logger.Info("preferences updated",
		"theme", prefs.Theme,
		"font_size", prefs.FontSize,
		"auto_save", prefs.AutoSave,
	)

	return prefs, nil
}

func validateUpdatePreferences(req *docsysSvc.UpdatePreferencesRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Theme,
			validation.NilOrNotEmpty,
			validation.In(models.ThemeLight, models.ThemeDark, models.ThemeSystem),
		),
		validation.Field(&req.FontSize,
			validation.NilOrNotEmpty,
			validation.Min(config.MinFontSize),
			validation.Max(config.MaxFontSize),
		),
	)
}
