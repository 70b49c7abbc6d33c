package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"contractpad/internal/domain"
	models "contractpad/internal/domain/models/docsystem"
	docsysRepo "contractpad/internal/domain/repositories/docsystem"
	"contractpad/internal/repository"
)

// PreferencesRepository stores editor settings as one JSON record
type PreferencesRepository struct {
	db     *sql.DB
	tables *repository.TableNames
	logger *slog.Logger
}

// NewPreferencesRepository creates a new preferences repository
func NewPreferencesRepository(config *RepositoryConfig) docsysRepo.PreferencesRepository {
	return &PreferencesRepository{
		db:     config.DB,
		tables: config.Tables,
		logger: config.Logger,
	}
}

func (r *PreferencesRepository) Get(ctx context.Context) (*models.Preferences, error) {
	var value, updatedAt string
	query := fmt.Sprintf(`SELECT value, updated_at FROM %s WHERE key = ?`, r.tables.Preferences)

	err := r.db.QueryRowContext(ctx, query, repository.PreferencesKey).Scan(&value, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound("preferences", repository.PreferencesKey)
		}
		return nil, fmt.Errorf("get preferences: %w", err)
	}

	var prefs models.Preferences
	if err := json.Unmarshal([]byte(value), &prefs); err != nil {
		return nil, fmt.Errorf("decode preferences: %w", err)
	}
	if prefs.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &prefs, nil
}

func (r *PreferencesRepository) Put(ctx context.Context, prefs *models.Preferences) error {
	value, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, r.tables.Preferences)

	if _, err := r.db.ExecContext(ctx, query, repository.PreferencesKey, string(value), formatTime(prefs.UpdatedAt)); err != nil {
		return fmt.Errorf("put preferences: %w", err)
	}
	return nil
}
