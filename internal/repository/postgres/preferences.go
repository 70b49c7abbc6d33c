package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"contractpad/internal/domain"
	models "contractpad/internal/domain/models/docsystem"
	docsysRepo "contractpad/internal/domain/repositories/docsystem"
	"contractpad/internal/repository"
)

// PostgresPreferencesRepository stores editor settings in a JSONB record
type PostgresPreferencesRepository struct {
	pool   *pgxpool.Pool
	tables *repository.TableNames
	logger *slog.Logger
}

// NewPreferencesRepository creates a new preferences repository
func NewPreferencesRepository(config *RepositoryConfig) docsysRepo.PreferencesRepository {
	return &PostgresPreferencesRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

func (r *PostgresPreferencesRepository) Get(ctx context.Context) (*models.Preferences, error) {
	query := fmt.Sprintf(`SELECT value, updated_at FROM %s WHERE key = $1`, r.tables.Preferences)

	var raw []byte
	var prefs models.Preferences
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, repository.PreferencesKey).Scan(&raw, &prefs.UpdatedAt)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, domain.NotFound("preferences", repository.PreferencesKey)
		}
		return nil, fmt.Errorf("get preferences: %w", err)
	}

	updatedAt := prefs.UpdatedAt
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return nil, fmt.Errorf("decode preferences: %w", err)
	}
	prefs.UpdatedAt = updatedAt
	return &prefs, nil
}

func (r *PostgresPreferencesRepository) Put(ctx context.Context, prefs *models.Preferences) error {
	value, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (key, value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`, r.tables.Preferences)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, repository.PreferencesKey, value, prefs.UpdatedAt); err != nil {
		return fmt.Errorf("put preferences: %w", err)
	}
	return nil
}
