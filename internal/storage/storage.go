// Package storage opens the record store selected in the configuration
// and exposes its repositories.
package storage

import (
	"context"
	"log/slog"

	"contractpad/internal/config"
	docsysRepo "contractpad/internal/domain/repositories/docsystem"
	"contractpad/internal/repository"
	"contractpad/internal/repository/postgres"
	"contractpad/internal/repository/sqlite"
)

// Stores holds the repositories of one open backend
type Stores struct {
	Projects    docsysRepo.ProjectRepository
	Documents   docsysRepo.DocumentRepository
	Preferences docsysRepo.PreferencesRepository

	close func() error
}

// Close releases the underlying database handle
func (s *Stores) Close() error {
	return s.close()
}

// Open connects to the configured backend and makes sure its schema exists
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Stores, error) {
	tables := repository.NewTableNames(cfg.TablePrefix)

	if cfg.StorageDriver == config.StoragePostgres {
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
			pool.Close()
			return nil, err
		}
		logger.Info("database connected",
			"driver", cfg.StorageDriver,
			"table_prefix", cfg.TablePrefix,
		)

		repoConfig := &postgres.RepositoryConfig{Pool: pool, Tables: tables, Logger: logger}
		return &Stores{
			Projects:    postgres.NewProjectRepository(repoConfig),
			Documents:   postgres.NewDocumentRepository(repoConfig),
			Preferences: postgres.NewPreferencesRepository(repoConfig),
			close: func() error {
				pool.Close()
				return nil
			},
		}, nil
	}

	db, err := sqlite.Open(ctx, cfg.SQLitePath, tables)
	if err != nil {
		return nil, err
	}
	logger.Info("database opened",
		"driver", cfg.StorageDriver,
		"path", cfg.SQLitePath,
	)

	repoConfig := &sqlite.RepositoryConfig{DB: db, Tables: tables, Logger: logger}
	return &Stores{
		Projects:    sqlite.NewProjectRepository(repoConfig),
		Documents:   sqlite.NewDocumentRepository(repoConfig),
		Preferences: sqlite.NewPreferencesRepository(repoConfig),
		close:       db.Close,
	}, nil
}
