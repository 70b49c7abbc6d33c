package seed

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	docsysSvc "contractpad/internal/domain/services/docsystem"
	"contractpad/internal/repository"
	"contractpad/internal/repository/sqlite"
	"contractpad/internal/service/assist"
	docsysService "contractpad/internal/service/docsystem"
	"contractpad/internal/service/history"
	"contractpad/internal/service/suggestion"
)

func newServices(t *testing.T) (docsysSvc.ProjectService, docsysSvc.DocumentService, *slog.Logger) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tables := repository.NewTableNames("")
	db, err := sqlite.Open(context.Background(), ":memory:", tables)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	repoCfg := &sqlite.RepositoryConfig{DB: db, Tables: tables, Logger: logger}

	projectRepo := sqlite.NewProjectRepository(repoCfg)
	docRepo := sqlite.NewDocumentRepository(repoCfg)
	engine := history.NewEngine(0)
	locks := docsysService.NewDocumentLocks()

	projects := docsysService.NewProjectService(projectRepo, docRepo, engine, locks, logger)
	docs := docsysService.NewDocumentService(docRepo, engine, suggestion.NewApplier(engine, logger),
		locks, docsysService.NewResourceValidator(projectRepo), logger)
	return projects, docs, logger
}

func TestSeedSample_IdempotentAndReviewable(t *testing.T) {
	ctx := context.Background()
	projects, docs, logger := newServices(t)
	seeder := NewSeeder(projects, docs, logger)

	project, err := seeder.SeedSample(ctx)
	require.NoError(t, err)

	again, err := seeder.SeedSample(ctx)
	require.NoError(t, err)
	assert.Equal(t, project.ID, again.ID)

	list, err := docs.ListDocuments(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, list, len(sampleDocuments))

	rules, err := assist.LoadRules("")
	require.NoError(t, err)
	gen := assist.NewRuleGenerator(rules, logger)

	for _, doc := range list {
		if doc.Name != "Vault.sol" {
			continue
		}
		suggestions, err := gen.Generate(ctx, doc.Content, doc.Name)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(suggestions), 4)
	}

	removed, err := seeder.ClearAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
}
