package sqlite

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contractpad/internal/domain"
	models "contractpad/internal/domain/models/docsystem"
	"contractpad/internal/repository"
)

func newTestConfig(t *testing.T) *RepositoryConfig {
	t.Helper()
	tables := repository.NewTableNames("test_")
	db, err := Open(context.Background(), ":memory:", tables)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &RepositoryConfig{
		DB:     db,
		Tables: tables,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func seedProject(t *testing.T, cfg *RepositoryConfig, id, name string) *models.Project {
	t.Helper()
	now := time.Now()
	project := &models.Project{ID: id, Name: name, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, NewProjectRepository(cfg).Create(context.Background(), project))
	return project
}

func TestDocumentRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	cfg := newTestConfig(t)
	seedProject(t, cfg, "p1", "Vault")
	repo := NewDocumentRepository(cfg)

	created := time.Date(2026, 3, 1, 12, 30, 0, 123456789, time.UTC)
	content := "contract Vault {\r\n\t// ünïcode ✓\n}\n"
	doc := &models.Document{
		ID:           "d1",
		ProjectID:    "p1",
		Name:         "Vault.sol",
		Path:         "/contracts/Vault.sol",
		Kind:         models.KindSolidity,
		Content:      content,
		IsModified:   true,
		CreatedAt:    created,
		UpdatedAt:    created,
		SavedContent: "contract Vault {}\n",
	}
	require.NoError(t, repo.Create(ctx, doc))

	loaded, err := repo.GetByID(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, content, loaded.Content, "content must round-trip byte for byte")
	assert.True(t, loaded.IsModified)
	assert.Equal(t, "contract Vault {}\n", loaded.SavedContent)
	assert.True(t, created.Equal(loaded.CreatedAt))
	assert.Equal(t, models.KindSolidity, loaded.Kind)

	loaded.Content = "contract Vault {}\n"
	loaded.IsModified = false
	loaded.UpdatedAt = created.Add(time.Minute)
	require.NoError(t, repo.Save(ctx, loaded))

	again, err := repo.GetByID(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "contract Vault {}\n", again.Content)
	assert.False(t, again.IsModified)
	assert.True(t, loaded.UpdatedAt.Equal(again.UpdatedAt))
}

func TestDocumentRepository_NotFoundAndConflict(t *testing.T) {
	ctx := context.Background()
	cfg := newTestConfig(t)
	seedProject(t, cfg, "p1", "Vault")
	repo := NewDocumentRepository(cfg)

	_, err := repo.GetByID(ctx, "nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	err = repo.Save(ctx, &models.Document{ID: "nope"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	assert.True(t, errors.Is(repo.Delete(ctx, "nope"), domain.ErrNotFound))

	now := time.Now()
	first := &models.Document{ID: "d1", ProjectID: "p1", Name: "A.sol", Path: "/A.sol", Kind: models.KindSolidity, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(ctx, first))

	dup := *first
	dup.ID = "d2"
	err = repo.Create(ctx, &dup)
	var conflict *domain.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "d1", conflict.ResourceID)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestDocumentRepository_ListAndDeleteByProject(t *testing.T) {
	ctx := context.Background()
	cfg := newTestConfig(t)
	seedProject(t, cfg, "p1", "Vault")
	seedProject(t, cfg, "p2", "Token")
	repo := NewDocumentRepository(cfg)

	now := time.Now()
	for _, d := range []models.Document{
		{ID: "b", ProjectID: "p1", Name: "B.sol", Path: "/B.sol"},
		{ID: "a", ProjectID: "p1", Name: "A.sol", Path: "/A.sol"},
		{ID: "c", ProjectID: "p2", Name: "C.sol", Path: "/C.sol"},
	} {
		d.Kind = models.KindSolidity
		d.CreatedAt, d.UpdatedAt = now, now
		require.NoError(t, repo.Create(ctx, &d))
	}

	docs, err := repo.ListByProject(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "/A.sol", docs[0].Path)

	ids, err := repo.DeleteAllByProject(ctx, "p1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, ids)

	docs, err = repo.ListByProject(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, docs)

	docs, err = repo.ListByProject(ctx, "p2")
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestProjectRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	cfg := newTestConfig(t)
	repo := NewProjectRepository(cfg)

	project := seedProject(t, cfg, "p1", "Vault")

	err := repo.Create(ctx, &models.Project{ID: "p2", Name: "Vault", CreatedAt: time.Now(), UpdatedAt: time.Now()})
	assert.True(t, errors.Is(err, domain.ErrConflict))

	project.Description = "multisig vault"
	project.UpdatedAt = time.Now()
	require.NoError(t, repo.Update(ctx, project))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "multisig vault", got.Description)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, "p1"))
	_, err = repo.GetByID(ctx, "p1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestPreferencesRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPreferencesRepository(newTestConfig(t))

	_, err := repo.Get(ctx)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	prefs := &models.Preferences{Theme: models.ThemeDark, FontSize: 16, AutoSave: true, UpdatedAt: time.Now()}
	require.NoError(t, repo.Put(ctx, prefs))

	prefs.FontSize = 18
	require.NoError(t, repo.Put(ctx, prefs))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, got.Theme)
	assert.Equal(t, 18, got.FontSize)
	assert.True(t, got.AutoSave)
}
