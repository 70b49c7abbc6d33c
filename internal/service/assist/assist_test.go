package assist

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contractpad/internal/domain"
	"contractpad/internal/domain/models/docsystem"
	"contractpad/internal/domain/models/editing"
	docsysRepo "contractpad/internal/domain/repositories/docsystem"
	assistSvc "contractpad/internal/domain/services/assist"
	docsysSvc "contractpad/internal/domain/services/docsystem"
	"contractpad/internal/repository"
	"contractpad/internal/repository/sqlite"
	docsysService "contractpad/internal/service/docsystem"
	"contractpad/internal/service/history"
	"contractpad/internal/service/suggestion"
)

const vault = `// SPDX-License-Identifier: MIT
pragma solidity ^0.8.20;

contract Vault {
    address owner;

    function withdraw() public {
        require(tx.origin == owner);
    }
}
`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// switchableDocs lets a test make every Save fail
type switchableDocs struct {
	docsysRepo.DocumentRepository
	failSave bool
}

func (d *switchableDocs) Save(ctx context.Context, doc *docsystem.Document) error {
	if d.failSave {
		return errors.New("disk full")
	}
	return d.DocumentRepository.Save(ctx, doc)
}

type testEnv struct {
	history     *history.Engine
	pending     *suggestion.PendingSet
	docRepo     *switchableDocs
	docs        docsysSvc.DocumentService
	chat        assistSvc.ChatService
	suggestions assistSvc.SuggestionService
	projectID   string
}

func newTestEnv(t *testing.T, generator assistSvc.Generator) *testEnv {
	t.Helper()
	ctx := context.Background()
	logger := testLogger()

	tables := repository.NewTableNames("")
	db, err := sqlite.Open(ctx, ":memory:", tables)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	repoCfg := &sqlite.RepositoryConfig{DB: db, Tables: tables, Logger: logger}

	projectRepo := sqlite.NewProjectRepository(repoCfg)
	docRepo := &switchableDocs{DocumentRepository: sqlite.NewDocumentRepository(repoCfg)}
	engine := history.NewEngine(0)
	applier := suggestion.NewApplier(engine, logger)
	pending := suggestion.NewPendingSet()
	locks := docsysService.NewDocumentLocks()
	validator := docsysService.NewResourceValidator(projectRepo)

	if generator == nil {
		rules, err := LoadRules("")
		require.NoError(t, err)
		generator = NewRuleGenerator(rules, logger)
	}

	projects := docsysService.NewProjectService(projectRepo, docRepo, engine, locks, logger)
	project, err := projects.CreateProject(ctx, &docsysSvc.CreateProjectRequest{Name: "Vault"})
	require.NoError(t, err)

	return &testEnv{
		history:     engine,
		pending:     pending,
		docRepo:     docRepo,
		docs:        docsysService.NewDocumentService(docRepo, engine, applier, locks, validator, logger),
		chat:        NewChatService(docRepo, generator, pending, validator, logger),
		suggestions: NewSuggestionService(docRepo, applier, pending, locks, logger),
		projectID:   project.ID,
	}
}

func (e *testEnv) document(t *testing.T, name, content string) *docsystem.Document {
	t.Helper()
	doc, err := e.docs.CreateDocument(context.Background(), &docsysSvc.CreateDocumentRequest{
		ProjectID: e.projectID,
		Name:      name,
		Content:   &content,
	})
	require.NoError(t, err)
	return doc
}

func (e *testEnv) session(t *testing.T) string {
	t.Helper()
	session, err := e.chat.CreateSession(context.Background(), &assistSvc.CreateSessionRequest{ProjectID: e.projectID})
	require.NoError(t, err)
	return session.ID
}

type failingGenerator struct{}

func (failingGenerator) Generate(context.Context, string, string) ([]editing.Suggestion, error) {
	return nil, errors.New("model unavailable")
}

func TestLoadRules_Embedded(t *testing.T) {
	rules, err := LoadRules("")
	require.NoError(t, err)
	require.NotEmpty(t, rules)

	ids := map[string]bool{}
	for _, r := range rules {
		ids[r.ID] = true
	}
	assert.True(t, ids["tx-origin-auth"])
	assert.True(t, ids["prefix-increment"])
}

func TestParseRules_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "missing id", yaml: "rules:\n  - find: a\n    replace: b\n"},
		{name: "missing find", yaml: "rules:\n  - id: x\n    replace: b\n"},
		{name: "duplicate id", yaml: "rules:\n  - id: x\n    find: a\n  - id: x\n    find: b\n"},
		{name: "not yaml", yaml: "rules: [unclosed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRules([]byte(tt.yaml), "test")
			assert.Error(t, err)
		})
	}
}

func TestRuleGenerator_Generate(t *testing.T) {
	rules, err := LoadRules("")
	require.NoError(t, err)
	gen := NewRuleGenerator(rules, testLogger())

	suggestions, err := gen.Generate(context.Background(), vault, "Vault.sol")
	require.NoError(t, err)

	titles := make([]string, len(suggestions))
	for i, s := range suggestions {
		titles[i] = s.Title
		require.NoError(t, suggestion.Validate(&s))
	}
	assert.Equal(t, []string{"Authorize with msg.sender", "Pin the compiler version"}, titles)

	// Solidity-only rules never fire on other kinds
	suggestions, err = gen.Generate(context.Background(), vault, "vault.txt")
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestRuleGenerator_DropsInvalid(t *testing.T) {
	rules := []Rule{
		{ID: "noop", Title: "No-op", Category: editing.CategoryStyle, Impact: editing.ImpactLow, Find: "a", Replace: "a"},
		{ID: "bad-category", Title: "Odd", Category: "vibes", Impact: editing.ImpactLow, Find: "a", Replace: "b"},
		{ID: "ok", Title: "Fine", Category: editing.CategoryStyle, Impact: editing.ImpactLow, Confidence: 0.5, Find: "a", Replace: "b"},
	}
	gen := NewRuleGenerator(rules, testLogger())

	suggestions, err := gen.Generate(context.Background(), "a", "a.txt")
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Fine", suggestions[0].Title)
}

func TestRuleGenerator_CancelledContext(t *testing.T) {
	gen := NewRuleGenerator(nil, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.Generate(ctx, vault, "Vault.sol")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestChat_SendMessageRegistersSuggestions(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	doc := env.document(t, "Vault.sol", vault)
	sessionID := env.session(t)

	reply, err := env.chat.SendMessage(ctx, sessionID, &assistSvc.SendMessageRequest{
		Content:    "Review this contract",
		DocumentID: doc.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "assistant", reply.Role)
	assert.Contains(t, reply.Content, "I reviewed Vault.sol and have 2 suggestions")
	require.Len(t, reply.Suggestions, 2)
	for _, s := range reply.Suggestions {
		assert.Equal(t, doc.ID, s.Changes[0].DocumentID)
	}
	assert.Len(t, env.pending.ForContext(reply.ID), 2)

	messages, err := env.chat.ListMessages(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "user", messages[0].Role)
	assert.Len(t, messages[1].Suggestions, 2)
}

func TestChat_ExplainAddsFiller(t *testing.T) {
	env := newTestEnv(t, nil)
	sessionID := env.session(t)

	plain, err := env.chat.SendMessage(context.Background(), sessionID, &assistSvc.SendMessageRequest{Content: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "Select a document and I will review it for you.", plain.Content)

	long, err := env.chat.SendMessage(context.Background(), sessionID, &assistSvc.SendMessageRequest{Content: "Explain reentrancy?"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(long.Content, plain.Content+"\n\n"))
	assert.Greater(t, len(long.Content), len(plain.Content)+2)
}

func TestChat_GeneratorFailureMeansNoSuggestions(t *testing.T) {
	env := newTestEnv(t, failingGenerator{})
	doc := env.document(t, "Vault.sol", vault)
	sessionID := env.session(t)

	reply, err := env.chat.SendMessage(context.Background(), sessionID, &assistSvc.SendMessageRequest{
		Content: "review", DocumentID: doc.ID,
	})
	require.NoError(t, err)
	assert.Empty(t, reply.Suggestions)
	assert.Equal(t, "I reviewed Vault.sol and found nothing to change.", reply.Content)
}

func TestChat_Errors(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	_, err := env.chat.CreateSession(ctx, &assistSvc.CreateSessionRequest{ProjectID: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = env.chat.ListMessages(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	sessionID := env.session(t)
	_, err = env.chat.SendMessage(ctx, sessionID, &assistSvc.SendMessageRequest{Content: ""})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = env.chat.SendMessage(ctx, sessionID, &assistSvc.SendMessageRequest{Content: "hi", DocumentID: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSuggestions_ApplyRecordsHistoryAndDismissesEverywhere(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	doc := env.document(t, "Vault.sol", vault)
	sessionID := env.session(t)

	reply, err := env.chat.SendMessage(ctx, sessionID, &assistSvc.SendMessageRequest{Content: "review", DocumentID: doc.ID})
	require.NoError(t, err)
	target := reply.Suggestions[0]

	// Same suggestion surfaced by a second context
	env.pending.Add("pinned", target)

	preview, err := env.suggestions.Preview(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, "tx.origin", preview.Changes[0].OldText)
	assert.Len(t, env.history.History(doc.ID), 1)

	updated, err := env.suggestions.Apply(ctx, target.ID, "")
	require.NoError(t, err)
	assert.Contains(t, updated.Content, "require(msg.sender == owner);")
	assert.True(t, updated.IsModified)

	stored, err := env.docRepo.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.Content, stored.Content)

	entries := env.history.History(doc.ID)
	require.Len(t, entries, 3)
	assert.Equal(t, "Before applying: Authorize with msg.sender", entries[1].Description)
	assert.Equal(t, editing.OriginManual, entries[1].Origin)
	assert.Equal(t, "Applied: Authorize with msg.sender", entries[2].Description)
	assert.Equal(t, editing.OriginSuggested, entries[2].Origin)

	assert.Empty(t, env.pending.ForContext("pinned"))
	assert.Len(t, env.pending.ForContext(reply.ID), 1)

	_, err = env.suggestions.Apply(ctx, target.ID, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Undo walks back through the pair to the pre-apply content
	undone, err := env.docs.Undo(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, vault, undone.Document.Content)
}

func TestSuggestions_ApplyFailedSaveKeepsStateIntact(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	doc := env.document(t, "Vault.sol", vault)
	sessionID := env.session(t)

	reply, err := env.chat.SendMessage(ctx, sessionID, &assistSvc.SendMessageRequest{Content: "review", DocumentID: doc.ID})
	require.NoError(t, err)
	target := reply.Suggestions[0]
	pendingBefore := env.pending.Len()

	env.docRepo.failSave = true
	_, err = env.suggestions.Apply(ctx, target.ID, doc.ID)
	require.Error(t, err)

	assert.Len(t, env.history.History(doc.ID), 1)
	assert.False(t, env.history.CanUndo(doc.ID))
	assert.Equal(t, pendingBefore, env.pending.Len())
	_, ok := env.pending.Get(target.ID)
	assert.True(t, ok)

	stored, err := env.docRepo.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, vault, stored.Content)

	// Once the store recovers the same suggestion applies normally
	env.docRepo.failSave = false
	updated, err := env.suggestions.Apply(ctx, target.ID, doc.ID)
	require.NoError(t, err)
	assert.Contains(t, updated.Content, "msg.sender == owner")
	assert.Len(t, env.history.History(doc.ID), 3)
}

func TestSuggestions_ApplyRejectsOtherDocument(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	doc := env.document(t, "Vault.sol", vault)
	other := env.document(t, "Other.sol", vault)
	sessionID := env.session(t)

	reply, err := env.chat.SendMessage(ctx, sessionID, &assistSvc.SendMessageRequest{Content: "review", DocumentID: doc.ID})
	require.NoError(t, err)
	target := reply.Suggestions[0]

	_, err = env.suggestions.Apply(ctx, target.ID, other.ID)
	assert.ErrorIs(t, err, domain.ErrValidation)

	stored, err := env.docRepo.GetByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, vault, stored.Content)
	_, ok := env.pending.Get(target.ID)
	assert.True(t, ok, "rejected apply leaves the suggestion pending")
}

func TestSuggestions_ConcurrentApplySucceedsOnce(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	doc := env.document(t, "Vault.sol", vault)
	sessionID := env.session(t)

	reply, err := env.chat.SendMessage(ctx, sessionID, &assistSvc.SendMessageRequest{Content: "review", DocumentID: doc.ID})
	require.NoError(t, err)
	target := reply.Suggestions[0]

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := env.suggestions.Apply(ctx, target.ID, ""); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Len(t, env.history.History(doc.ID), 3)
}

func TestSuggestions_Dismiss(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	doc := env.document(t, "Vault.sol", vault)
	sessionID := env.session(t)

	reply, err := env.chat.SendMessage(ctx, sessionID, &assistSvc.SendMessageRequest{Content: "review", DocumentID: doc.ID})
	require.NoError(t, err)

	removed, err := env.suggestions.Dismiss(ctx, reply.Suggestions[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = env.suggestions.Dismiss(ctx, reply.Suggestions[1].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	stored, err := env.docRepo.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, vault, stored.Content)
	assert.Len(t, env.history.History(doc.ID), 1)

	messages, err := env.chat.ListMessages(ctx, sessionID)
	require.NoError(t, err)
	assert.Len(t, messages[1].Suggestions, 1)
}

func TestSuggestions_ApplyNeedsDocument(t *testing.T) {
	env := newTestEnv(t, nil)
	env.pending.Add("ctx", editing.Suggestion{
		ID: "floating", Title: "x",
		Changes: []editing.Change{{OldText: "a", NewText: "b"}},
	})

	_, err := env.suggestions.Apply(context.Background(), "floating", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMockCompiler(t *testing.T) {
	compiler := NewMockCompiler(testLogger())
	ctx := context.Background()

	doc := &docsystem.Document{ID: "d1", Name: "Vault.sol", Kind: docsystem.KindSolidity, Content: vault}
	result, err := compiler.Compile(ctx, doc)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, []string{"Vault"}, result.Contracts)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, 8, result.Warnings[0].Line)

	again, err := compiler.Compile(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, result, again)

	tests, err := compiler.RunTests(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, 1, tests.Passed)
	assert.Equal(t, 1, tests.Failed)
	assert.Equal(t, "test_withdraw", tests.Cases[0].Name)

	broken := &docsystem.Document{ID: "d2", Name: "Broken.sol", Kind: docsystem.KindSolidity, Content: "pragma solidity 0.8.20;\ncontract A {\n"}
	result, err = compiler.Compile(ctx, broken)
	require.NoError(t, err)
	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Line)

	tests, err = compiler.RunTests(ctx, broken)
	require.NoError(t, err)
	assert.Equal(t, 0, tests.Passed)
	assert.Equal(t, 1, tests.Failed)
	assert.Equal(t, "compile", tests.Cases[0].Name)
}
