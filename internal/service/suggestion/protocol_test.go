package suggestion

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contractpad/internal/domain/models/docsystem"
	"contractpad/internal/domain/models/editing"
	"contractpad/internal/service/history"
)

// spyRecorder wraps a real engine and counts every call made through it.
type spyRecorder struct {
	engine *history.Engine
	calls  []string
}

func newSpy() *spyRecorder {
	return &spyRecorder{engine: history.NewEngine(0)}
}

func (s *spyRecorder) AddEntry(doc *docsystem.Document, description string, origin editing.Origin) *editing.HistoryEntry {
	s.calls = append(s.calls, "add")
	return s.engine.AddEntry(doc, description, origin)
}

func (s *spyRecorder) Undo(documentID string) *editing.HistoryEntry {
	s.calls = append(s.calls, "undo")
	return s.engine.Undo(documentID)
}

func (s *spyRecorder) Redo(documentID string) *editing.HistoryEntry {
	s.calls = append(s.calls, "redo")
	return s.engine.Redo(documentID)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const adder = `contract Adder {
    function add(uint256 a, uint256 b) public pure returns (uint256) {
        return a + b;
    }
}
`

func adderDoc() *docsystem.Document {
	return &docsystem.Document{ID: "doc-1", Name: "Adder.sol", Kind: docsystem.KindSolidity, Content: adder}
}

func patchSuggestion(changes ...editing.Change) *editing.Suggestion {
	return &editing.Suggestion{
		ID:         "sug-1",
		Title:      "Annotate addition",
		Category:   editing.CategoryStyle,
		Impact:     editing.ImpactLow,
		Confidence: 0.8,
		Changes:    changes,
	}
}

func TestConfirmApply_ReplacesAndRecordsPair(t *testing.T) {
	spy := newSpy()
	applier := NewApplier(spy, testLogger())
	doc := adderDoc()

	s := patchSuggestion(editing.Change{
		DocumentID:  doc.ID,
		OldText:     "return a + b;",
		NewText:     "return a + b; // patched",
		Description: "x",
	})

	updated := applier.ConfirmApply(doc, s)
	require.NotNil(t, updated)

	assert.Equal(t, 1, strings.Count(updated.Content, "return a + b; // patched"))
	assert.True(t, updated.IsModified)
	assert.Equal(t, adder, doc.Content, "input document must not be mutated")
	assert.False(t, doc.IsModified)

	entries := spy.engine.History(doc.ID)
	require.Len(t, entries, 2)
	assert.Equal(t, "Before applying: Annotate addition", entries[0].Description)
	assert.Equal(t, editing.OriginManual, entries[0].Origin)
	assert.Equal(t, adder, entries[0].Content)
	assert.Equal(t, "Applied: Annotate addition", entries[1].Description)
	assert.Equal(t, editing.OriginSuggested, entries[1].Origin)
	assert.Equal(t, updated.Content, entries[1].Content)
}

func TestConfirmApplyWith_PersistsBeforeRecording(t *testing.T) {
	spy := newSpy()
	applier := NewApplier(spy, testLogger())
	doc := adderDoc()
	s := patchSuggestion(editing.Change{OldText: "a + b", NewText: "b + a"})

	var persisted *docsystem.Document
	updated, err := applier.ConfirmApplyWith(doc, s, func(d *docsystem.Document) error {
		assert.Empty(t, spy.calls, "nothing is recorded before the document is stored")
		persisted = d
		return nil
	})
	require.NoError(t, err)
	assert.Same(t, persisted, updated)
	assert.Equal(t, []string{"add", "add"}, spy.calls)
}

func TestConfirmApplyWith_PersistFailureRecordsNothing(t *testing.T) {
	spy := newSpy()
	applier := NewApplier(spy, testLogger())
	doc := adderDoc()
	s := patchSuggestion(editing.Change{OldText: "a + b", NewText: "b + a"})

	updated, err := applier.ConfirmApplyWith(doc, s, func(*docsystem.Document) error {
		return errors.New("disk full")
	})
	require.Error(t, err)
	assert.Nil(t, updated)
	assert.Empty(t, spy.calls)
	assert.Empty(t, spy.engine.History(doc.ID))
	assert.Equal(t, adder, doc.Content)
}

func TestConfirmApply_MissingOldTextStillRecords(t *testing.T) {
	spy := newSpy()
	applier := NewApplier(spy, testLogger())
	doc := adderDoc()

	updated := applier.ConfirmApply(doc, patchSuggestion(editing.Change{
		OldText: "return a - b;",
		NewText: "return b - a;",
	}))
	require.NotNil(t, updated)

	assert.Equal(t, adder, updated.Content)
	assert.True(t, updated.IsModified)
	assert.Len(t, spy.engine.History(doc.ID), 2)
}

func TestConfirmApply_EmptyChangesIsRecordedNoOp(t *testing.T) {
	spy := newSpy()
	applier := NewApplier(spy, testLogger())
	doc := adderDoc()

	updated := applier.ConfirmApply(doc, patchSuggestion())
	require.NotNil(t, updated)

	assert.Equal(t, adder, updated.Content)
	entries := spy.engine.History(doc.ID)
	require.Len(t, entries, 2)
	assert.Equal(t, "Before applying: Annotate addition", entries[0].Description)
	assert.Equal(t, "Applied: Annotate addition", entries[1].Description)
}

func TestConfirmApply_ChangesAreCumulative(t *testing.T) {
	applier := NewApplier(newSpy(), testLogger())
	doc := &docsystem.Document{ID: "d", Content: "X"}

	updated := applier.ConfirmApply(doc, patchSuggestion(
		editing.Change{OldText: "X", NewText: "Y"},
		editing.Change{OldText: "Y", NewText: "Z"},
	))

	assert.Equal(t, "Z", updated.Content)
}

func TestConfirmApply_NilInputs(t *testing.T) {
	spy := newSpy()
	applier := NewApplier(spy, testLogger())

	assert.Nil(t, applier.ConfirmApply(nil, patchSuggestion()))
	assert.Nil(t, applier.ConfirmApply(adderDoc(), nil))
	assert.Nil(t, applier.UndoLast(nil))
	assert.Nil(t, applier.RedoLast(nil))
	assert.Empty(t, spy.calls)
}

func TestConfirmApply_DoesNotMutateSuggestion(t *testing.T) {
	applier := NewApplier(newSpy(), testLogger())
	s := patchSuggestion(editing.Change{OldText: "a + b", NewText: "b + a"})
	before := s.Copy()

	applier.ConfirmApply(adderDoc(), s)

	assert.Equal(t, before, *s)
}

func TestPreview_TouchesNeitherDocumentNorHistory(t *testing.T) {
	spy := newSpy()
	applier := NewApplier(spy, testLogger())
	doc := adderDoc()
	snapshot := *doc

	s := patchSuggestion(
		editing.Change{DocumentID: doc.ID, OldText: "return a + b;", NewText: "return a + b; // patched", Description: "annotate"},
		editing.Change{DocumentID: doc.ID, OldText: "pure", NewText: "view"},
	)
	preview := applier.Preview(s)
	require.NotNil(t, preview)

	assert.Empty(t, spy.calls, "preview must not call the history engine")
	assert.Equal(t, snapshot, *doc)

	assert.Equal(t, "sug-1", preview.SuggestionID)
	require.Len(t, preview.Changes, 2)
	assert.Equal(t, "return a + b;", preview.Changes[0].OldText)
	assert.Equal(t, "return a + b; // patched", preview.Changes[0].NewText)
	assert.Contains(t, preview.Changes[0].Diff, "-return a + b;")
	assert.Contains(t, preview.Changes[0].Diff, "+return a + b; // patched")
	assert.Equal(t, 1, preview.Changes[1].Index)
}

func TestUndoRedoLast_RestoreAcrossApply(t *testing.T) {
	spy := newSpy()
	applier := NewApplier(spy, testLogger())
	doc := adderDoc()

	updated := applier.ConfirmApply(doc, patchSuggestion(editing.Change{
		OldText: "return a + b;",
		NewText: "return a + b; // patched",
	}))

	undone := applier.UndoLast(updated)
	require.NotNil(t, undone)
	assert.Equal(t, adder, undone.Content)
	assert.Nil(t, applier.UndoLast(updated), "before-entry is the first entry")

	redone := applier.RedoLast(updated)
	require.NotNil(t, redone)
	assert.Equal(t, updated.Content, redone.Content)
	assert.Nil(t, applier.RedoLast(updated))
}

func TestPendingSet_TakeIsExclusiveAndRestorable(t *testing.T) {
	pending := NewPendingSet()
	s := *patchSuggestion()
	pending.Add("msg-1", s)
	pending.Add("msg-2", s)

	taken, contexts, ok := pending.Take(s.ID)
	require.True(t, ok)
	assert.Equal(t, s.ID, taken.ID)
	assert.Equal(t, []string{"msg-1", "msg-2"}, contexts)
	assert.Equal(t, 0, pending.Len())

	_, _, ok = pending.Take(s.ID)
	assert.False(t, ok, "a taken suggestion cannot be taken twice")

	pending.Restore(contexts, taken)
	assert.Len(t, pending.ForContext("msg-1"), 1)
	assert.Len(t, pending.ForContext("msg-2"), 1)
}

func TestDismiss_RemovesFromEveryContext(t *testing.T) {
	applier := NewApplier(newSpy(), testLogger())
	pending := NewPendingSet()

	s1 := *patchSuggestion()
	s2 := *patchSuggestion()
	s2.ID = "sug-2"

	pending.Add("msg-1", s1, s2)
	pending.Add("msg-2", s1)

	assert.Equal(t, 2, applier.Dismiss("sug-1", pending))
	assert.Empty(t, pending.ForContext("msg-2"))
	remaining := pending.ForContext("msg-1")
	require.Len(t, remaining, 1)
	assert.Equal(t, "sug-2", remaining[0].ID)

	assert.Equal(t, 0, applier.Dismiss("sug-1", pending))
	assert.Equal(t, 0, applier.Dismiss("sug-1", nil))
}
