// Package suggestion applies assistant-proposed changes to documents.
//
// The Applier coordinates preview, confirm and dismiss and records a
// before/after pair in the edit history for every applied suggestion, so
// suggested edits and manual edits undo the same way.
package suggestion

import (
	"log/slog"

	"contractpad/internal/domain/models/docsystem"
	"contractpad/internal/domain/models/editing"
)

// HistoryRecorder is the part of the edit history the protocol drives.
type HistoryRecorder interface {
	AddEntry(doc *docsystem.Document, description string, origin editing.Origin) *editing.HistoryEntry
	Undo(documentID string) *editing.HistoryEntry
	Redo(documentID string) *editing.HistoryEntry
}

// Applier runs the suggestion application protocol. It holds no document
// state; callers serialise calls per document.
type Applier struct {
	history HistoryRecorder
	logger  *slog.Logger
}

// NewApplier creates an applier writing to history.
func NewApplier(history HistoryRecorder, logger *slog.Logger) *Applier {
	return &Applier{
		history: history,
		logger:  logger,
	}
}

// Preview renders the suggestion for review. It never touches documents
// or history.
func (a *Applier) Preview(s *editing.Suggestion) *editing.Preview {
	return BuildPreview(s)
}

// ConfirmApply applies every change of s to doc and returns the updated
// copy. The new content is computed before anything is recorded, then the
// pre-state and post-state are appended to history. Returns nil if doc or
// s is nil.
func (a *Applier) ConfirmApply(doc *docsystem.Document, s *editing.Suggestion) *docsystem.Document {
	updated, _ := a.ConfirmApplyWith(doc, s, nil)
	return updated
}

// ConfirmApplyWith is ConfirmApply with a persist step between computing
// the new document and recording it. If persist fails nothing is recorded
// and the error is returned.
func (a *Applier) ConfirmApplyWith(
	doc *docsystem.Document,
	s *editing.Suggestion,
	persist func(*docsystem.Document) error,
) (*docsystem.Document, error) {
	if doc == nil || s == nil {
		return nil, nil
	}

	updated := doc.WithContent(ApplyChanges(doc.Content, s.Changes))

	if persist != nil {
		if err := persist(updated); err != nil {
			return nil, err
		}
	}

	a.history.AddEntry(doc, "Before applying: "+s.Title, editing.OriginManual)
	a.history.AddEntry(updated, "Applied: "+s.Title, editing.OriginSuggested)

	a.logger.Debug("suggestion applied",
		"suggestion_id", s.ID,
		"document_id", doc.ID,
		"changes", len(s.Changes),
		"matched", CountApplicable(doc.Content, s.Changes),
	)

	return updated, nil
}

// Dismiss removes the suggestion from every context in pending and returns
// how many entries went away. Documents and history are not touched.
func (a *Applier) Dismiss(suggestionID string, pending *PendingSet) int {
	if pending == nil {
		return 0
	}
	return pending.Remove(suggestionID)
}

// UndoLast steps the document's history back and returns the entry whose
// content the caller should restore, or nil if there is nothing to undo.
func (a *Applier) UndoLast(doc *docsystem.Document) *editing.HistoryEntry {
	if doc == nil {
		return nil
	}
	return a.history.Undo(doc.ID)
}

// RedoLast steps forward; see UndoLast.
func (a *Applier) RedoLast(doc *docsystem.Document) *editing.HistoryEntry {
	if doc == nil {
		return nil
	}
	return a.history.Redo(doc.ID)
}
