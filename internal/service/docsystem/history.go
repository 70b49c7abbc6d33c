package docsystem

import (
	"contractpad/internal/domain/models/editing"
	"contractpad/internal/service/suggestion"
)

// HistoryStore is the edit history as seen by the document services.
// *history.Engine satisfies it.
type HistoryStore interface {
	suggestion.HistoryRecorder
	CurrentEntry(documentID string) *editing.HistoryEntry
	CanUndo(documentID string) bool
	CanRedo(documentID string) bool
	View(documentID string) *editing.HistoryView
	Clear(documentID string)
}
