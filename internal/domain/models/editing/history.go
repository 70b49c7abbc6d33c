package editing

import "time"

// Origin tags where a history snapshot came from.
type Origin string

const (
	OriginManual    Origin = "manual"
	OriginSuggested Origin = "suggested"
)

// HistoryEntry is a full content snapshot of one document at one point in
// its undo/redo timeline.
type HistoryEntry struct {
	ID          string    `json:"id"`
	DocumentID  string    `json:"document_id"`
	Content     string    `json:"content"`
	Description string    `json:"description"`
	Origin      Origin    `json:"origin"`
	Timestamp   time.Time `json:"timestamp"`
}

// HistoryView is a read-only copy of a document's timeline.
type HistoryView struct {
	DocumentID string         `json:"document_id"`
	Entries    []HistoryEntry `json:"entries"`
	Position   int            `json:"position"` // -1 when empty
	CanUndo    bool           `json:"can_undo"`
	CanRedo    bool           `json:"can_redo"`
}
