// Package history keeps a per-document linear undo/redo timeline of full
// content snapshots.
//
// Each document has an ordered list of entries and a position pointing at
// the entry that matches the live content. Appending after an undo drops
// the redo branch. The list is capped; when the cap is exceeded the oldest
// entry is evicted and the position shifts so it still refers to the same
// entry. Unknown document ids behave as an empty timeline.
package history

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"contractpad/internal/domain/models/docsystem"
	"contractpad/internal/domain/models/editing"
)

// DefaultMaxEntries is the per-document cap used when none is configured.
const DefaultMaxEntries = 50

type timeline struct {
	entries  []editing.HistoryEntry
	position int // index into entries, -1 when empty
}

// Engine is the edit history store shared by the whole process. The mutex
// only protects the map of timelines; ordering of mutations on a single
// document is the caller's responsibility.
type Engine struct {
	mu         sync.Mutex
	maxEntries int
	timelines  map[string]*timeline
	now        func() time.Time
}

// NewEngine creates an engine capping every timeline at maxEntries.
// Non-positive values fall back to DefaultMaxEntries.
func NewEngine(maxEntries int) *Engine {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Engine{
		maxEntries: maxEntries,
		timelines:  make(map[string]*timeline),
		now:        time.Now,
	}
}

// MaxEntries returns the per-document cap.
func (e *Engine) MaxEntries() int {
	return e.maxEntries
}

// AddEntry snapshots doc.Content as the new tail of the document's
// timeline and moves the position onto it. Returns nil for a nil document.
func (e *Engine) AddEntry(doc *docsystem.Document, description string, origin editing.Origin) *editing.HistoryEntry {
	if doc == nil {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	tl, ok := e.timelines[doc.ID]
	if !ok {
		tl = &timeline{position: -1}
		e.timelines[doc.ID] = tl
	}

	// Diverging after undo: the redo branch is gone.
	if tl.position < len(tl.entries)-1 {
		tl.entries = tl.entries[:tl.position+1]
	}

	ts := e.now()
	tl.entries = append(tl.entries, editing.HistoryEntry{
		ID:          newEntryID(ts),
		DocumentID:  doc.ID,
		Content:     doc.Content,
		Description: description,
		Origin:      origin,
		Timestamp:   ts,
	})
	tl.position = len(tl.entries) - 1

	if overflow := len(tl.entries) - e.maxEntries; overflow > 0 {
		kept := make([]editing.HistoryEntry, e.maxEntries)
		copy(kept, tl.entries[overflow:])
		tl.entries = kept
		tl.position -= overflow
	}

	entry := tl.entries[tl.position]
	return &entry
}

// CanUndo reports whether the position can move back.
func (e *Engine) CanUndo(documentID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	tl, ok := e.timelines[documentID]
	return ok && tl.position > 0
}

// CanRedo reports whether the position can move forward.
func (e *Engine) CanRedo(documentID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	tl, ok := e.timelines[documentID]
	return ok && tl.position < len(tl.entries)-1
}

// Undo steps back one entry and returns it, or nil when already at the
// start (or the document has no history).
func (e *Engine) Undo(documentID string) *editing.HistoryEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	tl, ok := e.timelines[documentID]
	if !ok || tl.position <= 0 {
		return nil
	}
	tl.position--
	entry := tl.entries[tl.position]
	return &entry
}

// Redo steps forward one entry and returns it, or nil at the tail.
func (e *Engine) Redo(documentID string) *editing.HistoryEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	tl, ok := e.timelines[documentID]
	if !ok || tl.position >= len(tl.entries)-1 {
		return nil
	}
	tl.position++
	entry := tl.entries[tl.position]
	return &entry
}

// CurrentEntry returns the entry at the position, or nil if empty.
func (e *Engine) CurrentEntry(documentID string) *editing.HistoryEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	tl, ok := e.timelines[documentID]
	if !ok || tl.position < 0 {
		return nil
	}
	entry := tl.entries[tl.position]
	return &entry
}

// History returns a copy of the document's entries, oldest first.
func (e *Engine) History(documentID string) []editing.HistoryEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	tl, ok := e.timelines[documentID]
	if !ok {
		return []editing.HistoryEntry{}
	}
	return append([]editing.HistoryEntry{}, tl.entries...)
}

// View returns the entries together with the position and undo/redo flags,
// read under one lock.
func (e *Engine) View(documentID string) *editing.HistoryView {
	e.mu.Lock()
	defer e.mu.Unlock()

	view := &editing.HistoryView{
		DocumentID: documentID,
		Entries:    []editing.HistoryEntry{},
		Position:   -1,
	}
	if tl, ok := e.timelines[documentID]; ok {
		view.Entries = append(view.Entries, tl.entries...)
		view.Position = tl.position
		view.CanUndo = tl.position > 0
		view.CanRedo = tl.position < len(tl.entries)-1
	}
	return view
}

// Clear forgets one document's timeline.
func (e *Engine) Clear(documentID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.timelines, documentID)
}

// ClearAll forgets every timeline.
func (e *Engine) ClearAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.timelines = make(map[string]*timeline)
}

// newEntryID builds a sortable id: creation time plus a random suffix.
func newEntryID(ts time.Time) string {
	return fmt.Sprintf("%d-%s", ts.UnixMilli(), uuid.NewString()[:8])
}
