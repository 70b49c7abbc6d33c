package suggestion

import (
	"sync"

	"contractpad/internal/domain/models/editing"
)

type pendingItem struct {
	contextID  string
	suggestion editing.Suggestion
}

// PendingSet is the caller-held collection of suggestions currently shown
// to the user, grouped by the context (chat message) that surfaced them.
// The same suggestion may appear under several contexts.
type PendingSet struct {
	mu    sync.Mutex
	items []pendingItem
}

// NewPendingSet creates an empty set.
func NewPendingSet() *PendingSet {
	return &PendingSet{}
}

// Add registers suggestions under contextID, skipping any already present
// in that context.
func (p *PendingSet) Add(contextID string, suggestions ...editing.Suggestion) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, s := range suggestions {
		if p.indexLocked(contextID, s.ID) >= 0 {
			continue
		}
		p.items = append(p.items, pendingItem{contextID: contextID, suggestion: s.Copy()})
	}
}

// Get returns the first pending copy of a suggestion.
func (p *PendingSet) Get(suggestionID string) (editing.Suggestion, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, item := range p.items {
		if item.suggestion.ID == suggestionID {
			return item.suggestion.Copy(), true
		}
	}
	return editing.Suggestion{}, false
}

// ForContext lists the suggestions still pending under contextID, in the
// order they were added.
func (p *PendingSet) ForContext(contextID string) []editing.Suggestion {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []editing.Suggestion
	for _, item := range p.items {
		if item.contextID == contextID {
			out = append(out, item.suggestion.Copy())
		}
	}
	return out
}

// Remove drops the suggestion from every context and returns how many
// entries were removed.
func (p *PendingSet) Remove(suggestionID string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.removeLocked(suggestionID)
}

func (p *PendingSet) removeLocked(suggestionID string) int {
	kept := p.items[:0]
	removed := 0
	for _, item := range p.items {
		if item.suggestion.ID == suggestionID {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	// Clear the tail so dropped suggestions can be collected.
	for i := len(kept); i < len(p.items); i++ {
		p.items[i] = pendingItem{}
	}
	p.items = kept
	return removed
}

// Take removes the suggestion from every context and returns it with the
// contexts it was held under. Only one caller can take a given suggestion.
func (p *PendingSet) Take(suggestionID string) (editing.Suggestion, []string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var (
		taken    editing.Suggestion
		contexts []string
	)
	for _, item := range p.items {
		if item.suggestion.ID == suggestionID {
			if contexts == nil {
				taken = item.suggestion.Copy()
			}
			contexts = append(contexts, item.contextID)
		}
	}
	if contexts == nil {
		return editing.Suggestion{}, nil, false
	}
	p.removeLocked(suggestionID)
	return taken, contexts, true
}

// Restore puts a taken suggestion back under contexts.
func (p *PendingSet) Restore(contexts []string, s editing.Suggestion) {
	for _, contextID := range contexts {
		p.Add(contextID, s)
	}
}

// Len returns the number of (context, suggestion) pairs held.
func (p *PendingSet) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}

func (p *PendingSet) indexLocked(contextID, suggestionID string) int {
	for i, item := range p.items {
		if item.contextID == contextID && item.suggestion.ID == suggestionID {
			return i
		}
	}
	return -1
}
