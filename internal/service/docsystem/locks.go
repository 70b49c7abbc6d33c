package docsystem

import "sync"

// DocumentLocks serialises mutations per document id. Every code path that
// reads a live document, records history and writes it back holds the
// document's lock for the whole sequence.
type DocumentLocks struct {
	mu    sync.Mutex
	locks map[string]*docLock
}

type docLock struct {
	mu   sync.Mutex
	refs int
}

// NewDocumentLocks creates an empty lock table.
func NewDocumentLocks() *DocumentLocks {
	return &DocumentLocks{locks: make(map[string]*docLock)}
}

// Lock blocks until the document's lock is held and returns the release
// function. Entries are dropped from the table once nobody holds or waits
// on them.
func (l *DocumentLocks) Lock(documentID string) func() {
	l.mu.Lock()
	lock, ok := l.locks[documentID]
	if !ok {
		lock = &docLock{}
		l.locks[documentID] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.locks, documentID)
		}
		l.mu.Unlock()
	}
}

func (l *DocumentLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
