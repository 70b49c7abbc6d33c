package docsystem

import (
	"time"
)

// Document is an editable source file. Values are treated as immutable by
// the editing core: every mutation goes through a copy.
type Document struct {
	ID         string    `json:"id" db:"id"`
	ProjectID  string    `json:"project_id" db:"project_id"`
	Name       string    `json:"name" db:"name"`
	Path       string    `json:"path" db:"path"` // Display only, not identity
	Kind       Kind      `json:"kind" db:"kind"`
	Content    string    `json:"content" db:"content"`
	IsModified bool      `json:"is_modified" db:"is_modified"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`

	// SavedContent is the content as of the last explicit save
	SavedContent string `json:"-" db:"saved_content"`
}

// Clone returns a shallow copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	cp := *d
	return &cp
}

// WithContent returns a copy holding content. The copy is modified unless
// content matches the last saved value.
func (d *Document) WithContent(content string) *Document {
	cp := d.Clone()
	if cp == nil {
		return nil
	}
	cp.Content = content
	cp.IsModified = content != cp.SavedContent
	cp.UpdatedAt = time.Now()
	return cp
}

// MarkSaved returns a copy whose current content is the saved baseline.
func (d *Document) MarkSaved() *Document {
	cp := d.Clone()
	if cp == nil {
		return nil
	}
	cp.SavedContent = cp.Content
	cp.IsModified = false
	cp.UpdatedAt = time.Now()
	return cp
}
