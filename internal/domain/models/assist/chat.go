package assist

import (
	"time"

	"contractpad/internal/domain/models/editing"
)

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Session is one chat thread with the assistant.
type Session struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message is a single chat turn. Assistant messages carry the suggestions
// that were still pending when the message was read.
type Message struct {
	ID          string               `json:"id"`
	SessionID   string               `json:"session_id"`
	Role        string               `json:"role"`
	Content     string               `json:"content"`
	DocumentID  string               `json:"document_id,omitempty"`
	Suggestions []editing.Suggestion `json:"suggestions,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}
