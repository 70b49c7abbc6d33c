package assist

import (
	"context"

	"contractpad/internal/domain/models/assist"
)

// ChatService manages assistant chat sessions
type ChatService interface {
	CreateSession(ctx context.Context, req *CreateSessionRequest) (*assist.Session, error)
	ListMessages(ctx context.Context, sessionID string) ([]assist.Message, error)

	// SendMessage stores the user's message and returns the assistant reply
	SendMessage(ctx context.Context, sessionID string, req *SendMessageRequest) (*assist.Message, error)
}

// CreateSessionRequest represents a chat session creation request
type CreateSessionRequest struct {
	ProjectID string `json:"project_id"`
	Title     string `json:"title"`
}

// SendMessageRequest represents a user chat message
type SendMessageRequest struct {
	Content    string `json:"content"`
	DocumentID string `json:"document_id,omitempty"` // Document the assistant should look at
}
