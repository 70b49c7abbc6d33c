package assist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	loremgen "github.com/bozaro/golorem"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"contractpad/internal/config"
	"contractpad/internal/domain"
	"contractpad/internal/domain/models/assist"
	"contractpad/internal/domain/models/docsystem"
	"contractpad/internal/domain/models/editing"
	docsysRepo "contractpad/internal/domain/repositories/docsystem"
	assistSvc "contractpad/internal/domain/services/assist"
	docsysService "contractpad/internal/service/docsystem"
	"contractpad/internal/service/suggestion"
)

const defaultSessionTitle = "New chat"

// explainWords switch the reply into long-form mode.
var explainWords = []string{"explain", "why", "how"}

// chatService keeps sessions in memory. Suggestions attached to a reply are
// registered in the shared pending set under the reply's message id.
type chatService struct {
	mu       sync.RWMutex
	sessions map[string]*assist.Session
	messages map[string][]assist.Message

	loremMu sync.Mutex
	lorem   *loremgen.Lorem

	docRepo   docsysRepo.DocumentRepository
	generator assistSvc.Generator
	pending   *suggestion.PendingSet
	validator *docsysService.ResourceValidator
	logger    *slog.Logger
}

// NewChatService creates a new chat service
func NewChatService(
	docRepo docsysRepo.DocumentRepository,
	generator assistSvc.Generator,
	pending *suggestion.PendingSet,
	validator *docsysService.ResourceValidator,
	logger *slog.Logger,
) assistSvc.ChatService {
	return &chatService{
		sessions:  make(map[string]*assist.Session),
		messages:  make(map[string][]assist.Message),
		lorem:     loremgen.New(),
		docRepo:   docRepo,
		generator: generator,
		pending:   pending,
		validator: validator,
		logger:    logger,
	}
}

// CreateSession starts a chat thread for a project
func (s *chatService) CreateSession(ctx context.Context, req *assistSvc.CreateSessionRequest) (*assist.Session, error) {
	err := validation.ValidateStruct(req,
		validation.Field(&req.ProjectID, validation.Required),
		validation.Field(&req.Title, validation.Length(0, config.MaxSessionTitleLength)),
	)
	if err != nil {
		return nil, domain.Invalid(err)
	}

	if err := s.validator.ValidateProject(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = defaultSessionTitle
	}

	now := time.Now()
	session := &assist.Session{
		ID:        uuid.NewString(),
		ProjectID: req.ProjectID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.logger.Info("chat session created",
		"id", session.ID,
		"project_id", session.ProjectID,
	)

	cp := *session
	return &cp, nil
}

// ListMessages returns the session's messages in order. Assistant messages
// carry only the suggestions that are still pending.
func (s *chatService) ListMessages(ctx context.Context, sessionID string) ([]assist.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return nil, domain.NotFound("session", sessionID)
	}

	stored := s.messages[sessionID]
	out := make([]assist.Message, len(stored))
	for i, msg := range stored {
		if msg.Role == assist.RoleAssistant {
			msg.Suggestions = s.pending.ForContext(msg.ID)
		}
		out[i] = msg
	}
	return out, nil
}

// SendMessage stores the user's message, reviews the referenced document
// and returns the assistant's reply
func (s *chatService) SendMessage(ctx context.Context, sessionID string, req *assistSvc.SendMessageRequest) (*assist.Message, error) {
	err := validation.ValidateStruct(req,
		validation.Field(&req.Content,
			validation.Required,
			validation.Length(1, config.MaxMessageLength),
		),
	)
	if err != nil {
		return nil, domain.Invalid(err)
	}

	s.mu.RLock()
	_, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.NotFound("session", sessionID)
	}

	var doc *docsystem.Document
	if req.DocumentID != "" {
		doc, err = s.docRepo.GetByID(ctx, req.DocumentID)
		if err != nil {
			return nil, err
		}
	}

	suggestions := s.review(ctx, doc)

	now := time.Now()
	userMsg := assist.Message{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		Role:       assist.RoleUser,
		Content:    req.Content,
		DocumentID: req.DocumentID,
		CreatedAt:  now,
	}
	reply := assist.Message{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		Role:        assist.RoleAssistant,
		Content:     s.composeReply(req.Content, doc, suggestions),
		DocumentID:  req.DocumentID,
		Suggestions: suggestions,
		CreatedAt:   now,
	}

	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return nil, domain.NotFound("session", sessionID)
	}
	s.messages[sessionID] = append(s.messages[sessionID], userMsg, reply)
	session.UpdatedAt = now
	s.mu.Unlock()

	s.pending.Add(reply.ID, suggestions...)

	s.logger.Info("chat reply sent",
		"session_id", sessionID,
		"message_id", reply.ID,
		"document_id", req.DocumentID,
		"suggestions", len(suggestions),
	)

	return &reply, nil
}

// review asks the generator for suggestions against doc. Generator failures
// are logged and read as no suggestions.
func (s *chatService) review(ctx context.Context, doc *docsystem.Document) []editing.Suggestion {
	if doc == nil {
		return nil
	}

	suggestions, err := s.generator.Generate(ctx, doc.Content, doc.Name)
	if err != nil {
		s.logger.Warn("suggestion generation failed",
			"document_id", doc.ID,
			"error", err,
		)
		return nil
	}

	for i := range suggestions {
		changes := make([]editing.Change, len(suggestions[i].Changes))
		for j, change := range suggestions[i].Changes {
			change.DocumentID = doc.ID
			changes[j] = change
		}
		suggestions[i].Changes = changes
	}
	return suggestions
}

func (s *chatService) composeReply(prompt string, doc *docsystem.Document, suggestions []editing.Suggestion) string {
	var b strings.Builder

	switch {
	case doc == nil:
		b.WriteString("Select a document and I will review it for you.")
	case len(suggestions) == 0:
		fmt.Fprintf(&b, "I reviewed %s and found nothing to change.", doc.Name)
	default:
		noun := "suggestions"
		if len(suggestions) == 1 {
			noun = "suggestion"
		}
		fmt.Fprintf(&b, "I reviewed %s and have %d %s:", doc.Name, len(suggestions), noun)
		for _, sg := range suggestions {
			fmt.Fprintf(&b, "\n- %s (%s, %s impact)", sg.Title, sg.Category, sg.Impact)
		}
	}

	if wantsExplanation(prompt) {
		s.loremMu.Lock()
		filler := s.lorem.Paragraph(3, 6)
		s.loremMu.Unlock()
		b.WriteString("\n\n")
		b.WriteString(filler)
	}

	return b.String()
}

func wantsExplanation(prompt string) bool {
	for _, field := range strings.Fields(strings.ToLower(prompt)) {
		field = strings.Trim(field, ".,;:!?\"'()")
		for _, word := range explainWords {
			if field == word {
				return true
			}
		}
	}
	return false
}
