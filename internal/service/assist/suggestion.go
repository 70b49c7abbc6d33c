package assist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"contractpad/internal/domain"
	"contractpad/internal/domain/models/docsystem"
	"contractpad/internal/domain/models/editing"
	docsysRepo "contractpad/internal/domain/repositories/docsystem"
	assistSvc "contractpad/internal/domain/services/assist"
	docsysService "contractpad/internal/service/docsystem"
	"contractpad/internal/service/suggestion"
)

// suggestionService drives preview/apply/dismiss for suggestions in the
// shared pending set
type suggestionService struct {
	docRepo docsysRepo.DocumentRepository
	applier *suggestion.Applier
	pending *suggestion.PendingSet
	locks   *docsysService.DocumentLocks
	logger  *slog.Logger
}

// NewSuggestionService creates a new suggestion service
func NewSuggestionService(
	docRepo docsysRepo.DocumentRepository,
	applier *suggestion.Applier,
	pending *suggestion.PendingSet,
	locks *docsysService.DocumentLocks,
	logger *slog.Logger,
) assistSvc.SuggestionService {
	return &suggestionService{
		docRepo: docRepo,
		applier: applier,
		pending: pending,
		locks:   locks,
		logger:  logger,
	}
}

// Preview renders a pending suggestion
func (s *suggestionService) Preview(ctx context.Context, suggestionID string) (*editing.Preview, error) {
	sg, err := s.lookup(suggestionID)
	if err != nil {
		return nil, err
	}
	return s.applier.Preview(&sg), nil
}

// Apply confirms a pending suggestion against a document, persists the
// result and removes the suggestion from every context. The suggestion is
// claimed up front so concurrent applies cannot both succeed, and put back
// if the apply fails.
func (s *suggestionService) Apply(ctx context.Context, suggestionID, documentID string) (*docsystem.Document, error) {
	sg, contexts, ok := s.pending.Take(suggestionID)
	if !ok {
		return nil, domain.NotFound("suggestion", suggestionID)
	}

	updated, err := s.apply(ctx, &sg, documentID)
	if err != nil {
		s.pending.Restore(contexts, sg)
		return nil, err
	}

	s.logger.Info("suggestion applied",
		"suggestion_id", suggestionID,
		"document_id", updated.ID,
		"title", sg.Title,
		"contexts", len(contexts),
	)

	return updated, nil
}

func (s *suggestionService) apply(ctx context.Context, sg *editing.Suggestion, documentID string) (*docsystem.Document, error) {
	documentID, err := targetDocument(sg, documentID)
	if err != nil {
		return nil, domain.Invalid(err)
	}

	unlock := s.locks.Lock(documentID)
	defer unlock()

	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	updated, err := s.applier.ConfirmApplyWith(doc, sg, func(d *docsystem.Document) error {
		return s.docRepo.Save(ctx, d)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist applied suggestion: %w", err)
	}
	return updated, nil
}

// targetDocument resolves the document a suggestion is applied to. An
// explicit id must match the document its changes were generated for.
func targetDocument(sg *editing.Suggestion, documentID string) (string, error) {
	for _, change := range sg.Changes {
		if change.DocumentID == "" {
			continue
		}
		if documentID == "" {
			documentID = change.DocumentID
		}
		if change.DocumentID != documentID {
			return "", fmt.Errorf("suggestion targets document %s, not %s", change.DocumentID, documentID)
		}
	}
	if documentID == "" {
		return "", errors.New("document_id is required")
	}
	return documentID, nil
}

// Dismiss removes a pending suggestion everywhere
func (s *suggestionService) Dismiss(ctx context.Context, suggestionID string) (int, error) {
	removed := s.applier.Dismiss(suggestionID, s.pending)
	if removed == 0 {
		return 0, domain.NotFound("suggestion", suggestionID)
	}

	s.logger.Info("suggestion dismissed",
		"suggestion_id", suggestionID,
		"contexts", removed,
	)

	return removed, nil
}

func (s *suggestionService) lookup(suggestionID string) (editing.Suggestion, error) {
	sg, ok := s.pending.Get(suggestionID)
	if !ok {
		return editing.Suggestion{}, domain.NotFound("suggestion", suggestionID)
	}
	return sg, nil
}
