// Package assist implements the simulated assistant: rule-based suggestion
// generation, chat sessions, the pending-suggestion protocol endpoints and a
// mocked compiler.
package assist

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"contractpad/internal/domain/models/docsystem"
	"contractpad/internal/domain/models/editing"
	assistSvc "contractpad/internal/domain/services/assist"
	"contractpad/internal/service/suggestion"
)

// RuleGenerator proposes one suggestion per rule whose find text occurs in
// the document.
type RuleGenerator struct {
	rules  []Rule
	logger *slog.Logger
}

// NewRuleGenerator creates a generator over rules.
func NewRuleGenerator(rules []Rule, logger *slog.Logger) *RuleGenerator {
	return &RuleGenerator{
		rules:  rules,
		logger: logger,
	}
}

var _ assistSvc.Generator = (*RuleGenerator)(nil)

// Generate returns suggestions in catalog order. Changes carry no document
// id; the caller stamps it.
func (g *RuleGenerator) Generate(ctx context.Context, content, documentName string) ([]editing.Suggestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	kind := docsystem.KindFromName(documentName)

	var out []editing.Suggestion
	for i := range g.rules {
		rule := &g.rules[i]
		if !rule.AppliesTo(kind) || !strings.Contains(content, rule.Find) {
			continue
		}

		s := editing.Suggestion{
			ID:          uuid.NewString(),
			Title:       rule.Title,
			Description: rule.Description,
			Category:    rule.Category,
			Impact:      rule.Impact,
			Confidence:  rule.Confidence,
			Changes: []editing.Change{{
				OldText:     rule.Find,
				NewText:     rule.Replace,
				Description: rule.Description,
			}},
		}

		if err := suggestion.Validate(&s); err != nil {
			g.logger.Warn("dropping invalid suggestion",
				"rule_id", rule.ID,
				"document", documentName,
				"error", err,
			)
			continue
		}
		out = append(out, s)
	}

	g.logger.Debug("suggestions generated",
		"document", documentName,
		"kind", kind,
		"count", len(out),
	)

	return out, nil
}
