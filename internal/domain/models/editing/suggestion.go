package editing

// Category classifies what a suggestion improves.
type Category string

const (
	CategoryPerformance     Category = "performance"
	CategorySecurity        Category = "security"
	CategoryStyle           Category = "style"
	CategoryMaintainability Category = "maintainability"
)

// Impact is the expected effect size of a suggestion.
type Impact string

const (
	ImpactLow    Impact = "low"
	ImpactMedium Impact = "medium"
	ImpactHigh   Impact = "high"
)

// Change is one literal substitution. Only the first occurrence of OldText
// in the running content is replaced.
type Change struct {
	DocumentID  string `json:"document_id" yaml:"document_id"`
	OldText     string `json:"old_text" yaml:"old_text"`
	NewText     string `json:"new_text" yaml:"new_text"`
	Description string `json:"description" yaml:"description"`
}

// Suggestion is a named, immutable batch of changes proposed by the
// assistant. Applying or dismissing it never mutates it.
type Suggestion struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Impact      Impact   `json:"impact"`
	Confidence  float64  `json:"confidence"`
	Changes     []Change `json:"changes"`
}

// Copy returns a deep copy so callers can hand out suggestions without
// sharing the Changes backing array.
func (s Suggestion) Copy() Suggestion {
	s.Changes = append([]Change(nil), s.Changes...)
	return s
}

// ChangePreview is the renderable form of one change.
type ChangePreview struct {
	Index       int    `json:"index"`
	DocumentID  string `json:"document_id"`
	Description string `json:"description"`
	OldText     string `json:"old_text"`
	NewText     string `json:"new_text"`
	Diff        string `json:"diff"` // Unified diff of OldText -> NewText
}

// Preview is what the user reviews before confirming a suggestion.
type Preview struct {
	SuggestionID string          `json:"suggestion_id"`
	Title        string          `json:"title"`
	Category     Category        `json:"category"`
	Impact       Impact          `json:"impact"`
	Confidence   float64         `json:"confidence"`
	Changes      []ChangePreview `json:"changes"`
}
