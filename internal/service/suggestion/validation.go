package suggestion

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"contractpad/internal/config"
	"contractpad/internal/domain/models/editing"
)

// Validate checks a generated suggestion before it is shown. The protocol
// itself tolerates anything; this only keeps malformed generator output
// away from the user.
func Validate(s *editing.Suggestion) error {
	return validation.ValidateStruct(s,
		validation.Field(&s.ID, validation.Required),
		validation.Field(&s.Title,
			validation.Required,
			validation.Length(1, config.MaxSuggestionTitleLength),
		),
		validation.Field(&s.Category,
			validation.Required,
			validation.In(
				editing.CategoryPerformance,
				editing.CategorySecurity,
				editing.CategoryStyle,
				editing.CategoryMaintainability,
			),
		),
		validation.Field(&s.Impact,
			validation.Required,
			validation.In(editing.ImpactLow, editing.ImpactMedium, editing.ImpactHigh),
		),
		validation.Field(&s.Confidence, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&s.Changes,
			validation.Required,
			validation.Length(1, config.MaxChangesPerSuggestion),
			validation.Each(validation.By(validateChange)),
		),
	)
}

func validateChange(value interface{}) error {
	change, ok := value.(editing.Change)
	if !ok {
		return errors.New("must be a change")
	}
	if change.OldText == "" {
		return errors.New("old_text cannot be empty")
	}
	if change.OldText == change.NewText {
		return errors.New("new_text must differ from old_text")
	}
	return nil
}
