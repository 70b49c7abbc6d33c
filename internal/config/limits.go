package config

const (
	// MaxProjectNameLength is the maximum length for project names.
	MaxProjectNameLength = 255

	// MaxProjectDescriptionLength is the maximum length for project descriptions.
	MaxProjectDescriptionLength = 2000

	// MaxDocumentNameLength is the maximum length for document names.
	MaxDocumentNameLength = 255

	// MaxDocumentPathLength is the maximum length for document display paths.
	MaxDocumentPathLength = 500

	// MaxDocumentSize caps document content in bytes. Every history entry
	// is a full snapshot, so this also bounds history memory per document.
	MaxDocumentSize = 1 << 20

	// MaxEditDescriptionLength bounds the label of a manual history entry.
	MaxEditDescriptionLength = 200

	// MaxSessionTitleLength is the maximum length for chat session titles.
	MaxSessionTitleLength = 255

	// MaxMessageLength is the maximum length of a user chat message.
	MaxMessageLength = 16 << 10

	// MaxSuggestionTitleLength is the maximum length for suggestion titles.
	MaxSuggestionTitleLength = 200

	// MaxChangesPerSuggestion caps the changes in one generated suggestion.
	MaxChangesPerSuggestion = 50

	// DefaultHistoryLimit is the per-document undo depth.
	DefaultHistoryLimit = 50

	// MinFontSize and MaxFontSize bound the editor font size preference.
	MinFontSize = 8
	MaxFontSize = 48
)
