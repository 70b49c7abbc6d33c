package assist

// Diagnostic is a compiler error or warning.
type Diagnostic struct {
	Severity string `json:"severity"` // "error" or "warning"
	Line     int    `json:"line"`
	Message  string `json:"message"`
}

// CompileResult is the structured outcome of a (mocked) compilation.
type CompileResult struct {
	DocumentID string       `json:"document_id"`
	Success    bool         `json:"success"`
	Errors     []Diagnostic `json:"errors"`
	Warnings   []Diagnostic `json:"warnings"`
	Contracts  []string     `json:"contracts"`
	DurationMs int64        `json:"duration_ms"`
}

// TestCase is one (mocked) test outcome.
type TestCase struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	GasUsed int    `json:"gas_used"`
	Message string `json:"message,omitempty"`
}

// TestResult aggregates a (mocked) test run.
type TestResult struct {
	DocumentID string     `json:"document_id"`
	Passed     int        `json:"passed"`
	Failed     int        `json:"failed"`
	Cases      []TestCase `json:"cases"`
	DurationMs int64      `json:"duration_ms"`
}
