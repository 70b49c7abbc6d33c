package assist

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"contractpad/internal/domain/models/assist"
	"contractpad/internal/domain/models/docsystem"
	assistSvc "contractpad/internal/domain/services/assist"
)

const baseGas = 21000

var (
	solidityContract = regexp.MustCompile(`(?m)^\s*(?:abstract\s+)?(?:contract|library|interface)\s+(\w+)`)
	moveModule       = regexp.MustCompile(`(?m)^\s*module\s+[\w:]+::(\w+)`)

	functionPatterns = map[docsystem.Kind]*regexp.Regexp{
		docsystem.KindSolidity:   regexp.MustCompile(`\bfunction\s+(\w+)`),
		docsystem.KindVyper:      regexp.MustCompile(`(?m)^def\s+(\w+)`),
		docsystem.KindMove:       regexp.MustCompile(`\bfun\s+(\w+)`),
		docsystem.KindRust:       regexp.MustCompile(`\bfn\s+(\w+)`),
		docsystem.KindTypeScript: regexp.MustCompile(`\bfunction\s+(\w+)`),
		docsystem.KindJavaScript: regexp.MustCompile(`\bfunction\s+(\w+)`),
	}
)

// MockCompiler stands in for a real toolchain. Results depend only on the
// document content.
type MockCompiler struct {
	logger *slog.Logger
}

// NewMockCompiler creates a mocked compiler.
func NewMockCompiler(logger *slog.Logger) *MockCompiler {
	return &MockCompiler{logger: logger}
}

var _ assistSvc.Compiler = (*MockCompiler)(nil)

// Compile checks bracket balance and a few well-known smells, and lists
// the contracts the document declares.
func (c *MockCompiler) Compile(ctx context.Context, doc *docsystem.Document) (*assist.CompileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &assist.CompileResult{
		DocumentID: doc.ID,
		Errors:     []assist.Diagnostic{},
		Warnings:   []assist.Diagnostic{},
		Contracts:  []string{},
		DurationMs: simulatedDuration(doc.Content),
	}

	result.Errors = append(result.Errors, checkBrackets(doc.Content)...)

	switch doc.Kind {
	case docsystem.KindSolidity:
		if !strings.Contains(doc.Content, "pragma solidity") {
			result.Warnings = append(result.Warnings, assist.Diagnostic{
				Severity: "warning", Line: 1, Message: "source file does not specify required compiler version",
			})
		}
		if line := lineOf(doc.Content, "tx.origin"); line > 0 {
			result.Warnings = append(result.Warnings, assist.Diagnostic{
				Severity: "warning", Line: line, Message: "use of tx.origin for authorization",
			})
		}
		result.Contracts = captures(solidityContract, doc.Content)
	case docsystem.KindMove:
		result.Contracts = captures(moveModule, doc.Content)
	case docsystem.KindVyper:
		result.Contracts = []string{contractName(doc.Name)}
	}

	result.Success = len(result.Errors) == 0

	c.logger.Debug("compiled",
		"document_id", doc.ID,
		"success", result.Success,
		"errors", len(result.Errors),
		"warnings", len(result.Warnings),
	)

	return result, nil
}

// RunTests compiles the document and reports one case per declared
// function. Compilation failure yields a single failed case.
func (c *MockCompiler) RunTests(ctx context.Context, doc *docsystem.Document) (*assist.TestResult, error) {
	compiled, err := c.Compile(ctx, doc)
	if err != nil {
		return nil, err
	}

	result := &assist.TestResult{
		DocumentID: doc.ID,
		Cases:      []assist.TestCase{},
		DurationMs: compiled.DurationMs * 3,
	}

	if !compiled.Success {
		result.Cases = append(result.Cases, assist.TestCase{
			Name:    "compile",
			Passed:  false,
			Message: compiled.Errors[0].Message,
		})
	} else {
		var functions []string
		if pattern, ok := functionPatterns[doc.Kind]; ok {
			functions = captures(pattern, doc.Content)
		}
		if len(functions) == 0 {
			functions = []string{"deploy"}
		}
		for _, fn := range functions {
			result.Cases = append(result.Cases, assist.TestCase{
				Name:    "test_" + fn,
				Passed:  true,
				GasUsed: baseGas + 100*len(fn),
			})
		}
		if doc.Kind == docsystem.KindSolidity && strings.Contains(doc.Content, "tx.origin") {
			result.Cases = append(result.Cases, assist.TestCase{
				Name:    "test_phishing_via_intermediate_contract",
				Passed:  false,
				GasUsed: baseGas,
				Message: "call routed through an attacker contract passed the tx.origin check",
			})
		}
	}

	for _, tc := range result.Cases {
		if tc.Passed {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	return result, nil
}

var closers = map[rune]rune{')': '(', ']': '[', '}': '{'}

// checkBrackets reports the first unbalanced bracket. Strings and comments
// are not special-cased.
func checkBrackets(content string) []assist.Diagnostic {
	type open struct {
		r    rune
		line int
	}
	var stack []open
	line := 1

	for _, r := range content {
		switch r {
		case '\n':
			line++
		case '(', '[', '{':
			stack = append(stack, open{r: r, line: line})
		case ')', ']', '}':
			if len(stack) == 0 || stack[len(stack)-1].r != closers[r] {
				return []assist.Diagnostic{{
					Severity: "error", Line: line, Message: fmt.Sprintf("unexpected '%c'", r),
				}}
			}
			stack = stack[:len(stack)-1]
		}
	}

	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return []assist.Diagnostic{{
			Severity: "error", Line: top.line, Message: fmt.Sprintf("unclosed '%c'", top.r),
		}}
	}
	return nil
}

func captures(re *regexp.Regexp, content string) []string {
	out := []string{}
	for _, m := range re.FindAllStringSubmatch(content, -1) {
		out = append(out, m[1])
	}
	return out
}

func lineOf(content, needle string) int {
	idx := strings.Index(content, needle)
	if idx < 0 {
		return 0
	}
	return strings.Count(content[:idx], "\n") + 1
}

func contractName(name string) string {
	if dot := strings.LastIndex(name, "."); dot > 0 {
		return name[:dot]
	}
	return name
}

func simulatedDuration(content string) int64 {
	return 40 + int64(len(content)/64)
}
