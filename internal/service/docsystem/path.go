package docsystem

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// BuildPath returns the display path for a document. An empty path puts
// the document at the project root.
//
// Examples:
//   - BuildPath("", "Token.sol") → "/Token.sol"
//   - BuildPath("contracts/Token.sol", "Token.sol") → "/contracts/Token.sol"
func BuildPath(path, name string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return "/" + name
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

// ValidatePath checks a display path for obvious garbage. Paths are display
// only, so this stays permissive.
//
// Rules:
//   - No consecutive slashes ("a//b" → error)
//   - No trailing slash ("a/" → error)
//   - No "." or ".." segments
func ValidatePath(value interface{}) error {
	path, ok := stringValue(value)
	if !ok {
		return fmt.Errorf("path must be a string")
	}
	if path == "" {
		return nil
	}

	trimmed := strings.TrimPrefix(path, "/")
	if strings.HasSuffix(trimmed, "/") {
		return fmt.Errorf("path cannot end with '/'")
	}
	if strings.Contains(trimmed, "//") {
		return fmt.Errorf("path cannot contain consecutive slashes '//'")
	}
	for _, segment := range strings.Split(trimmed, "/") {
		if segment == "." || segment == ".." {
			return fmt.Errorf("path cannot contain '%s' segments", segment)
		}
	}
	return nil
}

// validateSimpleName rejects names carrying path separators or control
// characters.
func validateSimpleName(value interface{}) error {
	if _, isNil := validation.Indirect(value); isNil {
		return nil
	}
	name, ok := stringValue(value)
	if !ok {
		return fmt.Errorf("name must be a string")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if strings.ContainsAny(name, "/\\") {
		return fmt.Errorf("name cannot contain '/' or '\\'")
	}
	for _, r := range name {
		if r < 0x20 {
			return fmt.Errorf("name cannot contain control characters")
		}
	}
	return nil
}

// stringValue unwraps string and *string rule inputs. A nil pointer reads
// as the empty string.
func stringValue(value interface{}) (string, bool) {
	v, isNil := validation.Indirect(value)
	if isNil {
		return "", true
	}
	str, ok := v.(string)
	return str, ok
}
