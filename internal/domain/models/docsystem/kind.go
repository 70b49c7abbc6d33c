package docsystem

import (
	"path/filepath"
	"strings"
)

// Kind is the content type of a document. It only drives default
// templates and highlighting in the shell.
type Kind string

const (
	KindSolidity   Kind = "solidity"
	KindVyper      Kind = "vyper"
	KindMove       Kind = "move"
	KindRust       Kind = "rust"
	KindTypeScript Kind = "typescript"
	KindJavaScript Kind = "javascript"
	KindJSON       Kind = "json"
	KindMarkdown   Kind = "markdown"
	KindText       Kind = "text"
)

// Kinds lists every supported kind, in display order.
var Kinds = []Kind{
	KindSolidity, KindVyper, KindMove, KindRust,
	KindTypeScript, KindJavaScript, KindJSON, KindMarkdown, KindText,
}

var extensionKinds = map[string]Kind{
	".sol":  KindSolidity,
	".vy":   KindVyper,
	".move": KindMove,
	".rs":   KindRust,
	".ts":   KindTypeScript,
	".js":   KindJavaScript,
	".json": KindJSON,
	".md":   KindMarkdown,
	".txt":  KindText,
}

// KindFromName infers a kind from a file name's extension, defaulting to text.
func KindFromName(name string) Kind {
	if kind, ok := extensionKinds[strings.ToLower(filepath.Ext(name))]; ok {
		return kind
	}
	return KindText
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Template returns the starter content for a new document of this kind.
func (k Kind) Template(name string) string {
	contract := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if contract == "" || contract == "." {
		contract = "Contract"
	}

	switch k {
	case KindSolidity:
		return "// SPDX-License-Identifier: MIT\npragma solidity ^0.8.20;\n\ncontract " + contract + " {\n    function add(uint256 a, uint256 b) public pure returns (uint256) {\n        return a + b;\n    }\n}\n"
	case KindVyper:
		return "# @version ^0.3.10\n\n@external\n@pure\ndef add(a: uint256, b: uint256) -> uint256:\n    return a + b\n"
	case KindMove:
		return "module 0x1::" + strings.ToLower(contract) + " {\n    public fun add(a: u64, b: u64): u64 {\n        a + b\n    }\n}\n"
	case KindRust:
		return "pub fn add(a: u64, b: u64) -> u64 {\n    a + b\n}\n"
	case KindTypeScript, KindJavaScript:
		return "export function add(a, b) {\n  return a + b;\n}\n"
	case KindJSON:
		return "{}\n"
	case KindMarkdown:
		return "# " + contract + "\n"
	default:
		return ""
	}
}
