// Package lang dispatches file parsing by language tag. Each language is
// a value implementing Parser; adding a language means adding one map
// entry, never a new type hierarchy.
package lang

import (
	"path/filepath"
	"strings"
)

// Symbol is one declaration extracted from a source file.
type Symbol struct {
	Name      string
	Kind      string
	Signature string
	StartLine int
	EndLine   int
}

// Result is everything a Parser produces for one file.
type Result struct {
	Symbols   []Symbol
	Imports   []string
	LineCount int
}

// Parser extracts symbols and raw imports from one file's bytes.
// Extraction failures on individual constructs are tolerated internally;
// Parse itself only errors if the file can't be parsed at all, in which
// case the caller falls back to a zero-symbol, line-count-only Result.
type Parser interface {
	Parse(content []byte) (Result, error)
}

// fullySupported maps a language tag to its tree-sitter-backed parser.
var fullySupported = map[string]Parser{
	"go":         goParser{},
	"python":     pythonParser{},
	"javascript": javascriptParser{},
	"typescript": typescriptParser{},
	"rust":       rustParser{},
}

// trackedOnly maps extensions to a language tag recognized but not
// parsed beyond a line count, per spec.md §2/§4.3.
var trackedOnly = map[string]string{
	".java": "java",
	".c":    "c",
	".h":    "c",
	".cpp":  "cpp",
	".cc":   "cpp",
	".hpp":  "cpp",
	".rb":   "ruby",
	".php":  "php",
	".md":   "markdown",
	".json": "json",
	".yaml": "yaml",
	".yml":  "yaml",
	".toml": "toml",
	".sh":   "shell",
	".css":  "css",
	".html": "html",
}

var fullySupportedExt = map[string]string{
	".go":  "go",
	".py":  "python",
	".js":  "javascript",
	".jsx": "javascript",
	".mjs": "javascript",
	".ts":  "typescript",
	".tsx": "typescript",
	".rs":  "rust",
}

// ClassifyPath returns the language tag for path's extension and whether
// it is tracked at all (false means the scanner should skip the file
// entirely — it isn't a recognized source file).
func ClassifyPath(path string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := fullySupportedExt[ext]; ok {
		return lang, true
	}
	if lang, ok := trackedOnly[ext]; ok {
		return lang, true
	}
	return "", false
}

// Dispatch returns the Parser for language, or the line-count-only
// fallback if language is tracked but has no grammar wired in.
func Dispatch(language string) Parser {
	if p, ok := fullySupported[language]; ok {
		return p
	}
	return lineCountParser{}
}
