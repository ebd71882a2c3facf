package util

import (
	"path/filepath"
	"strings"
)

// Extensions accepted for quiz submissions, lower case without the dot.
var allowedSubmissionExts = map[string]bool{
	"pdf":  true,
	"doc":  true,
	"docx": true,
	"zip":  true,
	"txt":  true,
	"cpp":  true,
	"py":   true,
}

// FileExt returns the extension of filename, lower case, without the
// leading dot. Empty when the filename has no extension.
func FileExt(filename string) string {
	ext := filepath.Ext(filename)
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// AllowedSubmissionFile reports whether filename carries one of the
// accepted submission extensions. Matching is case-insensitive.
func AllowedSubmissionFile(filename string) bool {
	return allowedSubmissionExts[FileExt(filename)]
}
