package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileExt(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"report.pdf", "pdf"},
		{"archive.ZIP", "zip"},
		{"main.CPP", "cpp"},
		{"noext", ""},
		{"trailing.", ""},
		{"many.dots.tar.gz", "gz"},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, FileExt(tt.filename))
		})
	}
}

func TestAllowedSubmissionFile(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"answers.pdf", true},
		{"answers.PDF", true},
		{"essay.doc", true},
		{"essay.docx", true},
		{"solution.zip", true},
		{"notes.txt", true},
		{"main.cpp", true},
		{"script.py", true},
		{"photo.png", false},
		{"malware.exe", false},
		{"page.html", false},
		{"archive.tar.gz", false},
		{"noextension", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, AllowedSubmissionFile(tt.filename))
		})
	}
}
