package util

import (
	"path/filepath"
	"strings"
)

// MaxUploadSize caps presigned uploads at 50MB.
const MaxUploadSize = 50 << 20

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".ppt":  true,
	".pptx": true,
}

// AllowedExtension reports whether the filename's extension is an accepted
// document type. Matching is case-insensitive.
func AllowedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return allowedExtensions[ext]
}
