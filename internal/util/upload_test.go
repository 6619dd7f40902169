package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedExtension(t *testing.T) {
	assert.True(t, AllowedExtension("lecture.pdf"))
	assert.True(t, AllowedExtension("notes.docx"))
	assert.True(t, AllowedExtension("slides.PPTX"))
	assert.True(t, AllowedExtension("old.DOC"))

	assert.False(t, AllowedExtension("malware.exe"))
	assert.False(t, AllowedExtension("archive.zip"))
	assert.False(t, AllowedExtension("image.png"))
	assert.False(t, AllowedExtension("noextension"))
	assert.False(t, AllowedExtension(""))
}
