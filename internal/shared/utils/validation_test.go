package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateFilePath(t *testing.T) {
	valid := []string{"main.go", "src/app/handler.go", "a-b_c.d/e.txt"}
	for _, path := range valid {
		assert.NoError(t, ValidateFilePath(path), path)
	}

	invalid := []string{"", "/etc/passwd", "../up", "a/../b", "bad\x00byte", "spaces in name"}
	for _, path := range invalid {
		assert.Error(t, ValidateFilePath(path), path)
	}
}

func TestValidateFileContent(t *testing.T) {
	assert.NoError(t, ValidateFileContent("package main"))
	assert.Error(t, ValidateFileContent(strings.Repeat("x", MaxFileContentSize+1)))
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("my project", "name"))
	assert.Error(t, ValidateName("", "name"))
	assert.Error(t, ValidateName(strings.Repeat("n", MaxNameLength+1), "name"))
}

func TestValidatePrompt(t *testing.T) {
	assert.NoError(t, ValidatePrompt("write a sort function"))
	assert.Error(t, ValidatePrompt(""))
}
