package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Size limits (in bytes)
const (
	MaxFileContentSize = 1 * 1024 * 1024 // 1MB - maximum file content size
	MaxPromptSize      = 64 * 1024       // 64KB - AI prompt size limit
)

// String length limits
const (
	MaxNameLength        = 256
	MaxDescriptionLength = 2048
	MaxPathLength        = 512
)

// SafePathPattern allows path segments of alphanumeric, dots, hyphens,
// underscores separated by forward slashes.
var SafePathPattern = regexp.MustCompile(`^[a-zA-Z0-9._/-]+$`)

// ValidateString validates a string field with length and content checks.
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	if value == "" && !required {
		return nil
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}

	// Check for null bytes (security issue)
	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}

	return nil
}

// ValidateName validates a project name.
func ValidateName(name, fieldName string) error {
	return ValidateString(name, fieldName, 1, MaxNameLength, true)
}

// ValidateDescription validates a description field.
func ValidateDescription(description, fieldName string, required bool) error {
	return ValidateString(description, fieldName, 0, MaxDescriptionLength, required)
}

// ValidateFilePath validates a project-relative file path.
func ValidateFilePath(path string) error {
	if err := ValidateString(path, "path", 1, MaxPathLength, true); err != nil {
		return err
	}

	if strings.HasPrefix(path, "/") {
		return fmt.Errorf("path must be project-relative")
	}
	if strings.Contains(path, "..") {
		return fmt.Errorf("path must not contain parent references")
	}
	if !SafePathPattern.MatchString(path) {
		return fmt.Errorf("path contains invalid characters")
	}

	return nil
}

// ValidateFileContent validates file content size.
func ValidateFileContent(content string) error {
	if len(content) > MaxFileContentSize {
		return fmt.Errorf("content size %d bytes exceeds maximum %d bytes", len(content), MaxFileContentSize)
	}
	return nil
}

// ValidatePrompt validates an AI completion prompt.
func ValidatePrompt(prompt string) error {
	if err := ValidateString(prompt, "prompt", 1, MaxPromptSize, true); err != nil {
		return err
	}
	return nil
}
