package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for user-supplied fields.
const (
	maxUsernameLen = 100
	maxNameLen     = 300
	maxContentLen  = 100_000
)

// validateCredentials checks registration inputs and returns the first
// error found.
func validateCredentials(username, password string) string {
	username = strings.TrimSpace(username)
	if username == "" {
		return "Username is required."
	}
	if utf8.RuneCountInString(username) > maxUsernameLen {
		return "Username is too long (max 100 characters)."
	}
	if password == "" {
		return "Password is required."
	}
	return ""
}

// validateNewPost checks inputs for a brand-new post. Unlike edits, where
// an omitted field means "keep the current value", a new post must carry a
// non-blank name and content.
func validateNewPost(name, content string) string {
	if strings.TrimSpace(name) == "" {
		return "Name is required."
	}
	if strings.TrimSpace(content) == "" {
		return "Content is required."
	}
	return validatePostFields(name, content)
}

// validatePostFields checks post inputs and returns the first error found.
func validatePostFields(name, content string) string {
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return "Content is too long (max 100,000 characters)."
	}
	return ""
}

// validateLabel checks a category or tag name and returns the first
// error found.
func validateLabel(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 300 characters)."
	}
	return ""
}
