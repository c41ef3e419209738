package services

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/apperrors"
	"github.com/microcosm-cc/bluemonday"
)

const (
	maxPostLength    = 5000
	maxCommentLength = 2000
	maxReasonLength  = 500
	maxImageLength   = 1024
)

var contentPolicy = bluemonday.StrictPolicy()

// cleanText strips markup from user text and enforces presence and length.
// Entities are decoded before sanitizing so escaped tags are stripped too; the
// stored text keeps the policy's escaping.
func cleanText(field, raw string, max int) (string, error) {
	text := strings.TrimSpace(contentPolicy.Sanitize(html.UnescapeString(raw)))
	if text == "" {
		return "", apperrors.InvalidInput(field + " is required")
	}
	if utf8.RuneCountInString(text) > max {
		return "", apperrors.InvalidInput(field + " is too long")
	}
	return text, nil
}

// cleanImage accepts the already-stored media reference as an opaque string.
func cleanImage(raw string) (string, error) {
	image := strings.TrimSpace(raw)
	if len(image) > maxImageLength {
		return "", apperrors.InvalidInput("image reference is too long")
	}
	return image, nil
}
