package usecase

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/NefariousNGGA/backend/internal/domain"
)

var markupPolicy = bluemonday.StrictPolicy()

// stripMarkup removes HTML from display names while keeping literal
// characters. Bodies and titles are stored as given and escaped by whoever
// renders them.
func stripMarkup(val string) string {
	return html.UnescapeString(markupPolicy.Sanitize(val))
}

// ValidateHandle checks the issuance-time handle rules: "@" prefix and 3-30
// characters in total. The character set is only narrowed at mention
// extraction.
func ValidateHandle(handle string) error {
	if !strings.HasPrefix(handle, domain.HandlePrefix) {
		return domain.InvalidInputError{Field: "username", Reason: "must start with @"}
	}
	n := utf8.RuneCountInString(handle)
	if n < domain.HandleMinLength || n > domain.HandleMaxLength {
		return domain.InvalidInputError{Field: "username", Reason: "must be 3-30 characters"}
	}
	return nil
}

func normalizeDisplayName(name string) (string, error) {
	name = strings.TrimSpace(stripMarkup(name))
	if name == "" {
		return "", domain.InvalidInputError{Field: "display_name", Reason: "required"}
	}
	if utf8.RuneCountInString(name) > domain.DisplayNameMaxLength {
		return "", domain.InvalidInputError{Field: "display_name", Reason: "too long"}
	}
	return name, nil
}

func normalizeBody(body string) (string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return "", domain.InvalidInputError{Field: "content", Reason: "required"}
	}
	return body, nil
}

func normalizeTitle(title *string) *string {
	if title == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*title)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func normalizeMoodTags(tags []string) ([]string, error) {
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if utf8.RuneCountInString(tag) > domain.MoodTagMaxLength {
			return nil, domain.InvalidInputError{Field: "mood_tags", Reason: "tag too long"}
		}
		result = append(result, tag)
	}
	if len(result) > domain.MaxMoodTags {
		return nil, domain.InvalidInputError{Field: "mood_tags", Reason: "too many tags"}
	}
	return result, nil
}
