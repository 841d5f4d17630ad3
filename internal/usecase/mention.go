package usecase

import (
	"regexp"
	"unicode/utf8"

	"github.com/NefariousNGGA/backend/internal/domain"
)

var mentionPattern = regexp.MustCompile(`@([A-Za-z0-9_]+)`)

// ExtractMentions returns every distinct @handle in text, in first-seen order.
// Handles longer than the handle limit are dropped. It does not check that the
// handles exist.
func ExtractMentions(text string) []string {
	matches := mentionPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	mentions := make([]string, 0, len(matches))
	for _, m := range matches {
		handle := domain.HandlePrefix + m[1]
		if utf8.RuneCountInString(handle) > domain.HandleMaxLength {
			continue
		}
		if _, ok := seen[handle]; ok {
			continue
		}
		seen[handle] = struct{}{}
		mentions = append(mentions, handle)
	}
	return mentions
}
