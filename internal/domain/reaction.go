package domain

import (
	"strings"
	"time"
)

// Reaction is the single reconciled reaction of an identity on a post.
type Reaction struct {
	PostID     int64     `json:"post_id"`
	IdentityID int64     `json:"identity_id"`
	Emoji      string    `json:"emoji"`
	CreatedAt  time.Time `json:"created_at"`
}

type ReactionSummary struct {
	Counts     map[string]int64 `json:"counts"`
	MyReaction *string          `json:"my_reaction"`
}

const variationSelector16 = "\uFE0F"

// AllowedEmoji is the fixed reaction set, in display order.
var AllowedEmoji = []string{
	"\U0001F56F\uFE0F", // candle
	"\U0001F32B\uFE0F", // fog
	"\U0001F54A\uFE0F", // dove
	"\U0001F480",       // skull
	"\U0001F441\uFE0F", // eye
	"\U0001F4AD",       // thought balloon
	"\U0001F327\uFE0F", // cloud with rain
}

// NormalizeEmoji returns the canonical spelling of an allowed emoji. Clients
// that drop the variation selector still match.
func NormalizeEmoji(emoji string) (string, bool) {
	bare := strings.TrimSuffix(emoji, variationSelector16)
	for _, allowed := range AllowedEmoji {
		if emoji == allowed || bare == strings.TrimSuffix(allowed, variationSelector16) {
			return allowed, true
		}
	}
	return "", false
}
