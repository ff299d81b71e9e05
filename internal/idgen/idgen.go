// Package idgen generates opaque, time-ordered identifiers for every
// entity the store creates, per spec.md §4.6.
package idgen

import (
	"fmt"

	"github.com/google/uuid"
)

// New returns a time-ordered UUIDv7 identifier. UUIDv7 embeds a
// millisecond timestamp in its high bits, so lexicographic and creation
// order agree — useful for anyone printing ids in a listing without a
// created_at column at hand.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		// crypto/rand failure is not something the store can recover from;
		// fall back to a random v4 rather than surfacing a generation error
		// from every insert call.
		return uuid.NewString()
	}
	return id.String()
}

// NewPrefixed returns a New() id with a human-readable prefix, used for
// entities where callers find a bare UUID hard to skim in CLI output
// (e.g. "sub_<uuid>" for subscriptions, "evt_<uuid>" for events).
func NewPrefixed(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, New())
}
