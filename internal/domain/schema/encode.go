package schema

import (
	"fmt"
	"strings"

	nanoid "github.com/matoous/go-nanoid/v2"
)

const slugAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// slugSuffixLength is the number of random characters appended when a
// sanitized name collides with an existing encoded name.
const slugSuffixLength = 6

// EncodeName derives an identifier-safe slug from a user-supplied name.
// Characters outside [A-Za-z0-9_] are dropped; a name with nothing left
// falls back to a purely random slug. Uniqueness is not guaranteed here:
// the resolver retries with a suffixed slug when the store rejects a
// duplicate encoded name.
func EncodeName(name string) (string, error) {
	var b strings.Builder
	b.Grow(len(name))
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
			b.WriteRune(c)
		}
	}
	if b.Len() == 0 {
		return randomSlug("")
	}
	return b.String(), nil
}

func randomSlug(base string) (string, error) {
	suffix, err := nanoid.Generate(slugAlphabet, slugSuffixLength)
	if err != nil {
		return "", fmt.Errorf("generating slug: %w", err)
	}
	if base == "" {
		return suffix, nil
	}
	return base + "_" + suffix, nil
}
