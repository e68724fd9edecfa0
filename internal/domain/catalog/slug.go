package catalog

import (
	"math/rand"
	"strings"
)

const slugSuffixChars = "abcdefghijklmnopqrstuvwxyz0123456789"

// Slugify lowercases a listing title and collapses everything that is not
// alphanumeric into single hyphens.
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// SlugWithSuffix appends a short random suffix for uniqueness. The entropy
// source is a parameter so tests can pin it.
func SlugWithSuffix(title string, r *rand.Rand) string {
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = slugSuffixChars[r.Intn(len(slugSuffixChars))]
	}
	return Slugify(title) + "-" + string(suffix)
}
