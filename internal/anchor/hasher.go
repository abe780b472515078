package anchor

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
)

// HashWidth is the number of hex characters in an anchor hash.
const HashWidth = 4

// HashLine returns the anchor digest for one line of text: XXH64 of the
// whitespace-normalized line, truncated to 16 bits and rendered as 4
// lowercase hex characters.
//
// All whitespace (and any stray CR) is stripped before hashing, so
// indentation-only or trailing-space changes do not invalidate anchors.
// An empty line is a valid input and hashes to the digest of the empty
// string, distinct from a missing line.
//
// Collisions between different line contents are an accepted residual risk
// of the short width; the design detects staleness, not forgery.
func HashLine(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == '\r' || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}

	sum := xxhash.Sum64String(b.String()) & 0xffff
	return fmt.Sprintf("%0*x", HashWidth, sum)
}
