package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Anchor references a specific line as it existed at read time.
// Two anchors are equal only if both the line number and the hash match.
type Anchor struct {
	Line int    // 1-based line number
	Hash string // lowercase hex digest of the line text
}

// String renders the anchor in its textual NUMBER:HASH form.
func (a Anchor) String() string {
	return fmt.Sprintf("%d:%s", a.Line, a.Hash)
}

// ParseAnchor parses the textual anchor grammar: a decimal line number and a
// hex hash separated by a single colon, with no surrounding whitespace.
// Uppercase hex is accepted and normalized to lowercase. Failures are
// reported as *MalformedAnchorError without touching any file.
func ParseAnchor(s string) (Anchor, error) {
	lineStr, hashStr, found := strings.Cut(s, ":")
	if !found {
		return Anchor{}, &MalformedAnchorError{Input: s, Reason: "missing ':' separator"}
	}
	if strings.Contains(hashStr, ":") {
		return Anchor{}, &MalformedAnchorError{Input: s, Reason: "too many ':' separators"}
	}

	if lineStr == "" {
		return Anchor{}, &MalformedAnchorError{Input: s, Reason: "empty line number"}
	}
	for _, c := range lineStr {
		if c < '0' || c > '9' {
			return Anchor{}, &MalformedAnchorError{Input: s, Reason: "line number is not a decimal integer"}
		}
	}
	line, err := strconv.Atoi(lineStr)
	if err != nil {
		return Anchor{}, &MalformedAnchorError{Input: s, Reason: "line number out of range"}
	}
	if line < 1 {
		return Anchor{}, &MalformedAnchorError{Input: s, Reason: "anchors are 1-indexed (line must be >= 1)"}
	}

	if hashStr == "" {
		return Anchor{}, &MalformedAnchorError{Input: s, Reason: "empty hash"}
	}
	hash := strings.ToLower(hashStr)
	for _, c := range hash {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return Anchor{}, &MalformedAnchorError{Input: s, Reason: "hash is not hex"}
		}
	}

	return Anchor{Line: line, Hash: hash}, nil
}
