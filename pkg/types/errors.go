package types

import (
	"fmt"
	"strings"
)

// MalformedAnchorError reports anchor text that does not match the
// NUMBER:HASH grammar. It is detected before any file access.
type MalformedAnchorError struct {
	Input  string
	Reason string
}

func (e *MalformedAnchorError) Error() string {
	return fmt.Sprintf("malformed anchor %q: %s", e.Input, e.Reason)
}

// InvalidRangeError reports a range edit whose start anchor points past its
// end anchor.
type InvalidRangeError struct {
	Start Anchor
	End   Anchor
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range: start anchor %s is after end anchor %s", e.Start, e.End)
}

// MismatchKind distinguishes an anchor whose line no longer exists from one
// whose line exists but has different content.
type MismatchKind string

const (
	// MismatchMissing means the referenced line number is beyond the
	// current end of the file.
	MismatchMissing MismatchKind = "missing"
	// MismatchStale means the line exists but its current hash differs
	// from the anchor's hash: the file changed since the caller read it.
	MismatchStale MismatchKind = "stale"
)

// Mismatch describes one failed anchor verification.
type Mismatch struct {
	Anchor     Anchor
	Kind       MismatchKind
	ActualHash string // current hash at Anchor.Line; empty when missing
	ActualText string // current text at Anchor.Line; empty when missing
}

// AnchorMismatchError aborts a batch whose anchors no longer hold. It
// collects every failing anchor so the caller can repair the whole batch
// from a single error.
type AnchorMismatchError struct {
	Mismatches []Mismatch
	FileLines  int // current line count, for missing-line reporting
}

func (e *AnchorMismatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d anchor(s) no longer match. Re-read the file and use updated LINE:HASH anchors.\n\n",
		len(e.Mismatches))

	for _, m := range e.Mismatches {
		if m.Kind == MismatchMissing {
			fmt.Fprintf(&b, ">>> line %d no longer exists (file has %d lines)\n    expected %s\n\n",
				m.Anchor.Line, e.FileLines, m.Anchor)
			continue
		}
		fmt.Fprintf(&b, ">>> %d:%s|%s\n    expected %s\n\n",
			m.Anchor.Line, m.ActualHash, m.ActualText, m.Anchor)
	}

	stale := e.staleMismatches()
	if len(stale) > 0 {
		b.WriteString("Quick fix: replace stale anchors:\n")
		for _, m := range stale {
			fmt.Fprintf(&b, "  %s -> %d:%s\n", m.Anchor, m.Anchor.Line, m.ActualHash)
		}
	}

	return b.String()
}

func (e *AnchorMismatchError) staleMismatches() []Mismatch {
	var out []Mismatch
	for _, m := range e.Mismatches {
		if m.Kind == MismatchStale {
			out = append(out, m)
		}
	}
	return out
}

// OverlapError reports two anchor-based edits in one batch whose consumed
// line ranges intersect. Overlap is a hard validation error, never a silent
// merge.
type OverlapError struct {
	FirstAnchor  Anchor
	SecondAnchor Anchor
	FirstStart   int
	FirstEnd     int
	SecondStart  int
	SecondEnd    int
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("overlapping edits: anchor %s (lines %d-%d) conflicts with anchor %s (lines %d-%d)",
		e.FirstAnchor, e.FirstStart, e.FirstEnd, e.SecondAnchor, e.SecondStart, e.SecondEnd)
}
