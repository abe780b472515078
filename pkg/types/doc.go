// Package types defines the shared domain types for hashline anchors.
//
// An anchor is a LINE:HASH pair identifying a specific line of a file as it
// existed when the caller last read it. The hash is a short content digest,
// so an anchor is a content check rather than a bare position check: if the
// line's text changes, every anchor captured against the old text stops
// verifying and edits referencing it are rejected.
//
// The package also defines the error taxonomy shared by the planner and the
// MCP tool handlers:
//
//   - MalformedAnchorError: anchor text does not match the NUMBER:HASH grammar
//   - InvalidRangeError: a range edit whose start line is after its end line
//   - AnchorMismatchError: one or more anchors are missing or stale
//   - OverlapError: two edits in one batch consume overlapping line ranges
package types
