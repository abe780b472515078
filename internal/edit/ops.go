package edit

import "errors"

// Kind identifies one of the four operation variants.
type Kind string

const (
	KindSetLine      Kind = "set_line"
	KindReplaceLines Kind = "replace_lines"
	KindInsertAfter  Kind = "insert_after"
	KindReplace      Kind = "replace"
)

var (
	// ErrUnknownOperation is returned when an operation object carries none
	// of the four variant keys.
	ErrUnknownOperation = errors.New("operation must be one of set_line, replace_lines, insert_after, replace")
	// ErrAmbiguousOperation is returned when an operation object carries
	// more than one variant key.
	ErrAmbiguousOperation = errors.New("operation must carry exactly one variant")
	// ErrEmptyInsertText is returned for an insert_after with empty text;
	// inserting nothing is always a mistake.
	ErrEmptyInsertText = errors.New("insert_after.text must be non-empty")
	// ErrEmptyOldText is returned for a replace with empty old_text.
	ErrEmptyOldText = errors.New("replace.old_text must be non-empty")
)

// SetLine replaces exactly the line at Anchor with zero or more lines.
// Empty NewText deletes the line.
type SetLine struct {
	Anchor  string `json:"anchor"`
	NewText string `json:"new_text"`
}

// ReplaceLines replaces the inclusive range [StartAnchor, EndAnchor] with
// zero or more lines.
type ReplaceLines struct {
	StartAnchor string `json:"start_anchor"`
	EndAnchor   string `json:"end_anchor"`
	NewText     string `json:"new_text"`
}

// InsertAfter inserts one or more lines immediately after Anchor without
// consuming or verifying any line past it.
type InsertAfter struct {
	Anchor string `json:"anchor"`
	Text   string `json:"text"`
}

// Replace is an anchor-free textual substitution applied to the result of
// all anchor-based edits. All=false replaces only the first occurrence.
type Replace struct {
	OldText string `json:"old_text"`
	NewText string `json:"new_text"`
	All     bool   `json:"all"`
}

// Operation is the wire form of one edit: exactly one variant key set.
type Operation struct {
	SetLine      *SetLine      `json:"set_line,omitempty"`
	ReplaceLines *ReplaceLines `json:"replace_lines,omitempty"`
	InsertAfter  *InsertAfter  `json:"insert_after,omitempty"`
	Replace      *Replace      `json:"replace,omitempty"`
}

// Kind returns which variant the operation carries, rejecting objects with
// zero or multiple variant keys.
func (op Operation) Kind() (Kind, error) {
	var kind Kind
	count := 0
	if op.SetLine != nil {
		kind = KindSetLine
		count++
	}
	if op.ReplaceLines != nil {
		kind = KindReplaceLines
		count++
	}
	if op.InsertAfter != nil {
		kind = KindInsertAfter
		count++
	}
	if op.Replace != nil {
		kind = KindReplace
		count++
	}

	switch count {
	case 1:
		return kind, nil
	case 0:
		return "", ErrUnknownOperation
	default:
		return "", ErrAmbiguousOperation
	}
}

// Batch is the ordered set of operations submitted in one edit call,
// applied all-or-nothing.
type Batch []Operation
