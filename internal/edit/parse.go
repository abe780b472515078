package edit

import (
	"fmt"
	"strings"

	"github.com/dshills/hashline-mcp/pkg/types"
)

// ParsedOp is the validated form of one operation: anchors resolved from
// their textual grammar, variant identified, payload text carried along.
// Planning switches exhaustively on Kind.
type ParsedOp struct {
	Pos  int // position in the batch, for reporting and insert ordering
	Kind Kind

	// Anchor-based variants. Anchor is the primary anchor (set_line,
	// insert_after, or the start of a replace_lines); EndAnchor is set for
	// replace_lines only.
	Anchor    types.Anchor
	EndAnchor types.Anchor
	Text      string // replacement or inserted text, possibly multi-line

	// Replace variant.
	OldText string
	NewText string
	All     bool
}

// AnchorBased reports whether the operation consumes or references lines by
// anchor, as opposed to the textual replace post-pass.
func (p ParsedOp) AnchorBased() bool {
	return p.Kind != KindReplace
}

// Parse syntactically validates the batch before any anchor checking: anchor
// grammar, range ordering, and non-empty payloads where emptiness is always
// a mistake. It never touches the file.
func (b Batch) Parse() ([]ParsedOp, error) {
	parsed := make([]ParsedOp, 0, len(b))

	for i, op := range b {
		kind, err := op.Kind()
		if err != nil {
			return nil, fmt.Errorf("edit %d: %w", i+1, err)
		}

		p := ParsedOp{Pos: i, Kind: kind}
		switch kind {
		case KindSetLine:
			p.Anchor, err = types.ParseAnchor(op.SetLine.Anchor)
			if err != nil {
				return nil, fmt.Errorf("edit %d: %w", i+1, err)
			}
			p.Text = op.SetLine.NewText

		case KindReplaceLines:
			p.Anchor, err = types.ParseAnchor(op.ReplaceLines.StartAnchor)
			if err != nil {
				return nil, fmt.Errorf("edit %d: %w", i+1, err)
			}
			p.EndAnchor, err = types.ParseAnchor(op.ReplaceLines.EndAnchor)
			if err != nil {
				return nil, fmt.Errorf("edit %d: %w", i+1, err)
			}
			if p.Anchor.Line > p.EndAnchor.Line {
				return nil, fmt.Errorf("edit %d: %w", i+1,
					&types.InvalidRangeError{Start: p.Anchor, End: p.EndAnchor})
			}
			p.Text = op.ReplaceLines.NewText

		case KindInsertAfter:
			p.Anchor, err = types.ParseAnchor(op.InsertAfter.Anchor)
			if err != nil {
				return nil, fmt.Errorf("edit %d: %w", i+1, err)
			}
			if op.InsertAfter.Text == "" {
				return nil, fmt.Errorf("edit %d: %w", i+1, ErrEmptyInsertText)
			}
			p.Text = op.InsertAfter.Text

		case KindReplace:
			if op.Replace.OldText == "" {
				return nil, fmt.Errorf("edit %d: %w", i+1, ErrEmptyOldText)
			}
			p.OldText = op.Replace.OldText
			p.NewText = op.Replace.NewText
			p.All = op.Replace.All
		}

		parsed = append(parsed, p)
	}

	return parsed, nil
}

// SplitText splits replacement text into lines. Empty text yields zero
// lines, which is how set_line and replace_lines express deletion.
func SplitText(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
