package applier

import (
	"strings"

	"github.com/dshills/hashline-mcp/internal/document"
	"github.com/dshills/hashline-mcp/internal/planner"
	"github.com/dshills/hashline-mcp/pkg/types"
)

// Result is the outcome of applying one plan to one snapshot. The same
// Result is produced for preview and commit; only the caller decides whether
// to persist Doc.
type Result struct {
	Doc          *document.Document // new snapshot; original is untouched
	Changed      bool               // false when output equals input
	Consumed     []types.Anchor     // anchors consumed by splices, in order
	Replacements int                // occurrences substituted by the replace post-pass
}

// Apply executes a validated plan against the original snapshot and returns
// the new content. Anchor-based splices are applied in one ordered walk over
// the original lines; replace operations then run in batch order against the
// joined result. The input snapshot is never mutated, which is what makes
// preview trivially side-effect free.
func Apply(doc *document.Document, plan *planner.Plan) *Result {
	lines := spliceLines(doc.Lines, plan.Splices)

	replacements := 0
	if len(plan.Replaces) > 0 {
		text := strings.Join(lines, "\n")
		for _, op := range plan.Replaces {
			if op.All {
				n := strings.Count(text, op.OldText)
				if n > 0 {
					text = strings.ReplaceAll(text, op.OldText, op.NewText)
					replacements += n
				}
				continue
			}
			// First occurrence only; a miss is a no-op, not an error.
			if i := strings.Index(text, op.OldText); i >= 0 {
				text = text[:i] + op.NewText + text[i+len(op.OldText):]
				replacements++
			}
		}
		lines = strings.Split(text, "\n")
	}

	out := doc.WithLines(lines)
	return &Result{
		Doc:          out,
		Changed:      !doc.Equal(out),
		Consumed:     plan.Anchors(),
		Replacements: replacements,
	}
}

// spliceLines walks the original lines in order, copying every line not
// consumed by a splice and emitting replacement lines at each splice point.
// Splices arrive sorted with disjoint consumed ranges, so a single forward
// pass suffices.
func spliceLines(orig []string, splices []planner.Splice) []string {
	if len(splices) == 0 {
		return orig
	}

	out := make([]string, 0, len(orig))
	next := 1 // next original line number to copy
	for _, sp := range splices {
		for ; next < sp.Start; next++ {
			out = append(out, orig[next-1])
		}
		out = append(out, sp.Lines...)
		if !sp.Insert() {
			next = sp.End + 1
		}
	}
	for ; next <= len(orig); next++ {
		out = append(out, orig[next-1])
	}
	return out
}
