package planner

import (
	"sort"

	"github.com/dshills/hashline-mcp/internal/anchor"
	"github.com/dshills/hashline-mcp/internal/edit"
	"github.com/dshills/hashline-mcp/pkg/types"
)

// Splice is one contiguous line-range replacement over the original
// numbering: consume lines [Start, End], emit Lines in their place. A pure
// insert consumes nothing and is encoded with End == Start-1, positioned
// before original line Start.
type Splice struct {
	Start  int
	End    int
	Lines  []string
	Anchor types.Anchor // defining anchor, after any relocation
	pos    int          // batch position, stable order for same-point inserts
}

// Insert reports whether the splice consumes no original lines.
func (s Splice) Insert() bool {
	return s.End < s.Start
}

// Plan is the validated, ordered, non-overlapping application plan for one
// batch. If planning succeeded, applying the splices cannot fail for
// structural reasons.
type Plan struct {
	Splices   []Splice        // sorted by position, consumed ranges disjoint
	Replaces  []edit.ParsedOp // textual post-pass, in batch order
	Relocated int             // anchors re-pointed by unique-hash relocation
}

// Empty reports whether the plan changes nothing.
func (p *Plan) Empty() bool {
	return len(p.Splices) == 0 && len(p.Replaces) == 0
}

// Anchors returns the defining anchor of every splice, in application order.
func (p *Plan) Anchors() []types.Anchor {
	out := make([]types.Anchor, len(p.Splices))
	for i, sp := range p.Splices {
		out[i] = sp.Anchor
	}
	return out
}

// Options tune planning behavior.
type Options struct {
	// Relocate re-points a stale anchor whose hash matches exactly one
	// line of the current snapshot to that line, instead of failing.
	// Off by default: a stale anchor is normally a hard error.
	Relocate bool
}

// Build validates a parsed batch against the snapshot index and produces an
// application plan. Every anchor of every anchor-based operation is verified
// first; any failure aborts the whole batch with *types.AnchorMismatchError
// listing all failing anchors. Overlapping consumed ranges abort with
// *types.OverlapError. No partial plan is ever returned.
func Build(ix *anchor.Index, ops []edit.ParsedOp, opts Options) (*Plan, error) {
	plan := &Plan{}
	var mismatches []types.Mismatch

	verify := func(a types.Anchor) types.Anchor {
		_, m := ix.Verify(a)
		if m == nil {
			return a
		}
		if opts.Relocate && m.Kind == types.MismatchStale {
			if n, ok := ix.Relocate(a.Hash); ok {
				plan.Relocated++
				return types.Anchor{Line: n, Hash: a.Hash}
			}
		}
		mismatches = append(mismatches, *m)
		return a
	}

	var splices []Splice
	for _, op := range ops {
		switch op.Kind {
		case edit.KindSetLine:
			a := verify(op.Anchor)
			splices = append(splices, Splice{
				Start: a.Line, End: a.Line,
				Lines:  edit.SplitText(op.Text),
				Anchor: a, pos: op.Pos,
			})

		case edit.KindReplaceLines:
			before := len(mismatches)
			start := verify(op.Anchor)
			end := verify(op.EndAnchor)
			if len(mismatches) == before && start.Line > end.Line {
				// Relocation can reorder a previously valid range.
				return nil, &types.InvalidRangeError{Start: start, End: end}
			}
			splices = append(splices, Splice{
				Start: start.Line, End: end.Line,
				Lines:  edit.SplitText(op.Text),
				Anchor: start, pos: op.Pos,
			})

		case edit.KindInsertAfter:
			a := verify(op.Anchor)
			splices = append(splices, Splice{
				Start: a.Line + 1, End: a.Line,
				Lines:  edit.SplitText(op.Text),
				Anchor: a, pos: op.Pos,
			})

		case edit.KindReplace:
			plan.Replaces = append(plan.Replaces, op)
		}
	}

	if len(mismatches) > 0 {
		return nil, &types.AnchorMismatchError{Mismatches: mismatches, FileLines: ix.Len()}
	}

	// Inserts sort ahead of a consuming splice starting at the same point:
	// an insert after line N lands before a replacement of line N+1, and
	// after a replacement ending at N (whose splice starts at or before N).
	sort.Slice(splices, func(i, j int) bool {
		a, b := splices[i], splices[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.Insert() != b.Insert() {
			return a.Insert()
		}
		return a.pos < b.pos
	})

	// Sorted by Start, so two consuming splices intersect iff the later one
	// starts at or before where the earlier one ends. Inserts consume
	// nothing and cannot conflict.
	prev := -1
	for i := range splices {
		if splices[i].Insert() {
			continue
		}
		if prev >= 0 && splices[i].Start <= splices[prev].End {
			return nil, &types.OverlapError{
				FirstAnchor:  splices[prev].Anchor,
				SecondAnchor: splices[i].Anchor,
				FirstStart:   splices[prev].Start,
				FirstEnd:     splices[prev].End,
				SecondStart:  splices[i].Start,
				SecondEnd:    splices[i].End,
			}
		}
		prev = i
	}

	plan.Splices = splices
	return plan, nil
}
