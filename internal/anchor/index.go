package anchor

import (
	"github.com/dshills/hashline-mcp/internal/document"
	"github.com/dshills/hashline-mcp/pkg/types"
)

// Index maps every line of one snapshot to its anchor hash and answers
// "does this anchor currently hold?" in O(1) after an O(n) build.
//
// The build also records which hashes occur exactly once in the file; those
// support the opt-in relocation of stale anchors whose content moved.
type Index struct {
	lines  []types.Line
	unique map[string]int // hash -> line number, for hashes occurring exactly once
}

// NewIndex computes the hash for every line of the snapshot. It never fails.
func NewIndex(doc *document.Document) *Index {
	lines := make([]types.Line, len(doc.Lines))
	counts := make(map[string]int, len(doc.Lines))
	firstSeen := make(map[string]int, len(doc.Lines))

	for i, text := range doc.Lines {
		n := i + 1
		h := HashLine(text)
		lines[i] = types.Line{Number: n, Text: text, Hash: h}
		counts[h]++
		if _, seen := firstSeen[h]; !seen {
			firstSeen[h] = n
		}
	}

	unique := make(map[string]int)
	for h, c := range counts {
		if c == 1 {
			unique[h] = firstSeen[h]
		}
	}

	return &Index{lines: lines, unique: unique}
}

// Len returns the number of lines in the indexed snapshot.
func (ix *Index) Len() int {
	return len(ix.lines)
}

// Lines returns every indexed line in order.
func (ix *Index) Lines() []types.Line {
	return ix.lines
}

// Line returns the line at the given 1-based number.
func (ix *Index) Line(n int) (types.Line, bool) {
	if n < 1 || n > len(ix.lines) {
		return types.Line{}, false
	}
	return ix.lines[n-1], true
}

// Verify checks whether the anchor currently holds. On failure it returns a
// Mismatch distinguishing a missing line (the file got shorter) from a stale
// one (the content changed).
func (ix *Index) Verify(a types.Anchor) (types.Line, *types.Mismatch) {
	line, ok := ix.Line(a.Line)
	if !ok {
		return types.Line{}, &types.Mismatch{Anchor: a, Kind: types.MismatchMissing}
	}
	if line.Hash != a.Hash {
		return types.Line{}, &types.Mismatch{
			Anchor:     a,
			Kind:       types.MismatchStale,
			ActualHash: line.Hash,
			ActualText: line.Text,
		}
	}
	return line, nil
}

// Relocate returns the line number of the single line carrying the given
// hash, if the hash occurs exactly once in the snapshot.
func (ix *Index) Relocate(hash string) (int, bool) {
	n, ok := ix.unique[hash]
	return n, ok
}
