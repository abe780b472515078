package reader

import (
	"fmt"
	"strings"

	"github.com/dshills/hashline-mcp/internal/anchor"
)

// Window restricts which line range is rendered. Zero values mean "from the
// first line" and "no limit". Offset is 1-based. Windowing never changes an
// anchor's value: hashes are always computed over the full file.
type Window struct {
	Offset int
	Limit  int
}

// Format renders indexed lines as LINE:HASH|TEXT, one per input line, the
// anchor format callers echo back in edits. Text is emitted verbatim with
// no escaping.
func Format(ix *anchor.Index, w Window) (string, error) {
	offset := w.Offset
	if offset == 0 {
		offset = 1
	}
	if offset < 1 {
		return "", fmt.Errorf("offset is 1-indexed (must be >= 1), got %d", w.Offset)
	}
	if offset > ix.Len() {
		return "", fmt.Errorf("offset %d out of range (file has %d lines)", offset, ix.Len())
	}

	limit := w.Limit
	if limit <= 0 {
		limit = ix.Len()
	}

	var b strings.Builder
	printed := 0
	for _, line := range ix.Lines() {
		if line.Number < offset {
			continue
		}
		if printed >= limit {
			break
		}
		fmt.Fprintf(&b, "%d:%s|%s\n", line.Number, line.Hash, line.Text)
		printed++
	}
	return b.String(), nil
}
