package applier

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/dshills/hashline-mcp/internal/document"
)

// RenderDiff produces a unified diff between two snapshots for preview
// output. It is purely presentational; parity between previewed and
// committed content comes from Apply being deterministic, not from the diff.
func RenderDiff(before, after *document.Document, path string) (string, error) {
	return renderDiff(before.Lines, after.Lines, path)
}

func renderDiff(oldLines, newLines []string, path string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        appendNewlines(oldLines),
		B:        appendNewlines(newLines),
		FromFile: path,
		ToFile:   path,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("failed to render diff: %w", err)
	}
	return text, nil
}

func appendNewlines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l + "\n"
	}
	return out
}
