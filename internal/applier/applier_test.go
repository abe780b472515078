package applier

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/hashline-mcp/internal/anchor"
	"github.com/dshills/hashline-mcp/internal/document"
	"github.com/dshills/hashline-mcp/internal/edit"
	"github.com/dshills/hashline-mcp/internal/planner"
)

func anchorFor(n int, text string) string {
	return fmt.Sprintf("%d:%s", n, anchor.HashLine(text))
}

func apply(t *testing.T, content string, batch edit.Batch) (*document.Document, *Result) {
	t.Helper()
	doc := document.Parse([]byte(content))
	ops, err := batch.Parse()
	require.NoError(t, err)
	plan, err := planner.Build(anchor.NewIndex(doc), ops, planner.Options{})
	require.NoError(t, err)
	return doc, Apply(doc, plan)
}

func TestApply_SetLineMultiLine(t *testing.T) {
	_, res := apply(t, "alpha\nbeta\ngamma\n", edit.Batch{
		{SetLine: &edit.SetLine{Anchor: anchorFor(2, "beta"), NewText: "beta2\nbeta3"}},
	})

	assert.Equal(t, []string{"alpha", "beta2", "beta3", "gamma"}, res.Doc.Lines)
	assert.True(t, res.Changed)
	require.Len(t, res.Consumed, 1)
	assert.Equal(t, 2, res.Consumed[0].Line)
}

func TestApply_DeletionShiftsSubsequentLines(t *testing.T) {
	_, res := apply(t, "alpha\nbeta\ngamma\n", edit.Batch{
		{SetLine: &edit.SetLine{Anchor: anchorFor(2, "beta"), NewText: ""}},
	})

	assert.Equal(t, []string{"alpha", "gamma"}, res.Doc.Lines)
}

func TestApply_InsertAfter(t *testing.T) {
	_, res := apply(t, "alpha\nbeta\ngamma\n", edit.Batch{
		{InsertAfter: &edit.InsertAfter{Anchor: anchorFor(1, "alpha"), Text: "inserted"}},
	})

	assert.Equal(t, []string{"alpha", "inserted", "beta", "gamma"}, res.Doc.Lines)
}

func TestApply_InsertAfterLastLine(t *testing.T) {
	_, res := apply(t, "alpha\nbeta\n", edit.Batch{
		{InsertAfter: &edit.InsertAfter{Anchor: anchorFor(2, "beta"), Text: "tail1\ntail2"}},
	})

	assert.Equal(t, []string{"alpha", "beta", "tail1", "tail2"}, res.Doc.Lines)
}

func TestApply_ReplaceLinesRange(t *testing.T) {
	_, res := apply(t, "l1\nl2\nl3\nl4\nl5\n", edit.Batch{
		{ReplaceLines: &edit.ReplaceLines{
			StartAnchor: anchorFor(2, "l2"), EndAnchor: anchorFor(4, "l4"), NewText: "mid",
		}},
	})

	assert.Equal(t, []string{"l1", "mid", "l5"}, res.Doc.Lines)
}

func TestApply_ReplaceAllAfterAnchorEdits(t *testing.T) {
	// Insert then textual replace: the replace acts on the result of the
	// anchor-based edits.
	_, res := apply(t, "alpha\nbeta\ngamma\n", edit.Batch{
		{InsertAfter: &edit.InsertAfter{Anchor: anchorFor(1, "alpha"), Text: "inserted"}},
		{Replace: &edit.Replace{OldText: "gamma", NewText: "delta", All: true}},
	})

	assert.Equal(t, []string{"alpha", "inserted", "beta", "delta"}, res.Doc.Lines)
	assert.Equal(t, 1, res.Replacements)
}

func TestApply_ReplaceFirstOccurrenceOnly(t *testing.T) {
	_, res := apply(t, "foo bar foo\nfoo\n", edit.Batch{
		{Replace: &edit.Replace{OldText: "foo", NewText: "qux"}},
	})

	assert.Equal(t, []string{"qux bar foo", "foo"}, res.Doc.Lines)
	assert.Equal(t, 1, res.Replacements)
}

func TestApply_ReplaceAllOccurrences(t *testing.T) {
	_, res := apply(t, "foo bar foo\nfoo\n", edit.Batch{
		{Replace: &edit.Replace{OldText: "foo", NewText: "qux", All: true}},
	})

	assert.Equal(t, []string{"qux bar qux", "qux"}, res.Doc.Lines)
	assert.Equal(t, 3, res.Replacements)
}

func TestApply_ReplaceMissOldTextIsNoop(t *testing.T) {
	doc, res := apply(t, "alpha\nbeta\n", edit.Batch{
		{Replace: &edit.Replace{OldText: "not here", NewText: "x"}},
	})

	assert.False(t, res.Changed)
	assert.Equal(t, doc.Lines, res.Doc.Lines)
	assert.Equal(t, 0, res.Replacements)
}

func TestApply_ReplaceSpansLines(t *testing.T) {
	_, res := apply(t, "one\ntwo\nthree\n", edit.Batch{
		{Replace: &edit.Replace{OldText: "one\ntwo", NewText: "merged"}},
	})

	assert.Equal(t, []string{"merged", "three"}, res.Doc.Lines)
}

func TestApply_ReplaceOrderIsBatchOrder(t *testing.T) {
	_, res := apply(t, "aaa\n", edit.Batch{
		{Replace: &edit.Replace{OldText: "aaa", NewText: "bbb"}},
		{Replace: &edit.Replace{OldText: "bbb", NewText: "ccc"}},
	})

	assert.Equal(t, []string{"ccc"}, res.Doc.Lines)
	assert.Equal(t, 2, res.Replacements)
}

func TestApply_CombinedBatch(t *testing.T) {
	content := "h1\nh2\nbody\nfooter\n"
	_, res := apply(t, content, edit.Batch{
		{SetLine: &edit.SetLine{Anchor: anchorFor(3, "body"), NewText: "body1\nbody2"}},
		{InsertAfter: &edit.InsertAfter{Anchor: anchorFor(4, "footer"), Text: "after"}},
		{ReplaceLines: &edit.ReplaceLines{
			StartAnchor: anchorFor(1, "h1"), EndAnchor: anchorFor(2, "h2"), NewText: "header",
		}},
	})

	assert.Equal(t, []string{"header", "body1", "body2", "footer", "after"}, res.Doc.Lines)
}

func TestApply_InsertAfterReplacedRegion(t *testing.T) {
	// Insert after line 2 plus a replacement of lines 1-2: insert lands
	// after the replacement's emitted lines.
	_, res := apply(t, "l1\nl2\nl3\n", edit.Batch{
		{InsertAfter: &edit.InsertAfter{Anchor: anchorFor(2, "l2"), Text: "inserted"}},
		{ReplaceLines: &edit.ReplaceLines{
			StartAnchor: anchorFor(1, "l1"), EndAnchor: anchorFor(2, "l2"), NewText: "replaced",
		}},
	})

	assert.Equal(t, []string{"replaced", "inserted", "l3"}, res.Doc.Lines)
}

func TestApply_OriginalSnapshotUntouched(t *testing.T) {
	doc, res := apply(t, "alpha\nbeta\n", edit.Batch{
		{SetLine: &edit.SetLine{Anchor: anchorFor(1, "alpha"), NewText: "changed"}},
	})

	assert.Equal(t, []string{"alpha", "beta"}, doc.Lines)
	assert.Equal(t, []string{"changed", "beta"}, res.Doc.Lines)
}

func TestApply_PreviewParity(t *testing.T) {
	content := "alpha\nbeta\ngamma\n"
	batch := edit.Batch{
		{SetLine: &edit.SetLine{Anchor: anchorFor(2, "beta"), NewText: "beta2"}},
		{Replace: &edit.Replace{OldText: "gamma", NewText: "delta", All: true}},
	}

	// Preview and commit are the same computation; applying the same batch
	// to the same starting content twice yields byte-identical output.
	_, first := apply(t, content, batch)
	_, second := apply(t, content, batch)
	assert.Equal(t, string(first.Doc.Render()), string(second.Doc.Render()))
}

func TestApply_PreservesLineEndingStyle(t *testing.T) {
	doc := document.Parse([]byte("alpha\r\nbeta\r\n"))
	ops, err := edit.Batch{
		{SetLine: &edit.SetLine{Anchor: anchorFor(1, "alpha"), NewText: "first"}},
	}.Parse()
	require.NoError(t, err)
	plan, err := planner.Build(anchor.NewIndex(doc), ops, planner.Options{})
	require.NoError(t, err)

	res := Apply(doc, plan)
	assert.Equal(t, "first\r\nbeta\r\n", string(res.Doc.Render()))
}

func TestRenderDiff(t *testing.T) {
	before := document.Parse([]byte("alpha\nbeta\ngamma\n"))
	after := before.WithLines([]string{"alpha", "beta2", "gamma"})

	diff, err := RenderDiff(before, after, "notes.txt")
	require.NoError(t, err)
	assert.Contains(t, diff, "--- notes.txt")
	assert.Contains(t, diff, "+++ notes.txt")
	assert.Contains(t, diff, "-beta")
	assert.Contains(t, diff, "+beta2")
}
