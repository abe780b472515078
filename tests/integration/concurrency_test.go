package integration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/hashline-mcp/internal/anchor"
	"github.com/dshills/hashline-mcp/internal/applier"
	"github.com/dshills/hashline-mcp/internal/document"
	"github.com/dshills/hashline-mcp/internal/edit"
	"github.com/dshills/hashline-mcp/internal/planner"
	"github.com/dshills/hashline-mcp/internal/reader"
)

// Reads are pure functions of file content, so concurrent readers of the
// same snapshot must all render the identical annotated view.
func TestConcurrentReadsAreDeterministic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.txt")
	var content strings.Builder
	for i := 1; i <= 200; i++ {
		fmt.Fprintf(&content, "line %d of the shared file\n", i)
	}
	require.NoError(t, os.WriteFile(path, []byte(content.String()), 0644))

	const readers = 16
	outputs := make([]string, readers)

	var g errgroup.Group
	for i := 0; i < readers; i++ {
		i := i
		g.Go(func() error {
			raw, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			out, err := reader.Format(anchor.NewIndex(document.Parse(raw)), reader.Window{})
			if err != nil {
				return err
			}
			outputs[i] = out
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for i := 1; i < readers; i++ {
		assert.Equal(t, outputs[0], outputs[i], "reader %d diverged", i)
	}
}

// Planning and applying share no mutable state, so the same batch planned
// concurrently against copies of one snapshot yields identical documents.
func TestConcurrentPlansAreIndependent(t *testing.T) {
	original := "alpha\nbeta\ngamma\ndelta\n"
	payload := fmt.Sprintf(`[
		{"set_line": {"anchor": "2:%s", "new_text": "BETA"}},
		{"insert_after": {"anchor": "3:%s", "text": "inserted"}}
	]`, anchor.HashLine("beta"), anchor.HashLine("gamma"))

	batch, err := edit.DecodeBatch([]byte(payload))
	require.NoError(t, err)
	ops, err := batch.Parse()
	require.NoError(t, err)

	const workers = 8
	results := make([]string, workers)

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		i := i
		g.Go(func() error {
			doc := document.Parse([]byte(original))
			plan, err := planner.Build(anchor.NewIndex(doc), ops, planner.Options{})
			if err != nil {
				return err
			}
			results[i] = string(applier.Apply(doc, plan).Doc.Render())
			return nil
		})
	}
	require.NoError(t, g.Wait())

	want := "alpha\nBETA\ngamma\ninserted\ndelta\n"
	for i := 0; i < workers; i++ {
		assert.Equal(t, want, results[i])
	}
}
