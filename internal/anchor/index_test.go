package anchor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/hashline-mcp/internal/document"
	"github.com/dshills/hashline-mcp/pkg/types"
)

func testIndex(t *testing.T, content string) *Index {
	t.Helper()
	return NewIndex(document.Parse([]byte(content)))
}

func TestNewIndex_ReadVerifyRoundTrip(t *testing.T) {
	ix := testIndex(t, "alpha\nbeta\ngamma\n")
	require.Equal(t, 3, ix.Len())

	// Every anchor produced by a read verifies against a fresh index of the
	// same unmodified content.
	for _, line := range ix.Lines() {
		got, mismatch := ix.Verify(line.Anchor())
		require.Nil(t, mismatch, "anchor %s should verify", line.Anchor())
		assert.Equal(t, line, got)
	}
}

func TestVerify_Stale(t *testing.T) {
	ix := testIndex(t, "alpha\nbeta\ngamma\n")
	stale := types.Anchor{Line: 2, Hash: HashLine("old beta")}

	_, mismatch := ix.Verify(stale)
	require.NotNil(t, mismatch)
	assert.Equal(t, types.MismatchStale, mismatch.Kind)
	assert.Equal(t, HashLine("beta"), mismatch.ActualHash)
	assert.Equal(t, "beta", mismatch.ActualText)
}

func TestVerify_Missing(t *testing.T) {
	ix := testIndex(t, "alpha\nbeta\n")

	_, mismatch := ix.Verify(types.Anchor{Line: 5, Hash: HashLine("alpha")})
	require.NotNil(t, mismatch)
	assert.Equal(t, types.MismatchMissing, mismatch.Kind)
}

func TestVerify_HashIsContentNotPosition(t *testing.T) {
	ix := testIndex(t, "same\nother\nsame\n")

	l1, _ := ix.Line(1)
	l3, _ := ix.Line(3)
	assert.Equal(t, l1.Hash, l3.Hash, "identical text at different positions yields identical hashes")
}

func TestRelocate(t *testing.T) {
	ix := testIndex(t, "alpha\nbeta\nalpha\ngamma\n")

	// gamma occurs once: relocatable.
	n, ok := ix.Relocate(HashLine("gamma"))
	require.True(t, ok)
	assert.Equal(t, 4, n)

	// alpha occurs twice: ambiguous, not relocatable.
	_, ok = ix.Relocate(HashLine("alpha"))
	assert.False(t, ok)

	// unknown hash.
	_, ok = ix.Relocate("ffff")
	assert.False(t, ok)
}

func TestNewIndex_EmptyFile(t *testing.T) {
	ix := testIndex(t, "")
	require.Equal(t, 1, ix.Len())

	line, ok := ix.Line(1)
	require.True(t, ok)
	assert.Equal(t, "", line.Text)
	assert.Equal(t, HashLine(""), line.Hash)
}
