package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnchor(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Anchor
	}{
		{"simple", "1:ab12", Anchor{Line: 1, Hash: "ab12"}},
		{"large line number", "9431:0000", Anchor{Line: 9431, Hash: "0000"}},
		{"uppercase hex normalized", "7:AB12", Anchor{Line: 7, Hash: "ab12"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAnchor(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAnchor_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no separator", "12ab34"},
		{"too many separators", "1:ab:cd"},
		{"empty line number", ":ab12"},
		{"empty hash", "12:"},
		{"non-numeric line", "x:ab12"},
		{"negative line", "-1:ab12"},
		{"zero line", "0:ab12"},
		{"signed line", "+1:ab12"},
		{"non-hex hash", "1:zzzz"},
		{"surrounding whitespace", " 1:ab12"},
		{"internal whitespace", "1: ab12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAnchor(tt.input)
			require.Error(t, err)

			var malformed *MalformedAnchorError
			assert.True(t, errors.As(err, &malformed), "expected MalformedAnchorError, got %T", err)
			assert.Equal(t, tt.input, malformed.Input)
		})
	}
}

func TestAnchorString_RoundTrip(t *testing.T) {
	a := Anchor{Line: 42, Hash: "9f2c"}
	parsed, err := ParseAnchor(a.String())
	require.NoError(t, err)
	assert.Equal(t, a, parsed)
}

func TestAnchorMismatchError_Report(t *testing.T) {
	err := &AnchorMismatchError{
		FileLines: 3,
		Mismatches: []Mismatch{
			{
				Anchor:     Anchor{Line: 2, Hash: "ab12"},
				Kind:       MismatchStale,
				ActualHash: "9f2c",
				ActualText: "changed content",
			},
			{
				Anchor: Anchor{Line: 9, Hash: "cd34"},
				Kind:   MismatchMissing,
			},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "2 anchor(s) no longer match")
	assert.Contains(t, msg, ">>> 2:9f2c|changed content")
	assert.Contains(t, msg, "expected 2:ab12")
	assert.Contains(t, msg, "line 9 no longer exists (file has 3 lines)")
	assert.Contains(t, msg, "2:ab12 -> 2:9f2c")
	// Missing anchors have no quick fix, only stale ones do.
	assert.NotContains(t, msg, "9:cd34 ->")
}

func TestOverlapError_NamesBothAnchors(t *testing.T) {
	err := &OverlapError{
		FirstAnchor:  Anchor{Line: 2, Hash: "ab12"},
		SecondAnchor: Anchor{Line: 3, Hash: "cd34"},
		FirstStart:   2, FirstEnd: 4,
		SecondStart: 3, SecondEnd: 3,
	}
	msg := err.Error()
	assert.Contains(t, msg, "2:ab12")
	assert.Contains(t, msg, "3:cd34")
}
