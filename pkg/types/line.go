package types

// Line is one element of a file snapshot. Lines are immutable once read:
// an edit produces a new line sequence, never mutates one in place.
type Line struct {
	Number int    // 1-based position in the file
	Text   string // line text without its trailing newline
	Hash   string // digest of Text; identical text yields identical hashes
}

// Anchor returns the anchor that currently references this line.
func (l Line) Anchor() Anchor {
	return Anchor{Line: l.Number, Hash: l.Hash}
}
