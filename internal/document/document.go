package document

import "strings"

// Document is an immutable snapshot of one text file, split into lines.
// It remembers the file's original line ending and whether the file ended
// with a newline so that Render can reproduce both.
type Document struct {
	Lines        []string
	LineEnding   string // "\n" or "\r\n"
	FinalNewline bool
}

// Parse builds a snapshot from raw file bytes. Content is normalized to LF
// for splitting; the detected ending is restored by Render. A trailing final
// newline is not treated as an extra addressable empty line.
func Parse(content []byte) *Document {
	raw := string(content)

	ending := "\n"
	if strings.Contains(raw, "\r\n") {
		ending = "\r\n"
	}

	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	finalNewline := strings.HasSuffix(normalized, "\n")

	lines := strings.Split(normalized, "\n")
	if finalNewline {
		// Split leaves one empty segment after the final newline; drop it
		// so the trailing newline is not addressable as a line.
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		lines = []string{""}
	}

	return &Document{
		Lines:        lines,
		LineEnding:   ending,
		FinalNewline: finalNewline,
	}
}

// WithLines returns a new snapshot with the given line sequence but the same
// line ending and final-newline behavior as the receiver.
func (d *Document) WithLines(lines []string) *Document {
	return &Document{
		Lines:        lines,
		LineEnding:   d.LineEnding,
		FinalNewline: d.FinalNewline,
	}
}

// Render reassembles the snapshot into file bytes, restoring the original
// line ending and final newline.
func (d *Document) Render() []byte {
	out := strings.Join(d.Lines, "\n")
	if d.FinalNewline {
		out += "\n"
	}
	if d.LineEnding != "\n" {
		out = strings.ReplaceAll(out, "\n", d.LineEnding)
	}
	return []byte(out)
}

// Equal reports whether two snapshots hold the same line sequence.
func (d *Document) Equal(other *Document) bool {
	if len(d.Lines) != len(other.Lines) {
		return false
	}
	for i, line := range d.Lines {
		if line != other.Lines[i] {
			return false
		}
	}
	return true
}
