package history

import (
	"context"
	"time"
)

// OpCounts breaks down one applied batch by operation kind.
type OpCounts struct {
	SetLine      int
	ReplaceLines int
	InsertAfter  int
	Replace      int
}

// Total returns the number of operations in the batch.
func (c OpCounts) Total() int {
	return c.SetLine + c.ReplaceLines + c.InsertAfter + c.Replace
}

// Entry records one committed edit batch. The journal is write-only
// bookkeeping: it is never consulted during validation or application, so
// every invocation still judges staleness purely from file content.
type Entry struct {
	ID           int64
	FilePath     string
	Ops          OpCounts
	Relocated    int    // anchors re-pointed by unique-hash relocation
	Replacements int    // textual substitutions performed
	BeforeHash   string // digest of the full content before the edit
	AfterHash    string // digest of the full content after the edit
	LinesBefore  int
	LinesAfter   int
	DurationMS   int64
	AppliedAt    time.Time
}

// Store persists and queries the edit journal.
type Store interface {
	RecordEdit(ctx context.Context, entry *Entry) error
	ListEdits(ctx context.Context, filePath string, limit int) ([]*Entry, error)
	Close() error
}
