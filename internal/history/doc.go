// Package history keeps a SQLite journal of committed edit batches.
//
// The journal answers "what has been edited here recently" for the
// hashline_history tool. It is deliberately write-only with respect to the
// editing core: no validation or application decision ever reads it, so the
// file itself remains the only source of truth and a lost or disabled
// journal changes nothing about edit behavior.
//
// Two SQLite drivers are supported behind build tags: the default pure Go
// build uses modernc.org/sqlite, and -tags cgo_sqlite selects
// github.com/mattn/go-sqlite3.
package history
