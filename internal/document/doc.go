// Package document provides the immutable file snapshot every read and edit
// invocation works against.
//
// Each invocation loads file bytes fresh, parses them into a Document, and
// discards it once the result is written out or displayed. No snapshot is
// cached across invocations; staleness between invocations is detected by
// anchor hashes, not by holding file state.
//
// CRLF files are normalized to LF for line addressing and restored to CRLF
// on render. A trailing final newline is preserved but never addressable as
// its own line.
package document
