// Package mcp implements the Model Context Protocol (MCP) server for hashline.
//
// The MCP server exposes three tools to AI coding assistants (Claude Code, Codex CLI):
//   - hashline_read: Read a file with LINE:HASH anchor prefixes
//   - hashline_edit: Apply an all-or-nothing batch of anchor-verified edits
//   - hashline_history: List recently applied edit batches for a file
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport:
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// The server communicates with MCP clients via standard input/output. Because
// stdout carries the protocol stream, all logging goes to stderr.
//
// # Editing Contract
//
// hashline_read prints every line as LINE:HASH|TEXT. The client echoes those
// anchors back in hashline_edit; an anchor whose hash no longer matches the
// file proves the client's view is stale and the whole batch is rejected with
// a report of every failed anchor. No partial application ever happens.
//
// Each edit call re-reads the file from disk, so no state is carried between
// calls and concurrent editors are detected by hash mismatch rather than by
// locking.
package mcp
