// Package edit models one batch of hashline edit operations.
//
// The four variants form a closed set: set_line and replace_lines consume
// and replace anchored lines, insert_after adds lines without consuming any,
// and replace is an anchor-free textual substitution that always runs last
// against the fully anchor-edited text.
//
// Decoding accepts both payload shapes an agent may send:
//
//	[{"set_line": {"anchor": "2:ab12", "new_text": "x"}}]
//	{"edits": [{"set_line": {"anchor": "2:ab12", "new_text": "x"}}]}
//
// Parse performs the syntactic half of validation (anchor grammar, range
// ordering, required payloads) before any file content is consulted;
// semantic validation against a snapshot belongs to the planner.
package edit
