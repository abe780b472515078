package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// readTool returns the tool definition for hashline_read
func readTool() mcp.Tool {
	return mcp.Tool{
		Name:        "hashline_read",
		Description: "Read a text file with LINE:HASH| anchor prefixes. Echo the anchors back in hashline_edit to make verified edits.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the text file",
				},
				"offset": map[string]interface{}{
					"type":        "integer",
					"description": "First line to render (1-indexed). Hashes are computed over the whole file, so windowing never changes an anchor.",
					"minimum":     1,
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of lines to render",
					"minimum":     1,
				},
			},
			Required: []string{"path"},
		},
	}
}

// editTool returns the tool definition for hashline_edit
func editTool() mcp.Tool {
	return mcp.Tool{
		Name:        "hashline_edit",
		Description: "Apply a batch of anchor-verified edits to a text file. The batch is all-or-nothing: if any anchor is stale or any ranges overlap, nothing is applied.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the text file",
				},
				"edits": map[string]interface{}{
					"type":        "array",
					"description": "Edit operations. Each carries exactly one of: set_line {anchor, new_text}, replace_lines {start_anchor, end_anchor, new_text}, insert_after {anchor, text}, replace {old_text, new_text, all}. Anchors are LINE:HASH as printed by hashline_read. Empty new_text deletes. replace runs last against the anchor-edited text.",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"set_line": map[string]interface{}{
								"type":        "object",
								"description": "Replace exactly the anchored line with new_text (may be multi-line; empty deletes the line)",
								"properties": map[string]interface{}{
									"anchor":   map[string]interface{}{"type": "string"},
									"new_text": map[string]interface{}{"type": "string"},
								},
								"required": []string{"anchor", "new_text"},
							},
							"replace_lines": map[string]interface{}{
								"type":        "object",
								"description": "Replace the inclusive anchored range with new_text",
								"properties": map[string]interface{}{
									"start_anchor": map[string]interface{}{"type": "string"},
									"end_anchor":   map[string]interface{}{"type": "string"},
									"new_text":     map[string]interface{}{"type": "string"},
								},
								"required": []string{"start_anchor", "end_anchor", "new_text"},
							},
							"insert_after": map[string]interface{}{
								"type":        "object",
								"description": "Insert text immediately after the anchored line without consuming any line past it",
								"properties": map[string]interface{}{
									"anchor": map[string]interface{}{"type": "string"},
									"text":   map[string]interface{}{"type": "string"},
								},
								"required": []string{"anchor", "text"},
							},
							"replace": map[string]interface{}{
								"type":        "object",
								"description": "Anchor-free textual substitution applied after all anchor-based edits; a missing old_text is a no-op",
								"properties": map[string]interface{}{
									"old_text": map[string]interface{}{"type": "string"},
									"new_text": map[string]interface{}{"type": "string"},
									"all":      map[string]interface{}{"type": "boolean", "default": false},
								},
								"required": []string{"old_text", "new_text"},
							},
						},
					},
				},
				"preview": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, compute and return the result plus a unified diff without touching the file",
					"default":     false,
				},
				"relocate": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, a stale anchor whose content moved and is unique in the file is re-pointed instead of rejected",
					"default":     false,
				},
			},
			Required: []string{"path", "edits"},
		},
	}
}

// historyTool returns the tool definition for hashline_history
func historyTool() mcp.Tool {
	return mcp.Tool{
		Name:        "hashline_history",
		Description: "List recently applied hashline edit batches for a file",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the text file",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of entries to return",
					"default":     20,
					"minimum":     1,
					"maximum":     100,
				},
			},
			Required: []string{"path"},
		},
	}
}
