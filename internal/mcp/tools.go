package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/hashline-mcp/internal/anchor"
	"github.com/dshills/hashline-mcp/internal/applier"
	"github.com/dshills/hashline-mcp/internal/document"
	"github.com/dshills/hashline-mcp/internal/edit"
	"github.com/dshills/hashline-mcp/internal/history"
	"github.com/dshills/hashline-mcp/internal/planner"
	"github.com/dshills/hashline-mcp/internal/reader"
	"github.com/dshills/hashline-mcp/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams    = -32602 // Invalid method parameters
	ErrorCodeInternalError    = -32603 // Internal JSON-RPC error
	ErrorCodeMalformedAnchor  = -32001 // Anchor text does not match the NUMBER:HASH grammar
	ErrorCodeInvalidRange     = -32002 // replace_lines start anchor after end anchor
	ErrorCodeAnchorMismatch   = -32003 // Anchors missing or stale; re-read the file
	ErrorCodeOverlappingEdits = -32004 // Two edits consume overlapping line ranges
)

// handleRead handles the hashline_read tool invocation
func (s *Server) handleRead(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, err := pathArg(args)
	if err != nil {
		return nil, err
	}

	offset := getIntDefault(args, "offset", 0)
	limit := getIntDefault(args, "limit", 0)

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to read file", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
	}

	ix := anchor.NewIndex(document.Parse(content))
	out, err := reader.Format(ix, reader.Window{Offset: offset, Limit: limit})
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, err.Error(), map[string]interface{}{
			"param": "offset",
		})
	}

	return mcp.NewToolResultText(out), nil
}

// handleEdit handles the hashline_edit tool invocation
func (s *Server) handleEdit(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, err := pathArg(args)
	if err != nil {
		return nil, err
	}

	payload, err := editsPayload(args["edits"])
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "edits parameter is required", map[string]interface{}{
			"param":  "edits",
			"reason": err.Error(),
		})
	}

	preview := getBoolDefault(args, "preview", false)
	relocate := getBoolDefault(args, "relocate", false)

	batch, err := edit.DecodeBatch(payload)
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "failed to parse edits", map[string]interface{}{
			"param":  "edits",
			"reason": err.Error(),
		})
	}

	ops, err := batch.Parse()
	if err != nil {
		return nil, editError(err)
	}

	start := time.Now()

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to read file", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
	}

	doc := document.Parse(content)
	ix := anchor.NewIndex(doc)

	plan, err := planner.Build(ix, ops, planner.Options{Relocate: relocate})
	if err != nil {
		return nil, editError(err)
	}

	result := applier.Apply(doc, plan)

	if preview {
		diff, err := applier.RenderDiff(doc, result.Doc, path)
		if err != nil {
			return nil, newMCPError(ErrorCodeInternalError, "failed to render preview", map[string]interface{}{
				"error": err.Error(),
			})
		}
		response := map[string]interface{}{
			"applied":          false,
			"preview":          true,
			"changed":          result.Changed,
			"diff":             diff,
			"content":          string(result.Doc.Render()),
			"consumed_anchors": anchorStrings(result.Consumed),
			"replacements":     result.Replacements,
			"relocated":        plan.Relocated,
		}
		return mcp.NewToolResultText(formatJSON(response)), nil
	}

	if !result.Changed {
		response := map[string]interface{}{
			"applied": false,
			"changed": false,
			"message": "edits produced identical content; file not rewritten",
		}
		return mcp.NewToolResultText(formatJSON(response)), nil
	}

	newContent := result.Doc.Render()
	if err := writeFilePreservingMode(path, newContent); err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to write file", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
	}

	s.recordEdit(ctx, path, ops, plan, result, ix.Len(), content, newContent, time.Since(start))

	response := map[string]interface{}{
		"applied":          true,
		"changed":          true,
		"lines_before":     ix.Len(),
		"lines_after":      len(result.Doc.Lines),
		"consumed_anchors": anchorStrings(result.Consumed),
		"replacements":     result.Replacements,
		"relocated":        plan.Relocated,
		"duration_ms":      time.Since(start).Milliseconds(),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleHistory handles the hashline_history tool invocation
func (s *Server) handleHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}

	if s.history == nil {
		response := map[string]interface{}{
			"enabled": false,
			"message": "edit journal is disabled",
		}
		return mcp.NewToolResultText(formatJSON(response)), nil
	}

	limit := getIntDefault(args, "limit", 20)
	if limit < 1 || limit > 100 {
		return nil, newMCPError(ErrorCodeInvalidParams, "limit must be between 1 and 100", map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}

	entries, err := s.history.ListEdits(ctx, path, limit)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to list edit history", map[string]interface{}{
			"error": err.Error(),
		})
	}

	items := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		items = append(items, map[string]interface{}{
			"applied_at":    e.AppliedAt.Format(time.RFC3339),
			"operations":    e.Ops.Total(),
			"set_line":      e.Ops.SetLine,
			"replace_lines": e.Ops.ReplaceLines,
			"insert_after":  e.Ops.InsertAfter,
			"replace":       e.Ops.Replace,
			"relocated":     e.Relocated,
			"replacements":  e.Replacements,
			"lines_before":  e.LinesBefore,
			"lines_after":   e.LinesAfter,
			"before_hash":   e.BeforeHash,
			"after_hash":    e.AfterHash,
			"duration_ms":   e.DurationMS,
		})
	}

	response := map[string]interface{}{
		"enabled": true,
		"path":    path,
		"entries": items,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// recordEdit journals a committed batch. Journal failures are logged by the
// store layer contract but never fail the edit itself.
func (s *Server) recordEdit(ctx context.Context, path string, ops []edit.ParsedOp, plan *planner.Plan, result *applier.Result, linesBefore int, before, after []byte, elapsed time.Duration) {
	if s.history == nil {
		return
	}

	entry := &history.Entry{
		FilePath:     path,
		Ops:          countOps(ops),
		Relocated:    plan.Relocated,
		Replacements: result.Replacements,
		BeforeHash:   contentDigest(before),
		AfterHash:    contentDigest(after),
		LinesBefore:  linesBefore,
		LinesAfter:   len(result.Doc.Lines),
		DurationMS:   elapsed.Milliseconds(),
	}
	if err := s.history.RecordEdit(ctx, entry); err != nil {
		log.Printf("Failed to journal edit for %s: %v", path, err)
	}
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// editError maps the edit error taxonomy onto MCP error codes. The whole
// batch has already been rejected by the time any of these surface.
func editError(err error) error {
	var malformed *types.MalformedAnchorError
	var badRange *types.InvalidRangeError
	var mismatch *types.AnchorMismatchError
	var overlap *types.OverlapError

	switch {
	case errors.As(err, &malformed):
		return newMCPError(ErrorCodeMalformedAnchor, err.Error(), map[string]interface{}{
			"anchor": malformed.Input,
			"reason": malformed.Reason,
		})
	case errors.As(err, &badRange):
		return newMCPError(ErrorCodeInvalidRange, err.Error(), map[string]interface{}{
			"start_anchor": badRange.Start.String(),
			"end_anchor":   badRange.End.String(),
		})
	case errors.As(err, &mismatch):
		failed := make([]map[string]interface{}, 0, len(mismatch.Mismatches))
		for _, m := range mismatch.Mismatches {
			entry := map[string]interface{}{
				"anchor": m.Anchor.String(),
				"kind":   string(m.Kind),
			}
			if m.Kind == types.MismatchStale {
				entry["current_anchor"] = fmt.Sprintf("%d:%s", m.Anchor.Line, m.ActualHash)
				entry["current_text"] = m.ActualText
			}
			failed = append(failed, entry)
		}
		return newMCPError(ErrorCodeAnchorMismatch, mismatch.Error(), map[string]interface{}{
			"anchors":    failed,
			"file_lines": mismatch.FileLines,
		})
	case errors.As(err, &overlap):
		return newMCPError(ErrorCodeOverlappingEdits, err.Error(), map[string]interface{}{
			"first_anchor":  overlap.FirstAnchor.String(),
			"second_anchor": overlap.SecondAnchor.String(),
		})
	default:
		return newMCPError(ErrorCodeInvalidParams, err.Error(), nil)
	}
}

// pathArg extracts and validates the required path parameter.
func pathArg(args map[string]interface{}) (string, error) {
	path, ok := args["path"].(string)
	if !ok || path == "" {
		return "", newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}
	if err := validateFile(path); err != nil {
		return "", newMCPError(ErrorCodeInvalidParams, "invalid path", map[string]interface{}{
			"param":  "path",
			"reason": err.Error(),
		})
	}
	return path, nil
}

// editsPayload normalizes the edits argument to raw JSON. Structured values
// (array or {"edits": ...} object) are re-marshaled; a string is treated as
// a pre-encoded JSON payload.
func editsPayload(v interface{}) ([]byte, error) {
	switch t := v.(type) {
	case nil:
		return nil, errors.New("missing")
	case string:
		if t == "" {
			return nil, errors.New("empty")
		}
		return []byte(t), nil
	default:
		return json.Marshal(v)
	}
}

// validateFile checks if a path points to a readable regular file
func validateFile(path string) error {
	if path == "" {
		return ErrPathRequired
	}

	if !filepath.IsAbs(path) {
		return ErrPathNotAbsolute
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return ErrPathNotFound
	}
	if err != nil {
		return ErrPathNotReadable
	}

	if info.IsDir() {
		return ErrPathIsDirectory
	}
	if !info.Mode().IsRegular() {
		return ErrPathNotRegular
	}

	f, err := os.Open(path)
	if err != nil {
		return ErrPathNotReadable
	}
	_ = f.Close()

	return nil
}

// writeFilePreservingMode rewrites a file keeping its permission bits.
func writeFilePreservingMode(path string, content []byte) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(path, content, mode)
}

// contentDigest returns a short digest of full file content for the journal.
func contentDigest(content []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(content))
}

// countOps tallies a parsed batch by operation kind.
func countOps(ops []edit.ParsedOp) history.OpCounts {
	var c history.OpCounts
	for _, op := range ops {
		switch op.Kind {
		case edit.KindSetLine:
			c.SetLine++
		case edit.KindReplaceLines:
			c.ReplaceLines++
		case edit.KindInsertAfter:
			c.InsertAfter++
		case edit.KindReplace:
			c.Replace++
		}
	}
	return c
}

// anchorStrings renders anchors in their textual form for responses.
func anchorStrings(anchors []types.Anchor) []string {
	out := make([]string, len(anchors))
	for i, a := range anchors {
		out[i] = a.String()
	}
	return out
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// Validation helpers

var (
	ErrPathRequired    = errors.New("path is required")
	ErrPathNotAbsolute = errors.New("path must be absolute")
	ErrPathNotFound    = errors.New("path does not exist")
	ErrPathNotReadable = errors.New("path is not readable")
	ErrPathIsDirectory = errors.New("path is a directory, not a file")
	ErrPathNotRegular  = errors.New("path is not a regular file")
)
