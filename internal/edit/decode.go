package edit

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// envelope is the object payload form: {"edits": [...]}.
type envelope struct {
	Edits []Operation `json:"edits"`
}

// DecodeBatch parses an edits payload. Both shapes are accepted: a bare JSON
// array of operations, or the object form {"edits": [...]}.
func DecodeBatch(payload []byte) (Batch, error) {
	trimmed := bytes.TrimLeft(payload, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var ops []Operation
		if err := json.Unmarshal(trimmed, &ops); err != nil {
			return nil, fmt.Errorf("failed to parse edits JSON: %w", err)
		}
		return Batch(ops), nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("failed to parse edits JSON: %w", err)
	}
	return Batch(env.Edits), nil
}
