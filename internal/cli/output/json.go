package output

import (
	"encoding/json"
	"io"
)

// PrintJSON writes data as two-space indented JSON.
func PrintJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// PrintJSONCompact writes data as single-line JSON, for piping into
// other tools.
func PrintJSONCompact(w io.Writer, data any) error {
	return json.NewEncoder(w).Encode(data)
}
