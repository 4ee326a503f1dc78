package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// Response is the JSON response shape for all commands.
type Response struct {
	Status string `json:"status"` // "ok" or "error"
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

// writeResult emits a success payload in the requested format. In text
// mode, text is printed verbatim; in JSON mode, data is wrapped in a
// Response envelope.
func writeResult(w io.Writer, format, text string, data any) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(Response{Status: "ok", Data: data})
	}
	_, err := fmt.Fprintln(w, text)
	return err
}

// writeError emits an error in the requested format and returns an error
// carrying the same message so cobra sets a non-zero exit status. In
// text mode the message goes to the error writer; the JSON envelope goes
// to the normal output like every other response.
func writeError(w, errW io.Writer, format string, err error) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(Response{Status: "error", Error: err.Error()}); encErr != nil {
			return encErr
		}
		return err
	}
	fmt.Fprintf(errW, "Error: %v\n", err)
	return err
}
