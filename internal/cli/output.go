package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Envelope wraps all --json responses.
type Envelope struct {
	OK            bool       `json:"ok"`
	Data          any        `json:"data"`
	Error         *ErrorInfo `json:"error"`
	Meta          Meta       `json:"meta"`
	SchemaVersion string     `json:"schema_version"`
	Command       string     `json:"command,omitempty"`
}

// ErrorInfo describes an error in the JSON envelope.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Meta contains response metadata.
type Meta struct {
	GeneratedAt string `json:"generated_at"`
	Version     string `json:"version"`
}

const EnvelopeSchemaVersion = "cellgrid.cli.v1"

// Exit codes.
const (
	ExitOK            = 0
	ExitInternalError = 1
	ExitUsage         = 2
	ExitInvalidCell   = 3
)

// Error codes reported in the envelope.
const (
	codeUsage       = "usage_error"
	codeParse       = "parse_error"
	codeInvalidCell = "invalid_cell"
	codeConfig      = "config_error"
	codeInternal    = "internal_error"
)

func newEnvelope(command, version string) Envelope {
	return Envelope{
		Meta: Meta{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			Version:     version,
		},
		SchemaVersion: EnvelopeSchemaVersion,
		Command:       command,
	}
}

func writeEnvelope(w io.Writer, env Envelope) {
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		fallback := []byte(`{"ok":false,"error":{"code":"encode_failed","message":"failed to encode response"},"data":null}` + "\n")
		_, _ = w.Write(fallback)
		return
	}
	_, _ = w.Write(append(data, '\n'))
}

// PrintJSON writes a success envelope for command to w.
func PrintJSON(w io.Writer, command string, data any, version string) {
	env := newEnvelope(command, version)
	env.OK = true
	env.Data = data
	writeEnvelope(w, env)
}

// ReturnError writes an error envelope for command to w.
func ReturnError(w io.Writer, command, code, message string, details any, version string) {
	env := newEnvelope(command, version)
	env.Error = &ErrorInfo{Code: code, Message: message, Details: details}
	writeEnvelope(w, env)
}

// Errorf prints a human-readable error to w.
func Errorf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "Error: "+format+"\n", args...)
}
