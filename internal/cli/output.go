package cli

import (
	"encoding/json"
	"errors"
	"io"
)

// Process exit codes of ttc.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // a market with agents left and no trading cycle
	ExitCommandError = 2 // usage, input, config and ledger problems
)

// ExitError pairs a command failure with the exit code main should use.
// Message names the step that failed; Err is the cause, if any.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return e.Message
	}

	return e.Message + ": " + e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// WrapExitError tags err as the failure of step with exit code code.
func WrapExitError(code int, step string, err error) *ExitError {
	return &ExitError{Code: code, Message: step, Err: err}
}

// GetExitCode maps the error returned by Execute to a process exit code.
// Errors raised by cobra itself, such as unknown flags, carry no code and
// count as ExitFailure.
func GetExitCode(err error) int {
	var exitErr *ExitError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &exitErr):
		return exitErr.Code
	default:
		return ExitFailure
	}
}

// Response is the envelope of every --format json result.
type Response struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
}

// OutputFormatter writes command results as text or JSON.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// Result writes data: JSON-encoded inside a Response, or via text for text output.
func (f *OutputFormatter) Result(data any, text func(w io.Writer) error) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(Response{Status: "ok", Data: data})
	}
	return text(f.Writer)
}
