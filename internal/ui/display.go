// Package ui (display.go) renders search responses and status messages for
// the CLI, and provides the spinner shown while a request is in flight.
package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Success prints a simple success message to standard output.
func Success(msg string) {
	fmt.Println(msg)
}

// Error prints an error message to standard error.
func Error(msg string) {
	fmt.Fprintln(os.Stderr, "Error:", msg)
}

// PrintJSON writes a search response to w. Valid JSON is indented unless
// compact is set; anything else is written byte for byte.
func PrintJSON(w io.Writer, raw []byte, compact bool) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	out := raw
	if !compact && json.Valid(raw) {
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err == nil {
			out = buf.Bytes()
		}
	}

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	if out[len(out)-1] != '\n' {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return fmt.Errorf("writing response: %w", err)
		}
	}
	return nil
}

// NewSpinner returns an indeterminate spinner on stderr. Call Finish on it
// once the request completes.
func NewSpinner(description string) *progressbar.ProgressBar {
	return NewSpinnerTo(os.Stderr, description)
}

// NewSpinnerTo is NewSpinner with an explicit writer.
func NewSpinnerTo(w io.Writer, description string) *progressbar.ProgressBar {
	if description == "" {
		description = "Working..."
	}
	return progressbar.NewOptions(
		-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}
