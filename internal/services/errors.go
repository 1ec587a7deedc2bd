package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation marks a semantically invalid request or argument.
	ErrValidation = errors.New("validation error")
	// ErrRetrieval marks a failure of the external retrieval tool.
	ErrRetrieval = errors.New("retrieval failure")
	// ErrTranscode marks a failure of the external transcoding tool.
	ErrTranscode = errors.New("transcode failure")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later exit-code classification. The marker
// should be one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrValidation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ToolError captures the observable outcome of a failed subprocess: the
// tool name, its exit code, and the tail of its diagnostic output.
type ToolError struct {
	Tool     string
	ExitCode int
	Stderr   string
}

func (e *ToolError) Error() string {
	detail := strings.TrimSpace(e.Stderr)
	if detail == "" {
		return fmt.Sprintf("%s exited with code %d", e.Tool, e.ExitCode)
	}
	return fmt.Sprintf("%s exited with code %d: %s", e.Tool, e.ExitCode, detail)
}

// AsToolError unwraps err to a ToolError when one is present.
func AsToolError(err error) (*ToolError, bool) {
	var toolErr *ToolError
	if errors.As(err, &toolErr) {
		return toolErr, true
	}
	return nil, false
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "stage failure"
	}
	return strings.Join(parts, ": ")
}
