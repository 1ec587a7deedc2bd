// Package ffmpeg wraps the ffmpeg command-line transcoder.
package ffmpeg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"ytclip/internal/plan"
	"ytclip/internal/services"
)

var commandContext = exec.CommandContext

// Transcoder defines the transcode behaviour the pipeline needs.
type Transcoder interface {
	Transcode(ctx context.Context, cmd plan.Command) error
}

// CLI executes ffmpeg as a subprocess.
type CLI struct{}

// NewCLI constructs a CLI client.
func NewCLI() *CLI {
	return &CLI{}
}

// Transcode runs the transcode command. ffmpeg writes all diagnostics to
// stderr; the tail is preserved on failure as a services.ToolError.
func (c *CLI) Transcode(ctx context.Context, command plan.Command) error {
	cmd := commandContext(ctx, command.Binary, command.Args...) //nolint:gosec
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", command.Binary, err)
	}

	tail := services.NewTail(20)
	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		tail.Add(scanner.Text())
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &services.ToolError{Tool: command.Binary, ExitCode: exitErr.ExitCode(), Stderr: tail.String()}
		}
		return fmt.Errorf("wait %s: %w", command.Binary, err)
	}
	return nil
}

var _ Transcoder = (*CLI)(nil)
