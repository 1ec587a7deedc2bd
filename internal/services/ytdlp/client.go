// Package ytdlp wraps the yt-dlp command-line retrieval tool.
package ytdlp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"ytclip/internal/plan"
	"ytclip/internal/services"
)

var commandContext = exec.CommandContext

// ProgressUpdate captures yt-dlp download progress events.
type ProgressUpdate struct {
	Percent float64
	Message string
}

// Fetcher defines the retrieval behaviour the pipeline needs.
type Fetcher interface {
	Fetch(ctx context.Context, cmd plan.Command, progress func(ProgressUpdate)) error
}

// Prober reads source metadata without downloading media.
type Prober interface {
	Probe(ctx context.Context, cmd plan.Command) (Info, error)
}

// Info is the subset of yt-dlp's JSON metadata ytclip surfaces.
type Info struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Uploader string  `json:"uploader"`
	Duration float64 `json:"duration"`
	WebURL   string  `json:"webpage_url"`
}

// CLI executes yt-dlp as a subprocess.
type CLI struct{}

// NewCLI constructs a CLI client.
func NewCLI() *CLI {
	return &CLI{}
}

// Fetch runs the retrieval command, forwarding download progress to the
// optional callback. A non-zero exit surfaces as a services.ToolError
// carrying the exit code and the tail of stderr.
func (c *CLI) Fetch(ctx context.Context, command plan.Command, progress func(ProgressUpdate)) error {
	cmd := commandContext(ctx, command.Binary, command.Args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", command.Binary, err)
	}

	tail := services.NewTail(20)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			line := scanner.Text()
			tail.Add(line)
			if progress == nil {
				continue
			}
			if update, ok := parseProgress(line); ok {
				progress(update)
			}
		}
	}()
	go func() {
		defer wg.Done()
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			tail.Add(scanner.Text())
		}
	}()
	wg.Wait()

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &services.ToolError{Tool: command.Binary, ExitCode: exitErr.ExitCode(), Stderr: tail.String()}
		}
		return fmt.Errorf("wait %s: %w", command.Binary, err)
	}
	return nil
}

// Probe runs a metadata-only command and decodes the single JSON document
// printed on stdout.
func (c *CLI) Probe(ctx context.Context, command plan.Command) (Info, error) {
	cmd := commandContext(ctx, command.Binary, command.Args...) //nolint:gosec
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			tail := services.NewTail(20)
			for _, line := range strings.Split(string(exitErr.Stderr), "\n") {
				tail.Add(line)
			}
			return Info{}, &services.ToolError{Tool: command.Binary, ExitCode: exitErr.ExitCode(), Stderr: tail.String()}
		}
		return Info{}, fmt.Errorf("run %s: %w", command.Binary, err)
	}

	var info Info
	if err := json.Unmarshal(output, &info); err != nil {
		return Info{}, fmt.Errorf("parse %s metadata: %w", command.Binary, err)
	}
	return info, nil
}

// parseProgress extracts the percentage from yt-dlp's --newline download
// lines, e.g. "[download]  42.3% of 10.00MiB at 2.1MiB/s ETA 00:05".
func parseProgress(line string) (ProgressUpdate, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "[download]") {
		return ProgressUpdate{}, false
	}
	for _, field := range strings.Fields(trimmed) {
		if !strings.HasSuffix(field, "%") {
			continue
		}
		percent, err := strconv.ParseFloat(strings.TrimSuffix(field, "%"), 64)
		if err != nil {
			return ProgressUpdate{}, false
		}
		return ProgressUpdate{Percent: percent, Message: trimmed}, true
	}
	return ProgressUpdate{}, false
}

var _ Fetcher = (*CLI)(nil)
var _ Prober = (*CLI)(nil)
