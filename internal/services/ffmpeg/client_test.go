package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"ytclip/internal/plan"
	"ytclip/internal/services"
)

func setHelperCommand(t *testing.T, mode string) {
	t.Helper()
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", fmt.Sprintf("FFMPEG_HELPER_MODE=%s", mode))
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
}

func TestTranscodeSuccess(t *testing.T) {
	setHelperCommand(t, "success")

	cli := NewCLI()
	command := plan.Command{Binary: "ffmpeg", Args: []string{"-y", "-i", "in.mp4", "out.mp4"}}
	if err := cli.Transcode(context.Background(), command); err != nil {
		t.Fatalf("Transcode returned error: %v", err)
	}
}

func TestTranscodeFailureCarriesStderrTail(t *testing.T) {
	setHelperCommand(t, "failure")

	cli := NewCLI()
	err := cli.Transcode(context.Background(), plan.Command{Binary: "ffmpeg"})
	if err == nil {
		t.Fatal("expected transcode failure")
	}
	toolErr, ok := services.AsToolError(err)
	if !ok {
		t.Fatalf("expected ToolError, got %v", err)
	}
	if toolErr.ExitCode != 1 || toolErr.Tool != "ffmpeg" {
		t.Fatalf("unexpected tool error: %+v", toolErr)
	}
	if !strings.Contains(toolErr.Stderr, "Invalid data found") {
		t.Fatalf("stderr tail missing diagnostic: %q", toolErr.Stderr)
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	switch os.Getenv("FFMPEG_HELPER_MODE") {
	case "success":
		fmt.Fprintln(os.Stderr, "frame=  100 fps=50 q=28.0 size=256kB time=00:00:04.00")
		os.Exit(0)
	case "failure":
		fmt.Fprintln(os.Stderr, "[mov,mp4,m4a,3gp,3g2,mj2 @ 0x55] moov atom not found")
		fmt.Fprintln(os.Stderr, "in.mp4: Invalid data found when processing input")
		os.Exit(1)
	default:
		os.Exit(0)
	}
}
