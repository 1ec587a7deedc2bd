package ytdlp

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"

	"ytclip/internal/plan"
	"ytclip/internal/services"
)

func setHelperCommand(t *testing.T, mode string) *[]string {
	t.Helper()
	var capturedArgs []string
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		capturedArgs = append([]string(nil), args...)
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", fmt.Sprintf("YTDLP_HELPER_MODE=%s", mode))
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
	return &capturedArgs
}

func TestFetchForwardsProgress(t *testing.T) {
	captured := setHelperCommand(t, "success")

	cli := NewCLI()
	command := plan.Command{Binary: "yt-dlp", Args: []string{"-f", "best", "https://youtu.be/abcdefghijk"}}

	var updates []ProgressUpdate
	err := cli.Fetch(context.Background(), command, func(update ProgressUpdate) {
		updates = append(updates, update)
	})
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(*captured) == 0 || (*captured)[0] != "-f" {
		t.Fatalf("expected original args to be passed through, got %v", *captured)
	}
	if len(updates) != 2 {
		t.Fatalf("expected 2 progress updates, got %d", len(updates))
	}
	if updates[0].Percent != 42.3 {
		t.Fatalf("first update percent = %v", updates[0].Percent)
	}
	if updates[1].Percent != 100 {
		t.Fatalf("final update percent = %v", updates[1].Percent)
	}
}

func TestFetchFailureCarriesExitCodeAndStderr(t *testing.T) {
	setHelperCommand(t, "failure")

	cli := NewCLI()
	err := cli.Fetch(context.Background(), plan.Command{Binary: "yt-dlp"}, nil)
	if err == nil {
		t.Fatal("expected fetch failure")
	}
	toolErr, ok := services.AsToolError(err)
	if !ok {
		t.Fatalf("expected ToolError, got %v", err)
	}
	if toolErr.ExitCode != 1 {
		t.Fatalf("exit code = %d, want 1", toolErr.ExitCode)
	}
	if toolErr.Stderr == "" || toolErr.Tool != "yt-dlp" {
		t.Fatalf("unexpected tool error: %+v", toolErr)
	}
}

func TestProbeParsesMetadata(t *testing.T) {
	setHelperCommand(t, "probe")

	cli := NewCLI()
	info, err := cli.Probe(context.Background(), plan.Command{Binary: "yt-dlp", Args: []string{"-J"}})
	if err != nil {
		t.Fatalf("Probe returned error: %v", err)
	}
	if info.ID != "dQw4w9WgXcQ" {
		t.Fatalf("id = %q", info.ID)
	}
	if info.Title != "Test Video" {
		t.Fatalf("title = %q", info.Title)
	}
	if info.Duration != 212 {
		t.Fatalf("duration = %v", info.Duration)
	}
}

func TestProbeFailure(t *testing.T) {
	setHelperCommand(t, "failure")

	cli := NewCLI()
	if _, err := cli.Probe(context.Background(), plan.Command{Binary: "yt-dlp"}); err == nil {
		t.Fatal("expected probe failure")
	}
}

func TestParseProgress(t *testing.T) {
	cases := []struct {
		line    string
		percent float64
		ok      bool
	}{
		{"[download]  42.3% of 10.00MiB at 2.1MiB/s ETA 00:05", 42.3, true},
		{"[download] 100% of 10.00MiB in 00:04", 100, true},
		{"[download] Destination: clip.mp4", 0, false},
		{"[info] abcdefghijk: Downloading 1 format(s)", 0, false},
		{"unrelated noise", 0, false},
	}
	for _, tc := range cases {
		update, ok := parseProgress(tc.line)
		if ok != tc.ok {
			t.Fatalf("parseProgress(%q) ok = %v, want %v", tc.line, ok, tc.ok)
		}
		if ok && update.Percent != tc.percent {
			t.Fatalf("parseProgress(%q) percent = %v, want %v", tc.line, update.Percent, tc.percent)
		}
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	switch os.Getenv("YTDLP_HELPER_MODE") {
	case "success":
		fmt.Println("[info] abcdefghijk: Downloading 1 format(s)")
		fmt.Println("[download]  42.3% of 10.00MiB at 2.1MiB/s ETA 00:05")
		fmt.Println("[download] 100% of 10.00MiB in 00:04")
		os.Exit(0)
	case "probe":
		fmt.Println(`{"id":"dQw4w9WgXcQ","title":"Test Video","uploader":"Tester","duration":212,"webpage_url":"https://www.youtube.com/watch?v=dQw4w9WgXcQ"}`)
		os.Exit(0)
	case "failure":
		fmt.Fprintln(os.Stderr, "ERROR: [youtube] abcdefghijk: Video unavailable")
		os.Exit(1)
	default:
		os.Exit(0)
	}
}
