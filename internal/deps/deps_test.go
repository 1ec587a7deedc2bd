package deps

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"ytclip/internal/config"
)

func TestCheckBinariesReportsMissing(t *testing.T) {
	statuses := CheckBinaries([]Requirement{
		{Name: "Ghost", Command: "definitely-not-a-real-binary-xyz"},
	})
	if len(statuses) != 1 {
		t.Fatalf("expected 1 status, got %d", len(statuses))
	}
	if statuses[0].Available {
		t.Fatal("expected missing binary to be unavailable")
	}
	if statuses[0].Detail == "" {
		t.Fatal("expected detail for missing binary")
	}
}

func TestCheckBinariesReportsUnconfigured(t *testing.T) {
	statuses := CheckBinaries([]Requirement{{Name: "Empty", Command: "  "}})
	if statuses[0].Available {
		t.Fatal("expected unconfigured command to be unavailable")
	}
	if statuses[0].Detail != "command not configured" {
		t.Fatalf("detail = %q", statuses[0].Detail)
	}
}

func TestCheckBinariesFindsExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("PATH fixture assumes a POSIX shell environment")
	}
	dir := t.TempDir()
	fake := filepath.Join(dir, "fake-tool")
	if err := os.WriteFile(fake, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write fake tool: %v", err)
	}
	t.Setenv("PATH", dir)

	statuses := CheckBinaries([]Requirement{{Name: "Fake", Command: "fake-tool"}})
	if !statuses[0].Available {
		t.Fatalf("expected fake tool to be found: %+v", statuses[0])
	}
}

func TestRequirementsUseConfiguredBinaries(t *testing.T) {
	cfg := config.Default()
	cfg.Tools.YtDlp = "/opt/yt-dlp"
	cfg.Tools.FFmpeg = "/opt/ffmpeg"

	reqs := Requirements(&cfg)
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(reqs))
	}
	if reqs[0].Command != "/opt/yt-dlp" || reqs[1].Command != "/opt/ffmpeg" {
		t.Fatalf("unexpected commands: %+v", reqs)
	}
}

func TestMissingRequired(t *testing.T) {
	statuses := []Status{
		{Name: "yt-dlp", Available: false},
		{Name: "FFmpeg", Available: true},
		{Name: "Extra", Available: false, Optional: true},
	}
	missing := MissingRequired(statuses)
	if len(missing) != 1 || missing[0] != "yt-dlp" {
		t.Fatalf("missing = %v", missing)
	}
}
