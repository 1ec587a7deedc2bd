package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderStatusLinePlain(t *testing.T) {
	line := renderStatusLine("Clip", statusOK, "/tmp/out.mp4", false)
	if !strings.Contains(line, "[OK] /tmp/out.mp4") {
		t.Fatalf("unexpected line: %q", line)
	}
	if strings.Contains(line, ansiGreen) {
		t.Fatalf("plain output must not carry color codes: %q", line)
	}
}

func TestRenderStatusLineColorized(t *testing.T) {
	line := renderStatusLine("Clip", statusError, "failed", true)
	if !strings.HasPrefix(line, ansiRed) || !strings.HasSuffix(line, ansiReset) {
		t.Fatalf("expected red wrapping, got %q", line)
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(&bytes.Buffer{}) {
		t.Fatal("buffers must never be colorized")
	}
}
