package plan

import (
	"path/filepath"
	"strings"
	"testing"

	"ytclip/internal/clip"
	"ytclip/internal/config"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Paths.OutputDir = "/clips"
	return &cfg
}

func testRequest(t *testing.T, start, end string, speed float64, output string) clip.Request {
	t.Helper()
	req, err := clip.New("https://youtube.com/watch?v=abcdefghijk", start, end, clip.Options{
		Speed:  speed,
		Output: output,
	})
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	return req
}

func TestBuildRetrievalRequestsSection(t *testing.T) {
	cfg := testConfig()
	req := testRequest(t, "1:30", "2:45", 0, "")

	cmd := BuildRetrieval(req, cfg, "/work/clip-x/source.mp4")
	if cmd.Binary != "yt-dlp" {
		t.Fatalf("binary = %q", cmd.Binary)
	}
	joined := strings.Join(cmd.Args, " ")
	if !strings.Contains(joined, "--download-sections *90.000-165.000") {
		t.Fatalf("missing section range in args: %v", cmd.Args)
	}
	if !strings.Contains(joined, "-o /work/clip-x/source.mp4") {
		t.Fatalf("missing output in args: %v", cmd.Args)
	}
	if cmd.Args[len(cmd.Args)-1] != req.URL {
		t.Fatalf("expected URL as final argument, got %q", cmd.Args[len(cmd.Args)-1])
	}
	if !strings.Contains(joined, "--no-playlist") {
		t.Fatalf("missing --no-playlist: %v", cmd.Args)
	}
}

func TestBuildRetrievalWithoutSectionDownload(t *testing.T) {
	cfg := testConfig()
	cfg.Download.SectionDownload = false
	req := testRequest(t, "1:30", "2:45", 0, "")

	cmd := BuildRetrieval(req, cfg, "/work/source.mp4")
	if strings.Contains(strings.Join(cmd.Args, " "), "--download-sections") {
		t.Fatalf("unexpected section flag: %v", cmd.Args)
	}
}

func TestBuildTranscodeTrimsWhenRetrievalFetchedFullAsset(t *testing.T) {
	cfg := testConfig()
	cfg.Download.SectionDownload = false
	req := testRequest(t, "1:30", "2:45", 0, "")

	cmd := BuildTranscode(req, cfg, "/work/source.mp4", "/clips/out.mp4")
	joined := strings.Join(cmd.Args, " ")
	if !strings.Contains(joined, "-ss 90.000") {
		t.Fatalf("missing seek: %v", cmd.Args)
	}
	if !strings.Contains(joined, "-t 75.000") {
		t.Fatalf("missing 75-second duration: %v", cmd.Args)
	}
}

func TestBuildTranscodeSkipsTrimForSectionDownload(t *testing.T) {
	cfg := testConfig()
	req := testRequest(t, "1:30", "2:45", 0, "")

	cmd := BuildTranscode(req, cfg, "/work/source.mp4", "/clips/out.mp4")
	joined := strings.Join(cmd.Args, " ")
	if strings.Contains(joined, "-ss") || strings.Contains(joined, "-t 75") {
		t.Fatalf("unexpected trim flags for section download: %v", cmd.Args)
	}
}

func TestBuildTranscodeEncodesH264AAC(t *testing.T) {
	cfg := testConfig()
	req := testRequest(t, "0:00", "0:30", 0, "")

	cmd := BuildTranscode(req, cfg, "/in.mp4", "/out.mp4")
	joined := strings.Join(cmd.Args, " ")
	for _, fragment := range []string{
		"-c:v libx264",
		"-c:a aac",
		"-pix_fmt yuv420p",
		"-movflags faststart",
		"-preset fast",
		"-crf 23",
		"-b:a 128k",
	} {
		if !strings.Contains(joined, fragment) {
			t.Fatalf("missing %q in args: %v", fragment, cmd.Args)
		}
	}
	if cmd.Args[len(cmd.Args)-1] != "/out.mp4" {
		t.Fatalf("expected output as final argument, got %q", cmd.Args[len(cmd.Args)-1])
	}
	if cmd.Binary != "ffmpeg" {
		t.Fatalf("binary = %q", cmd.Binary)
	}
}

func TestBuildTranscodeOmitsFiltersAtNormalSpeed(t *testing.T) {
	cfg := testConfig()
	req := testRequest(t, "0:00", "0:30", 1.0, "")

	cmd := BuildTranscode(req, cfg, "/in.mp4", "/out.mp4")
	joined := strings.Join(cmd.Args, " ")
	if strings.Contains(joined, "-filter:v") || strings.Contains(joined, "-filter:a") {
		t.Fatalf("unexpected filters at speed 1.0: %v", cmd.Args)
	}
}

func TestBuildTranscodeAppliesSpeedFilters(t *testing.T) {
	cases := []struct {
		speed float64
		video string
		audio string
	}{
		{2.0, "setpts=0.50*PTS", "atempo=2.00"},
		{0.5, "setpts=2.00*PTS", "atempo=0.50"},
		{2.5, "setpts=0.40*PTS", "atempo=2.0,atempo=1.25"},
		{4.0, "setpts=0.25*PTS", "atempo=2.0,atempo=2.0"},
	}
	cfg := testConfig()
	for _, tc := range cases {
		req := testRequest(t, "0:00", "0:30", tc.speed, "")
		cmd := BuildTranscode(req, cfg, "/in.mp4", "/out.mp4")
		joined := strings.Join(cmd.Args, " ")
		if !strings.Contains(joined, "-filter:v "+tc.video) {
			t.Fatalf("speed %v: missing video filter %q in %v", tc.speed, tc.video, cmd.Args)
		}
		if !strings.Contains(joined, "-filter:a "+tc.audio) {
			t.Fatalf("speed %v: missing audio filter %q in %v", tc.speed, tc.audio, cmd.Args)
		}
	}
}

func TestOutputNameIsDeterministicAndRangeSensitive(t *testing.T) {
	reqA := testRequest(t, "1:30", "2:45", 0, "")
	reqB := testRequest(t, "1:30", "2:45", 0, "")
	reqC := testRequest(t, "0:30", "2:45", 0, "")

	nameA := OutputName(reqA)
	if nameA != OutputName(reqB) {
		t.Fatalf("same request produced different names: %q vs %q", nameA, OutputName(reqB))
	}
	if nameA == OutputName(reqC) {
		t.Fatalf("different ranges produced the same name: %q", nameA)
	}
	if nameA != "abcdefghijk_clip_1-30-2-45.mp4" {
		t.Fatalf("name = %q", nameA)
	}
}

func TestOutputNameIncludesSpeedSuffix(t *testing.T) {
	req := testRequest(t, "1:30", "2:45", 1.5, "")
	if got := OutputName(req); got != "abcdefghijk_clip_1-30-2-45_1.5x.mp4" {
		t.Fatalf("name = %q", got)
	}
}

func TestResolveOutputHonorsExplicitPath(t *testing.T) {
	cfg := testConfig()

	withExt := testRequest(t, "0:00", "0:30", 0, "my-clip.mp4")
	if got := ResolveOutput(withExt, cfg); got != "my-clip.mp4" {
		t.Fatalf("explicit path = %q", got)
	}

	withoutExt := testRequest(t, "0:00", "0:30", 0, "my-clip")
	if got := ResolveOutput(withoutExt, cfg); got != "my-clip.mp4" {
		t.Fatalf("appended extension = %q", got)
	}

	derived := testRequest(t, "0:00", "0:30", 0, "")
	want := filepath.Join("/clips", OutputName(derived))
	if got := ResolveOutput(derived, cfg); got != want {
		t.Fatalf("derived path = %q, want %q", got, want)
	}
}

func TestCommandString(t *testing.T) {
	cmd := Command{Binary: "ffmpeg", Args: []string{"-y", "-i", "in.mp4", "out.mp4"}}
	if got := cmd.String(); got != "ffmpeg -y -i in.mp4 out.mp4" {
		t.Fatalf("String = %q", got)
	}
}
