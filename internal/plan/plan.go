// Package plan composes the argument lists for the two external tool
// invocations a clip run performs. Everything here is a pure function of
// the validated request and configuration, so command construction is
// deterministic and testable without touching a subprocess.
package plan

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"ytclip/internal/clip"
	"ytclip/internal/config"
	"ytclip/internal/fileutil"
)

// Command describes one subprocess invocation: the executable plus its
// ordered argument list. It is constructed fresh per run and never reused.
type Command struct {
	Binary string
	Args   []string
}

// String renders the command the way a user could paste it into a shell.
func (c Command) String() string {
	return c.Binary + " " + strings.Join(c.Args, " ")
}

// BuildRetrieval composes the yt-dlp invocation that fetches the source
// media into the intermediate file. With section download enabled only the
// byte ranges covering [start, end] are requested.
func BuildRetrieval(req clip.Request, cfg *config.Config, intermediate string) Command {
	args := []string{
		"--no-playlist",
		"--no-warnings",
		"--newline",
		"-f", cfg.Download.Format,
	}
	if cfg.Download.SectionDownload {
		section := fmt.Sprintf("*%s-%s", req.Start.FormatSeconds(), req.End.FormatSeconds())
		args = append(args, "--download-sections", section)
	}
	args = append(args, "-o", intermediate, req.URL)
	return Command{Binary: cfg.Tools.YtDlp, Args: args}
}

// BuildTranscode composes the ffmpeg invocation that trims (when retrieval
// fetched the whole asset), applies speed filters, and encodes the clip as
// H.264/AAC MP4.
func BuildTranscode(req clip.Request, cfg *config.Config, input, output string) Command {
	args := []string{"-y", "-nostdin"}

	// Section downloads are already cut to the requested range; otherwise
	// seek before the input for fast keyframe-aligned reads and trim with
	// an output duration.
	if !cfg.Download.SectionDownload {
		args = append(args, "-ss", req.Start.FormatSeconds())
	}
	args = append(args, "-i", input)
	if !cfg.Download.SectionDownload {
		duration := strconv.FormatFloat(req.Duration().Seconds(), 'f', 3, 64)
		args = append(args, "-t", duration)
	}

	if req.HasSpeedChange() {
		args = append(args,
			"-filter:v", videoSpeedFilter(req.Speed),
			"-filter:a", audioSpeedFilter(req.Speed),
		)
	}

	args = append(args,
		"-c:v", "libx264",
		"-c:a", "aac",
		"-pix_fmt", cfg.Encode.PixelFormat,
		"-movflags", "faststart",
		"-preset", cfg.Encode.Preset,
		"-crf", strconv.Itoa(cfg.Encode.CRF),
		"-b:a", cfg.Encode.AudioBitrate,
		output,
	)
	return Command{Binary: cfg.Tools.FFmpeg, Args: args}
}

// BuildProbe composes the metadata-only yt-dlp invocation used by the
// info command. It prints one JSON document and touches no media.
func BuildProbe(rawURL string, cfg *config.Config) Command {
	return Command{
		Binary: cfg.Tools.YtDlp,
		Args:   []string{"-J", "--no-playlist", "--no-warnings", rawURL},
	}
}

// OutputName derives the default output filename from the source
// identifier and the requested range, so repeated invocations with
// different ranges or speeds never collide.
func OutputName(req clip.Request) string {
	stem := fileutil.SanitizeFileName(req.VideoID)
	if stem == "" {
		stem = "video"
	}
	name := fmt.Sprintf("%s_clip_%s-%s", stem, req.Start.Token(), req.End.Token())
	if req.HasSpeedChange() {
		name += "_" + strconv.FormatFloat(req.Speed, 'f', -1, 64) + "x"
	}
	return name + ".mp4"
}

// compatible container extensions the user may supply explicitly.
var containerExtensions = map[string]struct{}{
	".mp4": {},
	".m4v": {},
	".mov": {},
}

// ResolveOutput determines the final output path. An explicit user path is
// honored verbatim, gaining an .mp4 extension when it lacks a compatible
// one; derived names land in the configured output directory.
func ResolveOutput(req clip.Request, cfg *config.Config) string {
	if req.Output != "" {
		ext := strings.ToLower(filepath.Ext(req.Output))
		if _, ok := containerExtensions[ext]; ok {
			return req.Output
		}
		return req.Output + ".mp4"
	}
	return filepath.Join(cfg.Paths.OutputDir, OutputName(req))
}
