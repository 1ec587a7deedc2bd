// Package pipeline runs the two-stage clip workflow: retrieval of the
// source segment, then transcoding into the final output. The stages are
// strictly sequential; the second consumes the first's file.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"ytclip/internal/clip"
	"ytclip/internal/config"
	"ytclip/internal/plan"
	"ytclip/internal/services"
	"ytclip/internal/services/ffmpeg"
	"ytclip/internal/services/ytdlp"
)

// intermediateTemplate lets yt-dlp pick the container it actually
// produced; the real filename is located after the stage finishes.
const intermediateTemplate = "source.%(ext)s"

// Result is the successful outcome of a run.
type Result struct {
	OutputPath string
	Elapsed    time.Duration
}

// Runner owns one clip run end to end.
type Runner struct {
	cfg        *config.Config
	logger     *slog.Logger
	fetcher    ytdlp.Fetcher
	transcoder ffmpeg.Transcoder
}

// Option configures a Runner.
type Option func(*Runner)

// WithFetcher injects a custom retrieval client (primarily for tests).
func WithFetcher(f ytdlp.Fetcher) Option {
	return func(r *Runner) {
		if f != nil {
			r.fetcher = f
		}
	}
}

// WithTranscoder injects a custom transcode client (primarily for tests).
func WithTranscoder(t ffmpeg.Transcoder) Option {
	return func(r *Runner) {
		if t != nil {
			r.transcoder = t
		}
	}
}

// New constructs a Runner with the default subprocess clients.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Runner {
	runner := &Runner{
		cfg:        cfg,
		logger:     logger,
		fetcher:    ytdlp.NewCLI(),
		transcoder: ffmpeg.NewCLI(),
	}
	for _, opt := range opts {
		opt(runner)
	}
	return runner
}

// Run executes retrieval then transcode for the request. The staging
// directory and its intermediate file are removed on every exit path.
// Retrieval progress is forwarded to the optional callback.
func (r *Runner) Run(ctx context.Context, req clip.Request, progress func(ytdlp.ProgressUpdate)) (Result, error) {
	started := time.Now()

	outputPath := plan.ResolveOutput(req, r.cfg)
	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Result{}, services.Wrap(services.ErrValidation, "setup", "create output directory", "", err)
		}
	}

	// Two concurrent runs deriving the same name must not clobber each
	// other mid-encode.
	lock := flock.New(outputPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return Result{}, services.Wrap(services.ErrValidation, "setup", "lock output", "", err)
	}
	if !locked {
		return Result{}, services.Wrap(services.ErrValidation, "setup", "lock output",
			fmt.Sprintf("another ytclip run is writing %s", outputPath), nil)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	stagingDir := filepath.Join(r.cfg.Paths.WorkDir, "clip-"+uuid.NewString())
	if err := os.MkdirAll(stagingDir, 0o755); err != nil {
		return Result{}, services.Wrap(services.ErrValidation, "setup", "create staging directory", "", err)
	}
	defer func() {
		_ = os.RemoveAll(stagingDir)
	}()

	retrieval := plan.BuildRetrieval(req, r.cfg, filepath.Join(stagingDir, intermediateTemplate))
	log := r.logger.With("component", "retrieval")
	log.Info("fetching segment",
		"url", req.URL,
		"start", req.Start.Clock(),
		"end", req.End.Clock(),
		"duration", req.Duration(),
	)
	log.Debug("running retrieval command", "command", retrieval.String())
	if err := r.fetcher.Fetch(ctx, retrieval, progress); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, fmt.Errorf("retrieval interrupted: %w", ctxErr)
		}
		return Result{}, services.Wrap(services.ErrRetrieval, "retrieval", "fetch segment", "", err)
	}

	intermediate, err := locateIntermediate(stagingDir)
	if err != nil {
		return Result{}, services.Wrap(services.ErrRetrieval, "retrieval", "locate intermediate file", "", err)
	}

	transcode := plan.BuildTranscode(req, r.cfg, intermediate, outputPath)
	log = r.logger.With("component", "transcode")
	log.Info("encoding clip", "input", intermediate, "output", outputPath, "speed", req.Speed)
	log.Debug("running transcode command", "command", transcode.String())
	if err := r.transcoder.Transcode(ctx, transcode); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, fmt.Errorf("transcode interrupted: %w", ctxErr)
		}
		return Result{}, services.Wrap(services.ErrTranscode, "transcode", "encode clip", "", err)
	}

	return Result{OutputPath: outputPath, Elapsed: time.Since(started)}, nil
}

// locateIntermediate finds the file the retrieval stage produced. yt-dlp
// substitutes the real container extension into the output template, so
// the name is only known after the fact; the largest regular file wins
// when several are present (e.g. leftover format fragments).
func locateIntermediate(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("inspect staging directory: %w", err)
	}
	var bestPath string
	var bestSize int64 = -1
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".part") || strings.HasSuffix(entry.Name(), ".ytdl") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.Size() > bestSize {
			bestSize = info.Size()
			bestPath = filepath.Join(dir, entry.Name())
		}
	}
	if bestPath == "" {
		return "", errors.New("retrieval produced no output file")
	}
	return bestPath, nil
}
