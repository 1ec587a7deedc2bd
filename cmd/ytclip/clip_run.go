package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"ytclip/internal/clip"
	"ytclip/internal/logging"
	"ytclip/internal/pipeline"
	"ytclip/internal/services"
	"ytclip/internal/services/ytdlp"
)

func runClip(cmd *cobra.Command, ctx *commandContext, args []string, output string, speed float64) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return services.Wrap(services.ErrValidation, "setup", "load config", "", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return services.Wrap(services.ErrValidation, "setup", "init logger", "", err)
	}

	// The flag's zero value doubles as "unset", so an explicit -s 0 has
	// to be caught here before it reads as a request for the default.
	if cmd.Flags().Changed("speed") {
		if err := clip.ValidateSpeed(speed); err != nil {
			return services.Wrap(services.ErrValidation, "validate", "parse arguments", "", err)
		}
	}

	req, err := clip.New(args[0], args[1], args[2], clip.Options{
		Output:           output,
		Speed:            speed,
		RequireKnownHost: cfg.Validation.RequireKnownHost,
		AllowedHosts:     cfg.Validation.AllowedHosts,
	})
	if err != nil {
		return services.Wrap(services.ErrValidation, "validate", "parse arguments", "", err)
	}

	signalCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, unix.SIGTERM)
	defer stop()

	progress, clearProgress := retrievalProgress(cmd.ErrOrStderr())
	runner := pipeline.New(cfg, logger)
	result, err := runner.Run(signalCtx, req, progress)
	clearProgress()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	fmt.Fprintln(out, renderStatusLine("Clip", statusOK, result.OutputPath, colorize))
	fmt.Fprintln(out, renderStatusLine("Elapsed", statusInfo, result.Elapsed.Round(time.Millisecond).String(), colorize))
	return nil
}

// retrievalProgress returns a callback that drives an interactive
// progress bar, or nil when the writer is not a terminal (so logs and
// redirects stay clean).
func retrievalProgress(w io.Writer) (func(ytdlp.ProgressUpdate), func()) {
	if !shouldColorize(w) {
		return nil, func() {}
	}
	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("retrieving"),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
	return func(update ytdlp.ProgressUpdate) {
		_ = bar.Set(int(update.Percent))
	}, func() { _ = bar.Clear() }
}
