package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var outputFlag string
	var speedFlag float64

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "ytclip [flags] URL START END",
		Short: "Extract a time-bounded clip from a YouTube video",
		Long: `ytclip downloads the requested segment of a YouTube video with yt-dlp
and re-encodes it into a portable MP4 with ffmpeg. Start and end times
accept seconds (90, 90.5), M:SS (1:30), or H:MM:SS (1:02:30).`,
		Example: `  ytclip "https://youtube.com/watch?v=dQw4w9WgXcQ" 1:30 2:45
  ytclip -o highlight.mp4 -s 1.5 "https://youtu.be/dQw4w9WgXcQ" 0:15 0:45`,
		Args:          cobra.ExactArgs(3),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClip(cmd, ctx, args, outputFlag, speedFlag)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output file path (default derives from video ID and range)")
	rootCmd.Flags().Float64VarP(&speedFlag, "speed", "s", 0, "Playback speed multiplier, 0.5 to 4.0")

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newDepsCommand(ctx))
	rootCmd.AddCommand(newInfoCommand(ctx))

	return rootCmd
}
