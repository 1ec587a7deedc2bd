package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ytclip/internal/plan"
	"ytclip/internal/services"
	"ytclip/internal/services/ytdlp"
)

func newInfoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "info URL",
		Short: "Show video metadata without downloading anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			client := ytdlp.NewCLI()
			info, err := client.Probe(cmd.Context(), plan.BuildProbe(args[0], cfg))
			if err != nil {
				return services.Wrap(services.ErrRetrieval, "probe", "fetch metadata", "", err)
			}

			rows := [][]string{
				{"ID", info.ID},
				{"Title", info.Title},
				{"Uploader", info.Uploader},
				{"Duration", formatSeconds(info.Duration)},
				{"URL", info.WebURL},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows))
			return nil
		},
	}
}

func formatSeconds(seconds float64) string {
	if seconds <= 0 {
		return "unknown"
	}
	return time.Duration(seconds * float64(time.Second)).Round(time.Second).String()
}
