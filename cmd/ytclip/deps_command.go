package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ytclip/internal/deps"
	"ytclip/internal/services"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check availability of the external tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			statuses := deps.CheckBinaries(deps.Requirements(cfg))
			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				state := "OK"
				detail := status.Description
				if !status.Available {
					state = "MISSING"
					if status.Detail != "" {
						detail = status.Detail
					}
				}
				rows = append(rows, []string{status.Name, status.Command, state, detail})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Tool", "Command", "Status", "Notes"}, rows))

			if missing := deps.MissingRequired(statuses); len(missing) > 0 {
				return services.Wrap(services.ErrValidation, "deps", "check binaries",
					fmt.Sprintf("missing required tools: %s", strings.Join(missing, ", ")), nil)
			}
			return nil
		},
	}
}
