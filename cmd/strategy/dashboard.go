package main

import (
	"fmt"
	"os"

	"github.com/Veraticus/app-strategy/internal/common"
	"github.com/Veraticus/app-strategy/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive dashboard",
		Long: `Open the full-screen dashboard: hero metrics, the segment distribution,
priority analysis and performance insights, with drill-down into segments and
categories. Logs are written to logging.file while the dashboard is open.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			theme, err := resolveTheme(cfg)
			if err != nil {
				return err
			}
			table, err := loadTable(ctx, cfg)
			if err != nil {
				return err
			}

			publisher, err := newPublisher(ctx)
			if err != nil {
				// The dashboard is still useful without publishing.
				common.LogWarn("Google Sheets publishing disabled", common.Fields{"error": err})
			}

			closeLog, err := logToFile(cfg.LogFile)
			if err != nil {
				return fmt.Errorf("failed to redirect logs: %w", err)
			}
			defer closeLog()

			opts := []tui.Option{
				tui.WithTable(table),
				tui.WithTheme(theme),
				tui.WithExportDir(cfg.ExportDir),
				tui.WithHeatmapRows(cfg.HeatmapRows),
				tui.WithPriorityTolerance(cfg.PriorityTolerance),
			}
			if publisher != nil {
				opts = append(opts, tui.WithPublisher(publisher))
			}
			if width, height, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				opts = append(opts, tui.WithSize(width, height))
			}

			return tui.Run(ctx, opts...)
		},
	}
}
