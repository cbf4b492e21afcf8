package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Veraticus/app-strategy/internal/cli"
	"github.com/Veraticus/app-strategy/internal/common"
	"github.com/Veraticus/app-strategy/internal/config"
	"github.com/Veraticus/app-strategy/internal/export"
	"github.com/Veraticus/app-strategy/internal/metrics"
	"github.com/Veraticus/app-strategy/internal/model"
	"github.com/spf13/cobra"
)

const publishTimeout = 2 * time.Minute

func exportCmd() *cobra.Command {
	var (
		view  string
		dir   string
		chart bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a dashboard view as CSV, and optionally as a PNG chart",
		Long: fmt.Sprintf(`Write a dashboard view to the export directory with exactly the columns
and row order the dashboard shows. The complete table is written as %s.

Views: %s`, export.CompleteTableFileName, strings.Join(viewNames, ", ")),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("dir") {
				cfg.ExportDir = config.ExpandPath(dir)
			}
			table, err := loadTable(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			slice, err := resolveSlice(table, view, cfg.HeatmapRows)
			if err != nil {
				return err
			}
			path, err := export.SaveCSV(cfg.ExportDir, slice)
			if err != nil {
				return fmt.Errorf("CSV export failed: %w", err)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, cli.FormatSuccess(fmt.Sprintf("Exported %d rows to %s", len(slice.Rows), path)))

			if !chart {
				return nil
			}
			path, err = saveChart(cfg, table, view)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, cli.FormatSuccess("Exported chart to "+path))
			return nil
		},
	}

	cmd.Flags().StringVar(&view, "view", viewComplete, "view to export")
	cmd.Flags().StringVar(&dir, "dir", "", "export directory (default: export.dir)")
	cmd.Flags().BoolVar(&chart, "chart", false, "also write a PNG chart of the view")

	return cmd
}

// saveChart renders view as a PNG: the segment pie for the distribution,
// otherwise a bar chart of the listing's first numeric column.
func saveChart(cfg config.Dashboard, t *model.Table, view string) (string, error) {
	theme, err := resolveTheme(cfg)
	if err != nil {
		return "", err
	}

	var (
		name   string
		render func(io.Writer) error
	)

	if strings.EqualFold(strings.TrimSpace(view), viewSegments) {
		counts := metrics.Overview(t).Segments
		name = export.ChartFileName(export.SegmentDistributionKey)
		render = func(w io.Writer) error {
			return export.SegmentPiePNG(w, "Strategic Segment Distribution", counts, theme.SegmentHex())
		}
	} else {
		l, err := resolveListing(t, view, cfg.HeatmapRows)
		if err != nil {
			return "", err
		}
		if l.Warning != nil {
			return "", fmt.Errorf("cannot chart %q: %w", l.Title, l.Warning)
		}
		field, ok := export.ChartField(l)
		if !ok {
			return "", fmt.Errorf("%w: %s has no numeric column", export.ErrNothingToChart, l.Title)
		}
		color := string(theme.Primary)
		if segment, ok := strings.CutPrefix(strings.TrimSpace(view), viewSegmentPfx); ok {
			color = string(theme.SegmentColor(segment))
		}
		name = export.ChartFileName(l.Key)
		render = func(w io.Writer) error {
			return export.BarChartPNG(w, l, field, color)
		}
	}

	path, err := export.SaveChart(cfg.ExportDir, name, render)
	if err != nil {
		return "", fmt.Errorf("chart export failed: %w", err)
	}
	return path, nil
}

func publishCmd() *cobra.Command {
	var view string

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish a dashboard view to Google Sheets",
		Long: `Publish a dashboard view to a tab of the configured spreadsheet, replacing
the tab's previous contents. Credentials come from sheets.* or GOOGLE_SHEETS_*.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			table, err := loadTable(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			slice, err := resolveSlice(table, view, cfg.HeatmapRows)
			if err != nil {
				return err
			}

			handler := cli.NewInterruptHandler(cmd.OutOrStdout(), "Publishing")
			ctx := handler.HandleInterrupts(cmd.Context(), "The tab may be partially written; publish again to replace it.")
			defer handler.Stop()
			ctx, cancel := context.WithTimeout(ctx, publishTimeout)
			defer cancel()

			publisher, err := newPublisher(ctx)
			if err != nil {
				return err
			}
			if publisher == nil {
				return common.NewUserError("Google Sheets publishing is not configured",
					fmt.Errorf("%w: sheets", common.ErrMissingConfig))
			}

			url, err := publisher.Publish(ctx, slice)
			if err != nil {
				if handler.WasInterrupted() {
					return nil
				}
				return fmt.Errorf("publishing to Google Sheets failed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(
				fmt.Sprintf("Published %d rows of %q to %s", len(slice.Rows), slice.Title, url)))
			return nil
		},
	}

	cmd.Flags().StringVar(&view, "view", viewComplete, "view to publish")

	return cmd
}
