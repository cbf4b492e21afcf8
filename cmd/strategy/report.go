package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Veraticus/app-strategy/internal/cli"
	"github.com/Veraticus/app-strategy/internal/common"
	"github.com/Veraticus/app-strategy/internal/metrics"
	"github.com/Veraticus/app-strategy/internal/model"
	"github.com/Veraticus/app-strategy/internal/tui/components"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numbers = message.NewPrinter(language.English)

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the hero metrics and segment distribution",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			table, err := loadTable(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return writeSummary(cmd.OutOrStdout(), table)
		},
	}
}

func writeSummary(w io.Writer, t *model.Table) error {
	s := metrics.Overview(t)
	body := numbers.Sprintf("Categories analysed:          %d\n", s.Total) +
		numbers.Sprintf("Actionable priorities:        %d\n", s.Actionable) +
		numbers.Sprintf("Severity issues (≥%.0f):        %d\n", metrics.SeverityThreshold, s.HighSeverity) +
		numbers.Sprintf("Very high demand categories:  %d\n", s.VeryHighDemand) +
		numbers.Sprintf("Merchants affected by gaps:   %.0f", s.MerchantsAffectedByGaps)

	if _, err := fmt.Fprintln(w, cli.RenderBox(cli.ChartIcon+" "+t.Source(), body)); err != nil {
		return err
	}
	return writeSegmentCounts(w, s.Segments, s.Total)
}

func writeSegmentCounts(w io.Writer, counts []metrics.SegmentCount, total int) error {
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		share := 0.0
		if total > 0 {
			share = 100 * float64(c.Count) / float64(total)
		}
		rows = append(rows, []string{c.Segment, strconv.Itoa(c.Count), fmt.Sprintf("%.1f%%", share)})
	}
	return cli.WriteTable(w, []string{"Strategic Segment", "Categories", "Share"}, rows)
}

func topCmd() *cobra.Command {
	var (
		by        string
		limit     int
		ascending bool
	)

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Rank categories by a numeric column",
		Long: `Rank categories by any numeric column, highest first unless --asc is given.
Columns may be named by header ("Quality Severity (0-100)") or by field name
(quality_severity).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			field, ok := model.ParseField(by)
			if !ok || !field.IsNumeric() {
				return common.NewUserError(fmt.Sprintf("%q is not a numeric column", by),
					fmt.Errorf("%w: %s", common.ErrFieldNotFound, by))
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			table, err := loadTable(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			top, err := metrics.TopN(table, field, limit, !ascending)
			if err != nil {
				return err
			}

			columns := []model.Field{model.FieldName, model.FieldStrategicSegment, field}
			if field != model.FieldBusinessPriority {
				columns = append(columns, model.FieldBusinessPriority)
			}
			headers, rows := tableRows(top, columns)
			return cli.WriteTable(cmd.OutOrStdout(), headers, rows)
		},
	}

	cmd.Flags().StringVar(&by, "by", string(model.FieldBusinessPriority), "column to rank by")
	cmd.Flags().IntVarP(&limit, "limit", "n", metrics.PriorityLimit, "number of categories to show")
	cmd.Flags().BoolVar(&ascending, "asc", false, "lowest values first")

	return cmd
}

func segmentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "segments [segment]",
		Short: "Show the segment distribution, or the categories in one segment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			table, err := loadTable(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(args) == 0 {
				return writeSegmentCounts(w, metrics.Overview(table).Segments, table.Len())
			}

			if !metrics.HasSegment(table, args[0]) {
				return fmt.Errorf("%w: segment %q", common.ErrUnknownEntity, args[0])
			}
			sv := metrics.SegmentDetail(table, args[0])
			if _, err := fmt.Fprintln(w, cli.FormatTitle(sv.Segment)); err != nil {
				return err
			}
			if _, err := fmt.Fprintln(w, numbers.Sprintf(
				"%d categories · avg severity %.1f · avg impact %.1f · %.0f merchants affected\n",
				sv.Count, sv.AvgSeverity, sv.AvgImpact, sv.TotalAffected)); err != nil {
				return err
			}

			listing := sv.Listing
			if !sv.HasQualityIssues {
				if _, err := fmt.Fprintln(w, cli.FormatInfo("No quality issues in this segment.")); err != nil {
					return err
				}
				listing = sv.Performance
			}
			headers, rows := listingRows(listing)
			return cli.WriteTable(w, headers, rows)
		},
	}
}

func quadrantsCmd() *cobra.Command {
	var (
		xName, yName string
		xThreshold   float64
		yThreshold   float64
	)

	cmd := &cobra.Command{
		Use:   "quadrants",
		Short: "Split categories into four quadrants by two numeric columns",
		Long: `Split categories by two numeric columns, quality severity and merchant
impact by default. Thresholds default to the column means; "high" means at or
above the threshold.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			x, ok := model.ParseField(xName)
			if !ok {
				return fmt.Errorf("%w: %s", common.ErrFieldNotFound, xName)
			}
			y, ok := model.ParseField(yName)
			if !ok {
				return fmt.Errorf("%w: %s", common.ErrFieldNotFound, yName)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			table, err := loadTable(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			xm, ym, err := metrics.MeanThresholds(table, x, y)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("x-threshold") {
				xm = xThreshold
			}
			if cmd.Flags().Changed("y-threshold") {
				ym = yThreshold
			}

			q, err := metrics.QuadrantSplit(table, x, y, xm, ym)
			if err != nil {
				return err
			}
			return writeQuadrants(cmd.OutOrStdout(), q)
		},
	}

	cmd.Flags().StringVar(&xName, "x", string(model.FieldQualitySeverity), "horizontal column")
	cmd.Flags().StringVar(&yName, "y", string(model.FieldMerchantImpact), "vertical column")
	cmd.Flags().Float64Var(&xThreshold, "x-threshold", 0, "horizontal threshold (default: mean)")
	cmd.Flags().Float64Var(&yThreshold, "y-threshold", 0, "vertical threshold (default: mean)")

	return cmd
}

func writeQuadrants(w io.Writer, q metrics.Quadrants) error {
	title := fmt.Sprintf("%s ≥ %.2f vs %s ≥ %.2f",
		components.ShortHeader(q.XField), q.XThreshold, components.ShortHeader(q.YField), q.YThreshold)
	if _, err := fmt.Fprintln(w, cli.FormatTitle(title)); err != nil {
		return err
	}

	quadrants := []struct {
		label string
		rows  *model.Table
	}{
		{"High / High", q.HighHigh},
		{"High / Low", q.HighLow},
		{"Low / High", q.LowHigh},
		{"Low / Low", q.LowLow},
	}

	rows := make([][]string, 0, len(quadrants))
	for _, quad := range quadrants {
		names := quad.rows.Names()
		list := "-"
		if len(names) > 0 {
			list = joinLimited(names, 5)
		}
		rows = append(rows, []string{quad.label, strconv.Itoa(quad.rows.Len()), list})
	}
	return cli.WriteTable(w, []string{"Quadrant", "Categories", "Examples"}, rows)
}

// joinLimited joins the first n names and notes how many were left out.
func joinLimited(names []string, n int) string {
	if len(names) <= n {
		return strings.Join(names, "; ")
	}
	return fmt.Sprintf("%s (+%d more)", strings.Join(names[:n], "; "), len(names)-n)
}

// tableRows formats the given columns of t, skipping columns t lacks.
func tableRows(t *model.Table, columns []model.Field) ([]string, [][]string) {
	var present []model.Field
	for _, f := range columns {
		if t.Has(f) {
			present = append(present, f)
		}
	}
	return listingRows(metrics.Listing{Rows: t, Columns: present})
}
