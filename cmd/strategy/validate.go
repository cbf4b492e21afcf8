package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/app-strategy/internal/cli"
	"github.com/Veraticus/app-strategy/internal/common"
	"github.com/Veraticus/app-strategy/internal/loader"
	"github.com/Veraticus/app-strategy/internal/metrics"
	"github.com/Veraticus/app-strategy/internal/model"
	"github.com/spf13/cobra"
)

var errAuditFailed = errors.New("business priority audit failed")

func validateCmd() *cobra.Command {
	var (
		strict    bool
		tolerance float64
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the source loads and audit stored business priorities",
		Long: `Load the configured source and report its shape: row count, missing
optional columns and unrecognised columns. Then compare every stored business
priority with 0.4 × severity + 0.6 × impact. Stored values are never changed;
with --strict any mismatch fails the command.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("tolerance") {
				cfg.PriorityTolerance = tolerance
			}

			table, err := loadTable(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			mismatches := metrics.AuditBusinessPriority(table, cfg.PriorityTolerance)
			if err := writeValidation(cmd.OutOrStdout(), table, mismatches, cfg.PriorityTolerance); err != nil {
				return err
			}

			if strict && len(mismatches) > 0 {
				return common.NewUserError(
					fmt.Sprintf("%d business priorities are outside the tolerance", len(mismatches)),
					errAuditFailed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any business priority is outside the tolerance")
	cmd.Flags().Float64Var(&tolerance, "tolerance", metrics.DefaultPriorityTolerance, "accepted business priority difference")

	return cmd
}

func writeValidation(w io.Writer, t *model.Table, mismatches []metrics.PriorityMismatch, tolerance float64) error {
	lines := []string{
		cli.FormatSuccess(fmt.Sprintf("Loaded %d categories from %s", t.Len(), t.Source())),
	}

	if missing := loader.MissingOptional(t); len(missing) > 0 {
		headers := make([]string, len(missing))
		for i, f := range missing {
			headers[i] = f.Header()
		}
		lines = append(lines, cli.FormatInfo("Optional columns not present: "+strings.Join(headers, ", ")))
	}
	if extra := t.ExtraColumns(); len(extra) > 0 {
		lines = append(lines, cli.FormatInfo("Unrecognised columns kept as extras: "+strings.Join(extra, ", ")))
	}

	if len(mismatches) == 0 {
		lines = append(lines, cli.FormatSuccess(fmt.Sprintf("All business priorities within %g of 0.4×severity + 0.6×impact", tolerance)))
	} else {
		lines = append(lines, cli.FormatWarning(fmt.Sprintf("%d business priorities differ from 0.4×severity + 0.6×impact by more than %g",
			len(mismatches), tolerance)))
	}

	if _, err := fmt.Fprintln(w, strings.Join(lines, "\n")); err != nil {
		return err
	}
	if len(mismatches) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(mismatches))
	for _, m := range mismatches {
		rows = append(rows, []string{
			m.Name,
			fmt.Sprintf("%.2f", m.Stored),
			fmt.Sprintf("%.2f", m.Expected),
			fmt.Sprintf("%+.2f", m.Delta),
		})
	}
	return cli.WriteTable(w, []string{"Feature Category", "Stored", "Expected", "Delta"}, rows)
}
