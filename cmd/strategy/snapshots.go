package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/Veraticus/app-strategy/internal/cli"
	"github.com/Veraticus/app-strategy/internal/config"
	"github.com/Veraticus/app-strategy/internal/loader"
	"github.com/Veraticus/app-strategy/internal/model"
	"github.com/Veraticus/app-strategy/internal/storage"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Store category CSV files as snapshots",
		Long: `Validate each file and store it in the snapshot database. Load a stored
snapshot later with --source snapshot:<id>.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			handler := cli.NewInterruptHandler(w, "Import")
			ctx := handler.HandleInterrupts(cmd.Context(), "Files imported so far were kept; the rest were skipped.")
			defer handler.Stop()

			store, err := initStorage(ctx, cfg.SnapshotDB)
			if err != nil {
				return err
			}
			defer store.Close()

			imported, err := importFiles(ctx, store, w, args, label)
			if err != nil {
				if handler.WasInterrupted() {
					return nil
				}
				return err
			}

			rows := make([][]string, 0, len(imported))
			for _, s := range imported {
				rows = append(rows, []string{s.ID, s.Source, strconv.Itoa(s.RowCount), s.SourceID()})
			}
			fmt.Fprintln(w, cli.FormatSuccess(fmt.Sprintf("Imported %d snapshots", len(imported))))
			return cli.WriteTable(w, []string{"ID", "File", "Rows", "Source"}, rows)
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "label stored with each snapshot")

	return cmd
}

// importFiles validates and stores each path, stopping at the first
// failure. Snapshots stored before a failure are kept.
func importFiles(ctx context.Context, store *storage.SQLiteStorage, w io.Writer, paths []string, label string) ([]model.Snapshot, error) {
	bar := cli.NewProgressBar(w, len(paths), "Importing category tables...")

	imported := make([]model.Snapshot, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return imported, err
		}

		expanded := config.ExpandPath(path)
		raw, err := loader.ReadFile(expanded)
		if err != nil {
			return imported, fmt.Errorf("failed to read %s: %w", path, err)
		}
		// Parse only to reject files the dashboard could not load.
		if _, err := loader.Parse(expanded, raw); err != nil {
			return imported, fmt.Errorf("invalid category table %s: %w", path, err)
		}

		abs, err := filepath.Abs(expanded)
		if err != nil {
			abs = expanded
		}
		snapshot, err := store.SaveSnapshot(ctx, abs, label, raw)
		if err != nil {
			return imported, fmt.Errorf("failed to store %s: %w", path, err)
		}
		imported = append(imported, *snapshot)
		cli.Advance(bar)
	}

	return imported, nil
}

func snapshotsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "Manage stored snapshots",
	}
	cmd.AddCommand(listSnapshotsCmd())
	cmd.AddCommand(deleteSnapshotCmd())
	return cmd
}

func listSnapshotsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored snapshots, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := initStorage(ctx, cfg.SnapshotDB)
			if err != nil {
				return err
			}
			defer store.Close()

			snapshots, err := store.ListSnapshots(ctx)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(snapshots) == 0 {
				fmt.Fprintln(w, cli.InfoStyle.Render("No snapshots found. Use 'strategy import <file>' to create one."))
				return nil
			}

			rows := make([][]string, 0, len(snapshots))
			for _, s := range snapshots {
				label := s.Label
				if label == "" {
					label = cli.SubtleStyle.Render("(no label)")
				}
				rows = append(rows, []string{
					s.ID, s.CreatedAt.Local().Format("2006-01-02 15:04"), strconv.Itoa(s.RowCount), label, s.Source,
				})
			}
			return cli.WriteTable(w, []string{"ID", "Imported", "Rows", "Label", "File"}, rows)
		},
	}
}

func deleteSnapshotCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := initStorage(ctx, cfg.SnapshotDB)
			if err != nil {
				return err
			}
			defer store.Close()

			snapshot, err := store.GetSnapshot(ctx, args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if !yes {
				question := fmt.Sprintf("Delete snapshot %s (%d rows from %s)?", snapshot.ID, snapshot.RowCount, snapshot.Source)
				ok, err := cli.Confirm(ctx, cli.NewNonBlockingReader(cmd.InOrStdin()), w, question)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(w, cli.FormatInfo("Nothing deleted."))
					return nil
				}
			}

			if err := store.DeleteSnapshot(ctx, snapshot.ID); err != nil {
				return err
			}
			fmt.Fprintln(w, cli.FormatSuccess("Deleted snapshot "+snapshot.ID))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")

	return cmd
}
