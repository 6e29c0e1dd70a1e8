package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/incentivo/internal/adapters/backup"
)

func newExportCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a backup document of all employees and tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return a.export(cmd.Context(), w)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func (a *app) export(ctx context.Context, w io.Writer) error {
	svc, err := a.newService(ctx)
	if err != nil {
		return err
	}
	defer svc.Stop(ctx)
	return svc.Export(ctx, w)
}

func newImportCmd(a *app) *cobra.Command {
	var strategy string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Merge a backup document into the store",
		Long: `Merge a backup document into the store.

Tasks whose title matches an existing task are resolved by --strategy:
keep_both keeps both and gives the imported task a fresh id, replace drops
the existing task.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := backup.ParseStrategy(strategy)
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			summary, err := a.importBackup(cmd.Context(), io.LimitReader(f, a.cfg.MaxImportBytes+1), s)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		},
	}
	cmd.Flags().StringVarP(&strategy, "strategy", "s", string(backup.KeepBoth), "Duplicate resolution: keep_both or replace")
	return cmd
}

func (a *app) importBackup(ctx context.Context, r io.Reader, strategy backup.Strategy) (backup.Summary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return backup.Summary{}, err
	}
	if int64(len(data)) > a.cfg.MaxImportBytes {
		return backup.Summary{}, fmt.Errorf("backup exceeds max_import_bytes (%d)", a.cfg.MaxImportBytes)
	}

	svc, err := a.newService(ctx)
	if err != nil {
		return backup.Summary{}, err
	}
	defer svc.Stop(ctx)
	return svc.Import(ctx, bytes.NewReader(data), strategy)
}
