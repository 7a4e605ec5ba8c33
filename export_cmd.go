package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/spf13/cobra"

	"orderbook/collections"
	"orderbook/config"
	"orderbook/store"
)

// newExportCmd writes the spreadsheet of all orders without starting the
// server.
func newExportCmd(app *pocketbase.PocketBase, cfg config.Config) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all orders to an xlsx file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := collections.Setup(app); err != nil {
				return err
			}
			if out == "" {
				out = filepath.Join(cfg.Export.Dir, fmt.Sprintf("orders-%s.xlsx", time.Now().Format("20060102-150405")))
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			exp := store.NewExporter(store.NewOrderStore(app), cfg.CompanyInfo())
			if err := exp.ExportAll(ctx, out); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "destination file (default: <export dir>/orders-<timestamp>.xlsx)")
	return cmd
}
