package main

import (
	"github.com/spf13/cobra"

	"github.com/jmeta/jmeta/datastore"
	"github.com/jmeta/jmeta/export"
	"github.com/jmeta/jmeta/filter"
	"github.com/jmeta/jmeta/internal/writer"
)

var (
	exportInclude []string
	exportExclude []string
	exportPretty  bool
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export partitioned JSON slices from the store",
	}
	cmd.PersistentFlags().StringSliceVar(&exportInclude, "include", nil, "fields to keep in each exported record")
	cmd.PersistentFlags().StringSliceVar(&exportExclude, "exclude", nil, "fields to drop from each exported record")
	cmd.PersistentFlags().BoolVar(&exportPretty, "pretty", false, "pretty-print exported JSON")
	cmd.AddCommand(newExportAxisCmd("release-type", datastore.ColumnReleaseType), newExportAxisCmd("vendor", datastore.ColumnVendor))
	return cmd
}

func newExportAxisCmd(use string, axis datastore.DistinctColumn) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [VALUE...]",
		Short: "Export slices partitioned by " + use + ", os, and architecture",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, axis, args)
		},
	}
}

func runExport(cmd *cobra.Command, axis datastore.DistinctColumn, axisValues []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := export.Options{
		Axis1Column: axis,
		Axis1Values: axisValues,
		Filters:     filter.Fields{},
		Include:     exportInclude,
		Exclude:     exportExclude,
	}
	w := writer.FileWriter{Root: cfg.Export.Path, Pretty: exportPretty}
	return export.Run(ctx, store, w, opts)
}
