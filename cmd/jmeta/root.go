// Command jmeta aggregates JVM distribution download metadata from
// fifteen vendor sources into a relational store and exports partitioned
// JSON slices, built on github.com/spf13/cobra the way the rest of the
// retrieval pack's CLIs are (ossf-scorecard's cmd tree), rather than the
// teacher's own goconfig-flags-only cmd/libvulnhttp: the teacher is a
// long-running HTTP server with one entry point, while jmeta is a
// batch tool with several sub-commands, which cobra models directly.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmeta/jmeta/internal/config"
	"github.com/jmeta/jmeta/internal/obs"
)

var (
	logLevel   string
	configPath string
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "jmeta",
		Short:         "Aggregate and export JVM distribution metadata",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			obs.Setup(logLevel)
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to an additional TOML config file")

	cmd.AddCommand(newFetchCmd(), newExportCmd(), newVersionCmd())
	return cmd
}

func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}

// exitError prints err to stderr and returns the process exit code,
// ignoring the broken-pipe case per spec §6 ("broken-pipe on stdout is
// ignored").
func exitError(err error) int {
	if err == nil {
		return 0
	}
	if isBrokenPipe(err) {
		return 0
	}
	fmt.Fprintln(os.Stderr, "jmeta:", err)
	return 1
}
