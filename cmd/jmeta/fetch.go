package main

import (
	"fmt"
	"strings"

	"github.com/quay/zlog"
	"github.com/spf13/cobra"

	"github.com/jmeta/jmeta/driver"
	"github.com/jmeta/jmeta/httpclient"
	"github.com/jmeta/jmeta/scheduler"
)

func newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch [VENDOR...]",
		Short: "Fetch and store JVM distribution metadata from vendor sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, args)
		},
	}
}

func runFetch(cmd *cobra.Command, args []string) error {
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

	client := httpclient.New()
	updaters := allUpdaters(client)
	if len(args) > 0 {
		updaters = filterUpdaters(updaters, args)
	}

	res := scheduler.Run(ctx, updaters)
	for name, err := range res.PerVendor {
		if err != nil {
			zlog.Error(ctx).Str("vendor", name).Err(err).Msg("vendor fetch failed")
		}
	}

	n, err := store.Upsert(ctx, res.Set.Records())
	if err != nil {
		return err
	}
	zlog.Info(ctx).Int("rows_touched", n).Int("discovered", res.Set.Len()).Msg("fetch complete")

	if !res.AnySucceeded() {
		return fmt.Errorf("fetch: no vendor completed successfully: %w", res.Err())
	}
	return nil
}

// filterUpdaters keeps updaters whose Name() exactly matches, or is
// "<name>-"-prefixed by, one of the requested vendor selectors, so
// `fetch corretto` selects every corretto-<slug> updater at once.
func filterUpdaters(all []driver.Updater, names []string) []driver.Updater {
	var out []driver.Updater
	for _, u := range all {
		for _, n := range names {
			if u.Name() == n || strings.HasPrefix(u.Name(), n+"-") {
				out = append(out, u)
				break
			}
		}
	}
	return out
}
