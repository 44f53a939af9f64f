package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/tabs/pkg/baseline"
)

// checkCommand creates the check command: resolve, report, and record.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		flags  runFlags
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Resolve latest versions and update the baseline",
		Long: `Resolve the latest version of every package in the package list, print
what changed since the baseline, and write the new versions back.

The baseline is rewritten with one line per package that resolved.
Packages that fail to resolve, or are no longer in the list, are dropped.
An interrupted run leaves the baseline untouched.`,
		Example: `  tabs check
  tabs check --packages tools.toml --baseline tools.txt
  TABS_MONGO_URI=mongodb://localhost:27017 tabs check --json report.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			store, closeStore, err := openBaseline(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			results, base, err := c.track(cmd, cfg, store, flags)
			if err != nil {
				return err
			}

			if dryRun {
				printInfo(cmd.OutOrStdout(), "Dry run, baseline not written")
				return nil
			}
			if err := store.Save(cmd.Context(), baseline.Apply(base, results)); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("baseline written", "store", storeName(cfg))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report without writing the baseline")

	return cmd
}

func storeName(cfg config) string {
	if cfg.MongoURI != "" {
		return "mongodb:" + cfg.MongoDatabase + "." + cfg.MongoCollection
	}
	return cfg.Baseline
}
