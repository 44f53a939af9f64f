package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/tabs/pkg/baseline"
)

// compareCommand creates the compare command, which reports against an
// externally maintained baseline and never writes anything back.
func (c *CLI) compareCommand() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "compare [exports-file]",
		Short: "Compare latest versions against a reference without recording them",
		Long: `Resolve the latest version of every package and compare it against a
reference baseline maintained elsewhere.

With an argument, the reference is a shell script of declarations such as

  export bash_version="5.2.21"

Without one, <name>_version variables (any case) of the current environment are used.
Names containing "-" or "." are matched with those characters replaced by "_".`,
		Example: `  tabs compare versions.sh
  bash_version=5.2.21 tabs compare`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			var store baseline.Store = baseline.NewEnvStore()
			if len(args) == 1 {
				store = baseline.NewExportsStore(args[0])
			}

			results, _, err := c.track(cmd, cfg, store, flags)
			if err != nil {
				return err
			}
			if s := summarize(results); s.changed+s.added > 0 {
				printNextStep(cmd.OutOrStdout(), "Record these versions", "tabs check")
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
