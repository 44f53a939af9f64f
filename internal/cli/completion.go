package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for tabs.

To load completions:

Bash:
  $ source <(tabs completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ tabs completion bash > /etc/bash_completion.d/tabs
  # macOS:
  $ tabs completion bash > $(brew --prefix)/etc/bash_completion.d/tabs

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ tabs completion zsh > "${fpath[1]}/_tabs"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ tabs completion fish | source

  # To load completions for each session, execute once:
  $ tabs completion fish > ~/.config/fish/completions/tabs.fish

PowerShell:
  PS> tabs completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> tabs completion powershell > tabs.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}

	return cmd
}
