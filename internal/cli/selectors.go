package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// selectorsCommand creates the selectors command for inspecting the rule table.
func (c *CLI) selectorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "selectors [url]",
		Short: "List selector rules or show which rule applies to a URL",
		Example: `  tabs selectors
  tabs selectors https://github.com/neovim/neovim/tags
  tabs selectors --rules rules.toml https://example.org/downloads/`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			rules, err := loadRules(cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
				t := table.New().
					Border(lipgloss.RoundedBorder()).
					BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
					Headers("#", "Rule", "Pattern", "Query").
					StyleFunc(func(row, col int) lipgloss.Style {
						if row == table.HeaderRow {
							return headerStyle
						}
						if col == 2 {
							return StyleDim
						}
						return lipgloss.NewStyle()
					})
				for i, r := range rules.Rules() {
					t.Row(fmt.Sprint(i+1), r.Name, r.Pattern.String(), r.Query)
				}
				fmt.Fprintln(out, t.Render())
				return nil
			}

			rule, ok := rules.Match(args[0])
			if !ok {
				_, err := rules.Resolve(args[0], "")
				return err
			}
			printKeyValue(out, "rule", rule.Name)
			printKeyValue(out, "pattern", rule.Pattern.String())
			printKeyValue(out, "query", rule.Query)
			return nil
		},
	}
}
