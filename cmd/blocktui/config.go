package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective rules as YAML",
	Long: `Print the rules a game would use after applying --config and --difficulty.

The output is a complete rules file: save it to ~/.blocktui/rules.yaml and edit
it to change the defaults.

Examples:
  blocktui config
  blocktui config --difficulty hard > ~/.blocktui/rules.yaml`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		rules, err := loadRules()
		if err != nil {
			return err
		}
		data, err := config.Marshal(rules)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}
