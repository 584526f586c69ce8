package cli

import (
	"github.com/spf13/cobra"

	"github.com/reactor-labs/reactor/internal/scaffold"
)

func init() {
	rootCmd.AddCommand(componentCmd)
}

var componentCmd = &cobra.Command{
	Use:   "component <add|remove> <name>",
	Short: "Add or remove a component",
	Long: `Manage components under src/components.

  add <name>      write src/components/<name>.tsx
  remove <name>   delete it (aliases: rmv, del, delete)`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScaffold(cmd, scaffold.KindComponent, args)
	},
}
