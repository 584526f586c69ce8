package cli

import (
	"github.com/spf13/cobra"

	"github.com/reactor-labs/reactor/internal/scaffold"
)

func init() {
	rootCmd.AddCommand(stateCmd)
}

var stateCmd = &cobra.Command{
	Use:   "state <add|remove|update|list|check> [name]",
	Short: "Add or remove a state slice",
	Long: `Manage state slices under src/state.

  add <name>      write src/state/<name>Slice.ts and rebuild the index
  remove <name>   delete the slice and rebuild the index (aliases: rmv, del, delete)
  update          rebuild src/state/index.ts from the slices on disk
  list            print the slices found on disk
  check           show how src/state/index.ts differs from a fresh rebuild`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScaffold(cmd, scaffold.KindSlice, args)
	},
}
