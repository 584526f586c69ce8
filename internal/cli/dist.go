package cli

import (
	"github.com/spf13/cobra"

	"github.com/reactor-labs/reactor/internal/branding"
	"github.com/reactor-labs/reactor/internal/build"
	"github.com/reactor-labs/reactor/internal/bundler"
	"github.com/reactor-labs/reactor/internal/project"
)

func init() {
	rootCmd.AddCommand(distCmd)
}

var distCmd = &cobra.Command{
	Use:    "dist",
	Short:  "Build the bundles shipped with the tool (maintainers only)",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		d := &build.Dist{
			Layout:   project.NewLayout(e.dir, e.dir),
			Package:  branding.PackageName(),
			Compiler: bundler.NewCompiler(e.renderer()),
			Reporter: e.reporter,
		}
		return d.Run(commandContext(cmd))
	},
}
