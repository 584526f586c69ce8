package cli

import (
	"github.com/spf13/cobra"

	"github.com/reactor-labs/reactor/internal/build"
	"github.com/reactor-labs/reactor/internal/bundler"
	"github.com/reactor-labs/reactor/internal/runner"
)

func init() {
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build [packager args...]",
	Short: "Compile and package the application",
	Long: `Compile the UI bundle into build/prod, link the host process entry, write
the output package.json and run electron-packager. Any arguments are passed
to the packager unchanged.`,
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		npm, err := e.npm(cmd)
		if err != nil {
			return err
		}

		b := &build.Production{
			Layout:    e.layout,
			Settings:  e.settings,
			Validator: e.validator(),
			Compiler:  bundler.NewCompiler(e.renderer()),
			Installer: npm,
			Packager:  runner.NewPackager(npm, e.settings.Packager),
			Reporter:  e.reporter,
			Extra:     args,
		}
		return b.Run(commandContext(cmd))
	},
}
