package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/reactor-labs/reactor/internal/build"
	"github.com/reactor-labs/reactor/internal/bundler"
	"github.com/reactor-labs/reactor/internal/runner"
)

func init() {
	rootCmd.AddCommand(debugCmd)
}

var debugCmd = &cobra.Command{
	Use:   "debug [electron args...]",
	Short: "Start a development session",
	Long: `Serve the UI bundle with live reload and launch electron against it. The
session runs until electron exits or the command is interrupted. Any
arguments are passed to electron unchanged.`,
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

		ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()

		d := &build.Development{
			Layout:    e.layout,
			Settings:  e.settings,
			Validator: e.validator(),
			Server:    bundler.NewDevServer(e.renderer()),
			Host:      runner.NewElectron(npm, e.settings.Electron, e.dir),
			Reporter:  e.reporter,
			Extra:     args,
		}
		err = d.Run(ctx)
		if ctx.Err() != nil && commandContext(cmd).Err() == nil {
			// interrupted by the operator
			return nil
		}
		return err
	},
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
