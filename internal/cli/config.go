package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reactor-labs/reactor/internal/config"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: `Read and write settings stored at ~/.reactor/config.yaml.

A project can override any key in .reactor.yaml, and REACTOR_<KEY>
environment variables override both.`,
}

func checkKey(key string) error {
	if !config.IsKnown(key) {
		return fmt.Errorf("unknown config key %q (known: %v)", key, config.Keys())
	}
	return nil
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := checkKey(key); err != nil {
			return err
		}
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkKey(args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the effective settings for the current directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		s := e.settings
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d\n", config.KeyDevPort, s.DevPort)
		fmt.Fprintf(out, "%s: %s\n", config.KeyNPM, s.NPM)
		fmt.Fprintf(out, "%s: %s\n", config.KeyElectron, s.Electron)
		fmt.Fprintf(out, "%s: %s\n", config.KeyPackager, s.Packager)
		fmt.Fprintf(out, "%s: %s\n", config.KeyPackageOut, s.PackageOut)
		fmt.Fprintf(out, "%s: %s\n", config.KeyToolRoot, e.layout.ToolRoot)
		fmt.Fprintf(out, "%s: %s\n", config.KeyTemplatesDir, s.TemplatesDir)
		fmt.Fprintf(out, "%s: %t\n", config.KeyBundleDependencies, s.BundleDependencies)
		fmt.Fprintf(out, "%s: %s\n", config.KeyMinElectron, s.MinElectron)
		return nil
	},
}
