package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reactor-labs/reactor/internal/manifest"
	"github.com/reactor-labs/reactor/internal/platform"
	"github.com/reactor-labs/reactor/internal/runner"
	"github.com/reactor-labs/reactor/internal/scaffold"
	"github.com/reactor-labs/reactor/internal/target"
	"github.com/reactor-labs/reactor/internal/templates"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the project and toolchain",
	Long: `Run read-only checks on the project in the current directory: manifest,
installed tool bundles, node/npm/electron availability and whether the state
index matches the slices on disk.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		rep := e.reporter
		problems := 0

		rep.Step("Project:")
		if _, err := e.validator().Validate(); err != nil {
			problems++
		}
		if res, err := manifest.ValidateFile(e.layout.Manifest()); err == nil && res.Valid {
			rep.Pass("%s matches the manifest schema", manifest.FileName)
		}

		if e.settings.TemplatesDir != "" {
			rep.Step("Templates:")
			r := e.renderer()
			for _, name := range templates.Names {
				if r.Has(name) {
					rep.Pass("%s", name)
				} else {
					rep.Fail("%s missing from %s", name, e.settings.TemplatesDir)
					problems++
				}
			}
		}

		rep.Step("Tool bundles:")
		for _, mode := range []target.Mode{target.Development, target.Production} {
			path := target.NewHostProcess(e.layout, mode).Output()
			if platform.Exists(path) {
				rep.Pass("%s", path)
			} else {
				rep.Fail("%s is missing", path)
				problems++
			}
		}

		rep.Step("Runtime:")
		for _, bin := range []string{"node", e.settings.NPM} {
			if path, ok := runner.Available(bin); ok {
				rep.Pass("%s found at %s", bin, path)
			} else {
				rep.Fail("%s not found", bin)
				problems++
			}
		}
		if v, err := e.layout.ElectronVersion(e.settings.MinElectron); err != nil {
			rep.Fail("%v", err)
			problems++
		} else {
			rep.Pass("electron %s", v)
		}

		rep.Step("State index:")
		gen := scaffold.New(e.dir, e.renderer(), rep)
		diff, err := gen.CheckIndex()
		switch {
		case err != nil:
			rep.Fail("%v", err)
			problems++
		case diff != "":
			rep.Warn("state index is out of date; run `state update`")
			fmt.Fprint(cmd.OutOrStdout(), diff)
		default:
			rep.Pass("state index is up to date")
		}

		if problems > 0 {
			return fmt.Errorf("doctor found %d problem(s)", problems)
		}
		return nil
	},
}
