package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/reactor-labs/reactor/internal/branding"
	"github.com/reactor-labs/reactor/internal/manifest"
	"github.com/reactor-labs/reactor/internal/platform"
	"github.com/reactor-labs/reactor/internal/scaffold"
	"github.com/reactor-labs/reactor/internal/templates"
)

var initSkipInstall bool

func init() {
	initCmd.Flags().BoolVar(&initSkipInstall, "skip-install", false, "Do not run npm; require an existing package.json")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up the current directory as a project",
	Long: `Create package.json if missing, install ` + branding.PackageName() + ` as a devDependency,
and write starter files (src/index.tsx, tsconfig.json, .gitignore) that do not
exist yet. Existing files are never overwritten.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		if !initSkipInstall {
			if err := installTool(cmd, e); err != nil {
				return err
			}
		}

		r := e.renderer()
		m, err := manifest.LoadDir(e.dir)
		if err != nil {
			return err
		}
		starters := []struct {
			path string
			tmpl string
			ctx  templates.Context
		}{
			{filepath.Join("src", "index.tsx"), templates.App, templates.Context{"title": m.DisplayName()}},
			{"tsconfig.json", templates.TSConfig, templates.Context{}},
			{".gitignore", templates.GitIgnore, templates.Context{"packageOut": e.settings.PackageOut}},
		}
		for _, s := range starters {
			if err := writeStarter(e, r, s.path, s.tmpl, s.ctx); err != nil {
				return err
			}
		}

		if _, err := scaffold.New(e.dir, r, e.reporter).RebuildIndex(); err != nil {
			return err
		}
		_, err = e.validator().Validate()
		return err
	},
}

func installTool(cmd *cobra.Command, e *env) error {
	npm, err := e.npm(cmd)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	if !platform.Exists(e.layout.Manifest()) {
		if err := npm.Init(ctx, e.dir); err != nil {
			return fmt.Errorf("creating %s: %w", manifest.FileName, err)
		}
		e.reporter.Pass("created %s", manifest.FileName)
	}

	m, err := manifest.LoadDir(e.dir)
	if err != nil {
		return err
	}
	pkg := branding.PackageName()
	if v, ok := m.DevDependency(pkg); ok {
		e.reporter.Pass("%s %s already declared", pkg, v)
		return nil
	}
	if err := npm.AddDevDependency(ctx, e.dir, pkg); err != nil {
		return fmt.Errorf("installing %s: %w", pkg, err)
	}
	e.reporter.Pass("installed %s", pkg)
	return nil
}

func writeStarter(e *env, r *templates.Renderer, rel, tmpl string, ctx templates.Context) error {
	path := filepath.Join(e.dir, rel)
	if platform.Exists(path) {
		e.reporter.Info("  kept %s", rel)
		return nil
	}
	src, err := r.Render(tmpl, ctx)
	if err != nil {
		return err
	}
	if _, err := platform.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := platform.WriteFileAtomic(path, []byte(src), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	e.reporter.Pass("wrote %s", rel)
	return nil
}
