package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/reactor-labs/reactor/internal/branding"
	"github.com/reactor-labs/reactor/internal/config"
	"github.com/reactor-labs/reactor/internal/logger"
	"github.com/reactor-labs/reactor/internal/project"
	"github.com/reactor-labs/reactor/internal/report"
	"github.com/reactor-labs/reactor/internal/runner"
	"github.com/reactor-labs/reactor/internal/templates"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	verbose bool
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug diagnostics to stderr")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds state slices and components for a desktop application and
drives its development session and production build.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.InitLogger(cmd.ErrOrStderr(), verbose)
		config.Load()
	},
}

// Execute runs the root command with build info injected via ldflags. A
// returned error has already been printed.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil {
		report.New(rootCmd.OutOrStdout(), rootCmd.ErrOrStderr()).Fail("%v", err)
	}
	return err
}

// env is what a command needs to operate on the project in the working
// directory.
type env struct {
	dir      string
	settings *config.Settings
	layout   project.Layout
	reporter *report.Reporter
}

func newEnv(cmd *cobra.Command) (*env, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}
	s, err := config.Resolve(dir)
	if err != nil {
		return nil, err
	}
	logger.Debug("settings resolved", "dir", dir, "settings", fmt.Sprintf("%+v", *s))
	return &env{
		dir:      dir,
		settings: s,
		layout:   project.NewLayout(dir, s.ToolRoot),
		reporter: report.New(cmd.OutOrStdout(), cmd.ErrOrStderr()),
	}, nil
}

func (e *env) validator() *project.Validator {
	return project.NewValidator(e.dir, buildVersion, e.reporter)
}

func (e *env) renderer() *templates.Renderer {
	dir := e.settings.TemplatesDir
	if dir != "" && !filepath.IsAbs(dir) {
		dir = filepath.Join(e.dir, dir)
	}
	return templates.NewDir(dir)
}

// npm returns an npm driver whose children see the project .env.
func (e *env) npm(cmd *cobra.Command) (*runner.NPM, error) {
	childEnv, err := runner.Environ(e.dir, nil)
	if err != nil {
		return nil, err
	}
	r := &runner.Runner{
		Stdout:   cmd.OutOrStdout(),
		Stderr:   cmd.ErrOrStderr(),
		Env:      childEnv,
		Reporter: e.reporter,
	}
	return runner.NewNPM(r, e.settings.NPM), nil
}
