package build

import (
	"context"
	"fmt"

	"github.com/reactor-labs/reactor/internal/branding"
	"github.com/reactor-labs/reactor/internal/bundler"
	"github.com/reactor-labs/reactor/internal/config"
	"github.com/reactor-labs/reactor/internal/manifest"
	"github.com/reactor-labs/reactor/internal/platform"
	"github.com/reactor-labs/reactor/internal/project"
	"github.com/reactor-labs/reactor/internal/report"
	"github.com/reactor-labs/reactor/internal/target"
)

// Development serves the UI bundle with live reload and runs the host
// process against it until the host exits or ctx is cancelled.
type Development struct {
	Layout    project.Layout
	Settings  *config.Settings
	Validator LocationValidator
	Server    DevServer
	Host      HostRuntime
	Reporter  *report.Reporter
	// Extra is passed to the host runtime verbatim.
	Extra []string

	manifest *manifest.Manifest
	session  *bundler.Session
}

// Pipeline returns the staged development session.
func (d *Development) Pipeline() *Pipeline {
	return NewPipeline("debug", d.Reporter,
		Stage{StateValidating, "validating project", d.validate},
		Stage{StateLaunching, "starting dev server", d.serve},
		Stage{StateLaunching, "starting host process", d.launch},
	)
}

// Run executes the session. The dev server is shut down when Run returns.
func (d *Development) Run(ctx context.Context) error {
	if d.Reporter == nil {
		d.Reporter = report.Discard()
	}
	defer func() { d.session.Close() }()
	return d.Pipeline().Run(ctx)
}

func (d *Development) validate(context.Context) error {
	m, err := d.Validator.Validate()
	if err != nil {
		return err
	}
	d.manifest = m
	return nil
}

func (d *Development) serve(ctx context.Context) error {
	cfg := target.NewUIProcess(d.Layout, d.manifest, target.Development, d.Settings.BundleDependencies)
	sess, err := d.Server.Serve(ctx, cfg, d.Settings.DevPort)
	if err != nil {
		return &CompilationError{Kind: ErrCompilationInvocationFailed, Target: "ui/development", Err: err}
	}
	d.session = sess
	if sess.Initial != nil {
		// Errors stay visible but do not stop the session; saving a fix
		// triggers a rebuild.
		surface(d.Reporter, sess.Initial.Warnings, sess.Initial.Errors)
	}
	d.Reporter.Pass("serving %s on %s", cfg.OutDir, sess.URL)
	return nil
}

func (d *Development) launch(ctx context.Context) error {
	entry := target.NewHostProcess(d.Layout, target.Development).Output()
	if !platform.Exists(entry) {
		return packagingf(ErrEntryBundleMissing, nil, "%s (is %s installed?)", entry, d.Layout.ToolRoot)
	}

	env := map[string]string{
		"NODE_ENV":                        string(target.Development),
		branding.EnvVar("dev_server_url"): d.session.URL,
	}
	if err := d.Host.Launch(ctx, entry, env, d.Extra); err != nil {
		return fmt.Errorf("host process: %w", err)
	}
	return nil
}
