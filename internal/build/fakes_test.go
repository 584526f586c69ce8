package build

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/reactor-labs/reactor/internal/bundler"
	"github.com/reactor-labs/reactor/internal/config"
	"github.com/reactor-labs/reactor/internal/manifest"
	"github.com/reactor-labs/reactor/internal/project"
	"github.com/reactor-labs/reactor/internal/report"
	"github.com/reactor-labs/reactor/internal/runner"
	"github.com/reactor-labs/reactor/internal/target"
)

type fakeValidator struct {
	m   *manifest.Manifest
	err error
}

func (f *fakeValidator) Validate() (*manifest.Manifest, error) { return f.m, f.err }

type fakeCompiler struct {
	result *bundler.Result
	err    error
	calls  []target.Config
}

func (f *fakeCompiler) Compile(_ context.Context, cfg target.Config) (*bundler.Result, error) {
	f.calls = append(f.calls, cfg)
	if f.err != nil {
		return nil, f.err
	}
	if f.result == nil {
		return &bundler.Result{}, nil
	}
	return f.result, nil
}

type fakeInstaller struct {
	dirs []string
	err  error
}

func (f *fakeInstaller) Install(_ context.Context, dir string) error {
	f.dirs = append(f.dirs, dir)
	return f.err
}

type fakePackager struct {
	code  int
	err   error
	calls []runner.PackageRequest
}

func (f *fakePackager) Package(_ context.Context, req runner.PackageRequest) (int, error) {
	f.calls = append(f.calls, req)
	return f.code, f.err
}

type fakeServer struct {
	session *bundler.Session
	err     error
	calls   []target.Config
	port    int
}

func (f *fakeServer) Serve(_ context.Context, cfg target.Config, port int) (*bundler.Session, error) {
	f.calls = append(f.calls, cfg)
	f.port = port
	return f.session, f.err
}

type fakeHost struct {
	entry string
	env   map[string]string
	extra []string
	err   error
}

func (f *fakeHost) Launch(_ context.Context, entry string, env map[string]string, extra []string) error {
	f.entry, f.env, f.extra = entry, env, extra
	return f.err
}

// fixture is a temporary project with the tool installed under node_modules.
type fixture struct {
	layout   project.Layout
	settings *config.Settings
	manifest *manifest.Manifest
	out      *bytes.Buffer
	errOut   *bytes.Buffer
	reporter *report.Reporter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	color.NoColor = true
	root := t.TempDir()
	var out, errOut bytes.Buffer
	return &fixture{
		layout:   project.NewLayout(root, ""),
		settings: config.Default(),
		manifest: &manifest.Manifest{
			Name:            "app",
			ProductName:     "App",
			Version:         "1.0.0",
			License:         "MIT",
			Dependencies:    map[string]string{"lodash": "^4.17.0"},
			DevDependencies: map[string]string{"reactor": "^1.0.0"},
		},
		out:      &out,
		errOut:   &errOut,
		reporter: report.New(&out, &errOut),
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// installTool writes the pre-built host bundles and an electron package.
func (f *fixture) installTool(t *testing.T) {
	t.Helper()
	writeFile(t, filepath.Join(f.layout.ToolDist(), "main.js"), "// host\n")
	writeFile(t, filepath.Join(f.layout.ToolDist(), "main.dev.js"), "// host dev\n")
	f.installElectron(t, "28.1.0")
}

func (f *fixture) installElectron(t *testing.T, version string) {
	t.Helper()
	writeFile(t, filepath.Join(f.layout.Module("electron"), "package.json"),
		`{"name": "electron", "version": "`+version+`"}`)
}
