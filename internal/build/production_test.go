package build

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reactor-labs/reactor/internal/bundler"
	"github.com/reactor-labs/reactor/internal/manifest"
	"github.com/reactor-labs/reactor/internal/project"
)

type productionRig struct {
	*fixture
	compiler  *fakeCompiler
	installer *fakeInstaller
	packager  *fakePackager
	build     *Production
}

func newProductionRig(t *testing.T) *productionRig {
	t.Helper()
	f := newFixture(t)
	r := &productionRig{
		fixture:   f,
		compiler:  &fakeCompiler{},
		installer: &fakeInstaller{},
		packager:  &fakePackager{},
	}
	r.build = &Production{
		Layout:    f.layout,
		Settings:  f.settings,
		Validator: &fakeValidator{m: f.manifest},
		Compiler:  r.compiler,
		Installer: r.installer,
		Packager:  r.packager,
		Reporter:  f.reporter,
		Extra:     []string{"--platform=linux"},
	}
	return r
}

func (r *productionRig) prodDir() string { return r.layout.Build(project.ProdDir) }

func TestProductionBuildSuccess(t *testing.T) {
	r := newProductionRig(t)
	r.installTool(t)

	p := r.build.Pipeline()
	require.NoError(t, p.Run(context.Background()))
	assert.Equal(t, StateDone, p.State())
	assert.Equal(t, []State{StateValidating, StateCompiling, StatePackaging, StateDone}, p.History())

	entry, err := os.ReadFile(filepath.Join(r.prodDir(), EntryFile))
	require.NoError(t, err)
	assert.Equal(t, "// host\n", string(entry))

	require.Len(t, r.compiler.calls, 1)
	assert.Equal(t, r.prodDir(), r.compiler.calls[0].OutDir)

	data, err := os.ReadFile(filepath.Join(r.prodDir(), manifest.FileName))
	require.NoError(t, err)
	var out manifest.OutputManifest
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "app", out.Name)
	assert.Equal(t, "App", out.ProductName)
	assert.Equal(t, EntryFile, out.Main)
	assert.Empty(t, out.Dependencies, "dependencies are bundled by default")

	assert.Empty(t, r.installer.dirs)
	require.Len(t, r.packager.calls, 1)
	req := r.packager.calls[0]
	assert.Equal(t, r.layout.Root, req.Dir)
	assert.Equal(t, filepath.Join("build", "prod"), req.Source)
	assert.Equal(t, "28.1.0", req.ElectronVersion)
	assert.Equal(t, "dist", req.Out)
	assert.Equal(t, []string{"--platform=linux"}, req.Extra)
}

func TestProductionCompileErrorsAbortBeforePackaging(t *testing.T) {
	r := newProductionRig(t)
	r.installTool(t)
	r.compiler.result = &bundler.Result{Errors: []string{"boom"}}

	p := r.build.Pipeline()
	err := p.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCompilationFailed)
	assert.Contains(t, err.Error(), "boom")

	var ce *CompilationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, []string{"boom"}, ce.Messages)

	assert.Contains(t, r.errOut.String(), "✖ boom")
	assert.Empty(t, r.packager.calls, "packager must not run after a compile error")
	assert.NoFileExists(t, filepath.Join(r.prodDir(), manifest.FileName))
	assert.Equal(t, StateFailed, p.State())
	assert.NotContains(t, p.History(), StatePackaging)
}

func TestProductionWarningsAreNotFatal(t *testing.T) {
	r := newProductionRig(t)
	r.installTool(t)
	r.compiler.result = &bundler.Result{Warnings: []string{"unused import"}}

	require.NoError(t, r.build.Run(context.Background()))
	assert.Contains(t, r.errOut.String(), "! unused import")
	assert.Len(t, r.packager.calls, 1)
}

func TestProductionCompilerInvocationFailure(t *testing.T) {
	r := newProductionRig(t)
	r.installTool(t)
	r.compiler.err = errors.New("entry point missing")

	err := r.build.Run(context.Background())
	assert.ErrorIs(t, err, ErrCompilationInvocationFailed)
	assert.NotErrorIs(t, err, ErrCompilationFailed)
	assert.Empty(t, r.packager.calls)
}

func TestProductionEntryBundleMissing(t *testing.T) {
	r := newProductionRig(t)
	r.installElectron(t, "28.1.0")

	err := r.build.Run(context.Background())
	assert.ErrorIs(t, err, ErrEntryBundleMissing)
	assert.Empty(t, r.compiler.calls)
}

func TestProductionRuntimeUnresolved(t *testing.T) {
	tests := map[string]func(t *testing.T, r *productionRig){
		"not installed": func(t *testing.T, r *productionRig) {
			writeFile(t, filepath.Join(r.layout.ToolDist(), "main.js"), "x")
		},
		"too old": func(t *testing.T, r *productionRig) {
			r.installTool(t)
			r.installElectron(t, "12.0.0")
		},
	}
	for name, setup := range tests {
		t.Run(name, func(t *testing.T) {
			r := newProductionRig(t)
			setup(t, r)
			err := r.build.Run(context.Background())
			assert.ErrorIs(t, err, ErrRuntimeUnresolved)
			assert.Empty(t, r.compiler.calls)
		})
	}
}

func TestProductionPackagerNonZeroExit(t *testing.T) {
	r := newProductionRig(t)
	r.installTool(t)
	r.packager.code = 1

	err := r.build.Run(context.Background())
	assert.ErrorIs(t, err, ErrPackagingFailed)
	var pe *PackagingError
	require.True(t, errors.As(err, &pe))
	assert.Contains(t, pe.Error(), "status 1")
}

func TestProductionBundledDependencies(t *testing.T) {
	r := newProductionRig(t)
	r.installTool(t)
	r.settings.BundleDependencies = true

	require.NoError(t, r.build.Run(context.Background()))

	require.Len(t, r.compiler.calls, 1)
	assert.Equal(t, []string{"lodash"}, r.compiler.calls[0].External)
	assert.Equal(t, []string{r.prodDir()}, r.installer.dirs)

	data, err := os.ReadFile(filepath.Join(r.prodDir(), manifest.FileName))
	require.NoError(t, err)
	var out manifest.OutputManifest
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, map[string]string{"lodash": "^4.17.0"}, out.Dependencies)
}

func TestProductionInstallFailure(t *testing.T) {
	r := newProductionRig(t)
	r.installTool(t)
	r.settings.BundleDependencies = true
	r.installer.err = errors.New("exit 1")

	err := r.build.Run(context.Background())
	assert.ErrorIs(t, err, ErrInstallFailed)
	assert.Empty(t, r.packager.calls)
}

func TestProductionValidationFailureStopsEverything(t *testing.T) {
	r := newProductionRig(t)
	r.installTool(t)
	locErr := &project.LocationError{Kind: project.ErrDependencyMissing, Dir: r.layout.Root}
	r.build.Validator = &fakeValidator{err: locErr}

	err := r.build.Run(context.Background())
	assert.ErrorIs(t, err, project.ErrDependencyMissing)
	assert.NoDirExists(t, r.prodDir())
	assert.Empty(t, r.compiler.calls)
	assert.Empty(t, r.packager.calls)
}
