package build

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"

	"github.com/reactor-labs/reactor/internal/config"
	"github.com/reactor-labs/reactor/internal/manifest"
	"github.com/reactor-labs/reactor/internal/platform"
	"github.com/reactor-labs/reactor/internal/project"
	"github.com/reactor-labs/reactor/internal/report"
	"github.com/reactor-labs/reactor/internal/runner"
	"github.com/reactor-labs/reactor/internal/target"
)

// EntryFile is the name of the host-process entry inside the output
// directory.
const EntryFile = "main.js"

// Production compiles the UI-process bundle and packages it with the
// pre-built host-process bundle.
type Production struct {
	Layout    project.Layout
	Settings  *config.Settings
	Validator LocationValidator
	Compiler  Compiler
	Installer Installer
	Packager  Packager
	Reporter  *report.Reporter
	// Extra is passed to the packager verbatim.
	Extra []string

	manifest *manifest.Manifest
	electron *semver.Version
	ui       target.Config
}

func (b *Production) outDir() string {
	return b.Layout.Build(target.Production.BuildDir())
}

// Pipeline returns the staged production build.
func (b *Production) Pipeline() *Pipeline {
	stages := []Stage{
		{StateValidating, "validating project", b.validate},
		{StateCompiling, "preparing output directory", b.prepare},
		{StateCompiling, "linking host bundle", b.link},
		{StateCompiling, "resolving runtime", b.resolve},
		{StateCompiling, "compiling sources", b.compile},
		{StatePackaging, "writing output manifest", b.writeManifest},
	}
	if b.Settings.BundleDependencies {
		stages = append(stages, Stage{StatePackaging, "installing dependencies", b.install})
	}
	stages = append(stages, Stage{StatePackaging, "packaging application", b.pack})
	return NewPipeline("build", b.Reporter, stages...)
}

// Run executes the production build.
func (b *Production) Run(ctx context.Context) error {
	if b.Reporter == nil {
		b.Reporter = report.Discard()
	}
	return b.Pipeline().Run(ctx)
}

func (b *Production) validate(context.Context) error {
	m, err := b.Validator.Validate()
	if err != nil {
		return err
	}
	b.manifest = m
	return nil
}

func (b *Production) prepare(context.Context) error {
	created, err := platform.EnsureDir(b.outDir())
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if created {
		b.Reporter.Pass("created %s", b.outDir())
	}
	return nil
}

func (b *Production) link(context.Context) error {
	src := target.NewHostProcess(b.Layout, target.Production).Output()
	dst := filepath.Join(b.outDir(), EntryFile)

	if _, err := platform.LinkFile(src, dst); err != nil {
		if errors.Is(err, platform.ErrSourceMissing) {
			return packagingf(ErrEntryBundleMissing, nil, "%s (is %s installed?)", src, b.Layout.ToolRoot)
		}
		return packagingf(ErrEntryLinkFailed, err, "%s", dst)
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return packagingf(ErrEntryLinkFailed, err, "%s", src)
	}
	dstInfo, err := os.Stat(dst)
	if err != nil || dstInfo.Size() != srcInfo.Size() {
		return packagingf(ErrEntryLinkFailed, err, "%s does not match %s", dst, src)
	}
	b.Reporter.Pass("linked %s", dst)
	return nil
}

func (b *Production) resolve(context.Context) error {
	v, err := b.Layout.ElectronVersion(b.Settings.MinElectron)
	if err != nil {
		return packagingf(ErrRuntimeUnresolved, err, "electron")
	}
	b.electron = v
	b.ui = target.NewUIProcess(b.Layout, b.manifest, target.Production, b.Settings.BundleDependencies)
	b.Reporter.Pass("electron %s", v)
	return nil
}

func (b *Production) compile(ctx context.Context) error {
	return compile(ctx, b.Compiler, b.ui, b.Reporter)
}

func (b *Production) writeManifest(context.Context) error {
	path, err := manifest.WriteOutput(b.outDir(), b.manifest.Output(EntryFile, b.Settings.BundleDependencies))
	if err != nil {
		return packagingf(ErrPackagingFailed, err, "output manifest")
	}
	b.Reporter.Pass("wrote %s", path)
	return nil
}

func (b *Production) install(ctx context.Context) error {
	if err := b.Installer.Install(ctx, b.outDir()); err != nil {
		return packagingf(ErrInstallFailed, err, "%s", b.outDir())
	}
	b.Reporter.Pass("installed runtime dependencies")
	return nil
}

func (b *Production) pack(ctx context.Context) error {
	source, err := filepath.Rel(b.Layout.Root, b.outDir())
	if err != nil {
		source = b.outDir()
	}
	req := runner.PackageRequest{
		Dir:             b.Layout.Root,
		Source:          source,
		ElectronVersion: b.electron.String(),
		Out:             b.Settings.PackageOut,
		Extra:           b.Extra,
	}
	code, err := b.Packager.Package(ctx, req)
	if err != nil {
		return packagingf(ErrPackagingFailed, err, "%s", b.Settings.Packager)
	}
	if code != 0 {
		return packagingf(ErrPackagingFailed, nil, "%s exited with status %d", b.Settings.Packager, code)
	}
	b.Reporter.Pass("packaged into %s", b.Settings.PackageOut)
	return nil
}
