package build

import (
	"context"
	"fmt"

	"github.com/reactor-labs/reactor/internal/manifest"
	"github.com/reactor-labs/reactor/internal/project"
	"github.com/reactor-labs/reactor/internal/report"
	"github.com/reactor-labs/reactor/internal/target"
)

// Dist builds the bundles the tool ships: the host process in both modes
// and the CLI. It runs inside the tool's own checkout, so Layout.Root and
// Layout.ToolRoot are the same directory.
type Dist struct {
	Layout   project.Layout
	Package  string
	Compiler Compiler
	Reporter *report.Reporter
}

// Pipeline returns the staged distribution build.
func (d *Dist) Pipeline() *Pipeline {
	stages := []Stage{{StateValidating, "checking tool checkout", d.validate}}
	for _, cfg := range d.Targets() {
		stages = append(stages, Stage{
			State: StateCompiling,
			Name:  fmt.Sprintf("compiling %s (%s)", cfg.Kind, cfg.Mode),
			Run: func(ctx context.Context) error {
				return compile(ctx, d.Compiler, cfg, d.Reporter)
			},
		})
	}
	return NewPipeline("dist", d.Reporter, stages...)
}

// Targets lists the configurations Dist compiles, in order.
func (d *Dist) Targets() []target.Config {
	return []target.Config{
		target.NewHostProcess(d.Layout, target.Development),
		target.NewHostProcess(d.Layout, target.Production),
		target.NewCLITool(d.Layout, target.Production),
	}
}

// Run executes the distribution build.
func (d *Dist) Run(ctx context.Context) error {
	if d.Reporter == nil {
		d.Reporter = report.Discard()
	}
	return d.Pipeline().Run(ctx)
}

func (d *Dist) validate(context.Context) error {
	m, err := manifest.LoadDir(d.Layout.Root)
	if err != nil {
		return err
	}
	if m.Name != d.Package {
		return fmt.Errorf("%s is %q, not the %s checkout", manifest.FileName, m.Name, d.Package)
	}
	d.Reporter.Pass("%s %s", m.Name, m.Version)
	return nil
}
