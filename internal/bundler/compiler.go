package bundler

import (
	"context"
	"fmt"
	"os"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/reactor-labs/reactor/internal/logger"
	"github.com/reactor-labs/reactor/internal/platform"
	"github.com/reactor-labs/reactor/internal/target"
	"github.com/reactor-labs/reactor/internal/templates"
)

// Result lists the diagnostics of one build. A build failed when Errors is
// non-empty.
type Result struct {
	Errors   []string
	Warnings []string
}

// Failed reports whether any error was recorded.
func (r *Result) Failed() bool { return len(r.Errors) > 0 }

// Compiler runs single synchronous esbuild builds.
type Compiler struct {
	Renderer *templates.Renderer
}

// NewCompiler returns a Compiler that renders HTML pages with r.
func NewCompiler(r *templates.Renderer) *Compiler {
	return &Compiler{Renderer: r}
}

// Compile builds cfg. The error return is reserved for failures to run the
// build at all, such as a missing entry point or an unwritable output
// directory. Errors reported by esbuild itself come back in the Result.
func (c *Compiler) Compile(ctx context.Context, cfg target.Config) (*Result, error) {
	if err := prepare(ctx, cfg); err != nil {
		return nil, err
	}

	logger.Debug("esbuild", "target", cfg.String())
	res := toResult(api.Build(Options(cfg)))
	if res.Failed() {
		return res, nil
	}
	if err := finish(c.Renderer, cfg); err != nil {
		return nil, err
	}
	return res, nil
}

func prepare(ctx context.Context, cfg target.Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Stat(cfg.Entry); err != nil {
		return fmt.Errorf("entry point %s: %w", cfg.Entry, err)
	}
	if _, err := platform.EnsureDir(cfg.OutDir); err != nil {
		return fmt.Errorf("output directory: %w", err)
	}
	return nil
}

// finish applies the post-build steps a target asks for.
func finish(r *templates.Renderer, cfg target.Config) error {
	if cfg.Executable {
		if err := platform.Chmod(cfg.Output(), platform.Executable); err != nil {
			return fmt.Errorf("marking %s executable: %w", cfg.Output(), err)
		}
	}
	if cfg.Page != nil {
		if _, err := WritePage(r, cfg); err != nil {
			return err
		}
	}
	return nil
}

func toResult(br api.BuildResult) *Result {
	res := &Result{}
	for _, m := range br.Errors {
		res.Errors = append(res.Errors, formatMessage(m))
	}
	for _, m := range br.Warnings {
		res.Warnings = append(res.Warnings, formatMessage(m))
	}
	return res
}

func formatMessage(m api.Message) string {
	if m.Location == nil || m.Location.File == "" {
		return m.Text
	}
	return fmt.Sprintf("%s:%d:%d: %s", m.Location.File, m.Location.Line, m.Location.Column, m.Text)
}
