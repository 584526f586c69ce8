package build

import (
	"context"

	"github.com/reactor-labs/reactor/internal/report"
	"github.com/reactor-labs/reactor/internal/target"
)

// compile runs c on cfg, prints every diagnostic, and turns reported errors
// into a CompilationError. Warnings never fail the build.
func compile(ctx context.Context, c Compiler, cfg target.Config, rep *report.Reporter) error {
	name := string(cfg.Kind) + "/" + string(cfg.Mode)
	stop := rep.Spin("compiling %s", name)
	res, err := c.Compile(ctx, cfg)
	stop()
	if err != nil {
		return &CompilationError{Kind: ErrCompilationInvocationFailed, Target: name, Err: err}
	}
	surface(rep, res.Warnings, res.Errors)
	if len(res.Errors) > 0 {
		return &CompilationError{
			Kind:     ErrCompilationFailed,
			Target:   name,
			Messages: append([]string(nil), res.Errors...),
		}
	}
	rep.Pass("compiled %s -> %s", name, cfg.Output())
	return nil
}

func surface(rep *report.Reporter, warnings, errs []string) {
	for _, w := range warnings {
		rep.Warn("%s", w)
	}
	for _, e := range errs {
		rep.Fail("%s", e)
	}
}
