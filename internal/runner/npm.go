package runner

import (
	"context"
	"strings"
)

// NPM drives the npm CLI.
type NPM struct {
	Runner *Runner
	Bin    string
}

// NewNPM returns an NPM using bin, or "npm" when bin is empty.
func NewNPM(r *Runner, bin string) *NPM {
	if bin == "" {
		bin = "npm"
	}
	return &NPM{Runner: r, Bin: bin}
}

func (n *NPM) run(ctx context.Context, dir string, args ...string) error {
	code, err := n.Runner.Stream(ctx, dir, n.Bin, args...)
	if err != nil {
		return err
	}
	if code != 0 {
		return &ExitError{Command: n.Bin + " " + strings.Join(args, " "), Code: code}
	}
	return nil
}

// Init creates a default package.json in dir.
func (n *NPM) Init(ctx context.Context, dir string) error {
	return n.run(ctx, dir, "init", "-y")
}

// AddDevDependency installs pkg into dir as a devDependency.
func (n *NPM) AddDevDependency(ctx context.Context, dir, pkg string) error {
	return n.run(ctx, dir, "install", "--save-dev", pkg)
}

// Install installs the runtime dependencies declared in <dir>/package.json.
func (n *NPM) Install(ctx context.Context, dir string) error {
	return n.run(ctx, dir, "install", "--omit=dev")
}

// ExecArgs returns the npm arguments that run a locally installed binary.
func ExecArgs(bin string, args ...string) []string {
	return append([]string{"exec", "--", bin}, args...)
}

// Exec runs a binary from the project's node_modules through npm exec and
// returns its exit status.
func (n *NPM) Exec(ctx context.Context, dir, bin string, args ...string) (int, error) {
	return n.Runner.Stream(ctx, dir, n.Bin, ExecArgs(bin, args...)...)
}
