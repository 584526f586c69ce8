package runner

import (
	"context"
	"errors"
	"strings"
)

// Electron launches the host-process runtime.
type Electron struct {
	NPM *NPM
	Bin string
	// Dir is the project directory.
	Dir string
}

// NewElectron returns an Electron launcher for the project at dir.
func NewElectron(n *NPM, bin, dir string) *Electron {
	if bin == "" {
		bin = "electron"
	}
	return &Electron{NPM: n, Bin: bin, Dir: dir}
}

// Launch starts electron on entry with env merged into the runner's
// environment and blocks until it exits or ctx is cancelled. Cancellation is
// the normal way a development session ends and is not reported as an error.
// Electron runs in its own process group so cancelling also stops the
// processes npm exec spawned for it.
func (e *Electron) Launch(ctx context.Context, entry string, env map[string]string, extra []string) error {
	r := *e.NPM.Runner
	r.Env = overlay(append([]string(nil), baseEnv(r.Env)...), env)
	r.Group = true
	n := &NPM{Runner: &r, Bin: e.NPM.Bin}

	code, err := n.Exec(ctx, e.Dir, e.Bin, append([]string{entry}, extra...)...)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		return err
	}
	if code != 0 {
		return &ExitError{Command: e.Bin + " " + strings.Join(append([]string{entry}, extra...), " "), Code: code}
	}
	return nil
}
