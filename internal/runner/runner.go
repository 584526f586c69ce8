package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/reactor-labs/reactor/internal/logger"
	"github.com/reactor-labs/reactor/internal/report"
)

// Output captures the result of a finished command.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// ExitError reports a command that ran but exited non-zero.
type ExitError struct {
	Command string
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Command, e.Code)
}

// Runner executes commands, streaming their output to Stdout and Stderr.
type Runner struct {
	// Stdout and Stderr can be set for testing; defaults to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
	// Env is the full child environment. Nil inherits the current process.
	Env []string
	// Group runs the command in its own process group and kills the whole
	// group when ctx is cancelled.
	Group    bool
	Reporter *report.Reporter
}

// Run executes name with args in dir and waits for it. A non-zero exit is
// reported in Output.ExitCode with a nil error; the error return is for
// commands that could not be started or were interrupted.
func (r *Runner) Run(ctx context.Context, dir, name string, args ...string) (*Output, error) {
	var stdoutBuf, stderrBuf bytes.Buffer
	code, err := r.exec(ctx, dir, name, args, &stdoutBuf, &stderrBuf)
	out := &Output{ExitCode: code, Stdout: stdoutBuf.String(), Stderr: stderrBuf.String()}
	return out, err
}

// Stream is like Run but keeps no copy of the output, for long-lived
// processes.
func (r *Runner) Stream(ctx context.Context, dir, name string, args ...string) (int, error) {
	return r.exec(ctx, dir, name, args, nil, nil)
}

func (r *Runner) exec(ctx context.Context, dir, name string, args []string, stdoutBuf, stderrBuf *bytes.Buffer) (int, error) {
	bin, err := exec.LookPath(name)
	if err != nil {
		return -1, fmt.Errorf("%s not found on PATH: %w", name, err)
	}
	if r.Reporter != nil {
		r.Reporter.Command(name, args...)
	}
	logger.Debug("exec", "bin", bin, "args", args, "dir", dir)

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	cmd.Env = r.Env
	if r.Group {
		setProcessGroup(cmd)
	}

	stdout := r.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := r.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	if stdoutBuf != nil {
		stdout = io.MultiWriter(stdout, stdoutBuf)
	}
	if stderrBuf != nil {
		stderr = io.MultiWriter(stderr, stderrBuf)
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err = cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return -1, ctxErr
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, fmt.Errorf("executing %s: %w", name, err)
	}
	return 0, nil
}

// Available reports the resolved path of name on PATH.
func Available(name string) (string, bool) {
	p, err := exec.LookPath(name)
	return p, err == nil
}
