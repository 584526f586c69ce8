// Package report prints the human-readable progress lines every command emits:
// a green check for each passed step, a red cross for failures, blue stage
// headers, and the cyan command line of each external tool invocation.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	passColor    = color.New(color.FgGreen)
	failColor    = color.New(color.FgRed)
	warnColor    = color.New(color.FgYellow)
	stepColor    = color.New(color.FgBlue)
	commandColor = color.New(color.FgHiCyan)
)

// Reporter writes progress lines. Passes, steps and commands go to Out;
// failures and warnings go to Err.
type Reporter struct {
	Out io.Writer
	Err io.Writer
}

// New returns a Reporter writing to the given streams; nil streams default to
// os.Stdout and os.Stderr.
func New(out, errOut io.Writer) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &Reporter{Out: out, Err: errOut}
}

// Discard returns a Reporter that drops everything.
func Discard() *Reporter {
	return &Reporter{Out: io.Discard, Err: io.Discard}
}

// Pass prints "✓ msg".
func (r *Reporter) Pass(format string, args ...any) {
	fmt.Fprintf(r.Out, "%s %s\n", passColor.Sprint("✓"), fmt.Sprintf(format, args...))
}

// Fail prints "✖ msg" to the error stream.
func (r *Reporter) Fail(format string, args ...any) {
	fmt.Fprintf(r.Err, "%s %s\n", failColor.Sprint("✖"), fmt.Sprintf(format, args...))
}

// Warn prints "! msg" to the error stream. Warnings never affect the exit code.
func (r *Reporter) Warn(format string, args ...any) {
	fmt.Fprintf(r.Err, "%s %s\n", warnColor.Sprint("!"), fmt.Sprintf(format, args...))
}

// Step prints a stage header such as "compiling sources".
func (r *Reporter) Step(format string, args ...any) {
	fmt.Fprintln(r.Out, stepColor.Sprintf(format, args...))
}

// Command echoes an external command line before it runs.
func (r *Reporter) Command(name string, args ...string) {
	line := strings.Join(append([]string{name}, args...), " ")
	fmt.Fprintln(r.Out, commandColor.Sprint(line))
}

// Info prints an uncoloured line.
func (r *Reporter) Info(format string, args ...any) {
	fmt.Fprintf(r.Out, format+"\n", args...)
}

// Spin animates "msg" on a terminal until the returned function is called.
// Other writers get nothing, so captured output stays clean.
func (r *Reporter) Spin(format string, args ...any) (stop func()) {
	f, ok := r.Out.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(f))
	_ = s.Color("cyan")
	s.Suffix = " " + fmt.Sprintf(format, args...)
	s.Start()
	return s.Stop
}
