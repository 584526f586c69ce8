package build

import (
	"errors"
	"fmt"
	"strings"
)

// Compilation failure kinds.
var (
	ErrCompilationInvocationFailed = errors.New("compiler invocation failed")
	ErrCompilationFailed           = errors.New("compilation failed")
)

// Packaging failure kinds.
var (
	ErrEntryBundleMissing = errors.New("entry bundle missing")
	ErrEntryLinkFailed    = errors.New("entry link failed")
	ErrInstallFailed      = errors.New("dependency install failed")
	ErrPackagingFailed    = errors.New("packaging failed")
	ErrRuntimeUnresolved  = errors.New("runtime version unresolved")
)

// CompilationError distinguishes a compiler that could not run from one
// that reported errors. Messages holds every reported error.
type CompilationError struct {
	Kind     error
	Target   string
	Messages []string
	Err      error
}

func (e *CompilationError) Error() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Target != "" {
		fmt.Fprintf(&b, " (%s)", e.Target)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if len(e.Messages) > 0 {
		fmt.Fprintf(&b, ": %s", strings.Join(e.Messages, "; "))
	}
	return b.String()
}

func (e *CompilationError) Unwrap() error { return e.Kind }

// PackagingError reports a failure assembling or packaging the output
// directory.
type PackagingError struct {
	Kind error
	Msg  string
	Err  error
}

func (e *PackagingError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Kind.Error()
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *PackagingError) Unwrap() error { return e.Kind }

func packagingf(kind, err error, format string, args ...any) error {
	return &PackagingError{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}
