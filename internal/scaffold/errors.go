package scaffold

import (
	"errors"
	"fmt"
)

// Error kinds.
var (
	ErrTargetNotFound        = errors.New("target not found")
	ErrUnknownVerb           = errors.New("unknown verb")
	ErrDirectoryCreateFailed = errors.New("directory create failed")
	ErrInvalidName           = errors.New("invalid name")
)

// Error is returned for scaffolding failures. Kind is one of the Err*
// sentinels above and is matched with errors.Is.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
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

func (e *Error) Unwrap() error { return e.Kind }

func errorf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
