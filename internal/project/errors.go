package project

import (
	"errors"
	"fmt"
)

// Location failure kinds.
var (
	ErrManifestMissing    = errors.New("manifest missing")
	ErrManifestUnreadable = errors.New("manifest unreadable")
	ErrDependencyMissing  = errors.New("dependency missing")
)

// LocationError reports why a directory is not a usable project.
type LocationError struct {
	Kind error
	Dir  string
	Msg  string
}

func (e *LocationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Dir)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *LocationError) Unwrap() error { return e.Kind }
