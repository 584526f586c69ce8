//go:build !unix

package runner

import "os/exec"

// setProcessGroup is a no-op where process groups are unavailable; only the
// direct child is killed on cancellation.
func setProcessGroup(*exec.Cmd) {}
