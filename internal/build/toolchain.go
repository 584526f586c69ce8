package build

import (
	"context"

	"github.com/reactor-labs/reactor/internal/bundler"
	"github.com/reactor-labs/reactor/internal/manifest"
	"github.com/reactor-labs/reactor/internal/runner"
	"github.com/reactor-labs/reactor/internal/target"
)

// LocationValidator confirms the working directory is a project.
type LocationValidator interface {
	Validate() (*manifest.Manifest, error)
}

// Compiler runs one synchronous build of a target.
type Compiler interface {
	Compile(ctx context.Context, cfg target.Config) (*bundler.Result, error)
}

// DevServer starts a watching, serving build of a target.
type DevServer interface {
	Serve(ctx context.Context, cfg target.Config, port int) (*bundler.Session, error)
}

// Installer installs runtime dependencies into a directory.
type Installer interface {
	Install(ctx context.Context, dir string) error
}

// Packager produces the distributable artifact and returns its exit status.
type Packager interface {
	Package(ctx context.Context, req runner.PackageRequest) (int, error)
}

// HostRuntime runs the host process until it exits or ctx ends.
type HostRuntime interface {
	Launch(ctx context.Context, entry string, env map[string]string, extra []string) error
}
