package runner

import (
	"context"
	"fmt"
)

// PackageRequest describes one packaging run.
type PackageRequest struct {
	// Dir is the project directory npm exec resolves binaries from.
	Dir string
	// Source is the compiled application directory to package.
	Source          string
	ElectronVersion string
	Out             string
	Extra           []string
}

// Args returns the packager command-line arguments for req.
func (req PackageRequest) Args() []string {
	args := []string{
		req.Source,
		"--electronVersion=" + req.ElectronVersion,
		"--out=" + req.Out,
		"--overwrite",
	}
	return append(args, req.Extra...)
}

// Packager runs electron-packager.
type Packager struct {
	NPM *NPM
	Bin string
}

// NewPackager returns a Packager invoking bin through npm exec.
func NewPackager(n *NPM, bin string) *Packager {
	if bin == "" {
		bin = "electron-packager"
	}
	return &Packager{NPM: n, Bin: bin}
}

// Package runs the packager and returns its exit status.
func (p *Packager) Package(ctx context.Context, req PackageRequest) (int, error) {
	code, err := p.NPM.Exec(ctx, req.Dir, p.Bin, req.Args()...)
	if err != nil {
		return code, fmt.Errorf("running %s: %w", p.Bin, err)
	}
	return code, nil
}
