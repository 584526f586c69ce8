package project

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/reactor-labs/reactor/internal/branding"
	"github.com/reactor-labs/reactor/internal/logger"
	"github.com/reactor-labs/reactor/internal/manifest"
	"github.com/reactor-labs/reactor/internal/report"
)

// Validator checks that Dir is a project this tool can operate on.
type Validator struct {
	Dir string
	// Package is the npm name the manifest must list under devDependencies.
	Package string
	// ToolVersion, when it parses as semver, is checked against the declared
	// range. Mismatches only warn.
	ToolVersion string
	Reporter    *report.Reporter
}

// NewValidator returns a Validator for dir using the branded package name.
func NewValidator(dir, toolVersion string, rep *report.Reporter) *Validator {
	return &Validator{
		Dir:         dir,
		Package:     branding.PackageName(),
		ToolVersion: toolVersion,
		Reporter:    rep,
	}
}

// Validate prints one pass or fail line per check and returns the parsed
// manifest on success. Failures are *LocationError.
func (v *Validator) Validate() (*manifest.Manifest, error) {
	rep := v.Reporter
	if rep == nil {
		rep = report.Discard()
	}
	path := filepath.Join(v.Dir, manifest.FileName)

	m, err := manifest.Load(path)
	switch {
	case errors.Is(err, manifest.ErrNotFound):
		rep.Fail("no %s in %s", manifest.FileName, v.Dir)
		return nil, &LocationError{Kind: ErrManifestMissing, Dir: v.Dir, Msg: path}
	case err != nil:
		rep.Fail("cannot read %s", manifest.FileName)
		return nil, &LocationError{Kind: ErrManifestUnreadable, Dir: v.Dir, Msg: err.Error()}
	}
	rep.Pass("found %s", manifest.FileName)

	v.schemaWarnings(rep, path)

	declared, ok := m.DevDependency(v.Package)
	if !ok {
		rep.Fail("%s does not list %s in devDependencies", manifest.FileName, v.Package)
		return nil, &LocationError{
			Kind: ErrDependencyMissing,
			Dir:  v.Dir,
			Msg:  fmt.Sprintf("%s is not a devDependency of %s", v.Package, m.Name),
		}
	}
	rep.Pass("%s declares %s %s", m.Name, v.Package, declared)

	if warn := v.rangeWarning(declared); warn != "" {
		rep.Warn("%s", warn)
	}
	return m, nil
}

func (v *Validator) schemaWarnings(rep *report.Reporter, path string) {
	res, err := manifest.ValidateFile(path)
	if err != nil {
		logger.Debug("schema validation skipped", "path", path, "error", err)
		return
	}
	for _, issue := range res.Issues {
		rep.Warn("%s: %s", manifest.FileName, issue)
	}
}

// rangeWarning returns a message when the running tool falls outside the
// declared range. Ranges semver cannot parse (file:, workspace:, tags) are
// not checked.
func (v *Validator) rangeWarning(declared string) string {
	if v.ToolVersion == "" || v.ToolVersion == "dev" {
		return ""
	}
	ok, err := manifest.Satisfies(v.ToolVersion, declared)
	if err != nil {
		logger.Debug("dependency range not checked", "range", declared, "error", err)
		return ""
	}
	if !ok {
		return fmt.Sprintf("running %s %s, but the project declares %s", branding.CLIName(), v.ToolVersion, declared)
	}
	return ""
}
