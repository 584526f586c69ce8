package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"

	"github.com/reactor-labs/reactor/internal/branding"
	"github.com/reactor-labs/reactor/internal/manifest"
)

// Output directory names under <root>/build.
const (
	DevDir  = "dev"
	ProdDir = "prod"
)

// Layout resolves the fixed paths of a project and of the tool installed
// into it.
type Layout struct {
	Root     string
	ToolRoot string
}

// NewLayout returns the Layout for root. An empty toolRoot selects
// <root>/node_modules/<package>.
func NewLayout(root, toolRoot string) Layout {
	if toolRoot == "" {
		toolRoot = filepath.Join(root, "node_modules", branding.PackageName())
	} else if !filepath.IsAbs(toolRoot) {
		toolRoot = filepath.Join(root, toolRoot)
	}
	return Layout{Root: root, ToolRoot: toolRoot}
}

// Manifest returns <root>/package.json.
func (l Layout) Manifest() string { return filepath.Join(l.Root, manifest.FileName) }

// Source returns <root>/src.
func (l Layout) Source() string { return filepath.Join(l.Root, "src") }

// Build returns <root>/build/<dir>.
func (l Layout) Build(dir string) string { return filepath.Join(l.Root, "build", dir) }

func (l Layout) ToolSource() string { return filepath.Join(l.ToolRoot, "src") }

func (l Layout) ToolDist() string { return filepath.Join(l.ToolRoot, "dist") }

// Module returns the installed package directory <root>/node_modules/<name>.
func (l Layout) Module(name string) string {
	return filepath.Join(l.Root, "node_modules", name)
}

// ElectronVersion reads the installed electron package version and checks it
// against constraint.
func (l Layout) ElectronVersion(constraint string) (*semver.Version, error) {
	path := filepath.Join(l.Module("electron"), manifest.FileName)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("electron is not installed: %w", err)
	}
	m, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}
	v, err := manifest.ParseVersion(m.Version)
	if err != nil {
		return nil, fmt.Errorf("electron version %q: %w", m.Version, err)
	}
	if constraint == "" {
		return v, nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return nil, fmt.Errorf("invalid electron constraint %q: %w", constraint, err)
	}
	if !c.Check(v) {
		return nil, fmt.Errorf("electron %s does not satisfy %s", v, constraint)
	}
	return v, nil
}
