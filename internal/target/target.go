// Package target builds the immutable bundler configuration for each of the
// three build targets: the host process, the UI process and the CLI tool.
package target

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/reactor-labs/reactor/internal/branding"
	"github.com/reactor-labs/reactor/internal/manifest"
	"github.com/reactor-labs/reactor/internal/project"
)

// Mode selects development or production output.
type Mode string

const (
	Development Mode = "development"
	Production  Mode = "production"
)

// BuildDir returns the directory name under build/ for m.
func (m Mode) BuildDir() string {
	if m == Production {
		return project.ProdDir
	}
	return project.DevDir
}

// Kind names a build target.
type Kind string

const (
	HostProcess Kind = "host"
	UIProcess   Kind = "ui"
	CLITool     Kind = "cli"
)

// Platform is the runtime a bundle is emitted for.
type Platform string

const (
	Browser Platform = "browser"
	Node    Platform = "node"
)

// SourceMap controls source map emission.
type SourceMap string

const (
	SourceMapNone   SourceMap = ""
	SourceMapInline SourceMap = "inline"
	SourceMapLinked SourceMap = "linked"
)

// Engine is the oldest runtime a bundle must run on.
type Engine struct {
	Name    string
	Version string
}

var (
	// Chrome 91 ships with the oldest supported electron release.
	uiEngine   = Engine{Name: "chrome", Version: "91"}
	nodeEngine = Engine{Name: "node", Version: "16"}
)

const (
	// liveReload reloads the window whenever the dev server finishes a rebuild.
	// It lives in the page rather than the bundle so a session whose first
	// build failed still reloads once the source is fixed.
	liveReload = "new EventSource('/esbuild').addEventListener('change', () => location.reload());"

	contentSecurityPolicy = "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'"
)

// Page describes the HTML document emitted next to a UI bundle.
type Page struct {
	Title      string
	CSP        string
	Script     string
	Stylesheet string
	// LiveReload is an inline script for development pages only; production
	// pages carry a CSP that forbids inline scripts.
	LiveReload string
}

// Config is one target's build configuration. Constructors copy every input,
// and nothing in this module modifies a Config after construction.
type Config struct {
	Kind     Kind
	Mode     Mode
	Entry    string
	OutDir   string
	OutName  string
	WorkDir  string
	Platform Platform
	Engine   Engine

	External         []string
	ExternalPackages bool
	Alias            map[string]string
	Define           map[string]string
	Banner           string

	SourceMap  SourceMap
	Minify     bool
	Executable bool

	Page *Page
}

// Output returns the path of the emitted JavaScript bundle.
func (c Config) Output() string {
	return filepath.Join(c.OutDir, c.OutName+".js")
}

func (c Config) String() string {
	return fmt.Sprintf("%s/%s %s -> %s", c.Kind, c.Mode, c.Entry, c.Output())
}

func define(mode Mode) map[string]string {
	return map[string]string{"process.env.NODE_ENV": strconv.Quote(string(mode))}
}

// HostOutName returns the file base name of the host-process bundle.
func HostOutName(mode Mode) string {
	if mode == Production {
		return "main"
	}
	return "main.dev"
}

// NewHostProcess configures the privileged host-process bundle, built from
// the tool's own sources into <tool_root>/dist.
func NewHostProcess(l project.Layout, mode Mode) Config {
	c := Config{
		Kind:             HostProcess,
		Mode:             mode,
		Entry:            filepath.Join(l.ToolSource(), "main.ts"),
		OutDir:           l.ToolDist(),
		OutName:          HostOutName(mode),
		WorkDir:          l.ToolRoot,
		Platform:         Node,
		Engine:           nodeEngine,
		External:         []string{"electron"},
		ExternalPackages: true,
		Define:           define(mode),
	}
	if mode == Production {
		c.Minify = true
	} else {
		c.SourceMap = SourceMapInline
	}
	return c
}

// NewUIProcess configures the UI-process bundle of the project described by
// m. With bundleDeps set, the manifest's runtime dependencies are left
// external so they can be installed next to the bundle instead.
func NewUIProcess(l project.Layout, m *manifest.Manifest, mode Mode, bundleDeps bool) Config {
	c := Config{
		Kind:     UIProcess,
		Mode:     mode,
		Entry:    filepath.Join(l.ToolSource(), "renderer.tsx"),
		OutDir:   l.Build(mode.BuildDir()),
		OutName:  "renderer",
		WorkDir:  l.Root,
		Platform: Browser,
		Engine:   uiEngine,
		Alias:    map[string]string{"@app": l.Source()},
		Define:   define(mode),
		Page: &Page{
			Title:      m.DisplayName() + " " + m.Version,
			Script:     "renderer.js",
			Stylesheet: "renderer.css",
		},
	}
	if bundleDeps && len(m.Dependencies) > 0 {
		c.External = slices.Sorted(maps.Keys(m.Dependencies))
	}
	if mode == Production {
		c.SourceMap = SourceMapLinked
		c.Minify = true
		c.Page.CSP = contentSecurityPolicy
	} else {
		c.SourceMap = SourceMapInline
		c.Page.LiveReload = liveReload
	}
	return c
}

// NewCLITool configures the tool's own command-line bundle.
func NewCLITool(l project.Layout, mode Mode) Config {
	c := Config{
		Kind:             CLITool,
		Mode:             mode,
		Entry:            filepath.Join(l.ToolSource(), "cli.ts"),
		OutDir:           l.ToolDist(),
		OutName:          branding.CLIName(),
		WorkDir:          l.ToolRoot,
		Platform:         Node,
		Engine:           nodeEngine,
		ExternalPackages: true,
		Define:           define(mode),
		Banner:           "#!/usr/bin/env node",
		Executable:       true,
	}
	if mode == Production {
		c.Minify = true
	}
	return c
}
