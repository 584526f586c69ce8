package bundler

import (
	"fmt"
	"path/filepath"

	"github.com/reactor-labs/reactor/internal/platform"
	"github.com/reactor-labs/reactor/internal/target"
	"github.com/reactor-labs/reactor/internal/templates"
)

// PageName is the HTML document written next to a UI bundle.
const PageName = "index.html"

// WritePage renders cfg.Page into <OutDir>/index.html. The stylesheet link
// is only emitted when the build produced one.
func WritePage(r *templates.Renderer, cfg target.Config) (string, error) {
	if cfg.Page == nil {
		return "", nil
	}
	stylesheet := cfg.Page.Stylesheet
	if stylesheet != "" && !platform.Exists(filepath.Join(cfg.OutDir, stylesheet)) {
		stylesheet = ""
	}

	html, err := r.Render(templates.HTMLPage, templates.Context{
		"title":      cfg.Page.Title,
		"csp":        cfg.Page.CSP,
		"stylesheet": stylesheet,
		"script":     cfg.Page.Script,
		"liveReload": cfg.Page.LiveReload,
	})
	if err != nil {
		return "", err
	}

	path := filepath.Join(cfg.OutDir, PageName)
	if err := platform.WriteFileAtomic(path, []byte(html), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
