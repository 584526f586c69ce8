package bundler

import (
	"context"
	"errors"
	"fmt"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/reactor-labs/reactor/internal/logger"
	"github.com/reactor-labs/reactor/internal/target"
	"github.com/reactor-labs/reactor/internal/templates"
)

// Session is a running development server.
type Session struct {
	URL string
	// Initial holds the diagnostics of the first build.
	Initial *Result

	bc api.BuildContext
}

// Close stops watching and shuts the server down.
func (s *Session) Close() {
	if s != nil && s.bc != nil {
		s.bc.Dispose()
		s.bc = nil
	}
}

// DevServer serves a watched UI bundle for the development session.
type DevServer struct {
	Renderer *templates.Renderer
	Host     string
}

// NewDevServer returns a DevServer bound to localhost.
func NewDevServer(r *templates.Renderer) *DevServer {
	return &DevServer{Renderer: r, Host: "localhost"}
}

// Serve builds cfg once, then watches the sources and serves cfg.OutDir on
// port. The post-build steps run after every successful build, so the page
// tracks a stylesheet that appears later. Build errors in the first build do
// not stop the server; they are returned in Session.Initial so the caller can
// show them while the developer fixes the source, and the page is written
// anyway so the window can load and reload once a fix lands.
func (d *DevServer) Serve(ctx context.Context, cfg target.Config, port int) (*Session, error) {
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid port %d", port)
	}
	if err := prepare(ctx, cfg); err != nil {
		return nil, err
	}

	opts := Options(cfg)
	opts.Plugins = append(opts.Plugins, finishPlugin(d.Renderer, cfg))
	bc, cerr := api.Context(opts)
	if cerr != nil {
		return nil, fmt.Errorf("creating build context: %w", contextError(cerr))
	}

	initial := toResult(bc.Rebuild())
	if initial.Failed() {
		if _, err := WritePage(d.Renderer, cfg); err != nil {
			bc.Dispose()
			return nil, err
		}
	}

	if err := bc.Watch(api.WatchOptions{}); err != nil {
		bc.Dispose()
		return nil, fmt.Errorf("watching sources: %w", err)
	}
	srv, err := bc.Serve(api.ServeOptions{
		Host:     d.Host,
		Port:     uint16(port),
		Servedir: cfg.OutDir,
	})
	if err != nil {
		bc.Dispose()
		return nil, fmt.Errorf("starting dev server: %w", err)
	}

	url := fmt.Sprintf("http://%s:%d", d.Host, srv.Port)
	logger.Debug("dev server listening", "url", url, "dir", cfg.OutDir)
	return &Session{URL: url, Initial: initial, bc: bc}, nil
}

// finishPlugin runs finish at the end of every build without errors. A
// failure is reported as a build error of that rebuild.
func finishPlugin(r *templates.Renderer, cfg target.Config) api.Plugin {
	return api.Plugin{
		Name: "reactor-finish",
		Setup: func(b api.PluginBuild) {
			b.OnEnd(func(res *api.BuildResult) (api.OnEndResult, error) {
				if len(res.Errors) > 0 {
					return api.OnEndResult{}, nil
				}
				if err := finish(r, cfg); err != nil {
					logger.Warn("post-build steps failed", "target", cfg.String(), "error", err)
					return api.OnEndResult{}, err
				}
				return api.OnEndResult{}, nil
			})
		},
	}
}

func contextError(cerr *api.ContextError) error {
	res := toResult(api.BuildResult{Errors: cerr.Errors})
	if len(res.Errors) == 0 {
		return errors.New("invalid build options")
	}
	return errors.New(res.Errors[0])
}
