package bundler

import (
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/reactor-labs/reactor/internal/target"
)

var assetLoaders = map[string]api.Loader{
	".png":   api.LoaderFile,
	".jpg":   api.LoaderFile,
	".gif":   api.LoaderFile,
	".svg":   api.LoaderFile,
	".woff":  api.LoaderFile,
	".woff2": api.LoaderFile,
	".ttf":   api.LoaderFile,
}

var engines = map[string]api.EngineName{
	"chrome": api.EngineChrome,
	"node":   api.EngineNode,
}

// Options translates a target configuration into esbuild build options.
func Options(cfg target.Config) api.BuildOptions {
	opts := api.BuildOptions{
		EntryPointsAdvanced: []api.EntryPoint{{InputPath: cfg.Entry, OutputPath: cfg.OutName}},
		Outdir:              cfg.OutDir,
		AbsWorkingDir:       cfg.WorkDir,
		Bundle:              true,
		Write:               true,
		LogLevel:            api.LogLevelSilent,
		External:            append([]string(nil), cfg.External...),
		Alias:               aliases(cfg),
		Define:              cfg.Define,
		Loader:              assetLoaders,
		MinifyWhitespace:    cfg.Minify,
		MinifyIdentifiers:   cfg.Minify,
		MinifySyntax:        cfg.Minify,
	}

	switch cfg.Platform {
	case target.Node:
		opts.Platform = api.PlatformNode
		opts.Format = api.FormatCommonJS
	default:
		opts.Platform = api.PlatformBrowser
		opts.Format = api.FormatIIFE
	}
	if cfg.ExternalPackages {
		opts.Packages = api.PackagesExternal
	}
	if name, ok := engines[cfg.Engine.Name]; ok {
		opts.Engines = []api.Engine{{Name: name, Version: cfg.Engine.Version}}
	}
	if cfg.Banner != "" {
		opts.Banner = map[string]string{"js": cfg.Banner}
	}

	switch cfg.SourceMap {
	case target.SourceMapInline:
		opts.Sourcemap = api.SourceMapInline
	case target.SourceMapLinked:
		opts.Sourcemap = api.SourceMapLinked
	default:
		opts.Sourcemap = api.SourceMapNone
	}
	return opts
}

// aliases rewrites absolute alias targets relative to the working directory,
// the form esbuild resolves them in.
func aliases(cfg target.Config) map[string]string {
	if len(cfg.Alias) == 0 {
		return nil
	}
	out := make(map[string]string, len(cfg.Alias))
	for k, v := range cfg.Alias {
		if filepath.IsAbs(v) && cfg.WorkDir != "" {
			if rel, err := filepath.Rel(cfg.WorkDir, v); err == nil && !strings.HasPrefix(rel, "..") {
				v = "./" + filepath.ToSlash(rel)
			}
		}
		out[k] = v
	}
	return out
}
