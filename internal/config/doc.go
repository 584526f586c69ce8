// Package config manages user-level settings stored at ~/.reactor/config.yaml
// and the per-project overrides in .reactor.yaml. Load layers defaults, the
// user file, the project file and REACTOR_* environment variables into a
// typed Settings value consumed by the build pipeline and scaffolding.
package config
