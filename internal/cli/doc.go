// Package cli defines the Cobra command tree for the reactor CLI. Each file
// in this package registers one top-level command (init, state, build, etc.)
// with the root command. Command implementations delegate to internal packages
// for business logic and only handle argument parsing and wiring.
package cli
