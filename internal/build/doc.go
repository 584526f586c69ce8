// Package build drives the development session, the production build and
// the tool's own distribution build.
//
// Each operation is a Pipeline of named stages grouped into states
// (validating, compiling, packaging, launching). Stages run strictly in order
// and the first failure stops the pipeline; nothing is retried. External
// tools are reached through the small interfaces in toolchain.go so tests can
// substitute fakes.
package build
