// Package bundler compiles build targets with the esbuild Go API.
//
// Compiler performs one synchronous build and reports every error and
// warning esbuild produced. DevServer keeps a watching build context alive
// and serves its output directory over HTTP for the development session.
// Both write the HTML page of UI-process targets next to the bundle.
package bundler
