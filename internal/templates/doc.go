// Package templates renders the source files the scaffolder and build
// pipeline emit. Templates ship embedded in the binary (files/*.tmpl) and can
// be overridden with a directory on disk. Rendering is plain text/template
// expansion against an explicit key/value context: interpolation, range over
// ordered sequences, and conditionals. No functions beyond the template
// builtins are exposed.
package templates
