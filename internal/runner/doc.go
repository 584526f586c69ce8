// Package runner invokes the external tools a build depends on: npm, the
// electron host runtime and electron-packager. Every command line is echoed
// through the report package before it runs.
package runner
