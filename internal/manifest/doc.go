// Package manifest models the target project's package.json (the Project
// Manifest) and the trimmed copy written next to a production build (the
// Output Manifest). It parses manifests, validates them against an embedded
// JSON Schema, and checks semantic versions and version ranges.
package manifest
