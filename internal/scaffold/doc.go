// Package scaffold adds and removes generated source units in a target
// project: state slices under src/state and components under src/components.
// After every slice change it rebuilds src/state/index.ts from the slice
// files actually present on disk, so the directory listing is the only slice
// registry.
package scaffold
