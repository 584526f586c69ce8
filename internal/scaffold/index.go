package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/reactor-labs/reactor/internal/branding"
	"github.com/reactor-labs/reactor/internal/logger"
	"github.com/reactor-labs/reactor/internal/platform"
	"github.com/reactor-labs/reactor/internal/templates"
)

// ListSlices scans <root>/src/state and returns one Slice per file whose
// name SliceFileName could have produced, in directory listing order.
// Foreign files are skipped. A missing directory yields no slices.
func ListSlices(root string) ([]Slice, error) {
	entries, err := os.ReadDir(StateDir(root))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing slices: %w", err)
	}

	var slices []Slice
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name, ok := SliceNameFromFile(e.Name())
		if !ok {
			if e.Name() != indexFileName {
				logger.Debug("skipping foreign file in state directory", "file", e.Name())
			}
			continue
		}
		slices = append(slices, NewSlice(name))
	}
	return slices, nil
}

// RenderIndex returns the index source exporting exactly the given slices, in
// the given order.
func RenderIndex(r *templates.Renderer, slices []Slice) (string, error) {
	names := make([]string, 0, len(slices))
	for _, s := range slices {
		names = append(names, s.Name)
	}
	return r.Render(templates.StateIndex, templates.Context{
		"cliName":     branding.CLIName(),
		"packageName": branding.PackageName(),
		"slices":      names,
	})
}

// RebuildIndex re-derives the slice set from disk and overwrites the index.
// Two calls with no intervening change write identical bytes.
func (g *Generator) RebuildIndex() ([]Slice, error) {
	if err := g.ensureDir(StateDir(g.Root)); err != nil {
		return nil, err
	}
	slices, err := ListSlices(g.Root)
	if err != nil {
		return nil, err
	}
	src, err := RenderIndex(g.Renderer, slices)
	if err != nil {
		return nil, err
	}

	path := IndexPath(g.Root)
	if err := platform.WriteFileAtomic(path, []byte(src), 0o644); err != nil {
		return nil, fmt.Errorf("writing state index: %w", err)
	}
	g.reporter().Pass("rebuilt %s (%d slices)", g.rel(path), len(slices))
	return slices, nil
}

// CheckIndex compares the on-disk index with a fresh rendering. It returns an
// empty diff when they match. A missing index counts as drift.
func (g *Generator) CheckIndex() (string, error) {
	slices, err := ListSlices(g.Root)
	if err != nil {
		return "", err
	}
	want, err := RenderIndex(g.Renderer, slices)
	if err != nil {
		return "", err
	}

	path := IndexPath(g.Root)
	have, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("reading state index: %w", err)
	}
	if string(have) == want {
		return "", nil
	}

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(have)),
		B:        difflib.SplitLines(want),
		FromFile: g.rel(path),
		ToFile:   "generated",
		Context:  2,
	})
}
