package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/reactor-labs/reactor/internal/logger"
	"github.com/reactor-labs/reactor/internal/platform"
	"github.com/reactor-labs/reactor/internal/report"
	"github.com/reactor-labs/reactor/internal/templates"
)

// Kind selects what a Generator produces.
type Kind string

const (
	KindSlice     Kind = "slice"
	KindComponent Kind = "component"
)

// Verb is a scaffold operation.
type Verb string

const (
	VerbAdd    Verb = "add"
	VerbRemove Verb = "remove"
	VerbUpdate Verb = "update"
	VerbList   Verb = "list"
	VerbCheck  Verb = "check"
)

var verbAliases = map[string]Verb{
	"add":    VerbAdd,
	"remove": VerbRemove,
	"rmv":    VerbRemove,
	"del":    VerbRemove,
	"delete": VerbRemove,
	"update": VerbUpdate,
	"list":   VerbList,
	"check":  VerbCheck,
}

// ParseVerb resolves a command-line verb, including its aliases, for kind.
// Components have no index, so list and check are slice-only.
func ParseVerb(kind Kind, s string) (Verb, error) {
	v, ok := verbAliases[strings.ToLower(s)]
	if !ok || (kind == KindComponent && (v == VerbList || v == VerbCheck)) {
		return "", errorf(ErrUnknownVerb, "%s %q", kind, s)
	}
	return v, nil
}

// NeedsName reports whether v operates on a single named unit.
func (v Verb) NeedsName() bool {
	return v == VerbAdd || v == VerbRemove
}

// Result describes what a Generate call changed or found.
type Result struct {
	Written []string
	Removed []string
	Slices  []Slice
	Diff    string
}

// Generator writes and removes generated units under Root.
type Generator struct {
	Root     string
	Renderer *templates.Renderer
	Reporter *report.Reporter
}

// New returns a Generator for the project at root.
func New(root string, r *templates.Renderer, rep *report.Reporter) *Generator {
	return &Generator{Root: root, Renderer: r, Reporter: rep}
}

// Generate applies verb to the unit of the given kind. Slice add and remove
// always rebuild the index afterwards; the two writes are not atomic together,
// so an interruption between them leaves drift that `update` repairs.
func (g *Generator) Generate(kind Kind, verb Verb, name string) (*Result, error) {
	if verb.NeedsName() {
		if err := ValidateName(name); err != nil {
			return nil, err
		}
	}
	logger.Debug("scaffold", "kind", kind, "verb", verb, "name", name, "root", g.Root)

	switch kind {
	case KindSlice:
		return g.slice(verb, name)
	case KindComponent:
		return g.component(verb, name)
	default:
		return nil, errorf(ErrUnknownVerb, "unknown kind %q", kind)
	}
}

func (g *Generator) slice(verb Verb, name string) (*Result, error) {
	res := &Result{}
	path := filepath.Join(StateDir(g.Root), SliceFileName(name))

	switch verb {
	case VerbAdd:
		s := NewSlice(name)
		ctx := templates.Context{"name": s.Name, "capName": s.CapName}
		if err := g.write(path, templates.Slice, ctx); err != nil {
			return nil, err
		}
		res.Written = append(res.Written, path)
	case VerbRemove:
		if err := g.remove(path); err != nil {
			return nil, err
		}
		res.Removed = append(res.Removed, path)
	case VerbUpdate:
	case VerbList:
		slices, err := ListSlices(g.Root)
		if err != nil {
			return nil, err
		}
		for _, s := range slices {
			g.reporter().Info("%s", s.Name)
		}
		res.Slices = slices
		return res, nil
	case VerbCheck:
		diff, err := g.CheckIndex()
		if err != nil {
			return nil, err
		}
		if diff == "" {
			g.reporter().Pass("%s is up to date", g.rel(IndexPath(g.Root)))
		}
		res.Diff = diff
		return res, nil
	default:
		return nil, errorf(ErrUnknownVerb, "slice %q", verb)
	}

	slices, err := g.RebuildIndex()
	if err != nil {
		return nil, err
	}
	res.Slices = slices
	res.Written = append(res.Written, IndexPath(g.Root))
	return res, nil
}

func (g *Generator) component(verb Verb, name string) (*Result, error) {
	res := &Result{}
	path := filepath.Join(ComponentsDir(g.Root), ComponentFileName(name))

	switch verb {
	case VerbAdd:
		if err := g.write(path, templates.Component, templates.Context{"name": name}); err != nil {
			return nil, err
		}
		res.Written = append(res.Written, path)
	case VerbRemove:
		if err := g.remove(path); err != nil {
			return nil, err
		}
		res.Removed = append(res.Removed, path)
	case VerbUpdate:
		// components are not indexed
	default:
		return nil, errorf(ErrUnknownVerb, "component %q", verb)
	}
	return res, nil
}

func (g *Generator) write(path, tmpl string, ctx templates.Context) error {
	if err := g.ensureDir(filepath.Dir(path)); err != nil {
		return err
	}
	src, err := g.Renderer.Render(tmpl, ctx)
	if err != nil {
		return err
	}
	if err := platform.WriteFileAtomic(path, []byte(src), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", g.rel(path), err)
	}
	g.reporter().Pass("wrote %s", g.rel(path))
	return nil
}

func (g *Generator) remove(path string) error {
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errorf(ErrTargetNotFound, "%s", g.rel(path))
		}
		return fmt.Errorf("removing %s: %w", g.rel(path), err)
	}
	g.reporter().Pass("removed %s", g.rel(path))
	return nil
}

func (g *Generator) ensureDir(dir string) error {
	created, err := platform.EnsureDir(dir)
	if err != nil {
		return &Error{Kind: ErrDirectoryCreateFailed, Msg: g.rel(dir), Err: err}
	}
	if created {
		g.reporter().Pass("created %s", g.rel(dir))
	}
	return nil
}

func (g *Generator) reporter() *report.Reporter {
	if g.Reporter == nil {
		return report.Discard()
	}
	return g.Reporter
}

func (g *Generator) rel(path string) string {
	if rel, err := filepath.Rel(g.Root, path); err == nil {
		return rel
	}
	return path
}
