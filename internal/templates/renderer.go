package templates

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"text/template"

	lru "github.com/hashicorp/golang-lru/v2"
)

//go:embed files/*.tmpl
var embedded embed.FS

const (
	ext       = ".tmpl"
	cacheSize = 32
)

// Template names.
const (
	Slice      = "stateSlice.ts"
	StateIndex = "state.ts"
	Component  = "component.tsx"
	HTMLPage   = "index.html"
	App        = "app.tsx"
	TSConfig   = "tsconfig.json"
	GitIgnore  = "gitignore"
)

// Names lists every template the tool renders. A templates_dir override must
// provide all of them.
var Names = []string{Slice, StateIndex, Component, HTMLPage, App, TSConfig, GitIgnore}

// ErrTemplateNotFound is the kind of a TemplateError raised for an unknown
// template name.
var ErrTemplateNotFound = errors.New("template not found")

// Error reports a template that could not be loaded or rendered.
type Error struct {
	Kind error
	Name string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Name)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Name, e.Err)
}

func (e *Error) Unwrap() error { return e.Kind }

var errRender = errors.New("template render failed")

// Context is the substitution mapping handed to a template.
type Context map[string]any

// Renderer loads named templates from a filesystem and expands them.
type Renderer struct {
	fsys  fs.FS
	cache *lru.Cache[string, *template.Template]
}

// New returns a Renderer over the embedded template set.
func New() *Renderer {
	sub, err := fs.Sub(embedded, "files")
	if err != nil {
		// The embed directive guarantees "files" exists.
		panic(err)
	}
	return NewFS(sub)
}

// NewDir returns a Renderer reading templates from dir. An empty dir selects
// the embedded set.
func NewDir(dir string) *Renderer {
	if dir == "" {
		return New()
	}
	return NewFS(os.DirFS(dir))
}

// NewFS returns a Renderer reading <name>.tmpl files from fsys.
func NewFS(fsys fs.FS) *Renderer {
	cache, err := lru.New[string, *template.Template](cacheSize)
	if err != nil {
		panic(err)
	}
	return &Renderer{fsys: fsys, cache: cache}
}

// Has reports whether the named template exists.
func (r *Renderer) Has(name string) bool {
	_, err := fs.Stat(r.fsys, name+ext)
	return err == nil
}

// Render expands the named template against ctx.
func (r *Renderer) Render(name string, ctx Context) (string, error) {
	tmpl, err := r.load(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return "", &Error{Kind: errRender, Name: name, Err: err}
	}
	return buf.String(), nil
}

func (r *Renderer) load(name string) (*template.Template, error) {
	if tmpl, ok := r.cache.Get(name); ok {
		return tmpl, nil
	}

	src, err := fs.ReadFile(r.fsys, name+ext)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &Error{Kind: ErrTemplateNotFound, Name: name}
		}
		return nil, &Error{Kind: errRender, Name: name, Err: err}
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(src))
	if err != nil {
		return nil, &Error{Kind: errRender, Name: name, Err: err}
	}
	r.cache.Add(name, tmpl)
	return tmpl, nil
}
