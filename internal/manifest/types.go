package manifest

import "encoding/json"

// FileName is the manifest file name looked up in a project directory.
const FileName = "package.json"

// Manifest is the subset of package.json the tool reads.
type Manifest struct {
	Name            string            `json:"name"`
	ProductName     string            `json:"productName,omitempty"`
	Version         string            `json:"version"`
	Description     string            `json:"description,omitempty"`
	Author          json.RawMessage   `json:"author,omitempty"` // string or {name, email, url}
	License         string            `json:"license,omitempty"`
	Main            string            `json:"main,omitempty"`
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
}

// OutputManifest is the package.json written into the production build
// directory. Only fields meaningful to the packaged artifact are kept.
type OutputManifest struct {
	Name         string            `json:"name"`
	ProductName  string            `json:"productName"`
	Version      string            `json:"version"`
	Description  string            `json:"description,omitempty"`
	Author       json.RawMessage   `json:"author,omitempty"`
	License      string            `json:"license,omitempty"`
	Main         string            `json:"main"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// DisplayName returns productName, falling back to name.
func (m *Manifest) DisplayName() string {
	if m.ProductName != "" {
		return m.ProductName
	}
	return m.Name
}

// DevDependency returns the declared version range for pkg under
// devDependencies.
func (m *Manifest) DevDependency(pkg string) (string, bool) {
	if m.DevDependencies == nil {
		return "", false
	}
	v, ok := m.DevDependencies[pkg]
	return v, ok && v != ""
}

// Output derives the trimmed manifest for a packaged artifact whose entry file
// is main. Runtime dependencies are carried over only when withDependencies is
// set, i.e. when they are installed into the build directory rather than
// bundled.
func (m *Manifest) Output(main string, withDependencies bool) *OutputManifest {
	out := &OutputManifest{
		Name:        m.Name,
		ProductName: m.DisplayName(),
		Version:     m.Version,
		Description: m.Description,
		Author:      m.Author,
		License:     m.License,
		Main:        main,
	}
	if withDependencies && len(m.Dependencies) > 0 {
		out.Dependencies = make(map[string]string, len(m.Dependencies))
		for k, v := range m.Dependencies {
			out.Dependencies[k] = v
		}
	}
	return out
}
