package manifest

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleManifest = `{
  "name": "my-app",
  "productName": "My App",
  "version": "1.2.3",
  "description": "A desktop app",
  "author": {"name": "Jane Doe", "email": "jane@example.com"},
  "license": "MIT",
  "main": "src/index.tsx",
  "scripts": {"start": "reactor debug"},
  "dependencies": {"react": "^18.2.0", "react-dom": "^18.2.0"},
  "devDependencies": {"reactor": "^0.3.0", "typescript": "^5.0.0"}
}`

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, sampleManifest)

	m, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error: %v", err)
	}
	if m.Name != "my-app" {
		t.Errorf("Name = %q, want %q", m.Name, "my-app")
	}
	if m.DisplayName() != "My App" {
		t.Errorf("DisplayName() = %q, want %q", m.DisplayName(), "My App")
	}
	if v, ok := m.DevDependency("reactor"); !ok || v != "^0.3.0" {
		t.Errorf("DevDependency(reactor) = %q, %v", v, ok)
	}
	if _, ok := m.DevDependency("webpack"); ok {
		t.Error("DevDependency(webpack) should be absent")
	}
}

func TestLoadNotFound(t *testing.T) {
	_, err := LoadDir(t.TempDir())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"whitespace only", "  \n"},
		{"truncated json", `{"name": "my-app",`},
		{"yaml instead of json", "name: my-app\nversion: 1.0.0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeManifest(t, dir, tt.content)
			_, err := LoadDir(dir)
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("error = %v, want ErrMalformed", err)
			}
		})
	}
}

func TestDisplayNameFallback(t *testing.T) {
	m := &Manifest{Name: "plain"}
	if got := m.DisplayName(); got != "plain" {
		t.Errorf("DisplayName() = %q, want %q", got, "plain")
	}
}

func TestOutput(t *testing.T) {
	m, err := Parse([]byte(sampleManifest), "package.json")
	if err != nil {
		t.Fatal(err)
	}

	out := m.Output("main.js", false)
	if out.Main != "main.js" {
		t.Errorf("Main = %q, want %q", out.Main, "main.js")
	}
	if out.ProductName != "My App" {
		t.Errorf("ProductName = %q, want %q", out.ProductName, "My App")
	}
	if out.Dependencies != nil {
		t.Errorf("Dependencies = %v, want nil without bundling", out.Dependencies)
	}

	withDeps := m.Output("main.js", true)
	if withDeps.Dependencies["react"] != "^18.2.0" {
		t.Errorf("Dependencies[react] = %q, want %q", withDeps.Dependencies["react"], "^18.2.0")
	}
	withDeps.Dependencies["react"] = "mutated"
	if m.Dependencies["react"] != "^18.2.0" {
		t.Error("Output must copy dependencies, not alias them")
	}
}

func TestWriteOutput(t *testing.T) {
	m, err := Parse([]byte(sampleManifest), "package.json")
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path, err := WriteOutput(dir, m.Output("main.js", false))
	if err != nil {
		t.Fatalf("WriteOutput() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, "\n  \"name\": \"my-app\"") {
		t.Errorf("output not indented with two spaces:\n%s", content)
	}
	for _, dropped := range []string{"devDependencies", "scripts", "dependencies"} {
		if strings.Contains(content, dropped) {
			t.Errorf("output manifest should not contain %q:\n%s", dropped, content)
		}
	}

	var decoded struct {
		Author struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"author"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Author.Name != "Jane Doe" || decoded.Author.Email != "jane@example.com" {
		t.Errorf("author not preserved: %+v", decoded.Author)
	}
}
