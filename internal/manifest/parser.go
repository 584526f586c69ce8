package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/reactor-labs/reactor/internal/platform"
)

var (
	// ErrNotFound is returned when the manifest file does not exist.
	ErrNotFound = errors.New("manifest not found")
	// ErrMalformed is returned when the manifest is empty or not valid JSON.
	ErrMalformed = errors.New("manifest malformed")
)

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, path)
}

// LoadDir reads <dir>/package.json.
func LoadDir(dir string) (*Manifest, error) {
	return Load(filepath.Join(dir, FileName))
}

// Parse decodes manifest JSON. path is used only in error messages.
func Parse(data []byte, path string) (*Manifest, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrMalformed, path)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrMalformed, path, err)
	}
	return &m, nil
}

// WriteOutput writes the output manifest as <dir>/package.json, indented with
// two spaces.
func WriteOutput(dir string, out *OutputManifest) (string, error) {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling output manifest: %w", err)
	}
	path := filepath.Join(dir, FileName)
	if err := platform.WriteFileAtomic(path, append(data, '\n'), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
