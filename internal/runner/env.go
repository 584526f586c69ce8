package runner

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joho/godotenv"
)

// EnvFile is the optional project file merged into child environments.
const EnvFile = ".env"

// Environ returns the current environment overlaid with <dir>/.env and then
// with extra. Later sources win.
func Environ(dir string, extra map[string]string) ([]string, error) {
	env := os.Environ()

	if dir != "" {
		path := filepath.Join(dir, EnvFile)
		vars, err := godotenv.Read(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading %s: %w", path, err)
		default:
			env = overlay(env, vars)
		}
	}
	return overlay(env, extra), nil
}

func overlay(env []string, vars map[string]string) []string {
	for _, k := range slices.Sorted(maps.Keys(vars)) {
		env = setEnv(env, k, vars[k])
	}
	return env
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}

func baseEnv(env []string) []string {
	if env == nil {
		return os.Environ()
	}
	return env
}
