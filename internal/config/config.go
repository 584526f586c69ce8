package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/reactor-labs/reactor/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"

	// ProjectFile is the optional per-project override file.
	ProjectFile = ".reactor.yaml"
)

// Setting keys.
const (
	KeyDevPort            = "dev_port"
	KeyNPM                = "npm"
	KeyElectron           = "electron"
	KeyPackager           = "packager"
	KeyPackageOut         = "package_out"
	KeyToolRoot           = "tool_root"
	KeyTemplatesDir       = "templates_dir"
	KeyBundleDependencies = "bundle_dependencies"
	KeyMinElectron        = "min_electron"
)

// Settings is the resolved configuration for one command invocation.
type Settings struct {
	DevPort            int    `mapstructure:"dev_port"`
	NPM                string `mapstructure:"npm"`
	Electron           string `mapstructure:"electron"`
	Packager           string `mapstructure:"packager"`
	PackageOut         string `mapstructure:"package_out"`
	ToolRoot           string `mapstructure:"tool_root"`
	TemplatesDir       string `mapstructure:"templates_dir"`
	BundleDependencies bool   `mapstructure:"bundle_dependencies"`
	MinElectron        string `mapstructure:"min_electron"`
}

var defaults = map[string]any{
	KeyDevPort:            3000,
	KeyNPM:                "npm",
	KeyElectron:           "electron",
	KeyPackager:           "electron-packager",
	KeyPackageOut:         "dist",
	KeyToolRoot:           "",
	KeyTemplatesDir:       "",
	KeyBundleDependencies: false,
	KeyMinElectron:        ">= 13.0.0",
}

// user holds the user-level file only, so Set never writes project overrides
// back into ~/.reactor/config.yaml.
var user = viper.New()

// Dir returns the path to the config directory (~/.reactor/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the user config file (~/.reactor/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load reads the user config file into the user store.
func Load() {
	user = viper.New()
	user.SetConfigFile(FilePath())
	user.SetConfigType(fileType)

	// Ignore error if config file doesn't exist yet.
	_ = user.ReadInConfig()
}

// Resolve layers defaults, the user file, <projectDir>/.reactor.yaml and the
// environment, in increasing precedence.
func Resolve(projectDir string) (*Settings, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()

	if _, err := os.Stat(FilePath()); err == nil {
		v.SetConfigFile(FilePath())
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", FilePath(), err)
		}
	}

	if projectDir != "" {
		projectPath := filepath.Join(projectDir, ProjectFile)
		if _, err := os.Stat(projectPath); err == nil {
			v.SetConfigFile(projectPath)
			if err := v.MergeInConfig(); err != nil {
				return nil, fmt.Errorf("reading %s: %w", projectPath, err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	if s.DevPort <= 0 || s.DevPort > 65535 {
		return nil, fmt.Errorf("invalid %s %d: must be between 1 and 65535", KeyDevPort, s.DevPort)
	}
	return &s, nil
}

// Default returns the built-in settings without reading any file or env var.
func Default() *Settings {
	return &Settings{
		DevPort:     defaults[KeyDevPort].(int),
		NPM:         defaults[KeyNPM].(string),
		Electron:    defaults[KeyElectron].(string),
		Packager:    defaults[KeyPackager].(string),
		PackageOut:  defaults[KeyPackageOut].(string),
		MinElectron: defaults[KeyMinElectron].(string),
	}
}

// Keys returns all known setting keys.
func Keys() []string {
	return []string{
		KeyDevPort, KeyNPM, KeyElectron, KeyPackager, KeyPackageOut,
		KeyToolRoot, KeyTemplatesDir, KeyBundleDependencies, KeyMinElectron,
	}
}

// IsKnown reports whether key is a recognised setting.
func IsKnown(key string) bool {
	_, ok := defaults[key]
	return ok
}

// Get returns a user config value by key. Returns empty string if not set.
func Get(key string) string {
	return user.GetString(key)
}

// Set writes a config key-value pair and saves the user config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	user.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := user.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
