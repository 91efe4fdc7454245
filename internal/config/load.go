package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/xaphier/Eternal-Lands/pkg/resource"
)

// FileName is the name of the config file looked up by default.
const FileName = "resourcegen.yaml"

// ErrInvalid is returned when a loaded configuration cannot drive a run.
var ErrInvalid = errors.New("invalid config")

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the fixture directory exists, that the output does not
// clobber a directory or a fixture, and that the header symbols are C++
// identifiers.
func (c *Config) Validate() error {
	info, err := os.Stat(c.Input.Dir)
	if err != nil {
		return fmt.Errorf("%w: input.dir: %w", ErrInvalid, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: input.dir %s is not a directory", ErrInvalid, c.Input.Dir)
	}

	if out := c.Output.Path; out != "" {
		if info, err := os.Stat(out); err == nil && info.IsDir() {
			return fmt.Errorf("%w: output.path %s is a directory", ErrInvalid, out)
		}
		if resource.IsFixtureName(filepath.Base(out)) && sameDir(filepath.Dir(out), c.Input.Dir) {
			return fmt.Errorf("%w: output.path %s would overwrite a fixture", ErrInvalid, out)
		}
	}

	if !identifier.MatchString(c.Header.Guard) {
		return fmt.Errorf("%w: header.guard %q is not an identifier", ErrInvalid, c.Header.Guard)
	}
	if !identifier.MatchString(c.Header.Namespace) {
		return fmt.Errorf("%w: header.namespace %q is not an identifier", ErrInvalid, c.Header.Namespace)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("%w: watch.debounce %v is negative", ErrInvalid, c.Watch.Debounce)
	}
	return nil
}

func sameDir(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./" + FileName,
		filepath.Join(ConfigDir(), FileName),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "resourcegen")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "resourcegen")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "resourcegen")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "resourcegen")
	}
}

// loadFromFile merges a YAML file over cfg. Unknown keys are rejected so a
// misspelled section does not silently fall back to defaults.
func loadFromFile(cfg *Config, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	dec := yaml.NewDecoder(file)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
