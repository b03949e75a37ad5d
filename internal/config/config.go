// Package config loads shapegen.toml.
package config

import (
	"errors"
	"fmt"
	gotoken "go/token"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"

	"shapegen/internal/emit"
	"shapegen/internal/parser"
)

// FileName is the name of the configuration file looked up from the
// input directory upwards.
const FileName = "shapegen.toml"

type Config struct {
	// Package is the package clause of generated files. Empty means the
	// name of the input file's directory.
	Package string `toml:"package"`
	// Root resolves file_words! paths. Empty means the input file's
	// directory. Relative roots are relative to the config file.
	Root          string `toml:"root"`
	HygienePrefix string `toml:"hygiene_prefix"`
	RuntimePath   string `toml:"runtime_path"`
	Jobs          int    `toml:"jobs"`
	CacheDir      string `toml:"cache_dir"`
	// Types maps shape type names to Go type expressions.
	Types map[string]string `toml:"types"`

	// Path is the file the config was loaded from, if any.
	Path string `toml:"-"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		HygienePrefix: parser.DefaultHygienePrefix,
		RuntimePath:   emit.DefaultRuntimePath,
		Jobs:          runtime.GOMAXPROCS(0),
	}
}

// Find looks for shapegen.toml in startDir and its parents.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if cfg.Root != "" && !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(filepath.Dir(path), filepath.FromSlash(cfg.Root))
	}
	if cfg.CacheDir != "" && !filepath.IsAbs(cfg.CacheDir) {
		cfg.CacheDir = filepath.Join(filepath.Dir(path), filepath.FromSlash(cfg.CacheDir))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover loads the config governing startDir, or the defaults when
// there is none.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

func (c Config) Validate() error {
	if c.Package != "" && !gotoken.IsIdentifier(c.Package) {
		return fmt.Errorf("package %q is not a valid Go identifier", c.Package)
	}
	if !gotoken.IsIdentifier(c.HygienePrefix) {
		return fmt.Errorf("hygiene_prefix %q must be a valid Go identifier", c.HygienePrefix)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	for name, goType := range c.Types {
		if strings.TrimSpace(goType) == "" {
			return fmt.Errorf("[types].%s is empty", name)
		}
	}
	return nil
}

// PackageFor returns the package name for generated code next to input.
func (c Config) PackageFor(input string) string {
	if c.Package != "" {
		return c.Package
	}
	abs, err := filepath.Abs(input)
	if err != nil {
		return "main"
	}
	name := strings.Map(func(r rune) rune {
		if r == '-' || r == '.' {
			return '_'
		}
		return r
	}, filepath.Base(filepath.Dir(abs)))
	if !gotoken.IsIdentifier(name) {
		return "main"
	}
	return name
}

// RootFor returns the directory file_words! paths of input resolve
// against.
func (c Config) RootFor(input string) string {
	if c.Root != "" {
		return c.Root
	}
	return filepath.Dir(input)
}
