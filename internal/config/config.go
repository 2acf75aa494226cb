package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultSeason = 2021
	DefaultFile   = "teamsclean.toml"
)

var ErrInvalidConfig = errors.New("invalid teamsclean config")

// Config drives a roster cleanup run. Input and Output are resolved against
// ResourceDir unless absolute; empty values derive from Season.
type Config struct {
	Season          int    `toml:"season" comment:"roster season; selects Teams_<season>_Raw.txt and Teams_<season>.txt"`
	ResourceDir     string `toml:"resource_dir" comment:"directory holding the roster files, relative to this file"`
	Input           string `toml:"input" comment:"raw roster (placeholder codes included)"`
	Output          string `toml:"output" comment:"cleaned roster"`
	MetricsTextfile string `toml:"metrics_textfile" comment:"optional node_exporter textfile target"`
	Verify          bool   `toml:"verify" comment:"load the cleaned roster after writing it"`
}

type fileConfig struct {
	Season          int    `toml:"season"`
	ResourceDir     string `toml:"resource_dir"`
	Input           string `toml:"input"`
	Output          string `toml:"output"`
	MetricsTextfile string `toml:"metrics_textfile"`
	Verify          bool   `toml:"verify"`
}

func Default() Config {
	return Config{
		Season:      DefaultSeason,
		ResourceDir: ".",
		Verify:      true,
	}
}

// Load overlays the keys defined in the TOML file at path onto Default.
// A relative resource_dir is taken relative to the file's directory.
func Load(path string) (Config, error) {
	cfg := Default()
	cfg.ResourceDir = filepath.Dir(path)

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%w: unknown keys %s", ErrInvalidConfig, strings.Join(keys, ", "))
	}

	if meta.IsDefined("season") {
		cfg.Season = raw.Season
	}
	if meta.IsDefined("resource_dir") {
		dir := strings.TrimSpace(raw.ResourceDir)
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(filepath.Dir(path), dir)
		}
		cfg.ResourceDir = dir
	}
	if meta.IsDefined("input") {
		cfg.Input = strings.TrimSpace(raw.Input)
	}
	if meta.IsDefined("output") {
		cfg.Output = strings.TrimSpace(raw.Output)
	}
	if meta.IsDefined("metrics_textfile") {
		cfg.MetricsTextfile = strings.TrimSpace(raw.MetricsTextfile)
	}
	if meta.IsDefined("verify") {
		cfg.Verify = raw.Verify
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Season <= 0 {
		return fmt.Errorf("%w: season must be positive, got %d", ErrInvalidConfig, c.Season)
	}
	if strings.TrimSpace(c.ResourceDir) == "" {
		return fmt.Errorf("%w: resource_dir is required", ErrInvalidConfig)
	}
	if filepath.Clean(c.InputPath()) == filepath.Clean(c.OutputPath()) {
		return fmt.Errorf("%w: input and output are the same file (%s)", ErrInvalidConfig, c.InputPath())
	}
	return nil
}

func (c Config) InputPath() string {
	name := c.Input
	if name == "" {
		name = fmt.Sprintf("Teams_%d_Raw.txt", c.Season)
	}
	return c.resolve(name)
}

func (c Config) OutputPath() string {
	name := c.Output
	if name == "" {
		name = fmt.Sprintf("Teams_%d.txt", c.Season)
	}
	return c.resolve(name)
}

// MetricsPath is empty when metrics export is disabled.
func (c Config) MetricsPath() string {
	if c.MetricsTextfile == "" {
		return ""
	}
	return c.resolve(c.MetricsTextfile)
}

func (c Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.ResourceDir, name)
}
