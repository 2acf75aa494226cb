package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Template renders the default config with derived file names spelled out.
func Template() (string, error) {
	cfg := Default()
	cfg.Input = fmt.Sprintf("Teams_%d_Raw.txt", cfg.Season)
	cfg.Output = fmt.Sprintf("Teams_%d.txt", cfg.Season)
	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return string(data), nil
}

func WriteTemplate(path string, overwrite bool) error {
	template, err := Template()
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o644)
}
