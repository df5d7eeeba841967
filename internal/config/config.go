package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ProjectConfig carries optional defaults from canvec.yaml. Everything in
// it can be overridden by environment variables and flags; the file only
// pins per-project defaults (a dataset's encoding, a shared scratch
// volume) so batch scripts don't repeat them.
type ProjectConfig struct {
	SRID       int    `yaml:"srid,omitempty"`
	Encoding   string `yaml:"encoding,omitempty"`
	Schema     string `yaml:"schema,omitempty"`
	ScratchDir string `yaml:"scratch_dir,omitempty"`
	Converter  string `yaml:"converter,omitempty"`
}

const ConfigFileName = "canvec.yaml"

// Load reads canvec.yaml from dir. Returns ErrConfigNotFound if the file
// does not exist.
func Load(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
