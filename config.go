package stagecraft

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth  = 960
	DefaultHeight = 540
	DefaultTPS    = 60
)

// RunConfig configures a demo window.
type RunConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Debug      bool   `yaml:"debug"`
	TPS        int    `yaml:"tps"`
	ThemeStore string `yaml:"theme_store"`
	ModelPath  string `yaml:"model_path"`
	Demo       string `yaml:"demo"`
}

// DefaultRunConfig returns the built-in defaults.
func DefaultRunConfig() *RunConfig {
	return &RunConfig{
		Title:      "stagecraft",
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		TPS:        DefaultTPS,
		ThemeStore: ".stagecraft.yaml",
		Demo:       "solar",
	}
}

// LoadConfig overlays the YAML file at path onto DefaultRunConfig.
func LoadConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	cfg := DefaultRunConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

// SaveConfig writes cfg to path as YAML.
func SaveConfig(path string, cfg *RunConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0644), "write config %s", path)
}
