package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/josephgoksu/taskdeck/types"
)

// fileConfig is the on-disk shape of .taskdeck.yaml.
type fileConfig struct {
	Verbose bool `yaml:"verbose"`
	Data    struct {
		File   string `yaml:"file"`
		Format string `yaml:"format"`
	} `yaml:"data"`
	Log struct {
		CrashDir string `yaml:"crashDir"`
	} `yaml:"log"`
}

const fileHeader = "# taskdeck configuration\n# Environment variables (TASKDECK_DATA_FILE, ...) and flags override these values.\n"

// DefaultConfigFile is where WriteConfigFile writes when given no path.
func DefaultConfigFile() string {
	return ConfigName + ".yaml"
}

// WriteConfigFile writes cfg as YAML to path. An existing file is only
// replaced when force is set.
func WriteConfigFile(path string, cfg types.AppConfig, force bool) error {
	if path == "" {
		path = DefaultConfigFile()
	}
	if err := Validate(&cfg); err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
	}

	var fc fileConfig
	fc.Verbose = cfg.Verbose
	fc.Data.File = cfg.Data.File
	fc.Data.Format = cfg.Data.Format
	fc.Log.CrashDir = cfg.Log.CrashDir

	var buf bytes.Buffer
	buf.WriteString(fileHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fc); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
