// Package config loads taskdeck settings from flags, environment, .env and
// an optional YAML config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/josephgoksu/taskdeck/internal/logger"
	"github.com/josephgoksu/taskdeck/store"
	"github.com/josephgoksu/taskdeck/types"
)

const (
	// ConfigName is the config file base name searched for in SearchPaths.
	ConfigName = ".taskdeck"
	// EnvPrefix prefixes environment overrides, e.g. TASKDECK_DATA_FILE.
	EnvPrefix = "TASKDECK"
	// DefaultEnvFile is loaded if present.
	DefaultEnvFile = ".env"
)

// validate caches struct info for AppConfig.
var validate = validator.New()

// Options controls where Load looks for configuration.
type Options struct {
	// ConfigFile is an explicit config path (the --config flag). When set,
	// the file must exist.
	ConfigFile string
	// EnvFile defaults to DefaultEnvFile. A missing file is ignored.
	EnvFile string
	// SearchPaths are searched for ConfigName.* when ConfigFile is empty.
	// Defaults to the working directory then $HOME.
	SearchPaths []string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("verbose", false)
	v.SetDefault("config", "")
	v.SetDefault("data.file", store.DefaultDataFile)
	v.SetDefault("data.format", store.DefaultDataFormat)
	v.SetDefault("log.crashDir", logger.DefaultCrashDir)
}

// Load resolves configuration into an AppConfig. Precedence follows viper:
// flags bound on v, then environment (including .env), then the config
// file, then defaults.
func Load(v *viper.Viper, opts Options) (*types.AppConfig, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if err := readConfigFile(v, opts); err != nil {
		return nil, err
	}

	var cfg types.AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Config = v.ConfigFileUsed()
	cfg.Data.Format = strings.ToLower(strings.TrimSpace(cfg.Data.Format))
	cfg.Data.File = strings.TrimSpace(cfg.Data.File)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readConfigFile(v *viper.Viper, opts Options) error {
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", opts.ConfigFile, err)
		}
		return nil
	}

	paths := opts.SearchPaths
	if paths == nil {
		paths = []string{"."}
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, home)
		}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName(ConfigName)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", v.ConfigFileUsed(), err)
	}
	return nil
}

// Validate checks cfg and reports the first invalid field.
func Validate(cfg *types.AppConfig) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		e := verrs[0]
		return types.NewValidationError(strings.ToLower(strings.TrimPrefix(e.Namespace(), "AppConfig.")),
			fmt.Sprintf("rule '%s' failed (value: '%v')", e.Tag(), e.Value()))
	}
	return fmt.Errorf("invalid configuration: %w", err)
}
