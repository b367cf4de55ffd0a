package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"github.com/drakos74/forsight/internal/algo/forecast"
	"github.com/drakos74/forsight/internal/algo/forecast/panel"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const (
	path = "infra/config"
	// Prefix is the prefix of the environment overrides.
	Prefix = "FORSIGHT"
)

// Config is the application config.
type Config struct {
	Forecast forecast.Config `yaml:"forecast"`
	Panel    panel.Config    `yaml:"panel"`
	Storage  Storage         `yaml:"storage"`
	Server   Server          `yaml:"server"`
	Logging  Logging         `yaml:"logging"`
}

type Storage struct {
	Dir string `yaml:"dir" default:"file-storage" validate:"required"`
	// Archive stores every produced forecast under the storage dir.
	Archive bool `yaml:"archive"`
}

type Server struct {
	Port    int           `yaml:"port" default:"8080" validate:"gte=1,lte=65535"`
	Timeout time.Duration `yaml:"timeout" default:"2m" validate:"gt=0"`
	// Limit is the number of requests processed concurrently.
	Limit int `yaml:"limit" default:"2" validate:"gte=1"`
}

type Logging struct {
	Level string `yaml:"level" default:"info" validate:"oneof=trace debug info warn error"`
}

// overrides are the values that can be set from the environment.
type overrides struct {
	Level   string        `envconfig:"LOG_LEVEL"`
	Dir     string        `envconfig:"STORAGE_DIR"`
	Port    int           `envconfig:"SERVER_PORT"`
	Timeout time.Duration `envconfig:"SERVER_TIMEOUT"`
	Horizon int           `envconfig:"HORIZON"`
	Seed    *int64        `envconfig:"SEED"`
}

func (o overrides) apply(cfg *Config) {
	if o.Level != "" {
		cfg.Logging.Level = o.Level
	}
	if o.Dir != "" {
		cfg.Storage.Dir = o.Dir
	}
	if o.Port > 0 {
		cfg.Server.Port = o.Port
	}
	if o.Timeout > 0 {
		cfg.Server.Timeout = o.Timeout
	}
	if o.Horizon > 0 {
		cfg.Forecast.Horizon = o.Horizon
	}
	if o.Seed != nil {
		cfg.Panel.Seed = *o.Seed
	}
}

var validate = validator.New()

// Parse builds the config from the given yaml payload,
// applying the defaults first and the environment overrides last.
func Parse(b []byte) (*Config, error) {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("could not set defaults: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}
	var o overrides
	if err := envconfig.Process(Prefix, &o); err != nil {
		return nil, fmt.Errorf("could not read environment: %w", err)
	}
	o.apply(&cfg)
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Load loads the config from the given file.
func Load(file string) (*Config, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("could not load config from '%s': %w", file, err)
	}
	return Parse(b)
}

// MustLoad loads the config for the given key from the default config path.
func MustLoad(key string) *Config {
	file := filepath.Join(path, fmt.Sprintf("%s.yaml", key))
	cfg, err := Load(file)
	if err != nil {
		panic(fmt.Sprintf("could not load config for %s: %s", key, err.Error()))
	}
	log.Info().Str("config", file).Msg("loaded config")
	return cfg
}
