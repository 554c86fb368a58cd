package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds settings shared by the timed door binaries.
type Config struct {
	// ServerAddress is the gRPC address of the door server.
	ServerAddress string `yaml:"server_addr" validate:"required,hostname_port"`
	// StateFile is the path to the JSON file storing door state.
	StateFile string `yaml:"state_file"`
	// MetricsAddress enables the Prometheus endpoint on the server when set.
	MetricsAddress string `yaml:"metrics_addr,omitempty" validate:"omitempty,hostname_port"`
	// Timeout bounds network operations and RPC calls.
	Timeout time.Duration `yaml:"timeout"`
	// DoorTimeoutSeconds is how long the door may stay open before the
	// server reports a timeout violation.
	DoorTimeoutSeconds int `yaml:"door_timeout_seconds" validate:"gte=0"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "timed-door-settings.yaml"

	// DefaultStateFilename is the default filename for door state JSON.
	DefaultStateFilename = "timed-door-state.json"

	// DefaultTimeout is the default duration for network operations.
	DefaultTimeout = 5 * time.Second

	// DefaultDoorTimeoutSeconds is used when the door timeout is not set.
	DefaultDoorTimeoutSeconds = 5

	// DefaultFilePermissions is the permission for files written by the binaries.
	DefaultFilePermissions = 0o600
)

// errConfigIsNotSet is returned when a nil configuration is provided.
var errConfigIsNotSet = errors.New("configuration is not set")

//nolint:gochecknoglobals // validator caches struct metadata, one instance is enough.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads configuration from the provided path and validates it.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save validates cfg and writes it to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks required fields and fills in defaults.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.StateFile == "" {
		cfg.StateFile = DefaultStateFilename
	}

	if cfg.DoorTimeoutSeconds == 0 {
		cfg.DoorTimeoutSeconds = DefaultDoorTimeoutSeconds
	}

	return nil
}
