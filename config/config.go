// Package config loads gridsearch settings from YAML with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/gridsearch/grid"
	"github.com/katalvlaran/gridsearch/heuristic"
	"github.com/katalvlaran/gridsearch/inject"
	"github.com/katalvlaran/gridsearch/search"
)

// ErrInvalidConfig wraps the first problem found by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// validate checks the field rules declared in struct tags.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Config is the full gridsearch configuration.
type Config struct {
	Grid    Grid    `yaml:"grid"`
	Search  Search  `yaml:"search"`
	Dynamic Dynamic `yaml:"dynamic"`
	Pacing  Pacing  `yaml:"pacing"`
	Logging Logging `yaml:"logging"`
	Metrics Metrics `yaml:"metrics"`
}

// Grid controls random maze generation.
type Grid struct {
	Rows                int     `yaml:"rows"`
	Cols                int     `yaml:"cols"`
	ObstacleProbability float64 `yaml:"obstacle_probability" validate:"gte=0,lte=1"`
	// Seed 0 means time-seeded.
	Seed int64 `yaml:"seed"`
}

// Search selects the engine configuration used on the next start.
type Search struct {
	Strategy  string `yaml:"strategy"`
	Heuristic string `yaml:"heuristic"`
}

// Dynamic controls runtime obstacle injection and replanning.
type Dynamic struct {
	Enabled           bool          `yaml:"enabled"`
	SpawnProbability  float64       `yaml:"spawn_probability" validate:"gte=0,lte=1"`
	InjectInterval    time.Duration `yaml:"inject_interval" validate:"gt=0"`
	SettleDelay       time.Duration `yaml:"settle_delay" validate:"gte=0"`
	InjectWhilePaused bool          `yaml:"inject_while_paused"`
}

// Pacing is the host's visual step rate.
type Pacing struct {
	StepInterval time.Duration `yaml:"step_interval" validate:"gte=0"`
}

// Logging selects the zap level and encoding.
type Logging struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json console"`
}

// Metrics configures the Prometheus endpoint. Empty Addr disables it.
type Metrics struct {
	Addr string `yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Grid: Grid{
			Rows:                30,
			Cols:                40,
			ObstacleProbability: 0.28,
		},
		Search: Search{
			Strategy:  search.AStar.String(),
			Heuristic: heuristic.KindManhattan.String(),
		},
		Dynamic: Dynamic{
			SpawnProbability: inject.DefaultProbability,
			InjectInterval:   200 * time.Millisecond,
			SettleDelay:      400 * time.Millisecond,
		},
		Pacing: Pacing{
			StepInterval: 40 * time.Millisecond,
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads path over the defaults and applies environment overrides.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to path as YAML.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("GRIDSEARCH_ROWS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: GRIDSEARCH_ROWS=%q", ErrInvalidConfig, v)
		}
		c.Grid.Rows = n
	}
	if v := os.Getenv("GRIDSEARCH_COLS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: GRIDSEARCH_COLS=%q", ErrInvalidConfig, v)
		}
		c.Grid.Cols = n
	}
	if v := os.Getenv("GRIDSEARCH_STRATEGY"); v != "" {
		c.Search.Strategy = v
	}
	if v := os.Getenv("GRIDSEARCH_HEURISTIC"); v != "" {
		c.Search.Heuristic = v
	}
	if v := os.Getenv("GRIDSEARCH_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Strategy parses Search.Strategy.
func (c *Config) Strategy() (search.Strategy, error) {
	return search.ParseStrategy(c.Search.Strategy)
}

// Heuristic parses Search.Heuristic.
func (c *Config) Heuristic() (heuristic.Kind, error) {
	return heuristic.ParseKind(c.Search.Heuristic)
}

// Validate reports the first invalid setting wrapped in ErrInvalidConfig.
// Grid size, strategy and heuristic problems also wrap the sentinel of the
// package that owns them.
func (c *Config) Validate() error {
	if err := grid.ValidateSize(c.Grid.Rows, c.Grid.Cols); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.Strategy(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.Heuristic(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := validate.Struct(c); err != nil {
		var fields validator.ValidationErrors
		if errors.As(err, &fields) && len(fields) > 0 {
			fe := fields[0]
			return fmt.Errorf("%w: %s must satisfy %s (got %v)", ErrInvalidConfig, fieldPath(fe), rule(fe), fe.Value())
		}
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// fieldPath renders a validator namespace such as "Config.Dynamic.SettleDelay"
// without the root type.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func rule(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}
