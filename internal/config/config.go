// Package config loads engine settings from an optional YAML file and
// CORTEX_* environment variables. Every knob has a baked-in default, so
// a bare install runs without any configuration at all.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/hrithikpandeyhp/cortex/internal/mastery"
	"github.com/hrithikpandeyhp/cortex/internal/planner"
)

// Config is the full runtime configuration.
type Config struct {
	Engine     EngineConfig     `mapstructure:"engine"`
	Session    SessionConfig    `mapstructure:"session"`
	Curriculum CurriculumConfig `mapstructure:"curriculum"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Log        LogConfig        `mapstructure:"log"`
}

// EngineConfig tunes the mastery model and the planner.
type EngineConfig struct {
	Alpha                float64 `mapstructure:"alpha"`
	Threshold            float64 `mapstructure:"threshold"`
	MinAttempts          int     `mapstructure:"min_attempts"`
	RemediationThreshold float64 `mapstructure:"remediation_threshold"`
}

// MasteryParams maps the engine section onto mastery model parameters.
func (c EngineConfig) MasteryParams() mastery.Params {
	return mastery.Params{
		Alpha:       c.Alpha,
		Threshold:   c.Threshold,
		MinAttempts: c.MinAttempts,
	}
}

// PlannerParams maps the engine section onto planner parameters.
func (c EngineConfig) PlannerParams() planner.Params {
	return planner.Params{
		RemediationThreshold: c.RemediationThreshold,
	}
}

// SessionConfig tunes turn execution.
type SessionConfig struct {
	TurnTimeout time.Duration `mapstructure:"turn_timeout"`
}

// CurriculumConfig selects the topic catalog. An empty Dir uses the
// built-in catalog.
type CurriculumConfig struct {
	Dir string `mapstructure:"dir"`
}

// StorageConfig selects the progress database. An empty DBPath resolves
// through CORTEX_DB and the XDG data directory.
type StorageConfig struct {
	DBPath string `mapstructure:"db_path"`
}

// LogConfig tunes structured logging.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Load reads configuration from the given file, or from the standard
// search paths when path is empty. A missing config file is not an
// error; environment variables and defaults still apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path == "" {
		path = os.Getenv("CORTEX_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$XDG_CONFIG_HOME/cortex")
		v.AddConfigPath("$HOME/.config/cortex")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("CORTEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Short-form variables shared with the rest of the tool.
	v.BindEnv("storage.db_path", "CORTEX_DB")
	v.BindEnv("log.file", "CORTEX_LOG")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("engine.alpha", 0.3)
	v.SetDefault("engine.threshold", 0.8)
	v.SetDefault("engine.min_attempts", 3)
	v.SetDefault("engine.remediation_threshold", 0.5)

	v.SetDefault("session.turn_timeout", "30s")

	v.SetDefault("curriculum.dir", "")
	v.SetDefault("storage.db_path", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 20)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 30)
}

// Validate checks every section, delegating parameter ranges to the
// packages that own them.
func (c *Config) Validate() error {
	if err := c.Engine.MasteryParams().Validate(); err != nil {
		return err
	}
	if err := c.Engine.PlannerParams().Validate(); err != nil {
		return err
	}
	if c.Session.TurnTimeout <= 0 {
		return fmt.Errorf("config: session turn timeout must be positive, got %v", c.Session.TurnTimeout)
	}
	return nil
}
