// Package config provides Viper-based configuration loading for the sheet roller.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is "stderr", "stdout" or a file path. Logs default to stderr so
	// they never interleave with roll output.
	Output string `mapstructure:"output"`
}

// DiceConfig holds roller settings.
type DiceConfig struct {
	// HistorySize is how many recent rolls are retained.
	HistorySize int `mapstructure:"history_size"`
	// Seed selects a reproducible source when non-zero; zero uses crypto/rand.
	Seed int64 `mapstructure:"seed"`
}

// CombatConfig holds formula and initiative settings.
type CombatConfig struct {
	// TurnTracking is "identity" or "index".
	TurnTracking string `mapstructure:"turn_tracking"`
	// FormulasFile optionally overrides the built-in formula table.
	FormulasFile string `mapstructure:"formulas_file"`
}

// ContentConfig locates reference data files.
type ContentConfig struct {
	// SkillsFile is an optional YAML skill catalogue.
	SkillsFile string `mapstructure:"skills_file"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Dice    DiceConfig    `mapstructure:"dice"`
	Combat  CombatConfig  `mapstructure:"combat"`
	Content ContentConfig `mapstructure:"content"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateDice(c.Dice); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateCombat(c.Combat); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	if l.Output == "" {
		return errors.New("logging.output must not be empty")
	}
	return nil
}

func validateDice(d DiceConfig) error {
	if d.HistorySize < 1 {
		return fmt.Errorf("dice.history_size must be >= 1, got %d", d.HistorySize)
	}
	return nil
}

func validateCombat(c CombatConfig) error {
	validModes := map[string]bool{"identity": true, "index": true}
	if !validModes[c.TurnTracking] {
		return fmt.Errorf("combat.turn_tracking must be one of [identity, index], got %q", c.TurnTracking)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with SHEET_ prefix
	v.SetEnvPrefix("SHEET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance holding only the default values.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("dice.history_size", 20)
	v.SetDefault("dice.seed", 0)

	v.SetDefault("combat.turn_tracking", "identity")
	v.SetDefault("combat.formulas_file", "")

	v.SetDefault("content.skills_file", "")
}
