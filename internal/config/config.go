// Package config provides configuration structures and loading for erdc.
package config

import "github.com/erdc/erdc/internal/ddl"

// Config represents the complete application configuration: CLI input/output
// paths, emission knobs, and logging settings. Input/Output are normally
// supplied as CLI flags; a YAML config file can carry Emit/Logging defaults,
// with CLI flags overriding them (see ApplyOverrides).
type Config struct {
	Input   string      `yaml:"input" mapstructure:"input"`
	Output  string      `yaml:"output" mapstructure:"output"`
	Emit    ddl.Options `yaml:"emit" mapstructure:"emit"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Emit: ddl.DefaultOptions(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}
