package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
// Output is intentionally not required here: the validate subcommand never
// sets it, since validation never writes anything. Each subcommand enforces
// the path flags it actually needs before calling Validate.
func (c *Config) Validate() error {
	var errors ValidationErrors

	if c.Input == "" {
		errors = append(errors, ValidationError{
			Field:   "input",
			Message: "input path is required",
		})
	}

	errors = append(errors, c.validateEmit()...)
	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateEmit() ValidationErrors {
	var errors ValidationErrors

	if c.Emit.DefaultVarcharLength <= 0 {
		errors = append(errors, ValidationError{
			Field:   "emit.default_varchar_length",
			Message: "default_varchar_length must be positive",
		})
	}

	validCollision := map[string]bool{"suffix": true, "skip": true, "": true}
	if !validCollision[c.Emit.IndexNameCollision] {
		errors = append(errors, ValidationError{
			Field:   "emit.index_name_collision",
			Message: "index_name_collision must be 'suffix' or 'skip'",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
