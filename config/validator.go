package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/abyssdigger/plog"
	"github.com/abyssdigger/plog/file"
)

const (
	NAMING_CHANGELESS = "changeless"
	NAMING_LEVEL      = "level"
	NAMING_DATE       = "date"

	COLOR_AUTO   = "auto"
	COLOR_ALWAYS = "always"
	COLOR_NEVER  = "never"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "file.max_size")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidNamings returns the accepted file.naming values
func ValidNamings() []string {
	return []string{NAMING_CHANGELESS, NAMING_LEVEL, NAMING_DATE}
}

// ValidColorModes returns the accepted console.color values
func ValidColorModes() []string {
	return []string{COLOR_AUTO, COLOR_ALWAYS, COLOR_NEVER}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	if _, err := plog.ParseLevel(c.Level); err != nil {
		errors = append(errors, ValidationError{"level", c.Level, "must be ALL, NONE or a level name"})
	}
	if c.Stack.Depth < 0 {
		errors = append(errors, ValidationError{"stack.depth", c.Stack.Depth, "must be non-negative"})
	}
	errors = append(errors, c.validateConsole()...)
	errors = append(errors, c.validateFile()...)
	errors = append(errors, c.validateRolling()...)
	errors = append(errors, c.validateCrash()...)

	return errors
}

func (c *Config) validateConsole() []ValidationError {
	if c.Console.Enabled && !slices.Contains(ValidColorModes(), c.Console.Color) {
		return []ValidationError{{"console.color", c.Console.Color, "must be one of " + strings.Join(ValidColorModes(), ", ")}}
	}
	return nil
}

func (c *Config) validateFile() []ValidationError {
	f := c.File
	if !f.Enabled {
		return nil
	}
	var errors []ValidationError
	if strings.TrimSpace(f.Dir) == "" {
		errors = append(errors, ValidationError{"file.dir", f.Dir, "is required when file logging is enabled"})
	}
	if !slices.Contains(ValidNamings(), f.Naming) {
		errors = append(errors, ValidationError{"file.naming", f.Naming, "must be one of " + strings.Join(ValidNamings(), ", ")})
	}
	if f.Naming == NAMING_CHANGELESS && strings.TrimSpace(f.Name) == "" {
		errors = append(errors, ValidationError{"file.name", f.Name, "is required for changeless naming"})
	}
	if f.MaxSize != "" {
		if _, err := file.ParseSize(f.MaxSize); err != nil {
			errors = append(errors, ValidationError{"file.max_size", f.MaxSize, "must be a size like 512k or 1MiB"})
		}
	}
	if f.RetentionDays < 0 {
		errors = append(errors, ValidationError{"file.retention_days", f.RetentionDays, "must be non-negative"})
	}
	if f.MaxBackups < 0 {
		errors = append(errors, ValidationError{"file.max_backups", f.MaxBackups, "must be non-negative"})
	}
	return errors
}

func (c *Config) validateRolling() []ValidationError {
	r := c.Rolling
	if !r.Enabled {
		return nil
	}
	var errors []ValidationError
	if strings.TrimSpace(r.Filename) == "" {
		errors = append(errors, ValidationError{"rolling.filename", r.Filename, "is required when rolling logging is enabled"})
	}
	if r.MaxSizeMB < 0 {
		errors = append(errors, ValidationError{"rolling.max_size_mb", r.MaxSizeMB, "must be non-negative"})
	}
	if r.MaxBackups < 0 {
		errors = append(errors, ValidationError{"rolling.max_backups", r.MaxBackups, "must be non-negative"})
	}
	if r.MaxAgeDays < 0 {
		errors = append(errors, ValidationError{"rolling.max_age_days", r.MaxAgeDays, "must be non-negative"})
	}
	return errors
}

func (c *Config) validateCrash() []ValidationError {
	if !c.Crash.Enabled {
		return nil
	}
	var errors []ValidationError
	if strings.TrimSpace(c.Crash.Dir) == "" {
		errors = append(errors, ValidationError{"crash.dir", c.Crash.Dir, "is required when crash reports are enabled"})
	}
	if c.Crash.RetentionDays < 0 {
		errors = append(errors, ValidationError{"crash.retention_days", c.Crash.RetentionDays, "must be non-negative"})
	}
	return errors
}
