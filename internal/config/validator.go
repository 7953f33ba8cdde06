package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/robert-malhotra/go-tdms/internal/logging"
	"github.com/robert-malhotra/go-tdms/tdms"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "export.in_dtype")
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

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, c.validateExport()...)
	errors = append(errors, c.validateLogging()...)
	return errors
}

func (c *Config) validateExport() []ValidationError {
	var errors []ValidationError
	e := c.Export

	required := []struct {
		field, value string
	}{
		{"export.directory", e.Directory},
		{"export.filename", e.Filename},
		{"export.group", e.Group},
		{"export.out_channel", e.OutChannel},
		{"export.in_channel", e.InChannel},
		{"export.format", e.Format},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errors = append(errors, ValidationError{Field: r.field, Value: r.value, Message: "must not be empty"})
		}
	}

	if e.OutChannel != "" && e.OutChannel == e.InChannel {
		errors = append(errors, ValidationError{
			Field:   "export.in_channel",
			Value:   e.InChannel,
			Message: "must differ from export.out_channel",
		})
	}

	dtypes := []struct {
		field, value string
	}{
		{"export.out_dtype", e.OutDType},
		{"export.in_dtype", e.InDType},
	}
	for _, d := range dtypes {
		t, err := tdms.ParseDataType(d.value)
		if err != nil || !t.IsNumeric() {
			errors = append(errors, ValidationError{Field: d.field, Value: d.value, Message: "must be a numeric storage type"})
		}
	}

	if e.ChunkSamples < 0 {
		errors = append(errors, ValidationError{
			Field:   "export.chunk_samples",
			Value:   e.ChunkSamples,
			Message: "must be non-negative (0 derives it from the element size)",
		})
	}
	if e.Version != 4712 && e.Version != 4713 {
		errors = append(errors, ValidationError{Field: "export.version", Value: e.Version, Message: "must be 4712 or 4713"})
	}
	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}
	if !slices.Contains(logging.ValidFormats(), strings.ToLower(c.Logging.Format)) {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Value:   c.Logging.Format,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(logging.ValidFormats(), ", ")),
		})
	}
	return errors
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	levels := logging.ValidLevels()
	for i, l := range levels {
		levels[i] = strings.ToLower(l)
	}
	return levels
}
