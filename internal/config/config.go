package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete capexport configuration
type Config struct {
	Export   ExportConfig   `mapstructure:"export"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Notebook NotebookConfig `mapstructure:"notebook"`
}

// ExportConfig controls how captures are written
type ExportConfig struct {
	// Directory receives exported files, created if missing (default: "captures")
	Directory string `mapstructure:"directory"`
	// Filename is the output file name; the extension is added when missing
	Filename string `mapstructure:"filename"`
	// Group is the measurement group name (default: "p")
	Group string `mapstructure:"group"`
	// OutChannel and InChannel name the DAC and ADC channels
	OutChannel string `mapstructure:"out_channel"`
	InChannel  string `mapstructure:"in_channel"`
	// OutDType and InDType are storage type names such as "int16" or "f4"
	OutDType string `mapstructure:"out_dtype"`
	InDType  string `mapstructure:"in_dtype"`
	// ChunkSamples is the number of "in" samples per segment; 0 derives it
	// from a 16 MiB payload
	ChunkSamples int `mapstructure:"chunk_samples"`
	// Format is the registered container format (default: "tdms")
	Format string `mapstructure:"format"`
	// Version is the TDMS file format version, 4712 or 4713
	Version int `mapstructure:"version"`
	// BigEndian writes big-endian segments
	BigEndian bool `mapstructure:"big_endian"`
}

// LoggingConfig controls logging behavior
type LoggingConfig struct {
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Format is "text" or "json" (default: "text")
	Format string `mapstructure:"format"`
	// File is the log file path; empty logs to stderr
	File string `mapstructure:"file"`
}

// NotebookConfig controls download link rendering
type NotebookConfig struct {
	// Prefix is the URL path the notebook server serves files under (default: "files/")
	Prefix string `mapstructure:"prefix"`
	// Force renders links even when no notebook kernel is detected
	Force bool `mapstructure:"force"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			Directory:  "captures",
			Filename:   "capture.tdms",
			Group:      "p",
			OutChannel: "out",
			InChannel:  "in",
			OutDType:   "int16",
			InDType:    "int16",
			Format:     "tdms",
			Version:    4712,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Notebook: NotebookConfig{
			Prefix: "files/",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("export.directory", defaults.Export.Directory)
	viper.SetDefault("export.filename", defaults.Export.Filename)
	viper.SetDefault("export.group", defaults.Export.Group)
	viper.SetDefault("export.out_channel", defaults.Export.OutChannel)
	viper.SetDefault("export.in_channel", defaults.Export.InChannel)
	viper.SetDefault("export.out_dtype", defaults.Export.OutDType)
	viper.SetDefault("export.in_dtype", defaults.Export.InDType)
	viper.SetDefault("export.chunk_samples", defaults.Export.ChunkSamples)
	viper.SetDefault("export.format", defaults.Export.Format)
	viper.SetDefault("export.version", defaults.Export.Version)
	viper.SetDefault("export.big_endian", defaults.Export.BigEndian)

	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.format", defaults.Logging.Format)
	viper.SetDefault("logging.file", defaults.Logging.File)

	viper.SetDefault("notebook.prefix", defaults.Notebook.Prefix)
	viper.SetDefault("notebook.force", defaults.Notebook.Force)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "capexport")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".capexport"
	}
	return filepath.Join(home, ".config", "capexport")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
