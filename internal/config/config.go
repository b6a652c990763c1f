// Package config provides centralized configuration for the converter.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Input   InputConfig
	Output  OutputConfig
	Convert ConvertConfig
	Ingest  IngestConfig
	Logging LoggingConfig
}

// InputConfig locates the three input tables.
type InputConfig struct {
	// CodesPath is the code dictionary file (.csv, .tsv or .xlsx)
	CodesPath string `env:"MEDS_CODES_PATH" required:"true"`

	// DataPath is the event log file
	DataPath string `env:"MEDS_DATA_PATH" required:"true"`

	// SplitPath is the split/label file
	SplitPath string `env:"MEDS_SPLIT_PATH" required:"true"`

	// Sheet is the worksheet read from .xlsx inputs (default: first sheet)
	Sheet string `env:"MEDS_SHEET"`
}

// OutputConfig controls where converted tables are written.
type OutputConfig struct {
	// Dir is the output directory (default: current directory)
	Dir string `env:"OUTPUT_DIR" envAlt:"MEDS_OUTPUT_DIR" default:"."`

	// StaticFile is the static table file name (default: constant.csv)
	StaticFile string `env:"OUTPUT_STATIC_FILE" default:"constant.csv"`

	// DescriptionFile is the column description file name (default: constant_description.csv)
	DescriptionFile string `env:"OUTPUT_DESCRIPTION_FILE" default:"constant_description.csv"`

	// EventsFile is the event table file name (default: events.csv)
	EventsFile string `env:"OUTPUT_EVENTS_FILE" default:"events.csv"`
}

// ConvertConfig holds the conversion options.
type ConvertConfig struct {
	// PreferTextValue picks text_value over numeric_value (default: true)
	PreferTextValue bool `env:"PREFER_TEXT_VALUE" default:"true"`

	// NoValueDefault is the value of timestamped events without a value (default: occurred)
	NoValueDefault string `env:"NO_VALUE_DEFAULT" default:"occurred"`

	// DefaultCategory is the category of unmapped events (default: generic_event)
	DefaultCategory string `env:"DEFAULT_CATEGORY" default:"generic_event"`

	// CategoryMappingFile is an optional YAML map of event name to category
	CategoryMappingFile string `env:"CATEGORY_MAPPING_FILE"`

	// FailOnDuplicates turns duplicate events into a non-zero exit (default: false)
	FailOnDuplicates bool `env:"FAIL_ON_DUPLICATES" default:"false"`
}

// IngestConfig holds input loading settings.
type IngestConfig struct {
	// Timeout is the maximum duration for loading all inputs (default: 5m)
	Timeout time.Duration `env:"INGEST_TIMEOUT" default:"5m"`

	// ContextCheckInterval is how many rows are built between cancellation checks (default: 1000)
	ContextCheckInterval int `env:"INGEST_CONTEXT_CHECK_INTERVAL" default:"1000"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// String returns a one-line summary of the config for logging.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	fmt.Fprintf(&b, "Input: {Codes: %q, Data: %q, Split: %q, Sheet: %q}, ",
		c.Input.CodesPath, c.Input.DataPath, c.Input.SplitPath, c.Input.Sheet)
	fmt.Fprintf(&b, "Output: {Dir: %q}, ", c.Output.Dir)
	fmt.Fprintf(&b, "Convert: {PreferText: %v, NoValueDefault: %q, DefaultCategory: %q, Mapping: %q}, ",
		c.Convert.PreferTextValue, c.Convert.NoValueDefault, c.Convert.DefaultCategory, c.Convert.CategoryMappingFile)
	fmt.Fprintf(&b, "Logging: {Level: %q, Format: %q}", c.Logging.Level, c.Logging.Format)
	b.WriteString("}")
	return b.String()
}
