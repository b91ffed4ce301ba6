package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeConvert  = "convert"
	ModeExtract  = "extract"
	ModeGenerate = "generate"
	ModeFormats  = "formats"

	// Default values
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 50 * 1024 * 1024 // 50MB
)

// Config holds all configuration for the dd1750 converter CLI.
type Config struct {
	// Mode selects the operation: convert, extract, generate, formats.
	Mode string

	// Input is the source document: a BOM PDF for convert/extract, an
	// items JSON file for generate.
	Input string

	// Output is the destination file path.
	Output string

	// Template optionally points at a custom DD1750 template PDF.
	Template string

	// StartPage is the 0-based page extraction begins from.
	StartPage int

	// Format optionally names a BOM layout to bypass auto-detection.
	Format string

	// Header metadata rendered into the form's fixed slots.
	PackedBy  string
	NumBoxes  string
	ReqNo     string
	OrderNo   string
	EndItem   string
	Date      string
	TypedName string

	// Application configuration
	LogLevel    string
	MaxFileSize int64
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Mode:        ModeConvert,
		Output:      "dd1750.pdf",
		LogLevel:    DefaultLogLevel,
		MaxFileSize: DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults.
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("DD1750")
	// Hyphenated flag names map to underscored env names, e.g.
	// packed-by -> DD1750_PACKED_BY.
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("input", cfg.Input)
	viper.SetDefault("output", cfg.Output)
	viper.SetDefault("template", cfg.Template)
	viper.SetDefault("startpage", cfg.StartPage)
	viper.SetDefault("format", cfg.Format)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags.
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Operation: 'convert', 'extract', 'generate' or 'formats'")
	pflag.String("input", cfg.Input, "Input file: BOM PDF (convert/extract) or items JSON (generate)")
	pflag.String("output", cfg.Output, "Output file path")
	pflag.String("template", cfg.Template, "Custom DD1750 template PDF (optional)")
	pflag.Int("startpage", cfg.StartPage, "0-based page to start extraction from")
	pflag.String("format", cfg.Format, "BOM format hint, bypasses auto-detection (see --mode=formats)")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum input file size in bytes")

	pflag.String("packed-by", "", "PACKED BY header field")
	pflag.String("boxes", "", "NUMBER OF BOXES header field")
	pflag.String("req-no", "", "REQUISITION NUMBER header field")
	pflag.String("order-no", "", "ORDER NUMBER header field")
	pflag.String("end-item", "", "END ITEM header field")
	pflag.String("date", "", "DATE header field")
	pflag.String("name", "", "TYPED NAME AND TITLE header field")
}

// bindFlagsToViper binds command line flags to viper configuration.
func bindFlagsToViper() {
	for _, name := range []string{
		"mode", "input", "output", "template", "startpage", "format",
		"loglevel", "maxfilesize",
		"packed-by", "boxes", "req-no", "order-no", "end-item", "date", "name",
	} {
		_ = viper.BindPFlag(name, pflag.Lookup(name))
	}
}

// setupUsageMessage configures the custom usage message.
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\ndd1750 - Generate DD Form 1750 packing lists from GCSS-Army BOM PDFs\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --input=bom.pdf --output=packing-list.pdf           # one-shot conversion\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=extract --input=bom.pdf --output=items.json  # extract for review\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=generate --input=items.json --output=out.pdf # render edited items\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=formats                                      # list supported BOM formats\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  DD1750_MODE         Operation mode\n")
		fmt.Fprintf(os.Stderr, "  DD1750_INPUT        Input file\n")
		fmt.Fprintf(os.Stderr, "  DD1750_OUTPUT       Output file\n")
		fmt.Fprintf(os.Stderr, "  DD1750_TEMPLATE     Template PDF\n")
		fmt.Fprintf(os.Stderr, "  DD1750_STARTPAGE    Extraction start page\n")
		fmt.Fprintf(os.Stderr, "  DD1750_FORMAT       BOM format hint\n")
		fmt.Fprintf(os.Stderr, "  DD1750_LOGLEVEL     Log level\n")
		fmt.Fprintf(os.Stderr, "  DD1750_MAXFILESIZE  Maximum input file size\n")
		fmt.Fprintf(os.Stderr, "  DD1750_PACKED_BY    PACKED BY header field (hyphens in flag names become underscores)\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper.
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Input = viper.GetString("input")
	cfg.Output = viper.GetString("output")
	cfg.Template = viper.GetString("template")
	cfg.StartPage = viper.GetInt("startpage")
	cfg.Format = viper.GetString("format")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")

	cfg.PackedBy = viper.GetString("packed-by")
	cfg.NumBoxes = viper.GetString("boxes")
	cfg.ReqNo = viper.GetString("req-no")
	cfg.OrderNo = viper.GetString("order-no")
	cfg.EndItem = viper.GetString("end-item")
	cfg.Date = viper.GetString("date")
	cfg.TypedName = viper.GetString("name")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeConvert, ModeExtract, ModeGenerate, ModeFormats:
	default:
		return fmt.Errorf("mode must be one of 'convert', 'extract', 'generate', 'formats', got %q", c.Mode)
	}

	if c.Mode != ModeFormats {
		if c.Input == "" {
			return errors.New("input file cannot be empty")
		}
		if c.Output == "" {
			return errors.New("output file cannot be empty")
		}
	}

	if c.StartPage < 0 {
		return errors.New("start page must not be negative")
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Header returns the header metadata fields keyed by template slot
// name, omitting empty values.
func (c *Config) Header() map[string]string {
	fields := map[string]string{
		"packed_by":      c.PackedBy,
		"num_boxes":      c.NumBoxes,
		"requisition_no": c.ReqNo,
		"order_no":       c.OrderNo,
		"end_item":       c.EndItem,
		"date":           c.Date,
		"typed_name":     c.TypedName,
	}
	for k, v := range fields {
		if v == "" {
			delete(fields, k)
		}
	}
	return fields
}

// IsDebug returns true if debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Input: %s, Output: %s, Template: %s, StartPage: %d, Format: %s, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.Input, c.Output, c.Template, c.StartPage, c.Format, c.LogLevel, c.MaxFileSize)
}
