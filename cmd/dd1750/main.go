package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/packlist/dd1750/internal/bom"
	"github.com/packlist/dd1750/internal/config"
	"github.com/packlist/dd1750/internal/form"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
)

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	setupLogging(cfg)
	slog.Debug("starting", "config", cfg.String())

	if err := run(cfg); err != nil {
		slog.Error("operation failed", "mode", cfg.Mode, "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	switch cfg.Mode {
	case config.ModeFormats:
		return runFormats()
	case config.ModeExtract:
		return runExtract(cfg)
	case config.ModeGenerate:
		return runGenerate(cfg)
	default:
		return runConvert(cfg)
	}
}

// runFormats lists the supported BOM layouts without touching any
// document.
func runFormats() error {
	for _, kind := range bom.Formats() {
		fmt.Println(kind)
	}
	return nil
}

// runExtract emits the extraction result as JSON for the external
// review step.
func runExtract(cfg *config.Config) error {
	result, err := extract(cfg)
	if err != nil {
		return err
	}
	logWarnings(result.Warnings)

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding extraction result: %w", err)
	}
	if err := os.WriteFile(cfg.Output, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.Output, err)
	}
	slog.Info("extraction complete", "format", result.FormatDetected, "items", len(result.Items), "output", cfg.Output)
	return nil
}

// runGenerate renders a packing list from a reviewed/edited item list.
func runGenerate(cfg *config.Config) error {
	data, err := os.ReadFile(cfg.Input)
	if err != nil {
		return fmt.Errorf("reading %s: %w", cfg.Input, err)
	}

	// Accept either a bare item array or a full extraction result.
	var items []bom.Item
	if err := json.Unmarshal(data, &items); err != nil {
		var result bom.ExtractionResult
		if err2 := json.Unmarshal(data, &result); err2 != nil {
			return fmt.Errorf("parsing items from %s: %w", cfg.Input, err)
		}
		items = result.Items
	}

	return generate(cfg, items, cfg.Header())
}

// runConvert is the one-shot path: extract then generate, without the
// review step in between. The end-item header slot defaults to the
// metadata recovered from the BOM when no flag supplied it.
func runConvert(cfg *config.Config) error {
	result, err := extract(cfg)
	if err != nil {
		return err
	}
	logWarnings(result.Warnings)
	slog.Info("extracted items", "format", result.FormatDetected, "items", len(result.Items))

	return generate(cfg, result.Items, convertHeader(cfg, result.Metadata))
}

// convertHeader builds the header fields for convert mode, defaulting
// the end-item slot from extracted metadata when no flag supplied it.
func convertHeader(cfg *config.Config, md bom.Metadata) map[string]string {
	header := cfg.Header()
	if _, ok := header["end_item"]; !ok {
		if v := md.EndItem(); v != "" {
			header["end_item"] = v
		}
	}
	return header
}

func extract(cfg *config.Config) (*bom.ExtractionResult, error) {
	doc, err := os.ReadFile(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", cfg.Input, err)
	}
	extractor := bom.NewExtractor(cfg.MaxFileSize)
	return extractor.Extract(bom.ExtractRequest{
		Document:   doc,
		StartPage:  cfg.StartPage,
		FormatHint: bom.FormatKind(cfg.Format),
	})
}

func generate(cfg *config.Config, items []bom.Item, header map[string]string) error {
	var template []byte
	if cfg.Template != "" {
		var err error
		template, err = os.ReadFile(cfg.Template)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", cfg.Template, err)
		}
	}

	result, err := form.NewGenerator().Generate(form.GenerationRequest{
		Items:    items,
		Template: template,
		Header:   header,
	})
	if err != nil {
		return err
	}
	logWarnings(result.Warnings)

	if err := os.WriteFile(cfg.Output, result.Document, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.Output, err)
	}
	slog.Info("packing list written", "output", cfg.Output, "pages", result.Pages, "items", len(items))
	return nil
}

func logWarnings(warnings []string) {
	for _, w := range warnings {
		slog.Warn(w)
	}
}

func setupLogging(cfg *config.Config) {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func printVersion() {
	fmt.Printf("dd1750\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
}
