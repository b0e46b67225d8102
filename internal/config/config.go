package config

import (
	"fmt"
	"image/color"

	"github.com/caarlos0/env/v11"

	"github.com/ironsheep/image-annotate-mcp/internal/imaging"
)

// Config holds the process-wide settings.
type Config struct {
	LogLevel    string  `env:"ANNOTATE_MCP_LOG_LEVEL" envDefault:"info"`
	UndoLimit   int     `env:"ANNOTATE_UNDO_LIMIT" envDefault:"100"`
	LineWidth   float64 `env:"ANNOTATE_LINE_WIDTH" envDefault:"5"`
	FontSize    float64 `env:"ANNOTATE_FONT_SIZE" envDefault:"24"`
	PaletteSize int     `env:"ANNOTATE_PALETTE_SIZE" envDefault:"6"`
	Color       string  `env:"ANNOTATE_COLOR" envDefault:"#FF3B30"`
	OCRLanguage string  `env:"ANNOTATE_OCR_LANGUAGE" envDefault:"eng"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the engine cannot work with.
func (c Config) Validate() error {
	if c.UndoLimit < 0 {
		return fmt.Errorf("undo limit must not be negative, got %d", c.UndoLimit)
	}
	if c.LineWidth <= 0 {
		return fmt.Errorf("line width must be positive, got %v", c.LineWidth)
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("font size must be positive, got %v", c.FontSize)
	}
	if c.PaletteSize <= 0 {
		return fmt.Errorf("palette size must be positive, got %d", c.PaletteSize)
	}
	if _, err := imaging.ParseHex(c.Color); err != nil {
		return err
	}
	if c.OCRLanguage == "" {
		return fmt.Errorf("ocr language must not be empty")
	}
	return nil
}

// Debug reports whether debug logging was requested.
func (c Config) Debug() bool { return c.LogLevel == "debug" }

// DrawColor returns Color parsed. Call Validate first; an invalid value
// yields opaque black.
func (c Config) DrawColor() color.RGBA {
	rgba, err := imaging.ParseHex(c.Color)
	if err != nil {
		return color.RGBA{A: 255}
	}
	return rgba
}
