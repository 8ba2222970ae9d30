// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"os"
	"path/filepath"
)

// Default locations match a Termux session with shared storage enabled
// (termux-setup-storage). Every value can be overridden from the config file
// or POTENTIA_* environment variables.
const (
	DefaultOutputDir   = "/storage/emulated/0/Documents/Potentia"
	DefaultCompressDPI = 100
	DefaultJPEGQuality = 90
	DefaultLogLevel    = "warn"
	DefaultHistoryFile = "history.db"
)

// ToolConfig holds the settings shared by every operation. It is built once
// at startup and passed into the components that need it.
type ToolConfig struct {
	// OutputDir is the fixed directory that receives every generated PDF.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// SearchDirs lists the candidate directories searched, in order, when a
	// bare filename does not exist relative to the working directory.
	SearchDirs []string `json:"search_dirs" yaml:"search_dirs" mapstructure:"search_dirs"`

	// FontPaths lists TrueType fonts tried, in order, for the watermark text.
	// The built-in Go Regular face is used when none can be loaded.
	FontPaths []string `json:"font_paths" yaml:"font_paths" mapstructure:"font_paths"`

	// CompressDPI is the rasterization resolution used by compress (default 100).
	CompressDPI float64 `json:"compress_dpi" yaml:"compress_dpi" mapstructure:"compress_dpi"`

	// JPEGQuality is the quality used for watermarked pages and rasterized
	// pages (1-100, default 90).
	JPEGQuality int `json:"jpeg_quality" yaml:"jpeg_quality" mapstructure:"jpeg_quality"`

	// HistoryDB is the SQLite ledger path. Relative paths are resolved
	// against OutputDir.
	HistoryDB string `json:"history_db" yaml:"history_db" mapstructure:"history_db"`

	// LogLevel is the slog level for diagnostics: debug, info, warn or error.
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
}

// DefaultSearchDirs returns the candidate directories used when the config
// does not name any.
func DefaultSearchDirs() []string {
	dirs := []string{
		"/storage/emulated/0/Download",
		"/storage/emulated/0/Documents",
		"/storage/emulated/0/DCIM/Camera",
		"/storage/emulated/0/Pictures",
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home, filepath.Join(home, "storage", "shared"))
	}
	return dirs
}

// DefaultFontPaths returns common locations of a sans-serif TrueType font on
// Android, Linux and macOS.
func DefaultFontPaths() []string {
	return []string{
		"DejaVuSans.ttf",
		"/system/fonts/Roboto-Regular.ttf",
		"/system/fonts/DroidSans.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/TTF/DejaVuSans.ttf",
		"/Library/Fonts/Arial.ttf",
	}
}

// Normalize fills zero values with defaults and resolves HistoryDB against
// OutputDir.
func (c ToolConfig) Normalize() ToolConfig {
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.SearchDirs == nil {
		c.SearchDirs = DefaultSearchDirs()
	}
	if c.FontPaths == nil {
		c.FontPaths = DefaultFontPaths()
	}
	if c.CompressDPI <= 0 {
		c.CompressDPI = DefaultCompressDPI
	}
	if c.JPEGQuality <= 0 || c.JPEGQuality > 100 {
		c.JPEGQuality = DefaultJPEGQuality
	}
	if c.HistoryDB == "" {
		c.HistoryDB = DefaultHistoryFile
	}
	if !filepath.IsAbs(c.HistoryDB) {
		c.HistoryDB = filepath.Join(c.OutputDir, c.HistoryDB)
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	return c
}
