// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the potentia CLI. With no subcommand
// it runs the interactive PDF menu.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/potentia/internal/history"
	"github.com/pdiddy/potentia/internal/menu"
	"github.com/pdiddy/potentia/internal/pdfops"
	"github.com/pdiddy/potentia/internal/prompt"
	"github.com/pdiddy/potentia/internal/render"
	"github.com/pdiddy/potentia/internal/resolve"
	"github.com/pdiddy/potentia/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// exitCancelled is the status for a session ended by interrupt or EOF.
const exitCancelled = 130

// rootCmd is the base command for the potentia CLI.
var rootCmd = &cobra.Command{
	Use:   "potentia",
	Short: "Menu-driven PDF tool: convert images, merge, split, compress",
	Long: `potentia is an interactive PDF utility for a single local user.

Run it without arguments to open the menu. It converts images into a
watermarked PDF, merges PDFs, splits a PDF by page ranges and compresses a
PDF by rasterizing its pages. Every result is written to the output
directory with a timestamped name and recorded in the history ledger.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSession,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./potentia.yaml or ~/.config/potentia/potentia.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("potentia")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "potentia"))
		}
	}

	viper.SetDefault("output_dir", types.DefaultOutputDir)
	viper.SetDefault("search_dirs", types.DefaultSearchDirs())
	viper.SetDefault("font_paths", types.DefaultFontPaths())
	viper.SetDefault("compress_dpi", types.DefaultCompressDPI)
	viper.SetDefault("jpeg_quality", types.DefaultJPEGQuality)
	viper.SetDefault("history_db", "")
	viper.SetDefault("log_level", types.DefaultLogLevel)

	viper.SetEnvPrefix("POTENTIA")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	setupLogging(viper.GetString("log_level"))
}

// setupLogging installs a text slog handler on stderr at the named level.
// Unknown levels fall back to warn.
func setupLogging(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

// loadConfig decodes the merged viper settings into a ToolConfig.
func loadConfig() (types.ToolConfig, error) {
	var cfg types.ToolConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.ToolConfig{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg.Normalize(), nil
}

// ensureOutputDir creates the output directory or returns an error carrying
// the setup instruction.
func ensureOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create output directory %s: %w\n"+
			"Run termux-setup-storage to grant storage access, or set output_dir with --config or POTENTIA_OUTPUT_DIR", dir, err)
	}
	return nil
}

func runSession(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := ensureOutputDir(cfg.OutputDir); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wm, err := render.NewWatermarker(cfg.FontPaths)
	if err != nil {
		return err
	}
	slog.Debug("Watermark font loaded.", "source", wm.FontSource)

	ledger, err := history.Open(cfg.HistoryDB)
	if err != nil {
		slog.Warn("History ledger unavailable; results will not be recorded.", "path", cfg.HistoryDB, "error", err)
	} else {
		defer ledger.Close()
	}

	out := cmd.OutOrStdout()
	runner := pdfops.New(cfg, wm, render.FitzRasterizer{}, out)
	p := prompt.New(prompt.NewReaderSource(cmd.InOrStdin()), out, resolve.New(cfg.SearchDirs))

	var rec menu.Recorder
	if ledger != nil {
		rec = ledger
	}
	return menu.New(runner, p, rec, out).Run(ctx)
}

func main() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}
	if errors.Is(err, prompt.ErrCancelled) || errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "\nCancelled.")
		os.Exit(exitCancelled)
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
