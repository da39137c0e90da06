// Package cli implements the citeshield command line.
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dgallion1/citeshield/internal/config"
	"github.com/dgallion1/citeshield/internal/loader"
	"github.com/dgallion1/citeshield/internal/sections"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	cfg    config.Config
	logger = slog.New(slog.DiscardHandler)

	configPath string
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "citeshield",
	Short: "Line-numbered section access for long documents",
	Long: `citeshield splits a document into overlapping, line-numbered sections
and lets you list, read and search them so every quote can be cited by
its exact line range.

Configuration is read from the file given by --config (or CITESHIELD_CONFIG)
and then from environment variables.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print JSON instead of text")
}

// Execute runs the root command. Cancelling ctx stops long-running
// commands such as mcp serve.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	var err error
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

// readInput reads a file path, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) (string, []byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", nil, fmt.Errorf("reading stdin: %w", err)
		}
		return "stdin", data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return filepath.Base(path), data, nil
}

// loadDocument reads and normalizes a file of any supported format.
func loadDocument(cmd *cobra.Command, path string) (*loader.Document, error) {
	name, data, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	doc, err := loader.Load(bytes.NewReader(data), name, cfg.LoaderOptions())
	if err != nil {
		return nil, err
	}
	logger.Debug("document loaded", "name", doc.Name, "bytes", len(data), "headings", len(doc.Outline))
	return doc, nil
}

// openStore loads a document and builds its section store.
func openStore(cmd *cobra.Command, path string) (*sections.Store, *loader.Document, error) {
	doc, err := loadDocument(cmd, path)
	if err != nil {
		return nil, nil, err
	}
	store, err := sections.Build(doc.Name, doc.Text, cfg.ChunkConfig(), cfg.StoreOptions()...)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("sections built", "name", doc.Name, "sections", store.Len(), "lines", store.TotalLines())
	return store, doc, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
