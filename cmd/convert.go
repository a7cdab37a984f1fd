package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/inktable/internal/config"
	"github.com/arcanaland/inktable/internal/normalize"
	"github.com/arcanaland/inktable/internal/source"
	"github.com/arcanaland/inktable/internal/table"
)

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	fetcher, err := newFetcher(cfg)
	if err != nil {
		return describe(err)
	}

	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Fetching data from LorcanaJSON...")
	dataset, err := fetcher.Fetch(cmd.Context())
	if err != nil {
		return describe(err)
	}
	fmt.Fprintln(out, "Data fetched successfully!")

	fmt.Fprintf(out, "Processing %d cards...\n", len(dataset.Cards))
	result := normalize.NewNormalizer(normalize.DefaultValues()).Build(dataset.Cards)

	slog.Debug("normalized dataset",
		"records", result.Processed,
		"entries", result.Table.Len(),
		"skipped", result.Skipped,
		"duplicates", result.Duplicates)

	serializer := table.Serializer{Escape: cfg.EscapeStrings}
	if err := serializer.WriteFile(cfg.OutputFile, result.Table); err != nil {
		return describe(err)
	}

	colorize.New(colorize.FgGreen).Fprintf(out, "Successfully created %s with %d cards!\n", cfg.OutputFile, result.Table.Len())
	if result.Skipped > 0 {
		fmt.Fprintf(out, "Skipped %d records without a simple name.\n", result.Skipped)
	}

	return nil
}

// loadSettings reads the config file and applies any flags that were set.
// An unusable config file never stops a run; the built-in defaults are used instead.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error

	path := configPath
	if path == "" {
		path = config.GetConfigFilePath()
		cfg, err = config.LoadConfig()
	} else {
		cfg, err = config.LoadConfigFile(path)
	}
	if err != nil {
		slog.Warn("config file unusable, using defaults", "path", path, "error", err)
		cfg = config.Default()
	}

	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.SourceURL = sourceURL
	}
	if flags.Changed("timeout") {
		cfg.TimeoutSeconds = timeout
	}
	if flags.Lookup("output") != nil && flags.Changed("output") {
		cfg.OutputFile = outputFile
	}

	slog.Debug("settings loaded", "config", path, "url", cfg.SourceURL, "output", cfg.OutputFile)

	return cfg, nil
}

func newFetcher(cfg *config.Config) (*source.Fetcher, error) {
	return source.NewFetcher(source.Config{
		URL:       cfg.SourceURL,
		Timeout:   cfg.Timeout(),
		UserAgent: cfg.UserAgent,
	})
}

// describe labels an error with the stage that failed
func describe(err error) error {
	var fetchErr *source.FetchError
	var parseErr *source.ParseError
	switch {
	case errors.As(err, &fetchErr):
		return fmt.Errorf("error fetching data: %w", err)
	case errors.As(err, &parseErr):
		return fmt.Errorf("error parsing JSON: %w", err)
	default:
		return fmt.Errorf("an unexpected error occurred: %w", err)
	}
}
