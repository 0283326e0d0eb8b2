package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mnov88/marked/pkg/config"
	"github.com/mnov88/marked/pkg/extract"
	"github.com/mnov88/marked/pkg/mapping"
)

var version = "0.1.0"

var (
	successMark = color.New(color.FgGreen).Sprint("✓")
	failureMark = color.New(color.FgRed).Sprint("✗")
	skipMark    = color.New(color.FgYellow).Sprint("⏭")
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cellarmeta",
		Short: "Extract metadata from CELLAR tree notices",
		Long: `cellarmeta reads CELLAR tree notice XML files describing EU legal acts
and writes one JSON metadata record per act.

A notice embeds the act together with related documents; cellarmeta picks
the act itself and resolves titles, dates, identifiers, EuroVoc terms,
case law, national measures and legal relations through a YAML mapping.`,
		Version:      version,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("mapping", "", "Mapping YAML file (default: embedded, env CELLAR_MAPPING)")
	rootCmd.PersistentFlags().String("language", "", "Working language, e.g. eng or en (env CELLAR_LANGUAGE)")
	rootCmd.PersistentFlags().String("env-file", ".env", "Optional .env file with CELLAR_* settings")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print detailed progress and debug logs")
	rootCmd.PersistentFlags().Bool("trace", false, "Record which path produced each field")

	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(mappingCmd())
	rootCmd.AddCommand(articleCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds what every extracting command needs.
type app struct {
	config  config.Config
	logger  *slog.Logger
	mapping *mapping.Mapping
	trace   bool
	verbose bool
}

// loadApp resolves configuration (env file, environment, then flags) and
// loads the mapping. A mapping that lacks a field the extractor needs fails
// here, before any notice is read.
func loadApp(cmd *cobra.Command) (*app, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("mapping") {
		cfg.MappingPath, _ = cmd.Flags().GetString("mapping")
	}
	if cmd.Flags().Changed("language") {
		languageFlag, _ := cmd.Flags().GetString("language")
		code, err := config.NormalizeLanguage(languageFlag)
		if err != nil {
			return nil, fmt.Errorf("--language: %w", err)
		}
		cfg.Language = code
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	trace, _ := cmd.Flags().GetBool("trace")
	if verbose {
		cfg.LogLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	fieldMapping, err := loadMapping(cfg.MappingPath)
	if err != nil {
		return nil, err
	}
	if err := fieldMapping.Validate(extract.Requirements()); err != nil {
		return nil, err
	}

	return &app{
		config:  cfg,
		logger:  logger,
		mapping: fieldMapping,
		trace:   trace,
		verbose: verbose,
	}, nil
}

func loadMapping(path string) (*mapping.Mapping, error) {
	if path == "" {
		return mapping.LoadDefault()
	}
	return mapping.Load(path)
}

func (a *app) assembler() (*extract.Assembler, error) {
	return extract.NewAssembler(a.mapping,
		extract.WithLanguage(a.config.Language),
		extract.WithTrace(a.trace),
		extract.WithLogger(a.logger))
}
