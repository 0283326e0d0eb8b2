// Package config resolves runtime settings from the environment and an
// optional .env file. Command-line flags override what is returned here.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"github.com/mnov88/marked/pkg/extract"
	"github.com/mnov88/marked/pkg/notice"
)

// Environment variables read by FromEnv.
const (
	EnvMapping        = "CELLAR_MAPPING"
	EnvLanguage       = "CELLAR_LANGUAGE"
	EnvWorkers        = "CELLAR_WORKERS"
	EnvNoticeFilename = "CELLAR_NOTICE_FILENAME"
	EnvLogLevel       = "CELLAR_LOG_LEVEL"
)

// Config holds the settings shared by every command.
type Config struct {
	// MappingPath is a mapping YAML file; empty selects the embedded default.
	MappingPath string

	// Language is the working language as a lower-case ISO 639-2 code.
	Language string

	// Workers bounds concurrent extractions in batch mode.
	Workers int

	// NoticeFilename is the conventional notice file name inside a folder.
	NoticeFilename string

	LogLevel slog.Level
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Language:       extract.DefaultLanguage,
		Workers:        runtime.NumCPU(),
		NoticeFilename: notice.DefaultFilename,
		LogLevel:       slog.LevelInfo,
	}
}

// Load reads the given .env files, or ./.env when none are named, into the
// process environment without overriding variables already set, then
// resolves the settings from the environment. Missing .env files are not an
// error.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv resolves the settings through lookup, starting from Default.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	config := Default()

	if value, ok := lookupTrimmed(lookup, EnvMapping); ok {
		config.MappingPath = value
	}

	if value, ok := lookupTrimmed(lookup, EnvLanguage); ok {
		code, err := NormalizeLanguage(value)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvLanguage, err)
		}
		config.Language = code
	}

	if value, ok := lookupTrimmed(lookup, EnvWorkers); ok {
		workers, err := strconv.Atoi(value)
		if err != nil || workers < 1 {
			return Config{}, fmt.Errorf("%s: must be a positive integer, got %q", EnvWorkers, value)
		}
		config.Workers = workers
	}

	if value, ok := lookupTrimmed(lookup, EnvNoticeFilename); ok {
		config.NoticeFilename = value
	}

	if value, ok := lookupTrimmed(lookup, EnvLogLevel); ok {
		level, err := ParseLogLevel(value)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		config.LogLevel = level
	}

	return config, nil
}

func lookupTrimmed(lookup func(string) (string, bool), key string) (string, bool) {
	value, ok := lookup(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

// NormalizeLanguage converts a 2- or 3-letter language code in any case into
// the lower-case ISO 639-2 code notices use for expression languages, so
// "en", "EN" and "eng" all become "eng".
func NormalizeLanguage(code string) (string, error) {
	base, err := language.ParseBase(strings.TrimSpace(code))
	if err != nil {
		return "", fmt.Errorf("unknown language %q: %w", code, err)
	}
	iso3 := base.ISO3()
	if iso3 == "" || iso3 == "und" {
		return "", fmt.Errorf("unknown language %q", code)
	}
	return iso3, nil
}

// ParseLogLevel accepts debug, info, warn or error in any case.
func ParseLogLevel(value string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", value)
	}
	return level, nil
}
