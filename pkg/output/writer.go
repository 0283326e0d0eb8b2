// Package output writes extraction records to disk as JSON.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/segmentio/encoding/json"

	"github.com/mnov88/marked/pkg/extract"
)

// FileSuffix is appended to the CELEX identifier to name a record file.
const FileSuffix = "_metadata.json"

// Filename returns the record file name for a CELEX identifier. Path
// separators are replaced so the name always stays inside its directory.
func Filename(celex string) string {
	celex = strings.TrimSpace(celex)
	if celex == "" {
		celex = "unknown"
	}
	celex = strings.NewReplacer("/", "_", "\\", "_").Replace(celex)
	return celex + FileSuffix
}

// Encode writes record as two-space indented JSON followed by a newline.
// Map keys are sorted, so equal records encode to equal bytes.
func Encode(writer io.Writer, record *extract.Record) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(record)
}

// Writer places record files in one directory.
type Writer struct {
	directory string
}

// NewWriter returns a Writer for directory. The directory is created on the
// first write.
func NewWriter(directory string) *Writer {
	return &Writer{directory: directory}
}

// Directory returns the output directory.
func (writer *Writer) Directory() string {
	return writer.directory
}

// Path returns where the record for celex is written.
func (writer *Writer) Path(celex string) string {
	return filepath.Join(writer.directory, Filename(celex))
}

// Exists reports whether a record for celex has already been written.
func (writer *Writer) Exists(celex string) bool {
	info, err := os.Stat(writer.Path(celex))
	return err == nil && !info.IsDir()
}

// Write stores record under its CELEX, replacing any earlier file.
func (writer *Writer) Write(record *extract.Record) (string, error) {
	if record == nil {
		return "", fmt.Errorf("failed to write record: record cannot be nil")
	}
	return writer.WriteAs(record.CELEX(), record)
}

// WriteAs stores record under celex. The record is written to a temporary
// file and renamed, so readers never see a partial record.
func (writer *Writer) WriteAs(celex string, record *extract.Record) (string, error) {
	if record == nil {
		return "", fmt.Errorf("failed to write record: record cannot be nil")
	}

	if err := os.MkdirAll(writer.directory, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	target := writer.Path(celex)
	temporary, err := os.CreateTemp(writer.directory, ".record-*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(temporary.Name())

	if err := Encode(temporary, record); err != nil {
		temporary.Close()
		return "", fmt.Errorf("failed to encode record %s: %w", celex, err)
	}
	if err := temporary.Close(); err != nil {
		return "", fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Chmod(temporary.Name(), 0644); err != nil {
		return "", fmt.Errorf("failed to set permissions on %s: %w", target, err)
	}
	if err := os.Rename(temporary.Name(), target); err != nil {
		return "", fmt.Errorf("failed to write record %s: %w", target, err)
	}
	return target, nil
}
