package bulk

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mnov88/marked/pkg/eurlex"
	"github.com/mnov88/marked/pkg/extract"
	"github.com/mnov88/marked/pkg/metrics"
	"github.com/mnov88/marked/pkg/notice"
	"github.com/mnov88/marked/pkg/output"
)

// Sink stores records. folder is the directory of the notice the record was
// extracted from.
type Sink interface {
	Exists(folder string, celex string) bool
	Write(folder string, celex string, record *extract.Record) (string, error)
}

// FileSink writes records as JSON files into OutputDirectory, or next to the
// notice when OutputDirectory is empty.
type FileSink struct {
	OutputDirectory string
}

func (sink FileSink) writer(folder string) *output.Writer {
	if sink.OutputDirectory != "" {
		return output.NewWriter(sink.OutputDirectory)
	}
	return output.NewWriter(folder)
}

// Exists reports whether a record for celex is already present.
func (sink FileSink) Exists(folder string, celex string) bool {
	return sink.writer(folder).Exists(celex)
}

// Write stores record under celex.
func (sink FileSink) Write(folder string, celex string, record *extract.Record) (string, error) {
	return sink.writer(folder).WriteAs(celex, record)
}

// Processor extracts one notice at a time and hands the record to a Sink.
// It is safe for concurrent use.
type Processor struct {
	assembler *extract.Assembler
	sink      Sink
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewProcessor creates a Processor. metrics may be nil; a nil logger uses
// slog.Default().
func NewProcessor(assembler *extract.Assembler, sink Sink, m *metrics.Metrics, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		assembler: assembler,
		sink:      sink,
		metrics:   m,
		logger:    logger,
	}
}

// FolderHint derives the CELEX of the act a TYPE-YEAR-NUMBER download folder
// most likely holds, or "" when the name has no such structure.
func FolderHint(folder string) string {
	celex, ok := eurlex.CELEXFromFolderName(filepath.Base(folder))
	if !ok {
		return ""
	}
	return celex.String()
}

// ProcessFile extracts the notice at path. celex, when set, must be a CELEX
// identifier; it both selects the main work and names the output. Otherwise
// the folder name supplies a hint and the record names itself.
func (processor *Processor) ProcessFile(path string, celex string) Entry {
	started := time.Now()
	folder := filepath.Dir(path)
	entry := Entry{Path: path, CELEX: celex}

	defer func() {
		entry.Duration = time.Since(started)
		processor.metrics.ObserveDuration(entry.Duration)
		processor.metrics.IncrementOutcome(metricsOutcome(entry.Status))
	}()

	if celex != "" {
		if _, err := eurlex.ParseCELEX(celex); err != nil {
			entry.Status = StatusFailed
			entry.Error = err.Error()
			return entry
		}
	}

	tree, err := notice.ParseFile(path)
	if err != nil {
		entry.Status = StatusFailed
		if errors.Is(err, notice.ErrMalformed) {
			entry.Status = StatusParseError
		}
		entry.Error = err.Error()
		processor.logger.Warn("failed to parse notice", "path", path, "error", err)
		return entry
	}

	hint := celex
	if hint == "" {
		hint = FolderHint(folder)
	}

	record, err := processor.assembler.Assemble(tree, hint)
	if err != nil {
		entry.Status = StatusFailed
		entry.Error = err.Error()
		return entry
	}
	processor.metrics.ObserveRecord(record)

	if entry.CELEX == "" {
		entry.CELEX = record.CELEX()
	}
	entry.Mode = record.Extraction.Mode
	entry.Stats = record.Stats

	outputPath, err := processor.sink.Write(folder, entry.CELEX, record)
	if err != nil {
		entry.Status = StatusFailed
		entry.Error = err.Error()
		processor.logger.Error("failed to write record", "celex", entry.CELEX, "error", err)
		return entry
	}

	entry.Status = StatusSuccess
	entry.OutputPath = outputPath
	processor.logger.Debug("extracted notice", "celex", entry.CELEX, "mode", entry.Mode, "output", outputPath)
	return entry
}

// ProcessFolder extracts the notice stored under filename in folder.
func (processor *Processor) ProcessFolder(folder string, filename string) Entry {
	path := filepath.Join(folder, filename)
	if _, err := os.Stat(path); err != nil {
		processor.metrics.IncrementOutcome(metrics.OutcomeFailed)
		return Entry{
			Path:   path,
			Status: StatusFailed,
			Error:  fmt.Sprintf("no %s found in %s", filename, folder),
		}
	}
	return processor.ProcessFile(path, "")
}

// Skip reports whether task already has a record. Only tasks whose folder
// names a CELEX can be checked before extraction.
func (processor *Processor) Skip(task Task) bool {
	return task.CELEX != "" && processor.sink.Exists(task.Folder, task.CELEX)
}

func metricsOutcome(status Status) string {
	switch status {
	case StatusSuccess:
		return metrics.OutcomeSuccess
	case StatusSkipped:
		return metrics.OutcomeSkipped
	case StatusParseError:
		return metrics.OutcomeParseError
	default:
		return metrics.OutcomeFailed
	}
}
