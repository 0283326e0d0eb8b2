package bulk

import (
	"runtime"
	"time"

	"github.com/mnov88/marked/pkg/extract"
	"github.com/mnov88/marked/pkg/notice"
)

// Status is the outcome of processing one notice.
type Status string

const (
	StatusSuccess    Status = "success"
	StatusFailed     Status = "failed"
	StatusSkipped    Status = "skipped"
	StatusParseError Status = "parse_error"
)

// Config holds configuration for a batch run.
type Config struct {
	// Root is the directory scanned recursively for notices.
	Root string

	// NoticeFilename is the file name notices are stored under.
	NoticeFilename string

	// Limit caps the number of notices processed (0 = no limit).
	Limit int

	// SkipExisting skips notices whose folder names a CELEX that already
	// has a record.
	SkipExisting bool

	// Workers bounds concurrent extractions.
	Workers int

	// TypeFilter limits the run to folders of these types (REG, DEC-IMPL, ...).
	TypeFilter []string

	// YearFilter limits the run to folders of these years; two-digit years
	// are expanded.
	YearFilter []string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		NoticeFilename: notice.DefaultFilename,
		SkipExisting:   true,
		Workers:        runtime.NumCPU(),
	}
}

// Task is one notice found under the root.
type Task struct {
	// Path is the notice file.
	Path string `json:"path"`

	// Folder is the directory holding the notice.
	Folder string `json:"folder"`

	// CELEX is the identifier embedded in the folder name, if any.
	CELEX string `json:"celex,omitempty"`
}

// Entry records the outcome of processing a single notice.
type Entry struct {
	Path       string        `json:"path"`
	CELEX      string        `json:"celex,omitempty"`
	Status     Status        `json:"status"`
	Error      string        `json:"error,omitempty"`
	OutputPath string        `json:"output_path,omitempty"`
	Mode       extract.Mode  `json:"mode,omitempty"`
	Stats      extract.Stats `json:"stats"`
	Duration   time.Duration `json:"duration,omitempty"`
}

// Failed reports whether the entry counts as a failure.
func (entry Entry) Failed() bool {
	return entry.Status == StatusFailed || entry.Status == StatusParseError
}

// Report summarizes the results of a batch run.
type Report struct {
	RunID      string    `json:"run_id"`
	Root       string    `json:"root"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Discovered  int `json:"discovered"`
	Succeeded   int `json:"succeeded"`
	Skipped     int `json:"skipped"`
	Failed      int `json:"failed"`
	ParseErrors int `json:"parse_errors"`

	// Totals sums the stats of every successful record.
	Totals extract.Stats `json:"totals"`

	Entries []Entry `json:"entries"`
}

// Averages is Totals divided by the number of successful records.
type Averages struct {
	Languages       float64 `json:"languages"`
	Cases           float64 `json:"cases"`
	Eurovoc         float64 `json:"eurovoc"`
	Articles        float64 `json:"articles"`
	Relations       float64 `json:"relations"`
	Implementations float64 `json:"implementations"`
}
