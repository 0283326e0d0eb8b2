package bulk

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mnov88/marked/pkg/metrics"
)

// ProgressFunc is called once per finished notice. Calls are serialized;
// done counts finished notices including this one.
type ProgressFunc func(done int, total int, entry Entry)

// Runner processes every notice under a root with bounded concurrency.
type Runner struct {
	processor *Processor
	config    Config
	logger    *slog.Logger
	progress  ProgressFunc
	now       func() time.Time
}

// NewRunner creates a Runner. A nil logger uses slog.Default().
func NewRunner(processor *Processor, config Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.NoticeFilename == "" {
		config.NoticeFilename = DefaultConfig().NoticeFilename
	}
	return &Runner{
		processor: processor,
		config:    config,
		logger:    logger,
		now:       time.Now,
	}
}

// OnProgress registers a callback for finished notices.
func (runner *Runner) OnProgress(progress ProgressFunc) {
	runner.progress = progress
}

// Run discovers, filters and processes notices. Per-notice failures are
// entries in the report, not errors; an error is returned only when the root
// cannot be scanned or ctx is cancelled, in which case the report covers the
// notices finished so far.
func (runner *Runner) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:     uuid.NewString(),
		Root:      runner.config.Root,
		StartedAt: runner.now(),
	}

	tasks, err := Discover(runner.config.Root, runner.config.NoticeFilename)
	if err != nil {
		return nil, err
	}
	tasks = runner.config.Select(tasks)
	report.Discovered = len(tasks)

	runner.logger.Info("starting batch",
		"run_id", report.RunID,
		"root", runner.config.Root,
		"notices", len(tasks),
		"workers", runner.config.Workers)

	entries := make([]Entry, len(tasks))
	finished := make([]bool, len(tasks))
	var progressMu sync.Mutex
	done := 0

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(runner.config.Workers)

	for index, task := range tasks {
		if groupCtx.Err() != nil {
			break
		}
		index, task := index, task
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			entry := runner.process(task)

			progressMu.Lock()
			entries[index] = entry
			finished[index] = true
			done++
			if runner.progress != nil {
				runner.progress(done, len(tasks), entry)
			}
			progressMu.Unlock()
			return nil
		})
	}
	waitErr := group.Wait()

	for index, entry := range entries {
		if finished[index] {
			report.add(entry)
		}
	}
	report.FinishedAt = runner.now()

	runner.logger.Info("finished batch",
		"run_id", report.RunID,
		"succeeded", report.Succeeded,
		"skipped", report.Skipped,
		"failed", report.Failed)

	if waitErr != nil {
		return report, fmt.Errorf("batch interrupted: %w", waitErr)
	}
	if err := ctx.Err(); err != nil {
		return report, fmt.Errorf("batch interrupted: %w", err)
	}
	return report, nil
}

func (runner *Runner) process(task Task) Entry {
	if runner.config.SkipExisting && runner.processor.Skip(task) {
		runner.processor.metrics.IncrementOutcome(metrics.OutcomeSkipped)
		runner.logger.Debug("skipping notice with existing record", "celex", task.CELEX)
		return Entry{Path: task.Path, CELEX: task.CELEX, Status: StatusSkipped}
	}
	return runner.processor.ProcessFile(task.Path, task.CELEX)
}

// add counts entry into the report.
func (report *Report) add(entry Entry) {
	report.Entries = append(report.Entries, entry)
	switch entry.Status {
	case StatusSuccess:
		report.Succeeded++
		report.Totals.Add(entry.Stats)
	case StatusSkipped:
		report.Skipped++
	case StatusParseError:
		report.ParseErrors++
		report.Failed++
	default:
		report.Failed++
	}
}

// Averages divides the totals by the number of successful records.
func (report *Report) Averages() Averages {
	if report.Succeeded == 0 {
		return Averages{}
	}
	count := float64(report.Succeeded)
	return Averages{
		Languages:       float64(report.Totals.Languages) / count,
		Cases:           float64(report.Totals.Cases) / count,
		Eurovoc:         float64(report.Totals.Eurovoc) / count,
		Articles:        float64(report.Totals.Articles) / count,
		Relations:       float64(report.Totals.Relations) / count,
		Implementations: float64(report.Totals.Implementations) / count,
	}
}

// Duration is the wall time of the run.
func (report *Report) Duration() time.Duration {
	return report.FinishedAt.Sub(report.StartedAt)
}

// Rate is processed (non-skipped) notices per second.
func (report *Report) Rate() float64 {
	seconds := report.Duration().Seconds()
	if seconds <= 0 {
		return 0
	}
	return float64(report.Succeeded+report.Failed) / seconds
}

// Errors returns up to limit failed entries in processing order.
func (report *Report) Errors(limit int) []Entry {
	var failed []Entry
	for _, entry := range report.Entries {
		if !entry.Failed() {
			continue
		}
		if limit > 0 && len(failed) >= limit {
			break
		}
		failed = append(failed, entry)
	}
	return failed
}
