package bulk

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/segmentio/encoding/json"
)

// MaxListedErrors is how many failures the terminal report lists.
const MaxListedErrors = 5

// StatusMarker returns the bracketed marker printed for status.
func StatusMarker(status Status) string {
	switch status {
	case StatusSuccess:
		return "[OK]"
	case StatusSkipped:
		return "[SKIP]"
	case StatusParseError:
		return "[PARSE]"
	default:
		return "[FAIL]"
	}
}

// FormatReport formats a Report for terminal output.
func FormatReport(report *Report) string {
	var builder strings.Builder

	builder.WriteString("\nProcessing Summary\n")
	builder.WriteString(strings.Repeat("═", 60) + "\n")
	builder.WriteString(fmt.Sprintf("Discovered: %d | Succeeded: %d | Skipped: %d | Failed: %d (parse errors: %d)\n",
		report.Discovered, report.Succeeded, report.Skipped, report.Failed, report.ParseErrors))
	builder.WriteString(fmt.Sprintf("Run: %s | Duration: %s | Rate: %.1f docs/s\n",
		report.RunID, report.Duration().Round(time.Millisecond), report.Rate()))

	if report.Succeeded > 0 {
		averages := report.Averages()
		builder.WriteString(strings.Repeat("─", 60) + "\n")
		builder.WriteString(fmt.Sprintf("  %-16s %8s %10s\n", "", "TOTAL", "AVERAGE"))
		rows := []struct {
			label   string
			total   int
			average float64
		}{
			{"Languages", report.Totals.Languages, averages.Languages},
			{"Cases", report.Totals.Cases, averages.Cases},
			{"EuroVoc terms", report.Totals.Eurovoc, averages.Eurovoc},
			{"Articles", report.Totals.Articles, averages.Articles},
			{"Relations", report.Totals.Relations, averages.Relations},
			{"Implementations", report.Totals.Implementations, averages.Implementations},
		}
		for _, row := range rows {
			builder.WriteString(fmt.Sprintf("  %-16s %8d %10.1f\n", row.label, row.total, row.average))
		}
	}

	failed := report.Errors(0)
	if len(failed) > 0 {
		builder.WriteString(strings.Repeat("─", 60) + "\n")
		builder.WriteString(fmt.Sprintf("Errors (%d):\n", len(failed)))
		for index, entry := range failed {
			if index == MaxListedErrors {
				builder.WriteString(fmt.Sprintf("  ... and %d more\n", len(failed)-MaxListedErrors))
				break
			}
			builder.WriteString(fmt.Sprintf("  %-8s %s: %s\n",
				StatusMarker(entry.Status), filepath.Base(filepath.Dir(entry.Path)), entry.Error))
		}
	}

	return builder.String()
}

// FormatEntry formats one entry as a progress line.
func FormatEntry(done int, total int, entry Entry) string {
	line := fmt.Sprintf("[%d/%d] %-8s %s", done, total, StatusMarker(entry.Status), entry.CELEX)
	if entry.CELEX == "" {
		line += filepath.Base(filepath.Dir(entry.Path))
	}
	if entry.Error != "" {
		line += fmt.Sprintf(" error: %s", entry.Error)
	}
	return line
}

// FormatReportJSON formats a Report as JSON.
func FormatReportJSON(report *Report) string {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}

// WriteReportJSON writes the JSON report to path.
func WriteReportJSON(report *Report, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(FormatReportJSON(report)+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
