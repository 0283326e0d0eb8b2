package bulk

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/segmentio/encoding/json"

	"github.com/mnov88/marked/pkg/extract"
)

func sampleReport() *Report {
	started := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	report := &Report{
		RunID:      "run-1",
		Root:       "/data",
		StartedAt:  started,
		FinishedAt: started.Add(2 * time.Second),
		Discovered: 3,
	}
	report.add(Entry{Path: "/data/32016R0679/cellar_tree_notice.xml", CELEX: "32016R0679", Status: StatusSuccess,
		Stats: extract.Stats{Languages: 24, Cases: 4, Eurovoc: 6, Articles: 3, Relations: 8, Implementations: 2}})
	report.add(Entry{Path: "/data/REG-2016-679/cellar_tree_notice.xml", CELEX: "32016R0679", Status: StatusSkipped})
	report.add(Entry{Path: "/data/DIR-1995-46/cellar_tree_notice.xml", Status: StatusParseError, Error: "malformed notice XML"})
	return report
}

func TestReportCounts(t *testing.T) {
	report := sampleReport()

	if report.Succeeded != 1 || report.Skipped != 1 || report.Failed != 1 || report.ParseErrors != 1 {
		t.Errorf("counts = %d/%d/%d/%d, want 1/1/1/1",
			report.Succeeded, report.Skipped, report.Failed, report.ParseErrors)
	}
	if report.Totals.Relations != 8 {
		t.Errorf("Totals.Relations = %d, want 8", report.Totals.Relations)
	}
	if rate := report.Rate(); rate != 1.0 {
		t.Errorf("Rate() = %v, want 1.0", rate)
	}
	if averages := report.Averages(); averages.Languages != 24 {
		t.Errorf("Averages().Languages = %v, want 24", averages.Languages)
	}
}

func TestReportAverages_NoSuccess(t *testing.T) {
	report := &Report{}
	if averages := report.Averages(); averages != (Averages{}) {
		t.Errorf("Averages() = %+v, want zero", averages)
	}
	if rate := report.Rate(); rate != 0 {
		t.Errorf("Rate() = %v, want 0", rate)
	}
}

func TestFormatReport(t *testing.T) {
	output := FormatReport(sampleReport())

	expected := []string{
		"Processing Summary",
		"Discovered: 3 | Succeeded: 1 | Skipped: 1 | Failed: 1 (parse errors: 1)",
		"Run: run-1",
		"Rate: 1.0 docs/s",
		"EuroVoc terms",
		"[PARSE]",
		"DIR-1995-46: malformed notice XML",
	}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in report:\n%s", want, output)
		}
	}
}

func TestFormatReport_TruncatesErrors(t *testing.T) {
	report := &Report{}
	for index := 0; index < 8; index++ {
		report.add(Entry{
			Path:   fmt.Sprintf("/data/doc-%d/cellar_tree_notice.xml", index),
			Status: StatusFailed,
			Error:  "boom",
		})
	}

	output := FormatReport(report)
	if !strings.Contains(output, "Errors (8):") {
		t.Error("expected error count")
	}
	if !strings.Contains(output, "... and 3 more") {
		t.Errorf("expected truncation line in:\n%s", output)
	}
	if strings.Contains(output, "doc-5") {
		t.Error("expected only the first five errors")
	}
	if strings.Contains(output, "AVERAGE") {
		t.Error("expected no stats table without successes")
	}
}

func TestFormatEntry(t *testing.T) {
	testCases := []struct {
		name     string
		entry    Entry
		expected string
	}{
		{"success", Entry{CELEX: "32016R0679", Status: StatusSuccess}, "[1/3] [OK]     32016R0679"},
		{"failure", Entry{Path: "/data/x/cellar_tree_notice.xml", Status: StatusFailed, Error: "boom"}, "[1/3] [FAIL]   x error: boom"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if result := FormatEntry(1, 3, testCase.entry); result != testCase.expected {
				t.Errorf("FormatEntry() = %q, want %q", result, testCase.expected)
			}
		})
	}
}

func TestWriteReportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "run.json")
	if err := WriteReportJSON(sampleReport(), path); err != nil {
		t.Fatalf("WriteReportJSON() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}

	var decoded struct {
		RunID   string  `json:"run_id"`
		Entries []Entry `json:"entries"`
		Totals  struct {
			Relations int `json:"relations"`
		} `json:"totals"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report is not JSON: %v", err)
	}
	if decoded.RunID != "run-1" {
		t.Errorf("run_id = %q, want run-1", decoded.RunID)
	}
	if len(decoded.Entries) != 3 {
		t.Errorf("entries = %d, want 3", len(decoded.Entries))
	}
	if decoded.Entries[2].Status != StatusParseError {
		t.Errorf("entries[2].status = %q, want parse_error", decoded.Entries[2].Status)
	}
}
