package workflow

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Run and tab outcomes
const (
	StatusSuccess = "success"
	StatusPartial = "partial_success"
	StatusFailed  = "failed"

	TabCompleted = "completed"
	TabAborted   = "aborted"
	TabSkipped   = "skipped"
)

// Summary is the outcome of one run
type Summary struct {
	RunID       string        `json:"run_id"`
	Status      string        `json:"status"`
	Error       string        `json:"error,omitempty"`
	WindowTitle string        `json:"window_title"`
	StartTime   time.Time     `json:"start_time"`
	EndTime     time.Time     `json:"end_time"`
	Duration    time.Duration `json:"duration"`
	Tabs        []TabResult   `json:"tabs"`
	LeaderEmail string        `json:"leader_email,omitempty"`
	Trace       []Event       `json:"trace"`
}

// TabResult is the outcome of one tab
type TabResult struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	Error       string `json:"error,omitempty"`
	Diagnostics int    `json:"diagnostics"`
}

// ReportWriter writes run reports into a directory
type ReportWriter struct {
	outputDir string
}

// NewReportWriter creates a report writer for outputDir
func NewReportWriter(outputDir string) *ReportWriter {
	return &ReportWriter{outputDir: outputDir}
}

// WriteAll writes run.json and summary.md
func (w *ReportWriter) WriteAll(s *Summary) error {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := w.WriteRunJSON(s); err != nil {
		return err
	}
	return w.WriteSummaryMarkdown(s)
}

// WriteRunJSON writes the full summary, trace included, as JSON
func (w *ReportWriter) WriteRunJSON(s *Summary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run summary: %w", err)
	}
	if err := os.WriteFile(filepath.Join(w.outputDir, "run.json"), data, 0600); err != nil {
		return fmt.Errorf("failed to write run JSON: %w", err)
	}
	return nil
}

// WriteSummaryMarkdown writes a human-readable summary
func (w *ReportWriter) WriteSummaryMarkdown(s *Summary) error {
	var md strings.Builder

	md.WriteString("# Event Form Run Summary\n\n")
	md.WriteString(fmt.Sprintf("**Run:** %s\n\n", s.RunID))
	md.WriteString(fmt.Sprintf("**Window:** %s\n\n", s.WindowTitle))
	md.WriteString(fmt.Sprintf("**Status:** %s\n\n", s.Status))
	md.WriteString(fmt.Sprintf("**Started:** %s\n\n", s.StartTime.Format(time.RFC3339)))
	md.WriteString(fmt.Sprintf("**Duration:** %s\n\n", s.Duration))
	if s.Error != "" {
		md.WriteString(fmt.Sprintf("❌ **Error:** %s\n\n", s.Error))
	}

	if len(s.Tabs) > 0 {
		md.WriteString("## Tabs\n\n")
		md.WriteString("| Tab | Status | Diagnostics |\n|---|---|---|\n")
		for _, tab := range s.Tabs {
			md.WriteString(fmt.Sprintf("| %s | %s | %d |\n", tab.Name, tab.Status, tab.Diagnostics))
		}
		md.WriteString("\n")
	}

	md.WriteString("## Interactions\n\n")
	md.WriteString(fmt.Sprintf("- **Toggles:** %d (%d changed)\n", CountActions(s.Trace, "", ActionToggle), countChanged(s.Trace)))
	md.WriteString(fmt.Sprintf("- **Extractions:** %d\n", CountActions(s.Trace, "", ActionExtract)))
	md.WriteString(fmt.Sprintf("- **Replacements:** %d\n", CountActions(s.Trace, "", ActionReplace)))

	if err := os.WriteFile(filepath.Join(w.outputDir, "summary.md"), []byte(md.String()), 0600); err != nil {
		return fmt.Errorf("failed to write summary markdown: %w", err)
	}
	return nil
}

func countChanged(trace []Event) int {
	n := 0
	for _, e := range trace {
		if e.Action == ActionToggle && e.Changed {
			n++
		}
	}
	return n
}
