package workflow

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSummary() *Summary {
	start := time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)
	return &Summary{
		RunID:       "run-1",
		Status:      StatusPartial,
		WindowTitle: "Piedmont Hiking and Outing Club - Event details",
		StartTime:   start,
		EndTime:     start.Add(42 * time.Second),
		Duration:    42 * time.Second,
		Tabs: []TabResult{
			{Name: TabDetails, Status: TabCompleted},
			{Name: TabTickets, Status: TabCompleted},
			{Name: TabWaitlist, Status: TabCompleted, Diagnostics: 1},
			{Name: TabEmails, Status: TabAborted, Error: "search contact: pattern not found"},
		},
		LeaderEmail: "leader@example.org",
		Trace: []Event{
			{Tab: TabDetails, Action: ActionToggle, Identifier: "id=a", Changed: true},
			{Tab: TabDetails, Action: ActionToggle, Identifier: "id=b"},
			{Tab: TabDetails, Action: ActionExtract, Identifier: "id=d"},
			{Tab: TabDetails, Action: ActionReplace, Identifier: "id=h", Changed: true},
		},
	}
}

func TestReportWriter_WriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "report")
	w := NewReportWriter(dir)

	require.NoError(t, w.WriteAll(testSummary()))

	data, err := os.ReadFile(filepath.Join(dir, "run.json"))
	require.NoError(t, err)
	var got Summary
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, StatusPartial, got.Status)
	assert.Len(t, got.Trace, 4)
	assert.Equal(t, ActionExtract, got.Trace[2].Action)

	md, err := os.ReadFile(filepath.Join(dir, "summary.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "# Event Form Run Summary")
	assert.Contains(t, string(md), "| Emails | aborted | 0 |")
	assert.Contains(t, string(md), "| Waitlist & settings | completed | 1 |")
	assert.Contains(t, string(md), "- **Toggles:** 2 (1 changed)")
	assert.Contains(t, string(md), "- **Replacements:** 1")
}

func TestReportWriter_BadDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0600))

	err := NewReportWriter(filepath.Join(file, "report")).WriteAll(testSummary())
	assert.Error(t, err)
}

func TestReporter_Levels(t *testing.T) {
	tests := []struct {
		level       Level
		wantHeader  bool
		wantInfo    bool
		wantVerbose bool
		wantDebug   bool
	}{
		{LevelQuiet, false, false, false, false},
		{LevelNormal, true, true, false, false},
		{LevelVerbose, true, true, true, false},
		{LevelDebug, true, true, true, true},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		r := NewReporterTo(&buf, tt.level)
		r.Header("header line")
		r.Infof("info line")
		r.Verbosef("verbose line")
		r.Debugf("debug line")
		r.Warningf("warning line")

		out := buf.String()
		assert.Equal(t, tt.wantHeader, bytes.Contains(buf.Bytes(), []byte("header line")), "level %d", tt.level)
		assert.Equal(t, tt.wantInfo, bytes.Contains(buf.Bytes(), []byte("info line")), "level %d", tt.level)
		assert.Equal(t, tt.wantVerbose, bytes.Contains(buf.Bytes(), []byte("verbose line")), "level %d", tt.level)
		assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("debug line")), "level %d", tt.level)
		assert.Contains(t, out, "warning line")
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelQuiet, ParseLevel("quiet"))
	assert.Equal(t, LevelNormal, ParseLevel("normal"))
	assert.Equal(t, LevelVerbose, ParseLevel("verbose"))
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelNormal, ParseLevel("loud"))
}

func TestReporter_Diagnostic(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporterTo(&buf, LevelQuiet)

	r.Diagnostic(&Error{Kind: KindTimeout, Op: "await clickable", Identifier: "id=x"})
	r.Diagnostic(&Error{Kind: KindPatternNotFound, Op: "extract", Identifier: "id=d"})

	out := buf.String()
	assert.Contains(t, out, "Warning: await clickable id=x: timeout")
	assert.Contains(t, out, "Error: extract id=d: pattern not found")
}

func TestReporter_Markup(t *testing.T) {
	var buf bytes.Buffer
	NewReporterTo(&buf, LevelNormal).Markup("cleaned description", "<STRONG>Hike</STRONG>")
	assert.Empty(t, buf.String())

	NewReporterTo(&buf, LevelDebug).Markup("cleaned description", "<STRONG>Hike</STRONG>")
	assert.Contains(t, buf.String(), "cleaned description")
	assert.Contains(t, buf.String(), "Hike")
}

func TestReporter_Summary(t *testing.T) {
	var buf bytes.Buffer
	NewReporterTo(&buf, LevelVerbose).Summary(testSummary())

	out := buf.String()
	assert.Contains(t, out, "RUN SUMMARY")
	assert.Contains(t, out, "PARTIAL SUCCESS")
	assert.Contains(t, out, "Duration: 42s")
	assert.Contains(t, out, "(1 diagnostics)")
	assert.Contains(t, out, "search contact: pattern not found")
}
