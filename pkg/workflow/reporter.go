package workflow

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
)

// Level is the console verbosity
type Level int

const (
	// LevelQuiet shows errors, warnings and the final summary
	LevelQuiet Level = iota
	// LevelNormal shows tab progress (default)
	LevelNormal
	// LevelVerbose shows every interaction
	LevelVerbose
	// LevelDebug also shows the cleaned description markup
	LevelDebug
)

// ParseLevel converts a configured verbosity name. Unknown names map to
// LevelNormal.
func ParseLevel(level string) Level {
	switch level {
	case "quiet":
		return LevelQuiet
	case "verbose":
		return LevelVerbose
	case "debug":
		return LevelDebug
	default:
		return LevelNormal
	}
}

var (
	salmonPink = lipgloss.Color("#FFB3BA")
	mintGreen  = lipgloss.Color("#A8E6CF")
	amber      = lipgloss.Color("#F5C16C")
	mutedGray  = lipgloss.Color("#6B7280")

	headerStyle  = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Foreground(salmonPink).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(mintGreen).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(amber)
	errorStyle   = lipgloss.NewStyle().Foreground(salmonPink).Bold(true)
	detailStyle  = lipgloss.NewStyle().Foreground(mutedGray)
)

// Reporter writes run progress for the operator watching the terminal.
type Reporter struct {
	level  Level
	writer io.Writer
}

// NewReporter creates a reporter writing to stdout.
func NewReporter(level Level) *Reporter {
	return &Reporter{level: level, writer: os.Stdout}
}

// NewReporterTo creates a reporter writing to w.
func NewReporterTo(w io.Writer, level Level) *Reporter {
	return &Reporter{level: level, writer: w}
}

// Header prints a prominent header message
func (r *Reporter) Header(message string) {
	if r.level >= LevelNormal {
		rule := strings.Repeat("=", 70)
		fmt.Fprintf(r.writer, "\n%s\n%s\n%s\n", headerStyle.Render(rule), headerStyle.Render("  "+message), headerStyle.Render(rule))
	}
}

// Section prints a section divider
func (r *Reporter) Section(title string) {
	if r.level >= LevelNormal {
		fmt.Fprintln(r.writer)
		fmt.Fprintln(r.writer, sectionStyle.Render("▶ "+title))
		fmt.Fprintln(r.writer, detailStyle.Render(strings.Repeat("─", 50)))
	}
}

// Successf prints a success message with checkmark
func (r *Reporter) Successf(format string, args ...interface{}) {
	if r.level >= LevelNormal {
		fmt.Fprintln(r.writer, successStyle.Render("✓ "+fmt.Sprintf(format, args...)))
	}
}

// Infof prints an informational message
func (r *Reporter) Infof(format string, args ...interface{}) {
	if r.level >= LevelNormal {
		fmt.Fprintln(r.writer, fmt.Sprintf(format, args...))
	}
}

// Warningf prints a warning message
func (r *Reporter) Warningf(format string, args ...interface{}) {
	fmt.Fprintln(r.writer, warningStyle.Render("⚠ Warning: "+fmt.Sprintf(format, args...)))
}

// Errorf prints an error message
func (r *Reporter) Errorf(format string, args ...interface{}) {
	fmt.Fprintln(r.writer, errorStyle.Render("✗ Error: "+fmt.Sprintf(format, args...)))
}

// Verbosef prints detailed information (only in verbose mode)
func (r *Reporter) Verbosef(format string, args ...interface{}) {
	if r.level >= LevelVerbose {
		fmt.Fprintln(r.writer, detailStyle.Render("→ "+fmt.Sprintf(format, args...)))
	}
}

// Debugf prints debug information (only in debug mode)
func (r *Reporter) Debugf(format string, args ...interface{}) {
	if r.level >= LevelDebug {
		fmt.Fprintln(r.writer, detailStyle.Render("[DEBUG] "+fmt.Sprintf(format, args...)))
	}
}

// Diagnostic prints a workflow failure. Continue-level failures are
// warnings; anything that stops a tab or the run is an error.
func (r *Reporter) Diagnostic(e *Error) {
	if e.Kind.Severity() == SeverityContinue {
		r.Warningf("%v", e)
		return
	}
	r.Errorf("%v", e)
}

// Markup prints syntax highlighted HTML (only in debug mode)
func (r *Reporter) Markup(title, html string) {
	if r.level < LevelDebug {
		return
	}
	fmt.Fprintln(r.writer, detailStyle.Render("[DEBUG] "+title+":"))
	if err := quick.Highlight(r.writer, html, "html", "terminal256", "monokai"); err != nil {
		fmt.Fprintln(r.writer, html)
		return
	}
	fmt.Fprintln(r.writer)
}

// Summary prints the final run summary
func (r *Reporter) Summary(s *Summary) {
	rule := headerStyle.Render(strings.Repeat("=", 70))
	fmt.Fprintln(r.writer)
	fmt.Fprintln(r.writer, rule)
	fmt.Fprintln(r.writer, headerStyle.Render("  RUN SUMMARY"))
	fmt.Fprintln(r.writer, rule)

	fmt.Fprint(r.writer, "  Status: ")
	switch s.Status {
	case StatusSuccess:
		fmt.Fprintln(r.writer, successStyle.Render("✓ SUCCESS"))
	case StatusPartial:
		fmt.Fprintln(r.writer, warningStyle.Render("⚠ PARTIAL SUCCESS"))
	default:
		fmt.Fprintln(r.writer, errorStyle.Render("✗ FAILED"))
	}
	fmt.Fprintf(r.writer, "  Duration: %s\n", s.Duration.Round(time.Second))

	for _, tab := range s.Tabs {
		line := fmt.Sprintf("    %-28s %s", tab.Name, tab.Status)
		if tab.Diagnostics > 0 {
			line += fmt.Sprintf(" (%d diagnostics)", tab.Diagnostics)
		}
		fmt.Fprintln(r.writer, line)
		if tab.Error != "" && r.level >= LevelVerbose {
			fmt.Fprintln(r.writer, detailStyle.Render("      "+tab.Error))
		}
	}

	if s.Error != "" {
		fmt.Fprintln(r.writer)
		fmt.Fprintln(r.writer, errorStyle.Render("  Error Details:"))
		fmt.Fprintf(r.writer, "    %s\n", s.Error)
	}
	fmt.Fprintln(r.writer, rule)
	fmt.Fprintln(r.writer)
}
