// Package logging writes the per-run diagnostic log of eventfill.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Logger writes timestamped, component-tagged lines to the log file of one
// run: ~/.eventfill/logs/<run-id>-eventfill.log. Loggers derived with For
// share the file.
//
// All log methods write unconditionally; verbosity filtering belongs to the
// console reporter.
type Logger struct {
	runID     string
	component string
	sink      *sink
}

// sink is the file shared by every Logger of a run.
type sink struct {
	mu        sync.Mutex
	file      *os.File
	logger    *log.Logger
	path      string
	closeOnce sync.Once
}

var (
	// logDir is the directory where log files are stored
	logDir string

	// initOnce ensures directory initialization happens once
	initOnce sync.Once

	// initErr stores any error from directory initialization
	initErr error
)

// initLogDirectory ensures the log directory exists
func initLogDirectory() error {
	initOnce.Do(func() {
		if logDir != "" {
			initErr = os.MkdirAll(logDir, 0750)
			return
		}
		homeDir, err := os.UserHomeDir()
		if err != nil {
			initErr = fmt.Errorf("failed to get home directory: %w", err)
			return
		}

		logDir = filepath.Join(homeDir, ".eventfill", "logs")
		if err := os.MkdirAll(logDir, 0750); err != nil {
			initErr = fmt.Errorf("failed to create log directory: %w", err)
			return
		}
	})
	return initErr
}

// NewRunID returns a fresh identifier for one workflow run.
func NewRunID() string {
	return uuid.New().String()
}

// NewLogger opens the log file for runID and returns a logger tagged with
// component.
//
// If the log directory cannot be created or the file cannot be opened, it
// returns a logger writing to stderr together with the error, so callers can
// warn and carry on.
func NewLogger(runID, component string) (*Logger, error) {
	if runID == "" {
		runID = NewRunID()
	}
	if err := initLogDirectory(); err != nil {
		return newFallbackLogger(runID, component, err), err
	}

	logPath := filepath.Join(logDir, fmt.Sprintf("%s-eventfill.log", runID))
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		err = fmt.Errorf("failed to open log file: %w", err)
		return newFallbackLogger(runID, component, err), err
	}

	return &Logger{
		runID:     runID,
		component: component,
		sink: &sink{
			file:   file,
			logger: log.New(file, "", 0),
			path:   logPath,
		},
	}, nil
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{
		component: "nop",
		sink:      &sink{logger: log.New(io.Discard, "", 0)},
	}
}

func newFallbackLogger(runID, component string, err error) *Logger {
	logger := log.New(os.Stderr, "", 0)
	l := &Logger{
		runID:     runID,
		component: component,
		sink:      &sink{logger: logger},
	}
	l.Warnf("failed to initialize file logging, using stderr: %v", err)
	return l
}

// For returns a logger for another component writing to the same file.
func (l *Logger) For(component string) *Logger {
	return &Logger{runID: l.runID, component: component, sink: l.sink}
}

func (l *Logger) write(level, format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.logger.Printf("[%s] [%s] [%s] %s", timestamp, l.component, level, message)
}

// Debugf logs a debug-level message
func (l *Logger) Debugf(format string, v ...interface{}) { l.write("DEBUG", format, v...) }

// Infof logs an info-level message
func (l *Logger) Infof(format string, v ...interface{}) { l.write("INFO", format, v...) }

// Warnf logs a warning-level message
func (l *Logger) Warnf(format string, v ...interface{}) { l.write("WARN", format, v...) }

// Errorf logs an error-level message
func (l *Logger) Errorf(format string, v ...interface{}) { l.write("ERROR", format, v...) }

// RunID returns the run this logger belongs to
func (l *Logger) RunID() string {
	return l.runID
}

// LogPath returns the path to the log file, empty when logging to stderr
func (l *Logger) LogPath() string {
	return l.sink.path
}

// Close closes the log file. Safe to call multiple times and from any
// logger sharing the file.
func (l *Logger) Close() error {
	var err error
	l.sink.closeOnce.Do(func() {
		if l.sink.file != nil {
			err = l.sink.file.Close()
		}
	})
	return err
}

// GetLogDirectory returns the directory where logs are stored
func GetLogDirectory() (string, error) {
	if err := initLogDirectory(); err != nil {
		return "", err
	}
	return logDir, nil
}
