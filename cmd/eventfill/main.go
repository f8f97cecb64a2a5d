// Package main provides eventfill, which prepares a PHOC event in the web
// admin for publishing by driving the operator's already open browser.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/entrhq/eventfill/pkg/browser"
	"github.com/entrhq/eventfill/pkg/config"
	"github.com/entrhq/eventfill/pkg/logging"
	"github.com/entrhq/eventfill/pkg/workflow"
)

const (
	version = "0.1.0"

	// runFlag must be the first argument for a run to start
	runFlag = "-np"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	Run         bool
	Improper    bool
	ShowVersion bool
	ConfigFile  string
	Verbosity   string
}

var errImproperUsage = errors.New("improper command usage")

func main() {
	cli, err := parseArgs(os.Args[1:], io.Discard)
	switch {
	case cli.ShowVersion:
		fmt.Printf("eventfill v%s\n", version)
		return
	case err != nil:
		fmt.Printf("\n%s: %v\n\n", errImproperUsage, err)
		printSetupPrompt(os.Stdout)
		return
	case !cli.Run:
		if cli.Improper {
			fmt.Printf("\n%s\n\n", errImproperUsage)
		}
		printSetupPrompt(os.Stdout)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Failures are reported, never turned into an exit status.
	if err := run(ctx, cli); err != nil {
		log.Printf("Run failed: %v", err)
	}
}

// parseArgs reads the command line. Without the run flag in first position
// the setup prompt is shown; anything after it is parsed as options.
func parseArgs(args []string, output io.Writer) (*CLIConfig, error) {
	cli := &CLIConfig{}
	if len(args) == 0 {
		return cli, nil
	}

	switch args[0] {
	case runFlag:
		cli.Run = true
	case "-version", "--version":
		cli.ShowVersion = true
		return cli, nil
	default:
		cli.Improper = true
		return cli, nil
	}

	fs := flag.NewFlagSet("eventfill "+runFlag, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cli.ConfigFile, "config", "", "Path to configuration file (YAML)")
	fs.StringVar(&cli.Verbosity, "v", "", "Console verbosity: quiet, normal, verbose, debug")

	if err := fs.Parse(args[1:]); err != nil {
		cli.Run = false
		cli.Improper = true
		return cli, err
	}
	if fs.NArg() > 0 {
		cli.Run = false
		cli.Improper = true
		return cli, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	return cli, nil
}

// run attaches to the browser, processes the open event and detaches.
func run(ctx context.Context, cli *CLIConfig) error {
	cfg, err := config.Load(cli.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cli.Verbosity != "" {
		cfg.Logging.Verbosity = cli.Verbosity
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	// NewLogger falls back to stderr on error and says so itself.
	logger, _ := logging.NewLogger(logging.NewRunID(), "eventfill")
	defer logger.Close()

	reporter := workflow.NewReporter(workflow.ParseLevel(cfg.Logging.Verbosity))
	reporter.Header(fmt.Sprintf("eventfill v%s  run %s", version, logger.RunID()))
	reporter.Infof(processingMessage)
	if cfg.Path != "" {
		reporter.Verbosef("configuration: %s", cfg.Path)
	}
	reporter.Verbosef("log file: %s", logger.LogPath())

	logger.Infof("connecting to %s", cfg.DebugEndpoint)
	session, err := browser.Connect(ctx, browser.ConnectOptions{
		Endpoint: cfg.DebugEndpoint,
		Timeout:  cfg.Timeouts.Connect,
	})
	if err != nil {
		logger.Errorf("connect: %v", err)
		reporter.Errorf("could not attach to the browser at %s: %v", cfg.DebugEndpoint, err)
		printSetupPrompt(os.Stdout)
		return err
	}
	defer teardown(session, logger)

	orchestrator := workflow.New(session, cfg,
		workflow.WithReporter(reporter),
		workflow.WithLogger(logger.For("workflow")),
	)
	summary, runErr := orchestrator.Run(ctx)
	reporter.Summary(summary)

	if cfg.Report.Enabled {
		if err := workflow.NewReportWriter(cfg.Report.OutputDir).WriteAll(summary); err != nil {
			reporter.Warningf("failed to write run report: %v", err)
		} else {
			reporter.Verbosef("run report written to %s", cfg.Report.OutputDir)
		}
	}

	if runErr != nil {
		return runErr
	}
	fmt.Print(completionMessage)
	return nil
}

// teardown detaches from the browser. The operator's browser stays open
// with the edited, unsaved event.
func teardown(session *browser.Session, logger *logging.Logger) {
	if err := session.Close(); err != nil {
		logger.Warnf("disconnect: %v", err)
		return
	}
	logger.Infof("disconnected")
}
