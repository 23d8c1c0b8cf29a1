// Package main implements a demonstration CLI for the typeflow engine.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/danko-david/typeflow/internal/scenario"
	"github.com/danko-david/typeflow/pkg/typeflow"
)

// Config holds all command-line configuration options for the demo runner.
type Config struct {
	ScenarioPath string // path to the scenario YAML file
	Verbose      bool   // enables debug-level logging and per-node detail
	JSON         bool   // enables JSON output format
	Tag          bool   // enables debug tag propagation on nodes
}

const (
	exitMismatch = 1
	exitError    = 2
)

var (
	// Set via ldflags during build.
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

var cfg Config

func main() {
	var rootCmd = &cobra.Command{
		Use:   "typeflow-demo <scenario.yaml>",
		Short: "Run a synthetic type-flow scenario against the typeflow engine",
		Long: `typeflow-demo loads a YAML-described class hierarchy and graph-construction
script, runs it against a fresh typeflow engine to quiescence, and reports
the resulting type set on every declared node.

It exercises the engine the way an embedding compiler's reachability driver
would, without needing a real bytecode frontend.`,
		Example: `  typeflow-demo scenario.yaml             # run and print a text report
  typeflow-demo -v scenario.yaml           # verbose, with debug logging
  typeflow-demo --json scenario.yaml       # JSON report`,
		Args:               cobra.ExactArgs(1),
		RunE:               runCommand,
		PersistentPreRunE:  setup,
		SilenceUsage:       true,
		SilenceErrors:      true,
		Version:            version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("typeflow-demo version %s\n  commit: %s\n  built:  %s\n", version, gitCommit, buildTime))

	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&cfg.JSON, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&cfg.Tag, "tag", false, "Enable debug tag propagation on nodes")

	if err := rootCmd.Execute(); err != nil {
		if err.Error() != "" {
			fmt.Fprintln(os.Stderr, err.Error())
		}
		var cErr *codedError
		if errors.As(err, &cErr) {
			os.Exit(cErr.code)
		}
		os.Exit(exitError)
	}
}

func runCommand(cmd *cobra.Command, args []string) error {
	cfg.ScenarioPath = args[0]

	slog.Info("loading scenario", "path", cfg.ScenarioPath)
	s, err := scenario.Load(cfg.ScenarioPath)
	if err != nil {
		return errWithCode(fmt.Errorf("load: %w", err), exitError)
	}

	start := time.Now()
	report, err := scenario.Run(s, typeflow.WithLogging(cfg.Verbose), typeflow.WithTagging(cfg.Tag))
	if err != nil {
		return errWithCode(fmt.Errorf("run: %w", err), exitError)
	}
	dur := time.Since(start)
	slog.Info("scenario run complete", "name", s.Name, "dur", dur, "passed", report.Passed)

	if err := writeReport(report); err != nil {
		return errWithCode(fmt.Errorf("format results: %w", err), exitError)
	}

	if !report.Passed {
		return errWithCode(nil, exitMismatch)
	}
	return nil
}

func setup(_ *cobra.Command, _ []string) error {
	slog.SetDefault(slog.New(slog.DiscardHandler))
	if cfg.Verbose {
		opts := &slog.HandlerOptions{Level: slog.LevelDebug}
		var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
		if cfg.JSON {
			handler = slog.NewJSONHandler(os.Stderr, opts)
		}
		slog.SetDefault(slog.New(handler))
	}
	return nil
}

func writeReport(report *scenario.Report) error {
	if cfg.JSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling json output: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	ids := make([]string, 0, len(report.Nodes))
	for id := range report.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("scenario %q: ", report.Name)
	if report.Passed {
		fmt.Println("PASS")
	} else {
		fmt.Println("FAIL")
	}
	for _, id := range ids {
		n := report.Nodes[id]
		if cfg.Verbose || !n.Matched {
			fmt.Printf("  %s: %v\n", id, n.Types)
		}
	}
	for _, d := range report.Details {
		fmt.Printf("  - %s\n", d)
	}
	return nil
}

func errWithCode(err error, code int) error {
	return &codedError{err: err, code: code}
}

type codedError struct {
	err  error
	code int
}

func (e codedError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return ""
}
