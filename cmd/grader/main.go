// Copyright 2017 CoreOS, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command grader runs a homework's tests against a student submission
// and reports the scored results, following cmd/kola's root/subcommand
// cobra tree.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/coreos/pkg/capnslog"
	"github.com/spf13/cobra"

	"github.com/coreos-grader/grader/orchestrator"
	"github.com/coreos-grader/grader/writer"
)

var (
	plog     = capnslog.NewPackageLogger("github.com/coreos-grader/grader", "grader")
	logLevel = capnslog.NOTICE

	root = &cobra.Command{
		Use:   "grader",
		Short: "Runs a homework's graded tests against a student submission",
	}

	cmdRun = &cobra.Command{
		Use:          "run",
		Short:        "Run every test configured for a homework and report scores",
		RunE:         runRun,
		SilenceUsage: true,
	}

	cmdReport = &cobra.Command{
		Use:          "report",
		Short:        "Re-render a previously written results JSON file",
		RunE:         runReport,
		SilenceUsage: true,
	}

	configPath   string
	submission   string
	group        string
	jsonOut      string
	format       string
	parallel     int
	reportFormat string
)

func init() {
	root.PersistentFlags().Var(&logLevel, "log-level", "Set global log level.")

	// --config/-h intentionally reuses the shorthand cobra otherwise
	// reserves for --help; drop the auto-registered help flag so the
	// two don't collide.
	cmdRun.Flags().BoolP("help", "", false, "help for run")
	cmdRun.Flags().StringVarP(&configPath, "config", "h", "", "path to the homework's hw.yaml")
	cmdRun.Flags().StringVarP(&submission, "submission", "s", "", "path to the student submission directory")
	cmdRun.Flags().StringVarP(&group, "group", "g", "", "restrict regular tests to the named group")
	cmdRun.Flags().StringVar(&jsonOut, "json-out", "", "path to write the results JSON document")
	cmdRun.Flags().StringVar(&format, "format", "markdown", "output rendering format: markdown|text")
	cmdRun.Flags().IntVar(&parallel, "parallel", 0, "bound on concurrent regular tests (0 means GOMAXPROCS)")
	root.AddCommand(cmdRun)

	cmdReport.Flags().StringVar(&reportFormat, "format", "markdown", "output rendering format: markdown|text")
	root.AddCommand(cmdReport)
}

func main() {
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		capnslog.SetGlobalLogLevel(logLevel)
	}
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	configPath, err := canonicalize(configPath, "--config")
	if err != nil {
		return err
	}
	submissionPath, err := canonicalize(submission, "--submission")
	if err != nil {
		return err
	}

	writerFormat := writer.MarkdownFormat
	if format == "text" {
		writerFormat = writer.TextFormat
	}

	build, err := loadHomework(configPath, submissionPath, group)
	if err != nil {
		return err
	}

	writers := buildWriters(writerFormat, jsonOut)
	orch := orchestrator.Orchestrator{
		Setup:    build.Setup,
		Regular:  build.Regular,
		Writers:  writers,
		Parallel: parallel,
	}

	results, runErr := orch.Run(context.Background())
	if runErr != nil {
		plog.Errorf("run completed with a system error: %v", runErr)
	}

	failed := 0
	for _, r := range results {
		if !r.Status.Passed() {
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
	return runErr
}

// buildWriters assembles the Stdout and, if --json-out is set, JSON
// writers, plus the additive TAP writer to stdout-adjacent fd 1 is
// skipped here since TAP and the human Stdout dump would otherwise
// interleave on the same stream; TAP is available to callers that
// construct an Orchestrator directly.
func buildWriters(f writer.Format, jsonPath string) []orchestrator.Writer {
	ws := []orchestrator.Writer{writer.Stdout{W: os.Stdout, Format: f}}
	if jsonPath != "" {
		ws = append(ws, writer.JSON{Path: jsonPath, Format: f})
	}
	return ws
}

func canonicalize(path, flag string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("grader: %s is required", flag)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("grader: resolving %s: %w", flag, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("grader: %s %s does not exist: %w", flag, abs, err)
	}
	return abs, nil
}

// reportedTest mirrors the results JSON shape from spec.md §6, decoded
// independently of the writer package's private jsonTest so `report`
// only depends on the documented wire shape.
type reportedTest struct {
	Score      float64  `json:"score"`
	MaxScore   float64  `json:"max_score"`
	Status     string   `json:"status"`
	Name       string   `json:"name"`
	Output     string   `json:"output"`
	Tags       []string `json:"tags"`
	Visibility string   `json:"visibility"`
}

type reportedResults struct {
	OutputFormat string         `json:"output_format"`
	Tests        []reportedTest `json:"tests"`
}

func runReport(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("grader: report takes exactly one results JSON path")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("grader: reading %s: %w", args[0], err)
	}
	var report reportedResults
	if err := json.Unmarshal(data, &report); err != nil {
		return fmt.Errorf("grader: decoding %s: %w", args[0], err)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "NAME\tSTATUS\tSCORE\tMAX\tVISIBILITY\n")
	var total, possible float64
	for _, t := range report.Tests {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.2f\t%s\n", t.Name, t.Status, t.Score, t.MaxScore, t.Visibility)
		total += t.Score
		possible += t.MaxScore
	}
	fmt.Fprintf(tw, "TOTAL\t\t%.2f\t%.2f\t\n", total, possible)
	if err := tw.Flush(); err != nil {
		return err
	}

	if reportFormat == "text" {
		for _, t := range report.Tests {
			if t.Status == "passed" || t.Output == "" {
				continue
			}
			fmt.Fprintf(os.Stdout, "\n--- %s ---\n%s\n", t.Name, t.Output)
		}
	}
	return nil
}
