//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Copyright (C) 2025 Aaron Mathis aaron.mathis@gmail.com
//
// This file is part of CustProc.
//
// CustProc is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// CustProc is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with CustProc. If not, see https://www.gnu.org/licenses/.

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aaronlmathis/custproc/core"
	"github.com/aaronlmathis/custproc/internal/config"
	"github.com/aaronlmathis/custproc/internal/logger"
	"github.com/aaronlmathis/custproc/location"
	"github.com/aaronlmathis/custproc/pipeline"
)

type processOptions struct {
	input      string
	output     string
	country    string
	minAge     int
	configPath string
}

func newProcessCmd(globals *globalOptions, stdout, stderr io.Writer) *cobra.Command {
	opts := &processOptions{}

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Process customer data with optional filtering",
		Long: `Load customers from a CSV file, filter them and save the result as JSON.

Filters combine: a customer is kept only when it passes every filter given.
A customer whose age is missing or not a whole number never passes --min-age.

Exit codes:
  0 - Results saved
  1 - Usage, input or output error`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProcess(cmd, opts, globals, stdout, stderr)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.input, "input", "", "Input CSV file path (required)")
	flags.StringVar(&opts.output, "output", "", "Output JSON file path (required)")
	flags.StringVar(&opts.country, "country", "", "Filter by country")
	flags.IntVar(&opts.minAge, "min-age", 0, "Filter by minimum age")
	flags.StringVar(&opts.configPath, "config", "", "YAML configuration file")

	return cmd
}

func runProcess(cmd *cobra.Command, opts *processOptions, globals *globalOptions, stdout, stderr io.Writer) error {
	cfg := &config.Config{}
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error loading config: %v\n", err)
			return errReported
		}
		cfg = loaded
	}

	applyFlags(cmd, opts, cfg)

	var missing []string
	if cfg.Input == "" {
		missing = append(missing, `"input"`)
	}
	if cfg.Output == "" {
		missing = append(missing, `"output"`)
	}
	if len(missing) > 0 {
		return fmt.Errorf("required flag(s) %s not set", strings.Join(missing, ", "))
	}
	for _, path := range []string{cfg.Input, cfg.Output} {
		if _, err := location.Parse(path); err != nil {
			return err
		}
	}

	criteria := cfg.Criteria()
	logger.Debug("starting run",
		"input", cfg.Input,
		"output", cfg.Output,
		"criteria", criteria.String(),
	)

	summary, err := pipeline.Run(cmd.Context(), pipeline.Options{
		Input:    cfg.Input,
		Output:   cfg.Output,
		Criteria: criteria,
		CSV:      cfg.CSVOptions(),
		Opener:   location.NewOpener(location.WithS3Options(cfg.S3Options())),
		Logger:   logger.Logger,
	})

	var stageErr *core.StageError
	writeFailed := errors.As(err, &stageErr) && stageErr.Stage == core.StageWrite
	if err != nil && !writeFailed {
		reportError(stderr, cfg, err)
		return errReported
	}

	status := stdout
	if globals.quiet {
		status = io.Discard
	}

	fmt.Fprintf(status, "Loaded %d customers from %s\n", summary.Loaded, cfg.Input)
	fmt.Fprintf(status, "Filtered to %d customers", summary.Retained)
	if criteria.Active() {
		fmt.Fprintf(status, " (%s)", criteria)
	}
	fmt.Fprintln(status)

	if err != nil {
		reportError(stderr, cfg, err)
		return errReported
	}

	fmt.Fprintf(status, "Results saved to %s\n", cfg.Output)
	return nil
}

// applyFlags copies explicitly set flags over the configuration file values.
func applyFlags(cmd *cobra.Command, opts *processOptions, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = opts.input
	}
	if flags.Changed("output") {
		cfg.Output = opts.output
	}
	if flags.Changed("country") {
		country := opts.country
		cfg.Filter.Country = &country
	}
	if flags.Changed("min-age") {
		minAge := opts.minAge
		cfg.Filter.MinAge = &minAge
	}
}

func reportError(stderr io.Writer, cfg *config.Config, err error) {
	if errors.Is(err, core.ErrInputNotFound) {
		fmt.Fprintf(stderr, "Error: Input file '%s' not found.\n", cfg.Input)
		return
	}

	var stageErr *core.StageError
	if errors.As(err, &stageErr) {
		switch stageErr.Stage {
		case core.StageRead:
			fmt.Fprintf(stderr, "Error reading input file: %v\n", stageErr.Err)
			return
		case core.StageWrite:
			fmt.Fprintf(stderr, "Error writing output file: %v\n", stageErr.Err)
			return
		}
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
}
