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

// Package main provides the CLI entry point for CustProc.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aaronlmathis/custproc/internal/logger"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// Build information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// errReported marks a failure whose message was already written to stderr.
var errReported = errors.New("reported")

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command line with args and returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return ExitSuccess
	}
	if !errors.Is(err, errReported) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprint(stderr, cmd.UsageString())
	}
	return ExitFailure
}

type globalOptions struct {
	verbose bool
	quiet   bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	globals := &globalOptions{}

	root := &cobra.Command{
		Use:   "custproc",
		Short: "CustProc - customer data processing",
		Long: `CustProc is a CLI tool for processing customer data.

It loads customer records from a CSV file, keeps the ones matching the
given filters and saves them as a JSON array.

Examples:
  # Keep customers from the USA aged 21 or more
  custproc process --input customers.csv --output adults.json --country USA --min-age 21

  # Read from and write to S3
  custproc process --input s3://bucket/customers.csv --output s3://bucket/out.json`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if globals.verbose {
				logger.SetLevel(slog.LevelDebug)
			} else if globals.quiet {
				logger.SetLevel(slog.LevelError)
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(stderr, cmd.Long)
			fmt.Fprintln(stderr)
			fmt.Fprint(stderr, cmd.UsageString())
			return errReported
		},
	}

	root.PersistentFlags().BoolVarP(&globals.verbose, "verbose", "v", false, "Enable verbose output")
	root.PersistentFlags().BoolVarP(&globals.quiet, "quiet", "q", false, "Suppress non-error output")

	root.AddCommand(newProcessCmd(globals, stdout, stderr))
	root.AddCommand(newVersionCmd(stdout))

	return root
}

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print version, commit hash, and build date information.",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(stdout, "custproc %s\n", version)
			fmt.Fprintf(stdout, "  Commit:     %s\n", commit)
			fmt.Fprintf(stdout, "  Build date: %s\n", buildDate)
		},
	}
}
