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

package pipeline

import (
	"context"
	"log/slog"

	"github.com/aaronlmathis/custproc/core"
	"github.com/aaronlmathis/custproc/filter"
	"github.com/aaronlmathis/custproc/location"
	"github.com/aaronlmathis/custproc/readers"
	"github.com/aaronlmathis/custproc/writers"
)

// Options configures Run.
type Options struct {
	Input    string // local path or s3://bucket/key
	Output   string // local path or s3://bucket/key
	Criteria filter.Criteria
	CSV      []readers.ReaderOptionCSV
	JSON     []writers.WriterOptionJSON
	Opener   *location.Opener // defaults to location.NewOpener()
	Logger   *slog.Logger
}

// Run reads CSV records from opts.Input, keeps those matching opts.Criteria
// and writes them as a JSON array to opts.Output.
//
// A missing input satisfies errors.Is(err, core.ErrInputNotFound).
func Run(ctx context.Context, opts Options) (Summary, error) {
	opener := opts.Opener
	if opener == nil {
		opener = location.NewOpener()
	}

	in, err := location.Parse(opts.Input)
	if err != nil {
		return Summary{}, &core.StageError{Stage: core.StageRead, Path: opts.Input, Err: err}
	}
	out, err := location.Parse(opts.Output)
	if err != nil {
		return Summary{}, &core.StageError{Stage: core.StageWrite, Path: opts.Output, Err: err}
	}

	rc, err := opener.Open(ctx, in)
	if err != nil {
		return Summary{}, &core.StageError{Stage: core.StageRead, Path: opts.Input, Err: err}
	}
	source, err := readers.NewCSVReader(rc, opts.CSV...)
	if err != nil {
		rc.Close()
		return Summary{}, &core.StageError{Stage: core.StageRead, Path: opts.Input, Err: err}
	}

	wc, err := opener.Create(ctx, out)
	if err != nil {
		source.Close()
		return Summary{}, &core.StageError{Stage: core.StageWrite, Path: opts.Output, Err: err}
	}

	p, err := NewPipeline().
		From(source).
		Criteria(opts.Criteria).
		To(writers.NewJSONWriter(wc, opts.JSON...)).
		WithPaths(opts.Input, opts.Output).
		WithLogger(opts.Logger).
		Build()
	if err != nil {
		source.Close()
		wc.Close()
		return Summary{}, err
	}

	return p.Execute(ctx)
}
