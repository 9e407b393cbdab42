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
	"fmt"
	"log/slog"
	"time"

	"github.com/aaronlmathis/custproc/core"
	"github.com/aaronlmathis/custproc/filter"
	"github.com/aaronlmathis/custproc/internal/logger"
	"github.com/aaronlmathis/custproc/readers"
	"github.com/aaronlmathis/custproc/writers"
)

// Package pipeline runs the load → filter → save flow of CustProc.
//
// A run is a pure function from (input records, criteria) to
// (output records, summary counts); all I/O happens in the DataSource and
// DataSink at the edges.
//
// Example usage:
//
//   p, err := pipeline.NewPipeline().
//       From(csvReader).
//       Criteria(criteria).
//       To(jsonWriter).
//       Build()
//   if err != nil { log.Fatal(err) }
//   summary, err := p.Execute(context.Background())

// Summary reports how many records a run loaded and kept.
type Summary struct {
	Loaded   int
	Retained int
}

// PipelineBuilder provides a fluent API for constructing pipelines.
// Use NewPipeline() to create a new builder, then chain From, Filter, To and Build.
type PipelineBuilder struct {
	pipeline *Pipeline
}

// NewPipeline creates a new PipelineBuilder.
func NewPipeline() *PipelineBuilder {
	return &PipelineBuilder{
		pipeline: &Pipeline{
			filters: make([]core.Filter, 0),
		},
	}
}

// From sets the DataSource for the pipeline.
func (pb *PipelineBuilder) From(source core.DataSource) *PipelineBuilder {
	pb.pipeline.source = source
	return pb
}

// Filter adds filters to the pipeline. A record must pass all of them.
func (pb *PipelineBuilder) Filter(filters ...core.Filter) *PipelineBuilder {
	pb.pipeline.filters = append(pb.pipeline.filters, filters...)
	return pb
}

// Criteria adds one filter per active constraint of c.
func (pb *PipelineBuilder) Criteria(c filter.Criteria) *PipelineBuilder {
	return pb.Filter(c.Filters()...)
}

// To sets the DataSink for the pipeline.
func (pb *PipelineBuilder) To(sink core.DataSink) *PipelineBuilder {
	pb.pipeline.sink = sink
	return pb
}

// WithPaths names the input and output in errors returned by Execute.
func (pb *PipelineBuilder) WithPaths(input, output string) *PipelineBuilder {
	pb.pipeline.inputPath = input
	pb.pipeline.outputPath = output
	return pb
}

// WithLogger sets the logger used for stage diagnostics.
func (pb *PipelineBuilder) WithLogger(l *slog.Logger) *PipelineBuilder {
	pb.pipeline.log = l
	return pb
}

// Build validates and constructs the Pipeline from the builder.
func (pb *PipelineBuilder) Build() (*Pipeline, error) {
	if pb.pipeline.source == nil {
		return nil, fmt.Errorf("pipeline requires a data source")
	}
	if pb.pipeline.sink == nil {
		return nil, fmt.Errorf("pipeline requires a data sink")
	}
	return pb.pipeline, nil
}

// Pipeline loads every record from its source, keeps those accepted by all
// filters and writes them to its sink.
type Pipeline struct {
	filters    []core.Filter
	source     core.DataSource
	sink       core.DataSink
	inputPath  string
	outputPath string
	log        *slog.Logger
}

// Execute runs the pipeline to completion.
//
// The returned Summary holds the counts reached before any failure. Read
// failures are returned as *core.StageError with Stage core.StageRead, write
// failures with Stage core.StageWrite. The sink is only flushed when every
// record was written, so a failed run produces no output.
func (p *Pipeline) Execute(ctx context.Context) (summary Summary, err error) {
	defer p.source.Close()

	sinkClosed := false
	defer func() {
		if !sinkClosed {
			p.sink.Close()
		}
	}()

	start := time.Now()
	records, err := readers.ReadAll(ctx, p.source)
	if err != nil {
		return summary, p.stageError(core.StageRead, err)
	}
	summary.Loaded = len(records)
	logger.LogStageEnd(p.log, core.StageRead, summary.Loaded, time.Since(start))
	if src, ok := p.source.(csvStatser); ok {
		stats := src.Stats()
		logger.WithStage(p.log, core.StageRead).Debug("csv input",
			slog.Int64("short_rows", stats.ShortRows),
			slog.Int64("extra_cells", stats.ExtraCells),
		)
	}

	start = time.Now()
	retained := filter.Select(records, p.filters...)
	summary.Retained = len(retained)
	logger.LogStageEnd(p.log, "filter", summary.Retained, time.Since(start))

	start = time.Now()
	for _, record := range retained {
		if err := p.sink.Write(ctx, record); err != nil {
			return summary, p.stageError(core.StageWrite, err)
		}
	}
	if err := p.sink.Flush(); err != nil {
		return summary, p.stageError(core.StageWrite, err)
	}
	sinkClosed = true
	if err := p.sink.Close(); err != nil {
		return summary, p.stageError(core.StageWrite, err)
	}
	logger.LogStageEnd(p.log, core.StageWrite, summary.Retained, time.Since(start))
	if sink, ok := p.sink.(jsonStatser); ok {
		logger.WithStage(p.log, core.StageWrite).Debug("json output",
			slog.Int64("bytes_written", sink.Stats().BytesWritten),
		)
	}

	return summary, nil
}

type csvStatser interface {
	Stats() readers.CSVReaderStats
}

type jsonStatser interface {
	Stats() writers.JSONWriterStats
}

func (p *Pipeline) stageError(stage string, err error) error {
	path := p.inputPath
	if stage == core.StageWrite {
		path = p.outputPath
	}
	return &core.StageError{Stage: stage, Path: path, Err: err}
}
