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

package writers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aaronlmathis/custproc/core"
)

// JSONWriterError wraps structured error information for the JSON writer.
type JSONWriterError struct {
	Op  string
	Err error
}

func (e *JSONWriterError) Error() string {
	return fmt.Sprintf("json writer %s: %v", e.Op, e.Err)
}

func (e *JSONWriterError) Unwrap() error {
	return e.Err
}

// JSONWriterStats holds statistics about the JSON writer.
type JSONWriterStats struct {
	RecordsWritten int64
	BytesWritten   int64
	FlushCount     int64
}

// JSONWriterOptions configures the JSON writer.
type JSONWriterOptions struct {
	Indent string
}

// WriterOptionJSON allows functional customization of JSONWriter.
type WriterOptionJSON func(*JSONWriterOptions)

// WithJSONIndent sets the indentation used for each nesting level.
func WithJSONIndent(indent string) WriterOptionJSON {
	return func(o *JSONWriterOptions) { o.Indent = indent }
}

// JSONWriter implements DataSink producing a single JSON array.
// Records are buffered and the whole array is written in one call on Flush,
// so the destination never receives a partial document.
type JSONWriter struct {
	writer  io.Writer
	closer  io.Closer
	records []core.Record
	flushed bool
	stats   JSONWriterStats
	opts    JSONWriterOptions
}

// NewJSONWriter creates a JSON array writer with two-space indentation by default.
func NewJSONWriter(w io.WriteCloser, options ...WriterOptionJSON) *JSONWriter {
	opts := JSONWriterOptions{Indent: "  "}
	for _, opt := range options {
		opt(&opts)
	}

	return &JSONWriter{
		writer:  w,
		closer:  w,
		records: make([]core.Record, 0),
		opts:    opts,
	}
}

// Write implements the DataSink interface. The record is buffered until Flush.
func (j *JSONWriter) Write(ctx context.Context, record core.Record) error {
	select {
	case <-ctx.Done():
		return &JSONWriterError{Op: "write", Err: ctx.Err()}
	default:
	}

	if j.flushed {
		return &JSONWriterError{Op: "write", Err: fmt.Errorf("writer already flushed")}
	}

	j.records = append(j.records, record)
	return nil
}

// Flush implements the DataSink interface. It encodes every buffered record as
// one JSON array. Calling Flush again is a no-op.
func (j *JSONWriter) Flush() error {
	if j.flushed {
		return nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", j.opts.Indent)
	if err := enc.Encode(j.records); err != nil {
		return &JSONWriterError{Op: "encode", Err: err}
	}

	n, err := j.writer.Write(buf.Bytes())
	if err != nil {
		return &JSONWriterError{Op: "write", Err: err}
	}

	j.flushed = true
	j.stats.RecordsWritten += int64(len(j.records))
	j.stats.BytesWritten += int64(n)
	j.stats.FlushCount++
	return nil
}

// Close implements the DataSink interface. Records that were never flushed are
// discarded, so a failed run leaves the destination untouched.
func (j *JSONWriter) Close() error {
	j.records = nil
	if j.closer != nil {
		if err := j.closer.Close(); err != nil {
			return &JSONWriterError{Op: "close", Err: err}
		}
	}
	return nil
}

// Stats returns JSON writer stats.
func (j *JSONWriter) Stats() JSONWriterStats {
	return j.stats
}
