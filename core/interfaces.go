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

package core

import "context"

// This file contains the primary interfaces for data sources, sinks and filtering.

// DataSource defines the interface for data extraction.
// Implementations produce records from a source (e.g., a CSV file).
type DataSource interface {
	// Read returns the next record or io.EOF when no more records are available.
	Read(ctx context.Context) (Record, error)
	// Close releases any resources held by the data source.
	Close() error
}

// DataSink defines the interface for data loading.
// Implementations write records to a destination (e.g., a JSON file).
type DataSink interface {
	// Write outputs a single record to the sink.
	Write(ctx context.Context, record Record) error
	// Flush ensures all buffered data is written to the sink.
	Flush() error
	// Close releases any resources held by the data sink.
	Close() error
}

// Filter defines the interface for record filtering.
// Filters determine whether a record should be included in the output.
// A filter never fails: a value it cannot interpret excludes the record.
type Filter interface {
	// ShouldInclude returns true if the record should be included in the output.
	ShouldInclude(record Record) bool
}
