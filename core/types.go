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

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Package core defines the core types for CustProc.
//
// CustProc loads tabular customer records, keeps the ones matching a set of
// optional criteria and saves them in a different serialization format.
//
// This file contains the Record type and the FilterFunc adapter.

// Record represents a single data record in the pipeline.
// Fields keep the order in which the source declared them and every value is
// kept as the text that was decoded. Predicates parse values on demand.
//
// A Record is populated once by a reader and treated as read-only afterwards.
type Record struct {
	fields *orderedmap.OrderedMap[string, string]
}

// NewRecord returns an empty record.
func NewRecord() Record {
	return Record{fields: orderedmap.New[string, string]()}
}

// RecordFromPairs builds a record from alternating field names and values.
// It panics if given an odd number of arguments.
func RecordFromPairs(pairs ...string) Record {
	if len(pairs)%2 == 1 {
		panic("core: RecordFromPairs requires an even number of arguments")
	}
	r := NewRecord()
	for i := 0; i < len(pairs); i += 2 {
		r.Set(pairs[i], pairs[i+1])
	}
	return r
}

// Set assigns value to field. A field that already exists keeps its position.
func (r Record) Set(field, value string) {
	r.fields.Set(field, value)
}

// Get returns the value of field and whether the field is present.
func (r Record) Get(field string) (string, bool) {
	if r.fields == nil {
		return "", false
	}
	return r.fields.Get(field)
}

// Len returns the number of fields in the record.
func (r Record) Len() int {
	if r.fields == nil {
		return 0
	}
	return r.fields.Len()
}

// Fields returns the field names in source order.
func (r Record) Fields() []string {
	if r.fields == nil {
		return nil
	}
	names := make([]string, 0, r.fields.Len())
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// MarshalJSON encodes the record as a JSON object with fields in source order.
func (r Record) MarshalJSON() ([]byte, error) {
	if r.fields == nil {
		return []byte("{}"), nil
	}
	return r.fields.MarshalJSON()
}

// UnmarshalJSON decodes a JSON object of string values, keeping key order.
func (r *Record) UnmarshalJSON(data []byte) error {
	fields := orderedmap.New[string, string]()
	if err := json.Unmarshal(data, fields); err != nil {
		return err
	}
	r.fields = fields
	return nil
}

// FilterFunc is a function adapter for the Filter interface.
// Allows ordinary functions to be used as Filters.
type FilterFunc func(record Record) bool

// ShouldInclude implements the Filter interface for FilterFunc.
func (f FilterFunc) ShouldInclude(record Record) bool {
	return f(record)
}
