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

package filter

import (
	"strconv"

	"github.com/aaronlmathis/custproc/core"
)

// Package filter provides the record predicates used by CustProc pipelines.
//
// Predicates see every value as text and parse it themselves. A value that is
// missing or cannot be parsed excludes the record; it is never an error.
// All functions return core.Filter implementations.

// Equals creates a filter that includes records where the field is present and
// equal to value. The comparison is exact and case-sensitive.
func Equals(field, value string) core.Filter {
	return core.FilterFunc(func(record core.Record) bool {
		got, exists := record.Get(field)
		if !exists {
			return false
		}
		return got == value
	})
}

// MinInt creates a filter that includes records where the field holds a base-10
// integer greater than or equal to min. Surrounding whitespace is not trimmed.
func MinInt(field string, min int) core.Filter {
	return core.FilterFunc(func(record core.Record) bool {
		value, exists := record.Get(field)
		if !exists || value == "" {
			return false
		}

		num, err := strconv.Atoi(value)
		if err != nil {
			return false
		}

		return num >= min
	})
}

// And creates a filter that requires all provided filters to pass.
// With no filters every record passes.
func And(filters ...core.Filter) core.Filter {
	return core.FilterFunc(func(record core.Record) bool {
		for _, filter := range filters {
			if !filter.ShouldInclude(record) {
				return false
			}
		}
		return true
	})
}

// Select returns the records accepted by every filter, in their original order.
// The input slice is never modified.
func Select(records []core.Record, filters ...core.Filter) []core.Record {
	if len(filters) == 0 {
		return records
	}

	keep := And(filters...)
	selected := make([]core.Record, 0, len(records))
	for _, record := range records {
		if keep.ShouldInclude(record) {
			selected = append(selected, record)
		}
	}
	return selected
}
