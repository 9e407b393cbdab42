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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aaronlmathis/custproc/core"
)

func TestEquals(t *testing.T) {
	tests := []struct {
		name   string
		record core.Record
		value  string
		want   bool
	}{
		{"exact match", core.RecordFromPairs("country", "USA"), "USA", true},
		{"different value", core.RecordFromPairs("country", "Canada"), "USA", false},
		{"case differs", core.RecordFromPairs("country", "usa"), "USA", false},
		{"padded value", core.RecordFromPairs("country", " USA"), "USA", false},
		{"missing field", core.RecordFromPairs("name", "John"), "USA", false},
		{"empty matches empty", core.RecordFromPairs("country", ""), "", true},
		{"missing never matches empty", core.RecordFromPairs("name", "John"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equals("country", tt.value).ShouldInclude(tt.record))
		})
	}
}

func TestMinInt(t *testing.T) {
	tests := []struct {
		name   string
		record core.Record
		min    int
		want   bool
	}{
		{"above bound", core.RecordFromPairs("age", "25"), 21, true},
		{"at bound", core.RecordFromPairs("age", "21"), 21, true},
		{"below bound", core.RecordFromPairs("age", "18"), 21, false},
		{"zero bound accepts zero", core.RecordFromPairs("age", "0"), 0, true},
		{"zero bound rejects negative", core.RecordFromPairs("age", "-1"), 0, false},
		{"missing field", core.RecordFromPairs("name", "John"), 0, false},
		{"empty value", core.RecordFromPairs("age", ""), 0, false},
		{"non numeric", core.RecordFromPairs("age", "thirty"), 21, false},
		{"leading whitespace", core.RecordFromPairs("age", " 25"), 21, false},
		{"trailing whitespace", core.RecordFromPairs("age", "25 "), 21, false},
		{"decimal", core.RecordFromPairs("age", "25.5"), 21, false},
		{"explicit sign", core.RecordFromPairs("age", "+30"), 21, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MinInt("age", tt.min).ShouldInclude(tt.record))
		})
	}
}

func TestAnd(t *testing.T) {
	record := core.RecordFromPairs("country", "USA", "age", "25")

	assert.True(t, And().ShouldInclude(record))
	assert.True(t, And(Equals("country", "USA"), MinInt("age", 21)).ShouldInclude(record))
	assert.False(t, And(Equals("country", "USA"), MinInt("age", 30)).ShouldInclude(record))
	assert.False(t, And(Equals("country", "Canada"), MinInt("age", 21)).ShouldInclude(record))
}

func TestSelect_NoFiltersReturnsInput(t *testing.T) {
	records := []core.Record{
		core.RecordFromPairs("name", "John"),
		core.RecordFromPairs("name", "John"),
	}

	assert.Equal(t, records, Select(records))
}

func TestSelect_DoesNotModifyInput(t *testing.T) {
	records := []core.Record{
		core.RecordFromPairs("country", "Canada"),
		core.RecordFromPairs("country", "USA"),
	}
	original := append([]core.Record(nil), records...)

	selected := Select(records, Equals("country", "USA"))

	assert.Len(t, selected, 1)
	assert.Equal(t, original, records)
}
