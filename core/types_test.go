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
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_PreservesFieldOrder(t *testing.T) {
	record := RecordFromPairs("id", "1", "name", "John", "age", "25", "country", "USA")

	assert.Equal(t, []string{"id", "name", "age", "country"}, record.Fields())
	assert.Equal(t, 4, record.Len())

	value, ok := record.Get("name")
	assert.True(t, ok)
	assert.Equal(t, "John", value)

	_, ok = record.Get("email")
	assert.False(t, ok)
}

func TestRecord_DuplicateFieldKeepsFirstPosition(t *testing.T) {
	record := RecordFromPairs("a", "1", "b", "2", "a", "3")

	assert.Equal(t, []string{"a", "b"}, record.Fields())
	value, _ := record.Get("a")
	assert.Equal(t, "3", value)
}

func TestRecord_ZeroValue(t *testing.T) {
	var record Record

	assert.Equal(t, 0, record.Len())
	assert.Nil(t, record.Fields())
	_, ok := record.Get("country")
	assert.False(t, ok)

	data, err := json.Marshal(record)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestRecord_MarshalJSONKeepsOrder(t *testing.T) {
	record := RecordFromPairs("name", "Jane", "age", "30", "country", "Canada")

	data, err := json.Marshal(record)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Jane","age":"30","country":"Canada"}`, string(data))
}

func TestRecord_UnmarshalJSONKeepsOrder(t *testing.T) {
	var record Record
	err := json.Unmarshal([]byte(`{"z":"1","a":"2"}`), &record)
	require.NoError(t, err)

	assert.Equal(t, []string{"z", "a"}, record.Fields())
}

func TestRecordFromPairs_OddArguments(t *testing.T) {
	assert.Panics(t, func() { RecordFromPairs("name") })
}

func TestFilterFunc(t *testing.T) {
	f := FilterFunc(func(r Record) bool {
		_, ok := r.Get("keep")
		return ok
	})

	assert.True(t, f.ShouldInclude(RecordFromPairs("keep", "")))
	assert.False(t, f.ShouldInclude(RecordFromPairs("drop", "")))
}

func TestStageError(t *testing.T) {
	err := &StageError{Stage: StageRead, Path: "customers.csv", Err: io.ErrUnexpectedEOF}

	assert.Equal(t, "read customers.csv: unexpected EOF", err.Error())
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))

	var stageErr *StageError
	wrapped := errors.Join(errors.New("outer"), err)
	require.True(t, errors.As(wrapped, &stageErr))
	assert.Equal(t, StageRead, stageErr.Stage)
}
