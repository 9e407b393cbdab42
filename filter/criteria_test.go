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
	"github.com/stretchr/testify/require"

	"github.com/aaronlmathis/custproc/core"
)

func customer(name, age, country string) core.Record {
	return core.RecordFromPairs("name", name, "age", age, "country", country)
}

func names(records []core.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		name, _ := r.Get("name")
		out = append(out, name)
	}
	return out
}

// isSubsequence reports whether every element of sub appears in full, in order.
func isSubsequence(sub, full []core.Record) bool {
	i := 0
	for _, r := range full {
		if i < len(sub) && sub[i] == r {
			i++
		}
	}
	return i == len(sub)
}

// intersect keeps the records of a that also appear in b, in the order of a.
func intersect(a, b []core.Record) []core.Record {
	out := make([]core.Record, 0)
	for _, r := range a {
		for _, s := range b {
			if r == s {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

func sampleCustomers() []core.Record {
	return []core.Record{
		customer("John", "25", "USA"),
		customer("Jane", "30", "Canada"),
		customer("Bob", "18", "USA"),
		customer("Alice", "22", "USA"),
		customer("Carl", "thirty", "USA"),
		customer("Dana", "", "Canada"),
		customer("Erin", " 40", "USA"),
		core.RecordFromPairs("name", "Finn", "age", "50"),
		core.RecordFromPairs("name", "Gus", "country", "USA"),
		customer("Hana", "0", "usa"),
		customer("John", "25", "USA"),
	}
}

func sampleCriteria() map[string]Criteria {
	return map[string]Criteria{
		"none":              {},
		"country":           Criteria{}.WithCountry("USA"),
		"country empty":     Criteria{}.WithCountry(""),
		"min_age":           Criteria{}.WithMinAge(21),
		"min_age zero":      Criteria{}.WithMinAge(0),
		"both":              Criteria{}.WithCountry("USA").WithMinAge(21),
		"both no matches":   Criteria{}.WithCountry("Mexico").WithMinAge(100),
		"lowercase country": Criteria{}.WithCountry("usa").WithMinAge(0),
	}
}

func TestApply_FilterByCountry(t *testing.T) {
	records := []core.Record{
		customer("John", "25", "USA"),
		customer("Jane", "30", "Canada"),
	}

	filtered := Apply(records, Criteria{}.WithCountry("USA"))

	require.Len(t, filtered, 1)
	assert.Equal(t, records[0], filtered[0])
	assert.Equal(t, []string{"name", "age", "country"}, filtered[0].Fields())
}

func TestApply_FilterByMinAge(t *testing.T) {
	records := []core.Record{
		customer("John", "25", "USA"),
		customer("Jane", "30", "Canada"),
		customer("Bob", "18", "USA"),
	}

	filtered := Apply(records, Criteria{}.WithMinAge(21))

	assert.Equal(t, []string{"John", "Jane"}, names(filtered))
}

func TestApply_NonNumericAgeExcluded(t *testing.T) {
	records := []core.Record{
		customer("John", "25", "USA"),
		customer("Carl", "thirty", "USA"),
	}

	filtered := Apply(records, Criteria{}.WithMinAge(21))

	assert.Equal(t, []string{"John"}, names(filtered))
}

func TestApply_FilterByCountryAndMinAge(t *testing.T) {
	records := []core.Record{
		customer("John", "25", "USA"),
		customer("Jane", "30", "Canada"),
		customer("Bob", "18", "USA"),
		customer("Alice", "22", "USA"),
	}

	filtered := Apply(records, Criteria{}.WithCountry("USA").WithMinAge(21))

	assert.Equal(t, []string{"John", "Alice"}, names(filtered))
}

func TestApply_EmptyInput(t *testing.T) {
	for name, c := range sampleCriteria() {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, Apply(nil, c))
			assert.Empty(t, Apply([]core.Record{}, c))
		})
	}
}

func TestApply_MinAgeZeroIsABound(t *testing.T) {
	filtered := Apply(sampleCustomers(), Criteria{}.WithMinAge(0))

	assert.Equal(t, []string{"John", "Jane", "Bob", "Alice", "Finn", "Hana", "John"}, names(filtered))
}

func TestApply_ParseFailureOnlyAffectsAge(t *testing.T) {
	records := []core.Record{customer("Carl", "thirty", "USA")}

	assert.Len(t, Apply(records, Criteria{}.WithCountry("USA")), 1)
	assert.Empty(t, Apply(records, Criteria{}.WithCountry("USA").WithMinAge(21)))
}

func TestApply_Identity(t *testing.T) {
	records := sampleCustomers()

	assert.Equal(t, records, Apply(records, Criteria{}))
}

func TestApply_Properties(t *testing.T) {
	records := sampleCustomers()

	for name, c := range sampleCriteria() {
		t.Run(name, func(t *testing.T) {
			once := Apply(records, c)

			assert.True(t, isSubsequence(once, records), "result must be a subsequence of the input")
			assert.Equal(t, once, Apply(once, c), "filtering must be idempotent")

			byCountry := Apply(records, Criteria{Country: c.Country})
			byAge := Apply(records, Criteria{MinAge: c.MinAge})
			assert.Equal(t, names(intersect(byCountry, byAge)), names(once), "criteria must combine conjunctively")
		})
	}
}

func TestCriteria_String(t *testing.T) {
	assert.Equal(t, "", Criteria{}.String())
	assert.Equal(t, "country=USA", Criteria{}.WithCountry("USA").String())
	assert.Equal(t, "min_age=0", Criteria{}.WithMinAge(0).String())
	assert.Equal(t, "country=USA, min_age=21", Criteria{}.WithMinAge(21).WithCountry("USA").String())
}

func TestCriteria_Active(t *testing.T) {
	assert.False(t, Criteria{}.Active())
	assert.True(t, Criteria{}.WithCountry("").Active())
	assert.True(t, Criteria{}.WithMinAge(0).Active())
	assert.Len(t, Criteria{}.WithCountry("USA").WithMinAge(21).Filters(), 2)
}
