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
	"strings"

	"github.com/aaronlmathis/custproc/core"
)

// Field names the criteria apply to.
const (
	CountryField = "country"
	AgeField     = "age"
)

// Criteria holds the optional constraints supplied for a run.
// A nil field means the constraint is not active; a zero MinAge is a real bound.
type Criteria struct {
	Country *string
	MinAge  *int
}

// WithCountry returns a copy of c constrained to records from country.
func (c Criteria) WithCountry(country string) Criteria {
	c.Country = &country
	return c
}

// WithMinAge returns a copy of c constrained to records aged at least minAge.
func (c Criteria) WithMinAge(minAge int) Criteria {
	c.MinAge = &minAge
	return c
}

// Active reports whether any constraint is set.
func (c Criteria) Active() bool {
	return c.Country != nil || c.MinAge != nil
}

// Filters returns one filter per active constraint.
func (c Criteria) Filters() []core.Filter {
	var filters []core.Filter
	if c.Country != nil {
		filters = append(filters, Equals(CountryField, *c.Country))
	}
	if c.MinAge != nil {
		filters = append(filters, MinInt(AgeField, *c.MinAge))
	}
	return filters
}

// String describes the active constraints, e.g. "country=USA, min_age=21".
// It returns an empty string when no constraint is active.
func (c Criteria) String() string {
	var parts []string
	if c.Country != nil {
		parts = append(parts, "country="+*c.Country)
	}
	if c.MinAge != nil {
		parts = append(parts, "min_age="+strconv.Itoa(*c.MinAge))
	}
	return strings.Join(parts, ", ")
}

// Apply returns the subsequence of records satisfying every active constraint.
// With no active constraint the input is returned as is.
func Apply(records []core.Record, c Criteria) []core.Record {
	return Select(records, c.Filters()...)
}
