// Ashgrid - Wildfire Incident Analytics
// Copyright 2026 The Ashgrid Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/ashgrid/ashgrid

package database

import (
	"strings"
	"time"

	"github.com/ashgrid/ashgrid/internal/database/query"
)

// FilterAll is the sentinel value meaning "do not filter on this dimension".
// Clients send it explicitly; an empty string is treated the same way.
const FilterAll = "All"

// IncidentFilter carries the common query filters shared by every
// aggregation endpoint. Zero values mean unfiltered.
type IncidentFilter struct {
	// Year restricts to a single fire year. Ignored when either date
	// bound is set, since an explicit date range is more specific.
	Year int

	// State is a two-letter state code, or FilterAll / empty for all.
	State string

	// Cause is a cause description, or FilterAll / empty for all.
	Cause string

	// StartDate and EndDate bound discovery_time inclusively. Either may
	// be zero to leave that side open.
	StartDate time.Time
	EndDate   time.Time
}

// active reports whether a string filter value should produce a condition.
func active(v string) bool {
	return v != "" && !strings.EqualFold(v, FilterAll)
}

// filterBuilder translates the filter into a WhereBuilder. Date bounds take
// precedence over Year: when either is present the year condition is
// omitted entirely.
func filterBuilder(filter IncidentFilter) *query.WhereBuilder {
	wb := query.NewWhereBuilder()

	if !filter.StartDate.IsZero() || !filter.EndDate.IsZero() {
		wb.AddDateRange(filter.StartDate, filter.EndDate)
	} else {
		wb.AddYear(filter.Year)
	}

	if active(filter.State) {
		wb.AddState(filter.State)
	}
	if active(filter.Cause) {
		wb.AddCause(filter.Cause)
	}
	return wb
}

// buildFilterConditions returns the filter's SQL conditions and bind
// arguments.
func buildFilterConditions(filter IncidentFilter) ([]string, []any) {
	wb := filterBuilder(filter)
	return wb.Conditions(), wb.Args()
}

// buildFilterWhereClause renders the filter as a WHERE body. The leading
// "1=1" keeps the clause valid when no conditions apply and lets callers
// append further ANDed conditions unconditionally.
func buildFilterWhereClause(filter IncidentFilter) (string, []any) {
	return filterBuilder(filter).Build()
}
