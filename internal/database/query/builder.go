// Ashgrid - Wildfire Incident Analytics
// Copyright 2026 The Ashgrid Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/ashgrid/ashgrid

// Package query provides SQL query building utilities for the database package.
// It reduces code duplication and provides type-safe query construction.
package query

import (
	"strings"
	"time"
)

// WhereBuilder constructs SQL WHERE clauses with parameterized arguments.
// It ensures consistent parameter handling and reduces SQL injection risks.
//
// Example usage:
//
//	wb := query.NewWhereBuilder()
//	wb.AddDateRange(startDate, endDate)
//	wb.AddState("CA")
//	whereClause, args := wb.Build()
//	// discovery_time >= ? AND discovery_time <= ? AND state = ?
type WhereBuilder struct {
	clauses []string
	args    []any
}

// NewWhereBuilder creates a new WhereBuilder instance.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{
		clauses: []string{},
		args:    []any{},
	}
}

// AddClause adds a raw WHERE clause with its arguments. This is useful for
// custom conditions not covered by helper methods, e.g.
// "fire_size >= ?".
func (wb *WhereBuilder) AddClause(clause string, args ...any) *WhereBuilder {
	wb.clauses = append(wb.clauses, clause)
	wb.args = append(wb.args, args...)
	return wb
}

// AddDateRange bounds discovery_time inclusively. Zero times are skipped,
// so either side of the range may be left open.
func (wb *WhereBuilder) AddDateRange(startDate, endDate time.Time) *WhereBuilder {
	if !startDate.IsZero() {
		wb.clauses = append(wb.clauses, "discovery_time >= ?")
		wb.args = append(wb.args, startDate)
	}
	if !endDate.IsZero() {
		wb.clauses = append(wb.clauses, "discovery_time <= ?")
		wb.args = append(wb.args, endDate)
	}
	return wb
}

// AddYear filters on a single fire year. Non-positive years are skipped.
func (wb *WhereBuilder) AddYear(year int) *WhereBuilder {
	if year > 0 {
		wb.clauses = append(wb.clauses, "fire_year = ?")
		wb.args = append(wb.args, year)
	}
	return wb
}

// AddState filters on a two-letter state code. The code is trimmed and
// uppercased so "ca" and "CA" match the same rows.
func (wb *WhereBuilder) AddState(state string) *WhereBuilder {
	state = strings.ToUpper(strings.TrimSpace(state))
	if state != "" {
		wb.clauses = append(wb.clauses, "state = ?")
		wb.args = append(wb.args, state)
	}
	return wb
}

// AddCause filters on an exact cause description.
func (wb *WhereBuilder) AddCause(cause string) *WhereBuilder {
	if cause != "" {
		wb.clauses = append(wb.clauses, "stat_cause_descr = ?")
		wb.args = append(wb.args, cause)
	}
	return wb
}

// Conditions returns the accumulated clause fragments.
func (wb *WhereBuilder) Conditions() []string {
	return wb.clauses
}

// Args returns the accumulated bind arguments.
func (wb *WhereBuilder) Args() []any {
	return wb.args
}

// Build constructs the final WHERE clause body and returns it with its
// arguments. Clauses are joined with "AND". Returns ("1=1", []) if no
// clauses were added, so the result is always a valid boolean expression
// that callers can extend with further ANDed conditions.
func (wb *WhereBuilder) Build() (string, []any) {
	if len(wb.clauses) == 0 {
		return "1=1", []any{}
	}
	return "1=1 AND " + strings.Join(wb.clauses, " AND "), wb.args
}

// Count returns the number of clauses added to the builder.
func (wb *WhereBuilder) Count() int {
	return len(wb.clauses)
}

// IsEmpty reports whether no clauses have been added.
func (wb *WhereBuilder) IsEmpty() bool {
	return len(wb.clauses) == 0
}
