// Ashgrid - Wildfire Incident Analytics
// Copyright 2026 The Ashgrid Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/ashgrid/ashgrid

// Package query provides SQL query building utilities for the database package.
//
// The WhereBuilder is the primary component, providing a fluent interface for
// constructing parameterized WHERE clauses over the incidents table:
//
//	wb := query.NewWhereBuilder()
//	wb.AddDateRange(startDate, endDate)
//	wb.AddState("CA")
//	wb.AddCause("Lightning")
//	whereClause, args := wb.Build()
//	// Result: "1=1 AND discovery_time >= ? AND discovery_time <= ? AND state = ? AND stat_cause_descr = ?"
//
// Custom conditions use AddClause:
//
//	wb.AddClause("fire_size >= ?", 100.0)
//	wb.AddClause("latitude IS NOT NULL")
//
// All helper methods emit ? placeholders with bound arguments; user input is
// never concatenated into the SQL text. The "1=1" base keeps the built clause
// a valid boolean expression even when no filters apply, so callers can
// append further ANDed conditions unconditionally.
//
// WhereBuilder instances are not thread-safe. Create a new instance per query.
package query
