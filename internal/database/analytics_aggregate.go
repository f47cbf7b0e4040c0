// Ashgrid - Wildfire Incident Analytics
// Copyright 2026 The Ashgrid Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/ashgrid/ashgrid

package database

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ashgrid/ashgrid/internal/models"
)

// groupByColumns is the allow-list for the universal grouped count. The
// request value is looked up here and the mapped column name is spliced
// into SQL; caller input never reaches the query text directly.
var groupByColumns = map[string]string{
	"STATE":            "state",
	"FIRE_YEAR":        "fire_year",
	"STAT_CAUSE_DESCR": "stat_cause_descr",
	"FIRE_SIZE_CLASS":  "fire_size_class",
	"OWNER_DESCR":      "owner_descr",
}

// AllowedGroupByFields returns the accepted group_by values, sorted, for
// error messages.
func AllowedGroupByFields() []string {
	fields := make([]string, 0, len(groupByColumns))
	for f := range groupByColumns {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// GetAggregateCounts returns per-value incident counts grouped by one of
// the allow-listed fields, null values excluded, ordered by count
// descending. An unknown field returns ErrInvalidGroupBy.
func (db *DB) GetAggregateCounts(ctx context.Context, filter IncidentFilter, groupBy string) ([]models.AggregateBucket, error) {
	column, ok := groupByColumns[strings.ToUpper(strings.TrimSpace(groupBy))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (allowed: %s)", ErrInvalidGroupBy, groupBy,
			strings.Join(AllowedGroupByFields(), ", "))
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	whereClause, args := buildFilterWhereClause(filter)

	// CAST keeps integer group keys (fire_year) stringly typed like the rest.
	query := fmt.Sprintf(`
		SELECT CAST(%s AS VARCHAR) AS group_value, COUNT(*) AS cnt
		FROM incidents
		WHERE %s AND %s IS NOT NULL
		GROUP BY %s
		ORDER BY cnt DESC, group_value ASC`, column, whereClause, column, column)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query aggregate counts: %w", err)
	}
	defer closeQuietly(rows)

	var buckets []models.AggregateBucket
	for rows.Next() {
		var b models.AggregateBucket
		if err := rows.Scan(&b.Group, &b.Count); err != nil {
			return nil, fmt.Errorf("failed to scan aggregate row: %w", err)
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate aggregate rows: %w", err)
	}

	return buckets, nil
}

// GetCountyAggregate returns per-county incident counts keyed by the
// 5-digit national FIPS code. Counts come grouped by (state, county code)
// and the national code is assembled in Go; rows whose state has no FIPS
// prefix or whose county code is null are dropped.
func (db *DB) GetCountyAggregate(ctx context.Context, filter IncidentFilter) ([]models.CountyAggregate, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	whereClause, args := buildFilterWhereClause(filter)

	query := fmt.Sprintf(`
		SELECT state, fips_code, COUNT(*) AS cnt
		FROM incidents
		WHERE %s AND fips_code IS NOT NULL AND fips_code != ''
		GROUP BY state, fips_code`, whereClause)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query county aggregate: %w", err)
	}
	defer closeQuietly(rows)

	totals := make(map[string]int64)
	for rows.Next() {
		var state, countyCode string
		var count int64
		if err := rows.Scan(&state, &countyCode, &count); err != nil {
			return nil, fmt.Errorf("failed to scan county row: %w", err)
		}
		fips := buildCountyFIPS(state, countyCode)
		if fips == "" {
			continue
		}
		totals[fips] += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate county rows: %w", err)
	}

	result := make([]models.CountyAggregate, 0, len(totals))
	for fips, count := range totals {
		result = append(result, models.CountyAggregate{FIPS: fips, Count: count})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FIPS < result[j].FIPS })

	return result, nil
}

// GetStateAggregate returns per-state incident counts ordered by count
// descending.
func (db *DB) GetStateAggregate(ctx context.Context, filter IncidentFilter) ([]models.StateAggregate, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	whereClause, args := buildFilterWhereClause(filter)

	query := fmt.Sprintf(`
		SELECT state, COUNT(*) AS cnt
		FROM incidents
		WHERE %s AND state IS NOT NULL
		GROUP BY state
		ORDER BY cnt DESC, state ASC`, whereClause)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query state aggregate: %w", err)
	}
	defer closeQuietly(rows)

	var result []models.StateAggregate
	for rows.Next() {
		var s models.StateAggregate
		if err := rows.Scan(&s.State, &s.Count); err != nil {
			return nil, fmt.Errorf("failed to scan state row: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate state rows: %w", err)
	}

	return result, nil
}

// GetSizeClassByCause cross-tabulates size class against the 4 most
// frequent causes in the filtered population, collapsing all other causes
// into "Other". Rows are ordered by size class then cause for stable
// output.
func (db *DB) GetSizeClassByCause(ctx context.Context, filter IncidentFilter) ([]models.SizeClassByCause, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	topCauses, err := db.topCausesInPopulation(ctx, filter, 4)
	if err != nil {
		return nil, err
	}

	whereClause, args := buildFilterWhereClause(filter)

	query := fmt.Sprintf(`
		SELECT fire_size_class, stat_cause_descr, COUNT(*) AS cnt
		FROM incidents
		WHERE %s AND fire_size_class IS NOT NULL
		GROUP BY fire_size_class, stat_cause_descr`, whereClause)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query size class pivot: %w", err)
	}
	defer closeQuietly(rows)

	type cell struct {
		sizeClass string
		cause     string
	}
	totals := make(map[cell]int64)
	for rows.Next() {
		var sizeClass, cause string
		var count int64
		if err := rows.Scan(&sizeClass, &cause, &count); err != nil {
			return nil, fmt.Errorf("failed to scan size class row: %w", err)
		}
		if !topCauses[cause] {
			cause = "Other"
		}
		totals[cell{sizeClass, cause}] += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate size class rows: %w", err)
	}

	result := make([]models.SizeClassByCause, 0, len(totals))
	for key, count := range totals {
		result = append(result, models.SizeClassByCause{
			SizeClass: key.sizeClass,
			Cause:     key.cause,
			FireCount: count,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].SizeClass != result[j].SizeClass {
			return result[i].SizeClass < result[j].SizeClass
		}
		return result[i].Cause < result[j].Cause
	})

	return result, nil
}

// topCausesInPopulation returns the n most frequent causes in the filtered
// set as a lookup set.
func (db *DB) topCausesInPopulation(ctx context.Context, filter IncidentFilter, n int) (map[string]bool, error) {
	whereClause, args := buildFilterWhereClause(filter)

	query := fmt.Sprintf(`
		SELECT stat_cause_descr
		FROM incidents
		WHERE %s
		GROUP BY stat_cause_descr
		ORDER BY COUNT(*) DESC, stat_cause_descr ASC
		LIMIT ?`, whereClause)

	queryArgs := append(args, n)

	rows, err := db.conn.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to query top causes: %w", err)
	}
	defer closeQuietly(rows)

	top := make(map[string]bool, n)
	for rows.Next() {
		var cause string
		if err := rows.Scan(&cause); err != nil {
			return nil, fmt.Errorf("failed to scan top cause: %w", err)
		}
		top[cause] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate top causes: %w", err)
	}

	return top, nil
}
