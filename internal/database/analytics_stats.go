// Ashgrid - Wildfire Incident Analytics
// Copyright 2026 The Ashgrid Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/ashgrid/ashgrid

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/ashgrid/ashgrid/internal/models"
)

// Outlier caps for the correlation sample. Megafires and multi-month
// containments dominate any scatter plot, so they are excluded up front.
const (
	correlationMaxAcres    = 10000.0
	correlationMaxDuration = 30.0
)

// GetSummaryStats returns total count, total burned acres, and mean size
// over the filtered set. An empty set yields all zeros, never NaN.
func (db *DB) GetSummaryStats(ctx context.Context, filter IncidentFilter) (*models.SummaryStats, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	count, acres, err := db.querySummaryTotals(ctx, filter)
	if err != nil {
		return nil, err
	}

	stats := &models.SummaryStats{
		TotalFires: count,
		TotalAcres: roundTo2(acres),
	}
	if count > 0 {
		stats.AvgFireSize = roundTo2(acres / float64(count))
	}
	return stats, nil
}

// GetSummaryStatsExtended pairs the in-range totals with a cumulative
// population covering everything up to the range end. The cumulative
// filter keeps state and cause but replaces the lower date bound (or the
// year) with an open start; a year filter becomes an end bound of Dec 31
// of that year.
func (db *DB) GetSummaryStatsExtended(ctx context.Context, filter IncidentFilter) (*models.SummaryStatsExtended, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rangeCount, rangeAcres, err := db.querySummaryTotals(ctx, filter)
	if err != nil {
		return nil, err
	}

	cumulative := IncidentFilter{
		State:   filter.State,
		Cause:   filter.Cause,
		EndDate: filter.EndDate,
	}
	if cumulative.EndDate.IsZero() && filter.Year > 0 {
		cumulative.EndDate = time.Date(filter.Year, time.December, 31, 23, 59, 59, 0, time.UTC)
	}

	cumCount, cumAcres, err := db.querySummaryTotals(ctx, cumulative)
	if err != nil {
		return nil, err
	}

	stats := &models.SummaryStatsExtended{
		RangeTotalFires:      rangeCount,
		RangeTotalAcres:      roundTo2(rangeAcres),
		CumulativeTotalFires: cumCount,
		CumulativeTotalAcres: roundTo2(cumAcres),
	}
	if rangeCount > 0 {
		stats.RangeAvgFireSize = roundTo2(rangeAcres / float64(rangeCount))
	}
	if cumCount > 0 {
		stats.CumulativeAvgFireSize = roundTo2(cumAcres / float64(cumCount))
	}
	return stats, nil
}

func (db *DB) querySummaryTotals(ctx context.Context, filter IncidentFilter) (int64, float64, error) {
	whereClause, args := buildFilterWhereClause(filter)

	query := fmt.Sprintf(`
		SELECT COUNT(*), COALESCE(SUM(fire_size), 0)
		FROM incidents
		WHERE %s`, whereClause)

	var count int64
	var acres float64
	if err := db.conn.QueryRowContext(ctx, query, args...).Scan(&count, &acres); err != nil {
		return 0, 0, fmt.Errorf("failed to query summary stats: %w", err)
	}
	return count, acres, nil
}

// GetCorrelationSample draws a bounded random sample of (size, day of
// year, duration, cause) tuples for scatter analysis. Rows with a null
// tuple field, negative values, or values at or above the outlier caps are
// excluded before sampling, so the sample reflects the plot-worthy
// population.
//
// DuckDB's USING SAMPLE binds to the table before WHERE is applied, so the
// filtered SELECT is wrapped in a subquery and sampled from there. The
// sample size is validated by the caller and spliced as an integer; it
// cannot be a bind parameter in a SAMPLE clause.
func (db *DB) GetCorrelationSample(ctx context.Context, filter IncidentFilter, sampleSize int) (*models.CorrelationSample, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if sampleSize < 1 {
		return nil, fmt.Errorf("sample size must be positive, got %d", sampleSize)
	}

	whereClause, args := buildFilterWhereClause(filter)

	query := fmt.Sprintf(`
		SELECT fire_size, discovery_doy, fire_duration_days, stat_cause_descr
		FROM (
			SELECT fire_size, discovery_doy, fire_duration_days, stat_cause_descr
			FROM incidents
			WHERE %s
			  AND fire_size IS NOT NULL AND fire_size >= 0 AND fire_size < %f
			  AND fire_duration_days IS NOT NULL AND fire_duration_days >= 0 AND fire_duration_days < %f
			  AND discovery_doy IS NOT NULL
			  AND stat_cause_descr IS NOT NULL
		) USING SAMPLE %d ROWS`,
		whereClause, correlationMaxAcres, correlationMaxDuration, sampleSize)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query correlation sample: %w", err)
	}
	defer closeQuietly(rows)

	points := make([]models.CorrelationPoint, 0, sampleSize)
	for rows.Next() {
		var p models.CorrelationPoint
		if err := rows.Scan(&p.FireSize, &p.DiscoveryDOY, &p.DurationDays, &p.Cause); err != nil {
			return nil, fmt.Errorf("failed to scan correlation row: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate correlation rows: %w", err)
	}

	return &models.CorrelationSample{
		SampleSize: len(points),
		Data:       points,
	}, nil
}

// GetDurationDistribution bins containment duration into 30 unit-width
// buckets over [0,30) plus a "30+" overflow bucket. All 31 bins are always
// present, zero-filled, so the histogram domain is stable across filters.
func (db *DB) GetDurationDistribution(ctx context.Context, filter IncidentFilter) ([]models.DurationBin, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	whereClause, args := buildFilterWhereClause(filter)

	query := fmt.Sprintf(`
		SELECT LEAST(CAST(FLOOR(fire_duration_days) AS INTEGER), 30) AS bin,
		       COUNT(*) AS cnt
		FROM incidents
		WHERE %s AND fire_duration_days IS NOT NULL AND fire_duration_days >= 0
		GROUP BY bin`, whereClause)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query duration distribution: %w", err)
	}
	defer closeQuietly(rows)

	counts := make(map[int]int64, 31)
	for rows.Next() {
		var bin int
		var count int64
		if err := rows.Scan(&bin, &count); err != nil {
			return nil, fmt.Errorf("failed to scan duration row: %w", err)
		}
		counts[bin] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate duration rows: %w", err)
	}

	bins := make([]models.DurationBin, 0, 31)
	for i := 0; i < 30; i++ {
		bins = append(bins, models.DurationBin{
			DurationBin: fmt.Sprintf("%d-%d", i, i+1),
			FireCount:   counts[i],
		})
	}
	bins = append(bins, models.DurationBin{
		DurationBin: "30+",
		FireCount:   counts[30],
	})

	return bins, nil
}
