// Ashgrid - Wildfire Incident Analytics
// Copyright 2026 The Ashgrid Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/ashgrid/ashgrid

package database

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/ashgrid/ashgrid/internal/models"
)

// dayNames maps discovery_day_of_week (0 = Sunday) to its display label.
var dayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// weeklyTopCauses is the per-day rank cutoff for the ranked weekly cadence;
// causes below it collapse into "Other".
const weeklyTopCauses = 5

// causeCategories is the fixed cause-to-category lookup for the weekly
// summary variant. Anything absent maps to "Other".
var causeCategories = map[string]string{
	"Lightning":         "Lightning",
	"Debris Burning":    "Direct-Human",
	"Campfire":          "Direct-Human",
	"Smoking":           "Direct-Human",
	"Fireworks":         "Direct-Human",
	"Arson":             "Direct-Human",
	"Children":          "Direct-Human",
	"Equipment Use":     "Indirect-Human",
	"Railroad":          "Indirect-Human",
	"Powerline":         "Indirect-Human",
	"Structure":         "Indirect-Human",
	"Miscellaneous":     "Miscellaneous/Undefined",
	"Missing/Undefined": "Miscellaneous/Undefined",
}

// roundTo2 rounds to 2 decimal places, the precision every average in the
// API reports.
func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// GetDiurnalActivity returns per-hour incident counts and mean burned area
// for hours 0-23. Incidents without a discovery hour are excluded. Rows are
// ordered by hour ascending; hours with no incidents are omitted.
func (db *DB) GetDiurnalActivity(ctx context.Context, filter IncidentFilter) ([]models.DiurnalPoint, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	whereClause, args := buildFilterWhereClause(filter)

	query := fmt.Sprintf(`
		SELECT discovery_hour, COUNT(*) AS fire_count,
		       COALESCE(AVG(fire_size), 0) AS avg_size
		FROM incidents
		WHERE %s AND discovery_hour IS NOT NULL
		GROUP BY discovery_hour
		ORDER BY discovery_hour ASC`, whereClause)

	stmt, err := db.prepare(ctx, query)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query diurnal activity: %w", err)
	}
	defer closeQuietly(rows)

	points := make([]models.DiurnalPoint, 0, 24)
	for rows.Next() {
		var p models.DiurnalPoint
		if err := rows.Scan(&p.Hour, &p.FireCount, &p.AvgSize); err != nil {
			return nil, fmt.Errorf("failed to scan diurnal row: %w", err)
		}
		p.AvgSize = roundTo2(p.AvgSize)
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate diurnal rows: %w", err)
	}

	return points, nil
}

// weeklyCell is an intermediate (day, cause, count) row before ranking.
type weeklyCell struct {
	day   int
	cause string
	count int64
}

// queryWeeklyCells runs the shared (day-of-week, cause) grouped count
// behind both weekly cadence variants.
func (db *DB) queryWeeklyCells(ctx context.Context, filter IncidentFilter) ([]weeklyCell, error) {
	whereClause, args := buildFilterWhereClause(filter)

	query := fmt.Sprintf(`
		SELECT discovery_day_of_week, stat_cause_descr, COUNT(*) AS cnt
		FROM incidents
		WHERE %s AND discovery_day_of_week IS NOT NULL
		GROUP BY discovery_day_of_week, stat_cause_descr`, whereClause)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly cadence: %w", err)
	}
	defer closeQuietly(rows)

	var cells []weeklyCell
	for rows.Next() {
		var c weeklyCell
		if err := rows.Scan(&c.day, &c.cause, &c.count); err != nil {
			return nil, fmt.Errorf("failed to scan weekly row: %w", err)
		}
		if c.day < 0 || c.day > 6 {
			continue
		}
		cells = append(cells, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate weekly rows: %w", err)
	}

	return cells, nil
}

// GetWeeklyCadence groups incidents by (day of week, cause), keeps the top
// five causes per day by count, and collapses the remainder into a single
// "Other" bucket per day. Within a day, rows are ordered by count
// descending with ties broken by cause label ascending so output is
// deterministic; "Other" always sorts last.
func (db *DB) GetWeeklyCadence(ctx context.Context, filter IncidentFilter) ([]models.WeeklyCadencePoint, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	cells, err := db.queryWeeklyCells(ctx, filter)
	if err != nil {
		return nil, err
	}

	perDay := make(map[int][]weeklyCell)
	for _, c := range cells {
		perDay[c.day] = append(perDay[c.day], c)
	}

	result := make([]models.WeeklyCadencePoint, 0, len(cells))
	for day := 0; day < 7; day++ {
		dayCells := perDay[day]
		if len(dayCells) == 0 {
			continue
		}

		sort.Slice(dayCells, func(i, j int) bool {
			if dayCells[i].count != dayCells[j].count {
				return dayCells[i].count > dayCells[j].count
			}
			return dayCells[i].cause < dayCells[j].cause
		})

		var other int64
		for i, c := range dayCells {
			if i < weeklyTopCauses {
				result = append(result, models.WeeklyCadencePoint{
					DayOfWeek: dayNames[day],
					Cause:     c.cause,
					Count:     c.count,
				})
				continue
			}
			other += c.count
		}
		if other > 0 {
			result = append(result, models.WeeklyCadencePoint{
				DayOfWeek: dayNames[day],
				Cause:     "Other",
				Count:     other,
			})
		}
	}

	return result, nil
}

// GetWeeklyCauseSummary is the fixed-category variant of the weekly
// cadence: every cause maps through causeCategories into one of a small set
// of buckets before grouping. Rows are ordered by day then count descending
// with the cause-label tie-break.
func (db *DB) GetWeeklyCauseSummary(ctx context.Context, filter IncidentFilter) ([]models.WeeklyCadencePoint, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	cells, err := db.queryWeeklyCells(ctx, filter)
	if err != nil {
		return nil, err
	}

	type dayCategory struct {
		day      int
		category string
	}
	totals := make(map[dayCategory]int64)
	for _, c := range cells {
		category, ok := causeCategories[c.cause]
		if !ok {
			category = "Other"
		}
		totals[dayCategory{c.day, category}] += c.count
	}

	result := make([]models.WeeklyCadencePoint, 0, len(totals))
	for key, count := range totals {
		result = append(result, models.WeeklyCadencePoint{
			DayOfWeek: dayNames[key.day],
			Cause:     key.category,
			Count:     count,
		})
	}

	dayIndex := make(map[string]int, 7)
	for i, name := range dayNames {
		dayIndex[name] = i
	}
	sort.Slice(result, func(i, j int) bool {
		di, dj := dayIndex[result[i].DayOfWeek], dayIndex[result[j].DayOfWeek]
		if di != dj {
			return di < dj
		}
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Cause < result[j].Cause
	})

	return result, nil
}

// GetMonthlyFrequency builds a per-year matrix of monthly incident counts.
// Every year between the minimum and maximum observed year appears, with
// missing months zero-filled. Only the state filter applies; the matrix
// always spans the full date range of the data.
func (db *DB) GetMonthlyFrequency(ctx context.Context, state string) ([]models.MonthlyFrequency, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	whereClause, args := buildFilterWhereClause(IncidentFilter{State: state})

	query := fmt.Sprintf(`
		SELECT fire_year, discovery_month, COUNT(*) AS cnt
		FROM incidents
		WHERE %s AND discovery_month IS NOT NULL
		GROUP BY fire_year, discovery_month
		ORDER BY fire_year, discovery_month`, whereClause)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly frequency: %w", err)
	}
	defer closeQuietly(rows)

	counts := make(map[int][]int64)
	minYear, maxYear := 0, 0
	for rows.Next() {
		var year, month int
		var count int64
		if err := rows.Scan(&year, &month, &count); err != nil {
			return nil, fmt.Errorf("failed to scan monthly row: %w", err)
		}
		if month < 1 || month > 12 {
			continue
		}
		if _, ok := counts[year]; !ok {
			counts[year] = make([]int64, 12)
		}
		counts[year][month-1] = count
		if minYear == 0 || year < minYear {
			minYear = year
		}
		if year > maxYear {
			maxYear = year
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate monthly rows: %w", err)
	}

	if minYear == 0 {
		return []models.MonthlyFrequency{}, nil
	}

	result := make([]models.MonthlyFrequency, 0, maxYear-minYear+1)
	for year := minYear; year <= maxYear; year++ {
		months, ok := counts[year]
		if !ok {
			months = make([]int64, 12)
		}
		result = append(result, models.MonthlyFrequency{
			Year:          year,
			MonthlyCounts: months,
		})
	}

	return result, nil
}
