// Ashgrid - Wildfire Incident Analytics
// Copyright 2026 The Ashgrid Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/ashgrid/ashgrid

package database

import (
	"context"
	"fmt"

	"github.com/ashgrid/ashgrid/internal/models"
)

// GetAgencyPerformance ranks reporting agencies by incident count and
// returns the top limit agencies with mean burned area, mean containment
// duration, and their complex-fire counts. The nested top-3 cause
// breakdown is computed per agency, but only for agencies that made the
// outer ranking, never for the full population.
func (db *DB) GetAgencyPerformance(ctx context.Context, filter IncidentFilter, limit int) ([]models.AgencyPerformance, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if limit < 1 {
		limit = 1
	}

	whereClause, args := buildFilterWhereClause(filter)

	query := fmt.Sprintf(`
		SELECT nwcg_reporting_agency,
		       COUNT(*) AS fire_count,
		       COALESCE(AVG(fire_size), 0) AS avg_fire_size,
		       COALESCE(AVG(fire_duration_days), 0) AS avg_duration,
		       COUNT(complex_name) AS complex_fire_count
		FROM incidents
		WHERE %s AND nwcg_reporting_agency IS NOT NULL
		GROUP BY nwcg_reporting_agency
		ORDER BY fire_count DESC
		LIMIT ?`, whereClause)

	queryArgs := append(args, limit)

	rows, err := db.conn.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to query agency performance: %w", err)
	}
	defer closeQuietly(rows)

	agencies := make([]models.AgencyPerformance, 0, limit)
	for rows.Next() {
		var a models.AgencyPerformance
		if err := rows.Scan(&a.AgencyName, &a.FireCount, &a.AvgFireSize,
			&a.AvgDuration, &a.ComplexFireCount); err != nil {
			return nil, fmt.Errorf("failed to scan agency row: %w", err)
		}
		a.AvgFireSize = roundTo2(a.AvgFireSize)
		a.AvgDuration = roundTo2(a.AvgDuration)
		agencies = append(agencies, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate agency rows: %w", err)
	}

	for i := range agencies {
		topCauses, err := db.getAgencyTopCauses(ctx, filter, agencies[i].AgencyName)
		if err != nil {
			return nil, err
		}
		agencies[i].TopCauses = topCauses
	}

	return agencies, nil
}

// getAgencyTopCauses returns the top 3 causes by count for one agency,
// under the same filter as the outer ranking.
func (db *DB) getAgencyTopCauses(ctx context.Context, filter IncidentFilter, agency string) ([]models.CauseCount, error) {
	whereClause, args := buildFilterWhereClause(filter)

	query := fmt.Sprintf(`
		SELECT stat_cause_descr, COUNT(*) AS cnt
		FROM incidents
		WHERE %s AND nwcg_reporting_agency = ?
		GROUP BY stat_cause_descr
		ORDER BY cnt DESC, stat_cause_descr ASC
		LIMIT 3`, whereClause)

	queryArgs := append(args, agency)

	rows, err := db.conn.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to query top causes for agency %q: %w", agency, err)
	}
	defer closeQuietly(rows)

	causes := make([]models.CauseCount, 0, 3)
	for rows.Next() {
		var c models.CauseCount
		if err := rows.Scan(&c.Cause, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan cause row: %w", err)
		}
		causes = append(causes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cause rows: %w", err)
	}

	return causes, nil
}
