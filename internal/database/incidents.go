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

// GetFires returns a page of incidents matching the filter, sorted by
// burned area descending. The total count is computed over the full
// filtered set before pagination so clients can derive page counts.
// Incidents without coordinates are excluded since the listing backs the
// map view.
func (db *DB) GetFires(ctx context.Context, filter IncidentFilter, page, limit int) (*models.PaginatedFires, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	whereClause, args := buildFilterWhereClause(filter)
	whereClause += " AND latitude IS NOT NULL AND longitude IS NOT NULL"

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM incidents WHERE %s", whereClause)

	var total int64
	if err := db.conn.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count fires: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT fod_id, fire_name, complex_name, fire_year, discovery_time,
		       cont_time, discovery_doy, fire_duration_days, stat_cause_descr,
		       fire_size, fire_size_class, owner_descr, owner_code,
		       latitude, longitude, state, county, fips_code,
		       nwcg_reporting_agency
		FROM incidents
		WHERE %s
		ORDER BY fire_size DESC
		LIMIT ? OFFSET ?`, whereClause)

	queryArgs := append(args, limit, (page-1)*limit)

	rows, err := db.conn.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to query fires: %w", err)
	}
	defer closeQuietly(rows)

	fires := make([]models.Incident, 0, limit)
	for rows.Next() {
		var inc models.Incident
		if err := rows.Scan(
			&inc.FODID, &inc.FireName, &inc.ComplexName, &inc.FireYear,
			&inc.DiscoveryTime, &inc.ContTime, &inc.DiscoveryDOY,
			&inc.DurationDays, &inc.StatCauseDescr, &inc.FireSize,
			&inc.FireSizeClass, &inc.OwnerDescr, &inc.OwnerCode,
			&inc.Latitude, &inc.Longitude, &inc.State, &inc.County,
			&inc.FIPSCode, &inc.Agency,
		); err != nil {
			return nil, fmt.Errorf("failed to scan fire row: %w", err)
		}
		fires = append(fires, inc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate fire rows: %w", err)
	}

	return &models.PaginatedFires{
		TotalFires: total,
		Page:       page,
		Limit:      limit,
		Fires:      fires,
	}, nil
}

// GetFiresByYear returns every incident in the given year at or above the
// minimum size threshold, with coordinates present, sorted by burned area
// descending. This backs the full-year export endpoint, so no pagination.
func (db *DB) GetFiresByYear(ctx context.Context, year int, minAcres float64) ([]models.Incident, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT fod_id, fire_name, complex_name, fire_year, discovery_time,
		       cont_time, discovery_doy, fire_duration_days, stat_cause_descr,
		       fire_size, fire_size_class, owner_descr, owner_code,
		       latitude, longitude, state, county, fips_code,
		       nwcg_reporting_agency
		FROM incidents
		WHERE fire_year = ?
		  AND fire_size >= ?
		  AND latitude IS NOT NULL AND longitude IS NOT NULL
		ORDER BY fire_size DESC`

	rows, err := db.conn.QueryContext(ctx, query, year, minAcres)
	if err != nil {
		return nil, fmt.Errorf("failed to query fires for year %d: %w", year, err)
	}
	defer closeQuietly(rows)

	var fires []models.Incident
	for rows.Next() {
		var inc models.Incident
		if err := rows.Scan(
			&inc.FODID, &inc.FireName, &inc.ComplexName, &inc.FireYear,
			&inc.DiscoveryTime, &inc.ContTime, &inc.DiscoveryDOY,
			&inc.DurationDays, &inc.StatCauseDescr, &inc.FireSize,
			&inc.FireSizeClass, &inc.OwnerDescr, &inc.OwnerCode,
			&inc.Latitude, &inc.Longitude, &inc.State, &inc.County,
			&inc.FIPSCode, &inc.Agency,
		); err != nil {
			return nil, fmt.Errorf("failed to scan fire row: %w", err)
		}
		fires = append(fires, inc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate fire rows: %w", err)
	}

	return fires, nil
}

// GetComplexNames returns the distinct non-empty complex fire names,
// sorted alphabetically.
func (db *DB) GetComplexNames(ctx context.Context) ([]string, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT DISTINCT complex_name
		FROM incidents
		WHERE complex_name IS NOT NULL AND complex_name != ''
		ORDER BY complex_name ASC`

	stmt, err := db.prepare(ctx, query)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query complex names: %w", err)
	}
	defer closeQuietly(rows)

	names := make([]string, 0, 64)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan complex name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate complex names: %w", err)
	}

	return names, nil
}
