// Ashgrid - Wildfire Incident Analytics
// Copyright 2026 The Ashgrid Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/ashgrid/ashgrid

package database

import "fmt"

// createTables creates the incidents table if it does not exist. The schema
// mirrors the curated FPA-FOD export the loader produces: one denormalized
// row per wildfire, with derived temporal columns precomputed at load time
// so aggregation queries never parse dates.
func (db *DB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS incidents (
		fod_id                  BIGINT PRIMARY KEY,
		fire_name               VARCHAR,
		complex_name            VARCHAR,
		fire_year               INTEGER NOT NULL,
		discovery_time          TIMESTAMP,
		cont_time               TIMESTAMP,
		discovery_doy           INTEGER,
		discovery_month         INTEGER,
		discovery_day_of_week   INTEGER,
		discovery_hour          INTEGER,
		fire_duration_days      DOUBLE,
		stat_cause_descr        VARCHAR NOT NULL,
		fire_size               DOUBLE NOT NULL,
		fire_size_class         VARCHAR,
		owner_descr             VARCHAR,
		owner_code              INTEGER,
		latitude                DOUBLE,
		longitude               DOUBLE,
		state                   VARCHAR NOT NULL,
		county                  VARCHAR,
		fips_code               VARCHAR,
		nwcg_reporting_agency   VARCHAR,
		nwcg_reporting_unit_id  VARCHAR
	)`

	if _, err := db.conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to create incidents table: %w", err)
	}
	return nil
}

// createIndexes creates indexes for the hot filter columns. DuckDB's zone
// maps already prune most scans; these cover the point-lookup paths.
func (db *DB) createIndexes() error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_incidents_year ON incidents(fire_year)",
		"CREATE INDEX IF NOT EXISTS idx_incidents_state ON incidents(state)",
		"CREATE INDEX IF NOT EXISTS idx_incidents_cause ON incidents(stat_cause_descr)",
		"CREATE INDEX IF NOT EXISTS idx_incidents_discovery ON incidents(discovery_time)",
	}

	for _, idx := range indexes {
		if _, err := db.conn.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
