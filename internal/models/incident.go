// Ashgrid - Wildfire Incident Analytics
// Copyright 2026 The Ashgrid Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/ashgrid/ashgrid

package models

import "time"

// Incident is one wildfire record from the historical dataset. The store is
// bulk-loaded by an external ingestion job and read-only from this service.
//
// The temporal fields derived from DiscoveryTime and ContTime are
// precomputed at load time. Records with a missing discovery timestamp have
// NULL derived fields and fall out of every temporal aggregate; they still
// count in spatial and categorical ones. Data-quality anomalies such as
// containment before discovery (negative duration) are tolerated, not
// rejected.
type Incident struct {
	FODID          int64      `json:"fod_id"`
	FireName       *string    `json:"fire_name"`
	ComplexName    *string    `json:"complex_name,omitempty"`
	FireYear       int        `json:"fire_year"`
	DiscoveryTime  *time.Time `json:"discovery_time"`
	ContTime       *time.Time `json:"cont_time,omitempty"`
	StatCauseDescr string     `json:"stat_cause_descr"`
	FireSize       float64    `json:"fire_size"`
	FireSizeClass  string     `json:"fire_size_class"`
	OwnerDescr     *string    `json:"owner_descr,omitempty"`
	OwnerCode      *float64   `json:"owner_code,omitempty"`
	Latitude       float64    `json:"latitude"`
	Longitude      float64    `json:"longitude"`
	State          string     `json:"state"`
	County         *string    `json:"county,omitempty"`
	FIPSCode       *int       `json:"fips_code,omitempty"`
	Agency         *string    `json:"nwcg_reporting_agency,omitempty"`
	DiscoveryDOY   *int       `json:"discovery_doy,omitempty"`
	DurationDays   *float64   `json:"fire_duration_days,omitempty"`
}

// PaginatedFires is a page of the point listing, ordered by fire size
// descending so a capped page shows the most significant fires first.
type PaginatedFires struct {
	TotalFires int64      `json:"total_fires"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	Fires      []Incident `json:"fires"`
}
