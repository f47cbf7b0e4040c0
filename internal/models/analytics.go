// Ashgrid - Wildfire Incident Analytics
// Copyright 2026 The Ashgrid Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/ashgrid/ashgrid

package models

// DiurnalPoint is one hour bucket of the discovery-hour aggregate.
type DiurnalPoint struct {
	Hour      int     `json:"hour"`
	FireCount int64   `json:"fire_count"`
	AvgSize   float64 `json:"avg_size"`
}

// WeeklyCadencePoint is one (day of week, cause) cell of the weekly cadence.
// Causes beyond the per-day top ranks are collapsed into "Other".
type WeeklyCadencePoint struct {
	DayOfWeek string `json:"day_of_week"`
	Cause     string `json:"cause"`
	Count     int64  `json:"count"`
}

// AgencyPerformance aggregates incident outcomes per reporting agency.
type AgencyPerformance struct {
	AgencyName       string       `json:"agency_name"`
	FireCount        int64        `json:"fire_count"`
	AvgFireSize      float64      `json:"avg_fire_size"`
	AvgDuration      float64      `json:"avg_duration"`
	ComplexFireCount int64        `json:"complex_fire_count"`
	TopCauses        []CauseCount `json:"top_causes"`
}

// CauseCount is a cause label with its incident count.
type CauseCount struct {
	Cause string `json:"cause"`
	Count int64  `json:"count"`
}

// AggregateBucket is one group of the universal grouped count.
type AggregateBucket struct {
	Group string `json:"group"`
	Count int64  `json:"count"`
}

// CountyAggregate is a per-county count keyed by the 5-digit national FIPS
// code (2-digit state prefix + zero-padded 3-digit county code).
type CountyAggregate struct {
	FIPS  string `json:"fips"`
	Count int64  `json:"count"`
}

// StateAggregate is a per-state count.
type StateAggregate struct {
	State string `json:"state"`
	Count int64  `json:"count"`
}

// SummaryStats are headline totals for a filtered population. AvgFireSize is
// 0 when no rows match, never NaN.
type SummaryStats struct {
	TotalFires  int64   `json:"total_fires"`
	TotalAcres  float64 `json:"total_acres"`
	AvgFireSize float64 `json:"avg_fire_size"`
}

// SummaryStatsExtended pairs the in-range totals with the cumulative
// population of everything up to the range end.
type SummaryStatsExtended struct {
	RangeTotalFires       int64   `json:"range_total_fires"`
	RangeTotalAcres       float64 `json:"range_total_acres"`
	RangeAvgFireSize      float64 `json:"range_avg_fire_size"`
	CumulativeTotalFires  int64   `json:"cumulative_total_fires"`
	CumulativeTotalAcres  float64 `json:"cumulative_total_acres"`
	CumulativeAvgFireSize float64 `json:"cumulative_avg_fire_size"`
}

// CorrelationPoint is one sampled record for scatter analysis.
type CorrelationPoint struct {
	FireSize     float64 `json:"fire_size"`
	DiscoveryDOY int     `json:"discovery_doy"`
	DurationDays float64 `json:"fire_duration_days"`
	Cause        string  `json:"cause"`
}

// CorrelationSample is a bounded random sample with its actual size.
type CorrelationSample struct {
	SampleSize int                `json:"sample_size"`
	Data       []CorrelationPoint `json:"data"`
}

// DurationBin is one bucket of the containment-duration histogram. Labels
// run "0-1" through "29-30" with a final "30+" overflow bucket.
type DurationBin struct {
	DurationBin string `json:"duration_bin"`
	FireCount   int64  `json:"fire_count"`
}

// SizeClassByCause is one cell of the size-class by top-cause pivot.
type SizeClassByCause struct {
	SizeClass string `json:"size_class"`
	Cause     string `json:"cause"`
	FireCount int64  `json:"fire_count"`
}

// MonthlyFrequency is one calendar year's month-by-month counts.
// MonthlyCounts always has 12 entries, January first.
type MonthlyFrequency struct {
	Year          int     `json:"year"`
	MonthlyCounts []int64 `json:"monthly_counts"`
}

// PredictionResult is one candidate cause with its probability, rounded to
// 4 decimals.
type PredictionResult struct {
	Cause       string  `json:"cause"`
	Probability float64 `json:"probability"`
}
