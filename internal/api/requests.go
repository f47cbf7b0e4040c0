// Ashgrid - Wildfire Incident Analytics
// Copyright 2026 The Ashgrid Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/ashgrid/ashgrid

package api

// Request structs with validation tags. Query parameters are parsed into
// these and validated before any query runs, so limits and ranges are
// enforced in one place.

// FiresRequest validates pagination parameters for the incident listing.
type FiresRequest struct {
	Page  int `validate:"min=1"`
	Limit int `validate:"min=1"`
}

// FiresByYearRequest validates the year path parameter for the full-year
// export.
type FiresByYearRequest struct {
	Year int `validate:"min=1900,max=2100"`
}

// AgenciesRequest validates the outer ranking size for agency performance.
type AgenciesRequest struct {
	Limit int `validate:"min=1"`
}

// AggregateRequest validates the universal grouped count parameters. The
// group_by allow-list itself is enforced by the database layer; this only
// checks shape.
type AggregateRequest struct {
	GroupBy string `validate:"required"`
	Limit   int    `validate:"min=0"`
	Order   string `validate:"omitempty,oneof=count value"`
}

// CorrelationRequest validates the sample bound.
type CorrelationRequest struct {
	SampleSize int `validate:"min=1"`
}

// PredictRequest is the feature record body for cause prediction.
// OwnerCode and AgencyCode are optional ordinal overrides.
type PredictRequest struct {
	Latitude   float64 `json:"latitude" validate:"latitude"`
	Longitude  float64 `json:"longitude" validate:"longitude"`
	FireSize   float64 `json:"fire_size" validate:"gt=0"`
	State      string  `json:"state" validate:"required,usstate"`
	Date       string  `json:"date" validate:"required"`
	OwnerCode  *int    `json:"owner_code,omitempty" validate:"omitempty,min=0"`
	AgencyCode *int    `json:"agency_code,omitempty" validate:"omitempty,min=0"`
}
