// Ashgrid - Wildfire Incident Analytics
// Copyright 2026 The Ashgrid Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/ashgrid/ashgrid

package database

import (
	"context"
	"errors"
	"testing"
)

func TestGetAggregateCountsByState(t *testing.T) {
	db := setupTestDB(t)

	insertIncident(t, db, testIncident{State: "CA"})
	insertIncident(t, db, testIncident{State: "CA"})
	insertIncident(t, db, testIncident{State: "OR"})

	buckets, err := db.GetAggregateCounts(context.Background(), IncidentFilter{}, "STATE")
	checkNoError(t, err)
	checkLen(t, "buckets", len(buckets), 2)
	checkStringEqual(t, "top group", buckets[0].Group, "CA")
	checkInt64Equal(t, "top count", buckets[0].Count, 2)
	checkStringEqual(t, "second group", buckets[1].Group, "OR")
}

func TestGetAggregateCountsFireYearStringified(t *testing.T) {
	db := setupTestDB(t)

	insertIncident(t, db, testIncident{FireYear: 2006})
	insertIncident(t, db, testIncident{FireYear: 2007})

	buckets, err := db.GetAggregateCounts(context.Background(), IncidentFilter{}, "FIRE_YEAR")
	checkNoError(t, err)
	checkLen(t, "buckets", len(buckets), 2)
	for _, b := range buckets {
		if b.Group != "2006" && b.Group != "2007" {
			t.Errorf("expected stringified year, got %q", b.Group)
		}
	}
}

func TestGetAggregateCountsCaseInsensitiveField(t *testing.T) {
	db := setupTestDB(t)

	insertIncident(t, db, testIncident{})

	buckets, err := db.GetAggregateCounts(context.Background(), IncidentFilter{}, "stat_cause_descr")
	checkNoError(t, err)
	checkLen(t, "buckets", len(buckets), 1)
}

func TestGetAggregateCountsInvalidField(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetAggregateCounts(context.Background(), IncidentFilter{}, "latitude")
	checkError(t, err)
	if !errors.Is(err, ErrInvalidGroupBy) {
		t.Fatalf("expected ErrInvalidGroupBy, got %v", err)
	}

	// A column name is never spliced from input, even one that exists.
	_, err = db.GetAggregateCounts(context.Background(), IncidentFilter{}, "fod_id; DROP TABLE incidents")
	checkError(t, err)
	if !errors.Is(err, ErrInvalidGroupBy) {
		t.Fatalf("expected ErrInvalidGroupBy, got %v", err)
	}
}

func TestGetCountyAggregate(t *testing.T) {
	db := setupTestDB(t)

	insertIncident(t, db, testIncident{State: "CA", FIPSCode: "37"})
	insertIncident(t, db, testIncident{State: "CA", FIPSCode: "37"})
	insertIncident(t, db, testIncident{State: "TX", FIPSCode: "453"})
	insertIncident(t, db, testIncident{State: "XX", FIPSCode: "1"}) // unknown state dropped
	insertIncident(t, db, testIncident{State: "CA"})                // null county dropped

	counties, err := db.GetCountyAggregate(context.Background(), IncidentFilter{})
	checkNoError(t, err)
	checkLen(t, "counties", len(counties), 2)

	checkStringEqual(t, "fips", counties[0].FIPS, "06037")
	checkInt64Equal(t, "count", counties[0].Count, 2)
	checkStringEqual(t, "fips", counties[1].FIPS, "48453")
	checkInt64Equal(t, "count", counties[1].Count, 1)
}

func TestGetStateAggregate(t *testing.T) {
	db := setupTestDB(t)

	insertIncident(t, db, testIncident{State: "OR"})
	insertIncident(t, db, testIncident{State: "CA"})
	insertIncident(t, db, testIncident{State: "CA"})

	states, err := db.GetStateAggregate(context.Background(), IncidentFilter{})
	checkNoError(t, err)
	checkLen(t, "states", len(states), 2)
	checkStringEqual(t, "top state", states[0].State, "CA")
	checkInt64Equal(t, "top count", states[0].Count, 2)
}

func TestGetSizeClassByCauseTopFourCollapse(t *testing.T) {
	db := setupTestDB(t)

	// Five causes; "Structure" is least frequent and must collapse.
	causes := []struct {
		cause string
		n     int
	}{
		{"Lightning", 5},
		{"Arson", 4},
		{"Campfire", 3},
		{"Smoking", 2},
		{"Structure", 1},
	}
	for _, c := range causes {
		for i := 0; i < c.n; i++ {
			insertIncident(t, db, testIncident{Cause: c.cause, SizeClass: "B"})
		}
	}

	cells, err := db.GetSizeClassByCause(context.Background(), IncidentFilter{})
	checkNoError(t, err)
	checkLen(t, "cells", len(cells), 5)

	got := make(map[string]int64)
	for _, c := range cells {
		checkStringEqual(t, "size class", c.SizeClass, "B")
		got[c.Cause] = c.FireCount
	}
	checkInt64Equal(t, "Lightning", got["Lightning"], 5)
	checkInt64Equal(t, "Other", got["Other"], 1)
	if _, present := got["Structure"]; present {
		t.Fatal("Structure should have collapsed into Other")
	}
}

func TestAllowedGroupByFieldsSorted(t *testing.T) {
	fields := AllowedGroupByFields()
	checkLen(t, "fields", len(fields), 5)
	checkStringEqual(t, "first", fields[0], "FIRE_SIZE_CLASS")
	checkStringEqual(t, "last", fields[4], "STAT_CAUSE_DESCR")
}
