// Ashgrid - Wildfire Incident Analytics
// Copyright 2026 The Ashgrid Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/ashgrid/ashgrid

package database

import (
	"context"
	"testing"
	"time"
)

func TestBuildFilterConditionsEmpty(t *testing.T) {
	conditions, args := buildFilterConditions(IncidentFilter{})
	checkLen(t, "conditions", len(conditions), 0)
	checkLen(t, "args", len(args), 0)
}

func TestBuildFilterConditionsAllSentinel(t *testing.T) {
	filter := IncidentFilter{State: "All", Cause: "all"}
	conditions, _ := buildFilterConditions(filter)
	checkLen(t, "conditions", len(conditions), 0)
}

func TestBuildFilterConditionsYear(t *testing.T) {
	conditions, args := buildFilterConditions(IncidentFilter{Year: 2006})
	checkLen(t, "conditions", len(conditions), 1)
	checkStringEqual(t, "condition", conditions[0], "fire_year = ?")
	checkLen(t, "args", len(args), 1)
}

func TestBuildFilterConditionsDateRangeOverridesYear(t *testing.T) {
	filter := IncidentFilter{
		Year:      2006,
		StartDate: time.Date(2005, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2005, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
	conditions, args := buildFilterConditions(filter)
	checkLen(t, "conditions", len(conditions), 2)
	for _, c := range conditions {
		if c == "fire_year = ?" {
			t.Fatal("year condition must be omitted when a date range is set")
		}
	}
	checkLen(t, "args", len(args), 2)
}

func TestBuildFilterConditionsOpenEndedRange(t *testing.T) {
	filter := IncidentFilter{
		Year:    2006,
		EndDate: time.Date(2006, time.June, 30, 0, 0, 0, 0, time.UTC),
	}
	conditions, _ := buildFilterConditions(filter)
	checkLen(t, "conditions", len(conditions), 1)
	checkStringEqual(t, "condition", conditions[0], "discovery_time <= ?")
}

func TestBuildFilterConditionsStateUppercased(t *testing.T) {
	_, args := buildFilterConditions(IncidentFilter{State: "ca"})
	checkLen(t, "args", len(args), 1)
	checkStringEqual(t, "state arg", args[0].(string), "CA")
}

func TestBuildFilterWhereClauseNoFilters(t *testing.T) {
	clause, args := buildFilterWhereClause(IncidentFilter{})
	checkStringEqual(t, "clause", clause, "1=1")
	checkLen(t, "args", len(args), 0)
}

func TestBuildFilterWhereClauseCombined(t *testing.T) {
	clause, args := buildFilterWhereClause(IncidentFilter{
		Year:  2006,
		State: "CA",
		Cause: "Arson",
	})
	checkStringEqual(t, "clause", clause,
		"1=1 AND fire_year = ? AND state = ? AND stat_cause_descr = ?")
	checkLen(t, "args", len(args), 3)
}

func TestFilterAppliedToQueries(t *testing.T) {
	db := setupTestDB(t)

	insertIncident(t, db, testIncident{State: "CA", Cause: "Arson", FireYear: 2006})
	insertIncident(t, db, testIncident{State: "OR", Cause: "Lightning", FireYear: 2006})
	insertIncident(t, db, testIncident{State: "CA", Cause: "Arson", FireYear: 2007})

	stats, err := db.GetSummaryStats(context.Background(), IncidentFilter{State: "CA", Year: 2006})
	checkNoError(t, err)
	checkInt64Equal(t, "filtered count", stats.TotalFires, 1)
}
