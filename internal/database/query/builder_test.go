// Ashgrid - Wildfire Incident Analytics
// Copyright 2026 The Ashgrid Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/ashgrid/ashgrid

package query

import (
	"testing"
	"time"
)

func TestWhereBuilder_Empty(t *testing.T) {
	wb := NewWhereBuilder()

	if !wb.IsEmpty() {
		t.Error("Expected new builder to be empty")
	}

	if wb.Count() != 0 {
		t.Errorf("Expected count 0, got %d", wb.Count())
	}

	whereClause, args := wb.Build()
	if whereClause != "1=1" {
		t.Errorf("Expected '1=1' for empty builder, got %q", whereClause)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestWhereBuilder_AddDateRange(t *testing.T) {
	wb := NewWhereBuilder()
	start := time.Date(2005, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2005, 12, 31, 23, 59, 59, 0, time.UTC)

	wb.AddDateRange(start, end)

	whereClause, args := wb.Build()
	expected := "1=1 AND discovery_time >= ? AND discovery_time <= ?"
	if whereClause != expected {
		t.Errorf("Expected %q, got %q", expected, whereClause)
	}
	if len(args) != 2 {
		t.Errorf("Expected 2 args, got %d", len(args))
	}
}

func TestWhereBuilder_AddDateRangeOpenEnded(t *testing.T) {
	wb := NewWhereBuilder()
	end := time.Date(2006, 6, 30, 0, 0, 0, 0, time.UTC)

	wb.AddDateRange(time.Time{}, end)

	whereClause, args := wb.Build()
	expected := "1=1 AND discovery_time <= ?"
	if whereClause != expected {
		t.Errorf("Expected %q, got %q", expected, whereClause)
	}
	if len(args) != 1 {
		t.Errorf("Expected 1 arg, got %d", len(args))
	}
}

func TestWhereBuilder_AddYear(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddYear(2006)

	whereClause, args := wb.Build()
	if whereClause != "1=1 AND fire_year = ?" {
		t.Errorf("Unexpected clause %q", whereClause)
	}
	if len(args) != 1 || args[0].(int) != 2006 {
		t.Errorf("Expected args [2006], got %v", args)
	}
}

func TestWhereBuilder_AddYearSkipsNonPositive(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddYear(0)
	wb.AddYear(-5)

	if !wb.IsEmpty() {
		t.Error("Expected non-positive years to be skipped")
	}
}

func TestWhereBuilder_AddStateNormalizes(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddState("  ca ")

	whereClause, args := wb.Build()
	if whereClause != "1=1 AND state = ?" {
		t.Errorf("Unexpected clause %q", whereClause)
	}
	if len(args) != 1 || args[0].(string) != "CA" {
		t.Errorf("Expected args [CA], got %v", args)
	}
}

func TestWhereBuilder_AddStateSkipsEmpty(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddState("   ")

	if !wb.IsEmpty() {
		t.Error("Expected blank state to be skipped")
	}
}

func TestWhereBuilder_AddCause(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddCause("Lightning")

	whereClause, args := wb.Build()
	if whereClause != "1=1 AND stat_cause_descr = ?" {
		t.Errorf("Unexpected clause %q", whereClause)
	}
	if len(args) != 1 || args[0].(string) != "Lightning" {
		t.Errorf("Expected args [Lightning], got %v", args)
	}
}

func TestWhereBuilder_AddClause(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddClause("fire_size >= ?", 100.0)
	wb.AddClause("latitude IS NOT NULL")

	whereClause, args := wb.Build()
	expected := "1=1 AND fire_size >= ? AND latitude IS NOT NULL"
	if whereClause != expected {
		t.Errorf("Expected %q, got %q", expected, whereClause)
	}
	if len(args) != 1 {
		t.Errorf("Expected 1 arg, got %d", len(args))
	}
}

func TestWhereBuilder_Chaining(t *testing.T) {
	whereClause, args := NewWhereBuilder().
		AddYear(2006).
		AddState("CA").
		AddCause("Arson").
		Build()

	expected := "1=1 AND fire_year = ? AND state = ? AND stat_cause_descr = ?"
	if whereClause != expected {
		t.Errorf("Expected %q, got %q", expected, whereClause)
	}
	if len(args) != 3 {
		t.Errorf("Expected 3 args, got %d", len(args))
	}
}

func TestWhereBuilder_ConditionsAndArgs(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddYear(2006)
	wb.AddState("OR")

	if got := len(wb.Conditions()); got != 2 {
		t.Errorf("Expected 2 conditions, got %d", got)
	}
	if got := len(wb.Args()); got != 2 {
		t.Errorf("Expected 2 args, got %d", got)
	}
	if wb.Count() != 2 {
		t.Errorf("Expected count 2, got %d", wb.Count())
	}
}
