// Ashgrid - Wildfire Incident Analytics
// Copyright 2026 The Ashgrid Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/ashgrid/ashgrid

package api

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestSanitizeLogValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"with\nnewline", "with\\x0anewline"},
		{"tab\there", "tab\\x09here"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := sanitizeLogValue(tt.in); got != tt.want {
			t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateETagStable(t *testing.T) {
	a := generateETag([]byte("payload"))
	b := generateETag([]byte("payload"))
	c := generateETag([]byte("different"))
	if a != b {
		t.Error("same payload must produce the same ETag")
	}
	if a == c {
		t.Error("different payloads should produce different ETags")
	}
}

func TestParseDateParam(t *testing.T) {
	r := httptest.NewRequest("GET", "/?start_date=2006-07-15", nil)
	got, err := parseDateParam(r, "start_date")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2006, time.July, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	r = httptest.NewRequest("GET", "/", nil)
	got, err = parseDateParam(r, "start_date")
	if err != nil || !got.IsZero() {
		t.Errorf("absent param should be zero time without error, got %v %v", got, err)
	}

	r = httptest.NewRequest("GET", "/?start_date=garbage", nil)
	if _, err = parseDateParam(r, "start_date"); err == nil {
		t.Error("malformed date should error")
	}
}

func TestBuildFilterFromQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/?year=2006&state=CA&cause=Arson", nil)
	filter, err := buildFilter(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filter.Year != 2006 || filter.State != "CA" || filter.Cause != "Arson" {
		t.Errorf("unexpected filter: %+v", filter)
	}
}

func TestGetIntParam(t *testing.T) {
	r := httptest.NewRequest("GET", "/?limit=25&bad=xyz", nil)
	if got := getIntParam(r, "limit", 10); got != 25 {
		t.Errorf("expected 25, got %d", got)
	}
	if got := getIntParam(r, "missing", 10); got != 10 {
		t.Errorf("expected default 10, got %d", got)
	}
	if got := getIntParam(r, "bad", 10); got != 10 {
		t.Errorf("expected default for non-numeric, got %d", got)
	}
}
