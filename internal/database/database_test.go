// Ashgrid - Wildfire Incident Analytics
// Copyright 2026 The Ashgrid Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/ashgrid/ashgrid

package database

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ashgrid/ashgrid/internal/config"
)

// testDBSemaphore limits concurrent database creation to prevent resource
// exhaustion in CI. Concurrent DuckDB CGO calls can hang under resource
// pressure, so database creation is fully serialized.
var testDBSemaphore = make(chan struct{}, 1)

// testDBMutex serializes the New() call itself.
var testDBMutex sync.Mutex

// testFODID hands out unique primary keys for inserted test incidents.
var testFODID atomic.Int64

// setupTestDB creates an in-memory test database with timeout protection.
// The semaphore is held for the ENTIRE test lifecycle via t.Cleanup, not
// just during creation, so only one test has an active DuckDB connection
// at a time.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	cfg := &config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "1GB",
	}

	type result struct {
		db  *DB
		err error
	}

	resultCh := make(chan result, 1)
	go func() {
		testDBMutex.Lock()
		db, err := New(cfg)
		testDBMutex.Unlock()
		resultCh <- result{db: db, err: err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			t.Fatalf("Failed to create test database: %v", res.err)
		}
		t.Cleanup(func() {
			if err := res.db.Close(); err != nil {
				t.Logf("failed to close test database: %v", err)
			}
		})
		return res.db
	case <-time.After(120 * time.Second):
		t.Fatalf("Timeout: database creation took longer than 120s (DuckDB may be under resource pressure)")
		return nil
	}
}

// testIncident is the input shape for insertIncident. Zero values get
// sensible defaults so tests specify only what they assert on.
type testIncident struct {
	FireName     string
	ComplexName  string // empty = NULL
	FireYear     int
	Discovery    time.Time // zero = 2006-07-15 14:00 UTC
	DurationDays float64   // negative = NULL
	Cause        string
	FireSize     float64
	SizeClass    string
	OwnerDescr   string
	OwnerCode    int
	Latitude     float64 // 0 with NoCoords = NULL
	Longitude    float64
	NoCoords     bool
	State        string
	County       string
	FIPSCode     string // empty = NULL
	Agency       string // empty = NULL
	NoHour       bool   // insert NULL derived temporal columns
}

// insertIncident writes one row directly through the raw connection. The
// service layer itself never writes; tests seed data the way the bulk
// loader does.
func insertIncident(t *testing.T, db *DB, inc testIncident) {
	t.Helper()

	if inc.FireYear == 0 {
		inc.FireYear = 2006
	}
	if inc.Discovery.IsZero() {
		inc.Discovery = time.Date(inc.FireYear, time.July, 15, 14, 0, 0, 0, time.UTC)
	}
	if inc.Cause == "" {
		inc.Cause = "Lightning"
	}
	if inc.FireSize == 0 {
		inc.FireSize = 10.0
	}
	if inc.SizeClass == "" {
		inc.SizeClass = "C"
	}
	if inc.State == "" {
		inc.State = "CA"
	}
	if !inc.NoCoords && inc.Latitude == 0 && inc.Longitude == 0 {
		inc.Latitude = 38.5
		inc.Longitude = -120.5
	}

	var lat, lon any
	if !inc.NoCoords {
		lat, lon = inc.Latitude, inc.Longitude
	}

	var complexName any
	if inc.ComplexName != "" {
		complexName = inc.ComplexName
	}
	var fips any
	if inc.FIPSCode != "" {
		fips = inc.FIPSCode
	}
	var agency any
	if inc.Agency != "" {
		agency = inc.Agency
	}
	var duration any
	if inc.DurationDays >= 0 {
		duration = inc.DurationDays
	}

	var hour, dayOfWeek, month, doy any
	if !inc.NoHour {
		hour = inc.Discovery.Hour()
		dayOfWeek = int(inc.Discovery.Weekday())
		month = int(inc.Discovery.Month())
		doy = inc.Discovery.YearDay()
	}

	contTime := inc.Discovery.Add(time.Duration(24*time.Hour) * 2)

	_, err := db.Conn().Exec(`
		INSERT INTO incidents (
			fod_id, fire_name, complex_name, fire_year, discovery_time,
			cont_time, discovery_doy, discovery_month, discovery_day_of_week,
			discovery_hour, fire_duration_days, stat_cause_descr, fire_size,
			fire_size_class, owner_descr, owner_code, latitude, longitude,
			state, county, fips_code, nwcg_reporting_agency,
			nwcg_reporting_unit_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		testFODID.Add(1), inc.FireName, complexName, inc.FireYear,
		inc.Discovery, contTime, doy, month, dayOfWeek,
		hour, duration, inc.Cause, inc.FireSize, inc.SizeClass,
		inc.OwnerDescr, inc.OwnerCode, lat, lon, inc.State, inc.County,
		fips, agency, nil,
	)
	checkNoError(t, err)
}

func TestNewCreatesSchema(t *testing.T) {
	db := setupTestDB(t)

	count, err := db.GetRecordCount(context.Background())
	checkNoError(t, err)
	checkInt64Equal(t, "record count", count, 0)
}

func TestGetRecordCount(t *testing.T) {
	db := setupTestDB(t)

	for i := 0; i < 3; i++ {
		insertIncident(t, db, testIncident{FireName: "COUNT TEST"})
	}

	count, err := db.GetRecordCount(context.Background())
	checkNoError(t, err)
	checkInt64Equal(t, "record count", count, 3)
}

func TestPrepareCachesStatements(t *testing.T) {
	db := setupTestDB(t)
	insertIncident(t, db, testIncident{})

	count, err := db.GetRecordCount(context.Background())
	checkNoError(t, err)
	checkInt64Equal(t, "count", count, 1)

	db.stmtCacheMu.RLock()
	first := db.stmtCache["SELECT COUNT(*) FROM incidents"]
	db.stmtCacheMu.RUnlock()
	if first == nil {
		t.Fatal("expected the count statement to be cached after first use")
	}

	// Reuse picks up new rows and keeps the same statement.
	insertIncident(t, db, testIncident{})
	count, err = db.GetRecordCount(context.Background())
	checkNoError(t, err)
	checkInt64Equal(t, "count after reuse", count, 2)

	db.stmtCacheMu.RLock()
	second := db.stmtCache["SELECT COUNT(*) FROM incidents"]
	db.stmtCacheMu.RUnlock()
	if second != first {
		t.Fatal("statement must be prepared once and reused")
	}
}

func TestPing(t *testing.T) {
	db := setupTestDB(t)
	checkNoError(t, db.Ping(context.Background()))
}

func TestCheckpoint(t *testing.T) {
	db := setupTestDB(t)
	insertIncident(t, db, testIncident{FireName: "CHECKPOINT TEST"})
	checkNoError(t, db.Checkpoint(context.Background()))
}

func TestEnsureContextAddsDeadline(t *testing.T) {
	db := setupTestDB(t)

	ctx, cancel := db.ensureContext(context.Background())
	defer cancel()

	if _, ok := ctx.Deadline(); !ok {
		t.Fatal("expected a deadline on the derived context")
	}
}

func TestEnsureContextKeepsExistingDeadline(t *testing.T) {
	db := setupTestDB(t)

	parent, parentCancel := context.WithTimeout(context.Background(), time.Minute)
	defer parentCancel()

	ctx, cancel := db.ensureContext(parent)
	defer cancel()

	if ctx != parent {
		t.Fatal("expected the original context to be returned unchanged")
	}
}
