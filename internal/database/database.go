// Ashgrid - Wildfire Incident Analytics
// Copyright 2026 The Ashgrid Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/ashgrid/ashgrid

// Package database provides DuckDB-backed access to the wildfire incident
// store. The store holds roughly two million historical incidents, is
// bulk-loaded by an external ingestion job, and is strictly read-mostly from
// this service: every public method is a query.
//
// All aggregation methods accept an IncidentFilter compiled into a shared
// parameterized WHERE clause, so every chart produced for one dashboard view
// reflects the same filtered population.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/ashgrid/ashgrid/internal/config"
	"github.com/ashgrid/ashgrid/internal/logging"
)

// DB wraps the DuckDB connection and provides data access methods.
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig

	// Prepared statement caching
	stmtCache   map[string]*sql.Stmt
	stmtCacheMu sync.RWMutex
}

// New creates a database connection and ensures the schema exists. An empty
// development instance gets the incidents table created idempotently; a
// production instance opened read-only skips DDL entirely.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	// Ensure the parent directory exists for file-backed databases.
	// 0750 per gosec G301.
	if cfg.Path != ":memory:" {
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	accessMode := "read_write"
	if cfg.ReadOnly {
		accessMode = "read_only"
	}

	connStr := fmt.Sprintf("%s?access_mode=%s&threads=%d&max_memory=%s",
		cfg.Path, accessMode, numThreads, cfg.MaxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{
		conn:      conn,
		cfg:       cfg,
		stmtCache: make(map[string]*sql.Stmt),
	}

	db.configureConnectionPool()

	if !cfg.ReadOnly {
		if err := db.initialize(); err != nil {
			closeQuietly(conn)
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	return db, nil
}

// configureConnectionPool sets connection pool parameters:
// max_open NumCPU() for parallel aggregation queries, max_idle 2 for reuse,
// lifetimes to prevent stale connections.
func (db *DB) configureConnectionPool() {
	db.conn.SetMaxOpenConns(runtime.NumCPU())
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// initialize creates tables and indexes.
func (db *DB) initialize() error {
	if err := db.createTables(); err != nil {
		return err
	}
	return db.createIndexes()
}

// Conn returns the underlying SQL database connection. Tests and bulk-load
// tooling use it for direct inserts.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// prepare returns a cached prepared statement for the query, preparing it
// on first use. Statements are keyed by their full SQL text, so the hot
// query methods pay the DuckDB planning cost once per filter shape instead
// of once per request. Cached statements are closed in Close.
func (db *DB) prepare(ctx context.Context, query string) (*sql.Stmt, error) {
	db.stmtCacheMu.RLock()
	stmt, ok := db.stmtCache[query]
	db.stmtCacheMu.RUnlock()
	if ok {
		return stmt, nil
	}

	db.stmtCacheMu.Lock()
	defer db.stmtCacheMu.Unlock()
	if stmt, ok := db.stmtCache[query]; ok {
		return stmt, nil
	}

	stmt, err := db.conn.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}
	db.stmtCache[query] = stmt
	return stmt, nil
}

// Close closes the database connection and all cached prepared statements.
// A CHECKPOINT flushes the WAL first so the next startup replays nothing.
func (db *DB) Close() error {
	db.stmtCacheMu.Lock()
	for _, stmt := range db.stmtCache {
		closeWithLog(stmt, "prepared statement")
	}
	db.stmtCache = make(map[string]*sql.Stmt)
	db.stmtCacheMu.Unlock()

	if db.conn != nil {
		if !db.cfg.ReadOnly {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := db.Checkpoint(ctx); err != nil {
				logging.Warn().Err(err).Msg("Failed to checkpoint database before close")
			}
			cancel()
		}

		return db.conn.Close()
	}
	return nil
}

// Ping checks if the database connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.conn.PingContext(ctx)
}
