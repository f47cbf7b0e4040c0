// Ashgrid - Wildfire Incident Analytics
// Copyright 2026 The Ashgrid Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/ashgrid/ashgrid

package services

import (
	"context"
	"time"

	"github.com/ashgrid/ashgrid/internal/logging"
)

// Checkpointer is the slice of the database the checkpoint service needs.
type Checkpointer interface {
	Checkpoint(ctx context.Context) error
}

// CheckpointService periodically flushes the store's WAL so a crash never
// replays more than one interval of writes. The store is read-mostly, so
// this is cheap; bulk reloads are the case it exists for.
type CheckpointService struct {
	db       Checkpointer
	interval time.Duration
	name     string
}

// NewCheckpointService creates the service. Intervals under a minute are
// raised to the 15-minute default.
func NewCheckpointService(db Checkpointer, interval time.Duration) *CheckpointService {
	if interval < time.Minute {
		interval = 15 * time.Minute
	}
	return &CheckpointService{
		db:       db,
		interval: interval,
		name:     "store-checkpointer",
	}
}

// Serve implements suture.Service.
func (s *CheckpointService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.db.Checkpoint(ctx); err != nil {
				logging.Warn().Err(err).Msg("Periodic checkpoint failed")
			}
		}
	}
}

// String implements fmt.Stringer; suture uses it in log messages.
func (s *CheckpointService) String() string {
	return s.name
}
