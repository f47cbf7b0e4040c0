// Ashgrid - Wildfire Incident Analytics
// Copyright 2026 The Ashgrid Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/ashgrid/ashgrid

package database

import (
	"errors"
	"io"

	"github.com/ashgrid/ashgrid/internal/logging"
)

// ErrInvalidGroupBy is returned when a grouped count is requested on a
// column outside the allow-list.
var ErrInvalidGroupBy = errors.New("invalid group-by column")

// closeQuietly closes a resource, discarding any error. Used in cleanup
// paths where the error carries no actionable information.
func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}

// closeWithLog closes a resource and logs a warning on failure.
func closeWithLog(c io.Closer, name string) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		logging.Warn().Err(err).Str("resource", name).Msg("Failed to close resource")
	}
}
