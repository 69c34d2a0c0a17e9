// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package status

import (
	"context"
	"fmt"
	"time"
)

// Status represents the workload status of the unit as reported to the
// model. Only the values the operator sets are modelled here.
type Status string

// String returns a string representation of the Status.
func (s Status) String() string {
	return string(s)
}

const (
	// Idle is the status of the unit before any reconciliation has
	// completed. It is never written to the model.
	Idle Status = "idle"

	// Maintenance is set when:
	// The unit is not yet providing services, but is actively reconciling
	// its workloads. This is a "spinning" state, not an error state, and is
	// always superseded before a handler returns.
	Maintenance Status = "maintenance"

	// Blocked is set when:
	// The unit cannot progress to an active state until something outside
	// of it changes, e.g. a datastore relation is added.
	Blocked Status = "blocked"

	// Active is set when:
	// The unit believes it is correctly offering all the services it has
	// been asked to offer.
	Active Status = "active"
)

// StatusInfo holds a Status and associated information.
type StatusInfo struct {
	Status  Status
	Message string
	Since   *time.Time
}

// String returns the status and message in the form used by status-set.
func (s StatusInfo) String() string {
	if s.Message == "" {
		return s.Status.String()
	}
	return fmt.Sprintf("%s: %s", s.Status, s.Message)
}

// StatusSetter represents a type whose status can be set.
type StatusSetter interface {
	SetStatus(context.Context, StatusInfo) error
}

// ValidWorkloadStatus returns true if status has a valid value (that is to say,
// a value that it's OK to set) for the unit.
func ValidWorkloadStatus(status Status) bool {
	switch status {
	case
		Blocked,
		Maintenance,
		Active:
		return true
	default:
		return false
	}
}
