// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/grievance-intel/internal/model"
)

// GrievanceBackend is the remote grievance service the client talks to.
type GrievanceBackend interface {
	// ListGrievances returns the full grievance collection in backend order.
	ListGrievances(ctx context.Context) ([]model.Grievance, error)
	// CreateGrievance submits a new grievance. The response body is not inspected.
	CreateGrievance(ctx context.Context, draft model.Draft) error
}

// Snapshot is the last grievance list the client applied.
type Snapshot struct {
	SavedAt    time.Time
	Grievances []model.Grievance
}

// SnapshotCache persists the last good grievance list locally.
type SnapshotCache interface {
	SaveSnapshot(ctx context.Context, grievances []model.Grievance) error
	LoadSnapshot(ctx context.Context) (*Snapshot, error)
	Close() error
}
