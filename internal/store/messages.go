package store

import (
	"github.com/Veraticus/grievance-intel/internal/model"
	"github.com/Veraticus/grievance-intel/internal/service"
)

// FetchedMsg carries the result of a FetchAll.
type FetchedMsg struct {
	Err        error
	Grievances []model.Grievance
	Seq        uint64
}

// SubmittedMsg carries the result of a Submit.
type SubmittedMsg struct {
	Err   error
	Draft model.Draft
}

// SuccessExpiredMsg clears the success flag.
type SuccessExpiredMsg struct{}

// SnapshotLoadedMsg carries the cached list read at mount.
type SnapshotLoadedMsg struct {
	Err      error
	Snapshot *service.Snapshot
}
