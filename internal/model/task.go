package model

import (
	"strings"
	"time"
)

// FetchTask is the record of a single file fetch and its outcome
type FetchTask struct {
	ID         string
	Name       string      // relative name from the manifest
	URL        string      // source URL
	Path       string      // destination path on disk
	Status     FetchStatus // current status
	StatusCode int         // HTTP status code, 0 if no response was received
	Bytes      int64       // bytes written to disk
	Err        error       // classified failure, nil unless Status is Error
	LastError  string      // last error message if any
	StartedAt  time.Time   // when the fetch was dispatched
	FinishedAt time.Time   // when the fetch settled
}

// FetchOutcome is the result of one fetch attempt
type FetchOutcome struct {
	Status     FetchStatus // Skipped, Completed or Error
	StatusCode int
	Bytes      int64
	Err        error
}

// NewFetchTask creates a pending task for a plan
func NewFetchTask(id string, plan FetchPlan) *FetchTask {
	return &FetchTask{
		ID:     id,
		Name:   plan.Name,
		URL:    plan.URL,
		Path:   plan.Path,
		Status: FetchStatusPending,
	}
}

// Fail marks the task as failed with err
func (ft *FetchTask) Fail(err error) {
	ft.Status = FetchStatusError
	ft.Err = err
	if err != nil {
		ft.LastError = err.Error()
	}
}

// Apply copies a fetch outcome onto the task
func (ft *FetchTask) Apply(outcome FetchOutcome) {
	ft.StatusCode = outcome.StatusCode
	ft.Bytes = outcome.Bytes
	if outcome.Status == FetchStatusError {
		ft.Fail(outcome.Err)
		return
	}
	ft.Status = outcome.Status
}

// Duration returns how long the fetch took, or zero if it has not finished
func (ft *FetchTask) Duration() time.Duration {
	if ft.StartedAt.IsZero() || ft.FinishedAt.IsZero() {
		return 0
	}
	return ft.FinishedAt.Sub(ft.StartedAt)
}

// GetDisplayName returns the manifest name, the base of the path, or the URL in order of preference
func (ft *FetchTask) GetDisplayName() string {
	if ft.Name != "" {
		return ft.Name
	}

	if ft.Path != "" {
		if idx := strings.LastIndex(ft.Path, "/"); idx >= 0 && idx < len(ft.Path)-1 {
			return ft.Path[idx+1:]
		}
		return ft.Path
	}

	return ft.URL
}
