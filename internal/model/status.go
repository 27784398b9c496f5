package model

// FetchStatus represents the status of a single file fetch
type FetchStatus string

const (
	// FetchStatusPending means the file is planned but not dispatched
	FetchStatusPending FetchStatus = "Pending"

	// FetchStatusDownloading means the request is in flight
	FetchStatusDownloading FetchStatus = "Downloading"

	// FetchStatusSkipped means the destination already existed and no request was made
	FetchStatusSkipped FetchStatus = "Skipped"

	// FetchStatusCompleted means the body was written and flushed to disk
	FetchStatusCompleted FetchStatus = "Completed"

	// FetchStatusError means the fetch failed (transport, HTTP status or storage)
	FetchStatusError FetchStatus = "Error"
)

// String returns the string representation of FetchStatus
func (fs FetchStatus) String() string {
	return string(fs)
}

// IsActive returns true if the fetch currently holds a concurrency slot
func (fs FetchStatus) IsActive() bool {
	return fs == FetchStatusDownloading
}

// IsFinished returns true if the fetch reached a terminal state (skipped, completed, or error)
func (fs FetchStatus) IsFinished() bool {
	return fs == FetchStatusSkipped || fs == FetchStatusCompleted || fs == FetchStatusError
}
