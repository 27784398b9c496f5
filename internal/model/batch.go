package model

import (
	"sync"
	"time"
)

// BatchReport aggregates the outcomes of one run. Record is safe for concurrent use.
type BatchReport struct {
	RunID      string
	ContentID  string
	Total      int
	Skipped    int
	Completed  int
	Failed     int
	Failures   []*FetchTask
	StartedAt  time.Time
	FinishedAt time.Time

	mu sync.Mutex
}

// NewBatchReport creates a report for a run over total files
func NewBatchReport(runID, contentID string, total int) *BatchReport {
	return &BatchReport{
		RunID:     runID,
		ContentID: contentID,
		Total:     total,
		Failures:  make([]*FetchTask, 0),
		StartedAt: time.Now(),
	}
}

// Record counts a finished task. Tasks that are not finished are ignored.
func (r *BatchReport) Record(task *FetchTask) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch task.Status {
	case FetchStatusSkipped:
		r.Skipped++
	case FetchStatusCompleted:
		r.Completed++
	case FetchStatusError:
		r.Failed++
		r.Failures = append(r.Failures, task)
	}
}

// Finish stamps the end of the run
func (r *BatchReport) Finish() {
	r.mu.Lock()
	r.FinishedAt = time.Now()
	r.mu.Unlock()
}

// Settled returns how many tasks reached a terminal state
func (r *BatchReport) Settled() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Skipped + r.Completed + r.Failed
}

// AllSucceeded reports whether every file is present on disk after the run
func (r *BatchReport) AllSucceeded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Failed == 0 && r.Skipped+r.Completed == r.Total
}

// GetProgress returns settled files as a percentage of the total
func (r *BatchReport) GetProgress() float64 {
	if r.Total == 0 {
		return 100
	}
	return float64(r.Settled()) / float64(r.Total) * 100
}
