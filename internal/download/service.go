package download

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/ytget/asset-fetcher/internal/manifest"
	"github.com/ytget/asset-fetcher/internal/model"
)

var _ Downloader = (*Service)(nil)

// Service orchestrates a manifest-driven batch of fetches
type Service struct {
	resolver    ManifestResolver
	fetcher     Fetcher
	logger      *log.Logger
	tasks       map[string]*model.FetchTask
	tasksMutex  sync.RWMutex
	maxParallel int
	onUpdate    func(*model.FetchTask) // callback for status updates
	onManifest  func(*model.Manifest)  // callback once the manifest is resolved
}

// NewService creates a new download service
func NewService(resolver ManifestResolver, fetcher Fetcher, maxParallel int, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	s := &Service{
		resolver: resolver,
		fetcher:  fetcher,
		logger:   logger,
		tasks:    make(map[string]*model.FetchTask),
	}
	s.SetMaxParallelDownloads(maxParallel)
	return s
}

// SetUpdateCallback sets the callback function for task updates.
// It is called from worker goroutines and receives a copy of the task.
func (s *Service) SetUpdateCallback(callback func(*model.FetchTask)) {
	s.onUpdate = callback
}

// SetManifestCallback sets the function called once a run's manifest is resolved
func (s *Service) SetManifestCallback(callback func(*model.Manifest)) {
	s.onManifest = callback
}

// SetMaxParallelDownloads sets the maximum number of parallel downloads for the next run
func (s *Service) SetMaxParallelDownloads(max int) {
	if max < 1 {
		max = DefaultConcurrency
	}
	s.tasksMutex.Lock()
	s.maxParallel = max
	s.tasksMutex.Unlock()
}

// GetTask returns a copy of a task by ID
func (s *Service) GetTask(id string) (*model.FetchTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[id]
	if !exists {
		return nil, false
	}
	snapshot := *task
	return &snapshot, true
}

// GetAllTasks returns copies of all tasks of the last run
func (s *Service) GetAllTasks() []*model.FetchTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	tasks := make([]*model.FetchTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		snapshot := *task
		tasks = append(tasks, &snapshot)
	}
	return tasks
}

// Run resolves the manifest and fetches every file it lists, at most
// maxParallel at a time. Only a manifest failure is returned as an error;
// per-file failures are recorded in the report.
func (s *Service) Run(ctx context.Context, source, baseURL string) (*model.BatchReport, error) {
	baseURL = manifest.NormalizeBaseURL(baseURL)

	m, err := s.resolver.Resolve(ctx, source, baseURL)
	if err != nil {
		return nil, err
	}
	if s.onManifest != nil {
		s.onManifest(m)
	}

	s.tasksMutex.Lock()
	s.tasks = make(map[string]*model.FetchTask, len(m.Files))
	maxParallel := s.maxParallel
	s.tasksMutex.Unlock()

	report := model.NewBatchReport(uuid.NewString(), m.ContentID, len(m.Files))
	logger := s.logger.With("run_id", report.RunID)
	if m.IsEmpty() {
		logger.Info("Manifest lists no files, nothing to fetch", "sha", m.ContentID)
	} else {
		logger.Info("Starting batch", "sha", m.ContentID, "files", len(m.Files), "concurrency", maxParallel)
	}

	gate := NewGate(maxParallel)
	var wg sync.WaitGroup

	for _, plan := range m.Plans(baseURL) {
		task := model.NewFetchTask(generateTaskID(), plan)
		s.tasksMutex.Lock()
		s.tasks[task.ID] = task
		s.tasksMutex.Unlock()

		permit, err := gate.Acquire(ctx)
		if err != nil {
			s.finishTask(task, model.FetchOutcome{
				Status: model.FetchStatusError,
				Err:    fmt.Errorf("%w: %v", ErrNotDispatched, err),
			}, report, logger)
			continue
		}

		wg.Add(1)
		go func(task *model.FetchTask, permit *Permit) {
			defer wg.Done()
			defer permit.Release()
			s.runTask(ctx, task, report, logger)
		}(task, permit)
	}

	wg.Wait()
	report.Finish()

	logger.Info("Batch finished",
		"sha", report.ContentID,
		"completed", report.Completed,
		"skipped", report.Skipped,
		"failed", report.Failed,
		"peak", gate.Peak(),
		"elapsed", report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond),
	)

	return report, nil
}

// runTask fetches one file and records its outcome
func (s *Service) runTask(ctx context.Context, task *model.FetchTask, report *model.BatchReport, logger *log.Logger) {
	s.tasksMutex.Lock()
	task.Status = model.FetchStatusDownloading
	task.StartedAt = time.Now()
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	outcome := s.fetcher.Fetch(ctx, model.FetchPlan{Name: task.Name, URL: task.URL, Path: task.Path})
	s.finishTask(task, outcome, report, logger)
}

// finishTask applies a terminal outcome, records it and logs it
func (s *Service) finishTask(task *model.FetchTask, outcome model.FetchOutcome, report *model.BatchReport, logger *log.Logger) {
	s.tasksMutex.Lock()
	task.Apply(outcome)
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	report.Record(task)
	progress := fmt.Sprintf("%.0f%%", report.GetProgress())

	switch task.Status {
	case model.FetchStatusSkipped:
		logger.Debug("File exists, skipped", "file", task.Path, "progress", progress)
	case model.FetchStatusCompleted:
		logger.Debug("File downloaded", "file", task.Path, "status", task.StatusCode, "bytes", task.Bytes, "progress", progress)
	case model.FetchStatusError:
		logger.Warn("File failed", "file", task.Name, "kind", Classify(task.Err), "err", task.Err, "progress", progress)
	}

	s.notifyUpdate(task)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.FetchTask) {
	if s.onUpdate == nil {
		return
	}
	s.tasksMutex.RLock()
	snapshot := *task
	s.tasksMutex.RUnlock()
	s.onUpdate(&snapshot)
}

// generateTaskID generates a unique task ID
func generateTaskID() string {
	return fmt.Sprintf("task-%s", uuid.NewString())
}
