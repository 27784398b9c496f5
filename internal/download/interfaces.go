package download

import (
	"context"

	"github.com/ytget/asset-fetcher/internal/model"
)

// Downloader defines the interface for the download service.
type Downloader interface {
	SetUpdateCallback(func(*model.FetchTask))
	SetManifestCallback(func(*model.Manifest))
	Run(ctx context.Context, source, baseURL string) (*model.BatchReport, error)
	GetTask(id string) (*model.FetchTask, bool)
	GetAllTasks() []*model.FetchTask

	// SetMaxParallelDownloads sets the maximum number of parallel downloads
	SetMaxParallelDownloads(max int)
}

// ManifestResolver obtains and parses the manifest for a run.
type ManifestResolver interface {
	Resolve(ctx context.Context, source, baseURL string) (*model.Manifest, error)
}

// Fetcher performs a single idempotent file download.
type Fetcher interface {
	Fetch(ctx context.Context, plan model.FetchPlan) model.FetchOutcome
}
