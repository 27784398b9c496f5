package download

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ytget/asset-fetcher/internal/model"
	"github.com/ytget/asset-fetcher/internal/platform"
)

// HTTPFetcher downloads one file per call into a destination root.
// Existing destinations are never requested or overwritten.
type HTTPFetcher struct {
	client    *http.Client
	root      string
	userAgent string
}

// NewHTTPFetcher creates a fetcher writing under root. A nil client falls back
// to http.DefaultClient; an empty root means the working directory.
func NewHTTPFetcher(client *http.Client, root string) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if root == "" {
		root = "."
	}
	return &HTTPFetcher{client: client, root: root}
}

// SetUserAgent sets the User-Agent header sent with every request
func (f *HTTPFetcher) SetUserAgent(ua string) {
	f.userAgent = ua
}

// Root returns the destination root directory
func (f *HTTPFetcher) Root() string {
	return f.root
}

// Fetch skips the plan if its destination exists, otherwise GETs the URL and
// writes a 200 response body to disk.
//
// Known limitation: if writing fails midway, or the process dies, a partial
// file stays at the destination and later runs will skip it.
func (f *HTTPFetcher) Fetch(ctx context.Context, plan model.FetchPlan) model.FetchOutcome {
	dst, err := platform.ResolveDestination(f.root, plan.Path)
	if err != nil {
		return failed(0, fmt.Errorf("%w: %v", ErrStorage, err))
	}

	if platform.PathExists(dst) {
		return model.FetchOutcome{Status: model.FetchStatusSkipped}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, plan.URL, nil)
	if err != nil {
		return failed(0, fmt.Errorf("%w: %v", ErrTransport, err))
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return failed(0, fmt.Errorf("%w: %v", ErrTransport, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return failed(resp.StatusCode, fmt.Errorf("%w: status %d", ErrHTTPStatus, resp.StatusCode))
	}

	written, err := platform.WriteFileSynced(dst, resp.Body)
	if err != nil {
		outcome := failed(resp.StatusCode, fmt.Errorf("%w: %s: %v", ErrStorage, dst, err))
		outcome.Bytes = written
		return outcome
	}

	return model.FetchOutcome{
		Status:     model.FetchStatusCompleted,
		StatusCode: resp.StatusCode,
		Bytes:      written,
	}
}

func failed(code int, err error) model.FetchOutcome {
	return model.FetchOutcome{
		Status:     model.FetchStatusError,
		StatusCode: code,
		Err:        err,
	}
}
