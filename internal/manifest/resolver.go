package manifest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ytget/asset-fetcher/internal/model"
)

// Resolver obtains manifest text and parses it
type Resolver struct {
	client    *http.Client
	logger    *log.Logger
	userAgent string
}

// NewResolver creates a resolver. A nil client falls back to http.DefaultClient.
func NewResolver(client *http.Client, logger *log.Logger) *Resolver {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{client: client, logger: logger}
}

// SetUserAgent sets the User-Agent header sent with remote manifest requests
func (r *Resolver) SetUserAgent(ua string) {
	r.userAgent = ua
}

// IsLocalSource reports whether source names a local file rather than a bare content id
func IsLocalSource(source string) bool {
	return strings.Contains(source, ".")
}

// NormalizeBaseURL trims whitespace and makes sure the URL ends with "/"
func NormalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return baseURL
}

// RemoteURL returns the well-known manifest URL for a content id
func RemoteURL(baseURL, contentID string) string {
	return baseURL + contentID + "/" + model.ManifestFileName
}

// Resolve reads the manifest from disk when source looks like a file name,
// otherwise fetches it from baseURL, then parses it.
func (r *Resolver) Resolve(ctx context.Context, source, baseURL string) (*model.Manifest, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, fmt.Errorf("%w: empty manifest source", ErrManifestUnavailable)
	}

	var (
		data []byte
		err  error
	)
	if IsLocalSource(source) {
		r.logger.Debug("Reading local manifest", "path", source)
		data, err = r.readLocal(source)
	} else {
		url := RemoteURL(baseURL, source)
		r.logger.Debug("Fetching remote manifest", "url", url)
		data, err = r.fetchRemote(ctx, url)
	}
	if err != nil {
		return nil, err
	}

	m, err := Parse(data)
	if err != nil {
		return nil, err
	}

	r.logger.Info("Manifest resolved", "sha", m.ContentID, "files", len(m.Files))
	return m, nil
}

func (r *Resolver) readLocal(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestUnavailable, err)
	}
	return data, nil
}

func (r *Resolver) fetchRemote(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestUnavailable, err)
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrManifestUnavailable, url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrManifestUnavailable, err)
	}
	return data, nil
}
