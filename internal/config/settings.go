package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ytget/asset-fetcher/internal/manifest"
)

// Settings keys, shared by the YAML file and the environment
const (
	KeyBaseURL     = "base_url"
	KeyManifest    = "manifest"
	KeyConcurrency = "concurrency"
	KeyOutputDir   = "output_dir"
	KeyTimeout     = "timeout"
	KeyUserAgent   = "user_agent"
	KeyLogLevel    = "log_level"
)

// EnvPrefix is prepended to upper-cased keys to form environment variable names
const EnvPrefix = "ASSET_FETCHER_"

// Default values
const (
	DefaultConfigFile  = "asset-fetcher.yaml"
	DefaultEnvFile     = ".env"
	DefaultMaxParallel = 10
	DefaultOutputDir   = "."
	DefaultLogLevel    = "info"
)

// Settings manages application configuration
type Settings struct {
	BaseURL     string `yaml:"base_url"`
	Manifest    string `yaml:"manifest"`
	Concurrency int    `yaml:"concurrency"`
	OutputDir   string `yaml:"output_dir"`
	Timeout     string `yaml:"timeout"`
	UserAgent   string `yaml:"user_agent"`
	LogLevel    string `yaml:"log_level"`
}

// NewSettings creates settings holding only defaults
func NewSettings() *Settings {
	return &Settings{}
}

// Load builds settings from, in increasing priority: defaults, the YAML file,
// the .env file and the process environment. An empty configFile means
// DefaultConfigFile if it exists; an explicit configFile must exist.
func Load(configFile, envFile string) (*Settings, error) {
	s := NewSettings()

	explicit := configFile != ""
	if !explicit {
		configFile = DefaultConfigFile
	}
	if err := s.loadFile(configFile); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
	}

	if err := s.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Settings) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// EnvName returns the environment variable name for a settings key
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(key)
}

func (s *Settings) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		KeyBaseURL:   &s.BaseURL,
		KeyManifest:  &s.Manifest,
		KeyOutputDir: &s.OutputDir,
		KeyTimeout:   &s.Timeout,
		KeyUserAgent: &s.UserAgent,
		KeyLogLevel:  &s.LogLevel,
	}
	for key, dst := range strs {
		if v, ok := lookup(EnvName(key)); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup(EnvName(KeyConcurrency)); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvName(KeyConcurrency), err)
		}
		s.Concurrency = n
	}
	return nil
}

// GetBaseURL returns the asset base URL, always ending with "/" when set
func (s *Settings) GetBaseURL() string {
	return manifest.NormalizeBaseURL(s.BaseURL)
}

// SetBaseURL sets the asset base URL
func (s *Settings) SetBaseURL(baseURL string) {
	s.BaseURL = manifest.NormalizeBaseURL(baseURL)
}

// GetManifestSource returns the manifest path or content id
func (s *Settings) GetManifestSource() string {
	return strings.TrimSpace(s.Manifest)
}

// SetManifestSource sets the manifest path or content id
func (s *Settings) SetManifestSource(source string) {
	s.Manifest = strings.TrimSpace(source)
}

// GetMaxParallelDownloads returns the maximum number of parallel downloads
func (s *Settings) GetMaxParallelDownloads() int {
	if s.Concurrency <= 0 {
		return DefaultMaxParallel
	}
	return s.Concurrency
}

// SetMaxParallelDownloads sets the maximum number of parallel downloads
func (s *Settings) SetMaxParallelDownloads(count int) {
	if count < 1 {
		count = 1
	}
	s.Concurrency = count
}

// GetDownloadDirectory returns the destination root
func (s *Settings) GetDownloadDirectory() string {
	if strings.TrimSpace(s.OutputDir) == "" {
		return DefaultOutputDir
	}
	return s.OutputDir
}

// SetDownloadDirectory sets the destination root
func (s *Settings) SetDownloadDirectory(dir string) {
	s.OutputDir = dir
}

// GetTimeout returns the per-request HTTP timeout; zero means no timeout
func (s *Settings) GetTimeout() (time.Duration, error) {
	if strings.TrimSpace(s.Timeout) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(s.Timeout))
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", s.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid timeout %q: must not be negative", s.Timeout)
	}
	return d, nil
}

// SetTimeout sets the per-request HTTP timeout
func (s *Settings) SetTimeout(d time.Duration) {
	s.Timeout = d.String()
}

// GetUserAgent returns the User-Agent header value, empty for the Go default
func (s *Settings) GetUserAgent() string {
	return s.UserAgent
}

// GetLogLevel returns the configured log level
func (s *Settings) GetLogLevel() string {
	if s.LogLevel == "" {
		return DefaultLogLevel
	}
	return s.LogLevel
}

// SetLogLevel sets the log level
func (s *Settings) SetLogLevel(level string) {
	s.LogLevel = level
}

// Validate checks the settings needed to start a run
func (s *Settings) Validate() error {
	if s.GetManifestSource() == "" {
		return errors.New("manifest source is required")
	}

	baseURL := s.GetBaseURL()
	if baseURL == "" {
		return errors.New("base URL is required")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base URL %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid base URL %q: missing host", baseURL)
	}

	if s.Concurrency < 0 {
		return fmt.Errorf("concurrency must be at least 1, got %d", s.Concurrency)
	}

	if _, err := s.GetTimeout(); err != nil {
		return err
	}
	return nil
}
