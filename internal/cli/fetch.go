package cli

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/ytget/asset-fetcher/internal/config"
	"github.com/ytget/asset-fetcher/internal/download"
	"github.com/ytget/asset-fetcher/internal/logging"
	"github.com/ytget/asset-fetcher/internal/manifest"
	"github.com/ytget/asset-fetcher/internal/model"
	"github.com/ytget/asset-fetcher/internal/platform"
)

// Flag names
const (
	flagConfig      = "config"
	flagEnvFile     = "env-file"
	flagManifest    = "manifest"
	flagBaseURL     = "base-url"
	flagConcurrency = "concurrency"
	flagOut         = "out"
	flagTimeout     = "timeout"
	flagUserAgent   = "user-agent"
	flagLogLevel    = "log-level"
	flagNoPrompt    = "no-prompt"
)

type fetchOptions struct {
	configFile  string
	envFile     string
	manifest    string
	baseURL     string
	concurrency int
	outputDir   string
	timeout     time.Duration
	userAgent   string
	logLevel    string
	noPrompt    bool
}

func (o *fetchOptions) bindFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&o.configFile, flagConfig, "", "config file (default is ./"+config.DefaultConfigFile+" if present)")
	flags.StringVar(&o.envFile, flagEnvFile, "", "env file (default is ./"+config.DefaultEnvFile+" if present)")
	flags.StringVarP(&o.manifest, flagManifest, "m", "", "fingerprint file path or SHA")
	flags.StringVarP(&o.baseURL, flagBaseURL, "u", "", "asset base URL")
	flags.IntVarP(&o.concurrency, flagConcurrency, "c", config.DefaultMaxParallel, "maximum simultaneous downloads")
	flags.StringVarP(&o.outputDir, flagOut, "o", "", "destination root directory (default is the working directory)")
	flags.DurationVar(&o.timeout, flagTimeout, 0, "per-request timeout, e.g. 30s (default none)")
	flags.StringVar(&o.userAgent, flagUserAgent, "", "User-Agent header for requests")
	flags.StringVar(&o.logLevel, flagLogLevel, "", "log level: debug, info, warn, error")
	flags.BoolVar(&o.noPrompt, flagNoPrompt, false, "never ask for missing inputs")
}

// apply copies explicitly set flags over the loaded settings
func (o *fetchOptions) apply(cmd *cobra.Command, s *config.Settings) error {
	flags := cmd.Flags()

	if flags.Changed(flagManifest) {
		s.SetManifestSource(o.manifest)
	}
	if flags.Changed(flagBaseURL) {
		s.SetBaseURL(o.baseURL)
	}
	if flags.Changed(flagConcurrency) {
		if o.concurrency < 1 {
			return fmt.Errorf("--%s must be at least 1, got %d", flagConcurrency, o.concurrency)
		}
		s.SetMaxParallelDownloads(o.concurrency)
	}
	if flags.Changed(flagOut) {
		s.SetDownloadDirectory(o.outputDir)
	}
	if flags.Changed(flagTimeout) {
		s.SetTimeout(o.timeout)
	}
	if flags.Changed(flagUserAgent) {
		s.UserAgent = o.userAgent
	}
	if flags.Changed(flagLogLevel) {
		s.SetLogLevel(o.logLevel)
	}
	return nil
}

func newFetchCommand(app *App, opts *fetchOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Download every file listed in a fingerprint manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, app, opts)
		},
	}
}

// promptMissing asks for the manifest source and base URL when they are unset
func promptMissing(app *App, s *config.Settings) error {
	if s.GetManifestSource() == "" {
		answer, err := app.Prompter.Ask(ManifestPrompt)
		if err != nil {
			return err
		}
		s.SetManifestSource(answer)
	}
	if s.GetBaseURL() == "" {
		answer, err := app.Prompter.Ask(BaseURLPrompt)
		if err != nil {
			return err
		}
		s.SetBaseURL(answer)
	}
	return nil
}

func runFetch(cmd *cobra.Command, app *App, opts *fetchOptions) error {
	settings, err := config.Load(opts.configFile, opts.envFile)
	if err != nil {
		return err
	}
	if err := opts.apply(cmd, settings); err != nil {
		return err
	}

	needsInput := settings.GetManifestSource() == "" || settings.GetBaseURL() == ""
	if needsInput && !opts.noPrompt && app.Prompter != nil && app.Interactive != nil && app.Interactive() {
		if err := promptMissing(app, settings); err != nil {
			return err
		}
	}

	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	timeout, err := settings.GetTimeout()
	if err != nil {
		return err
	}

	logger := logging.New(app.Err, settings.GetLogLevel())

	outputDir := settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(outputDir); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	client := &http.Client{Timeout: timeout}

	resolver := manifest.NewResolver(client, logger)
	resolver.SetUserAgent(settings.GetUserAgent())

	fetcher := download.NewHTTPFetcher(client, outputDir)
	fetcher.SetUserAgent(settings.GetUserAgent())
	logger.Debug("Writing files", "root", fetcher.Root(), "concurrency", settings.GetMaxParallelDownloads(), "timeout", timeout)

	reporter := NewReporter(cmd.OutOrStdout())

	var service download.Downloader = download.NewService(resolver, fetcher, settings.GetMaxParallelDownloads(), logger)
	service.SetManifestCallback(func(m *model.Manifest) {
		reporter.ContentID(m.ContentID)
	})
	service.SetUpdateCallback(reporter.Update)

	report, err := service.Run(cmd.Context(), settings.GetManifestSource(), settings.GetBaseURL())
	if err != nil {
		if errors.Is(err, manifest.ErrManifestMalformed) {
			return fmt.Errorf("cannot use manifest %q: %w", settings.GetManifestSource(), err)
		}
		return fmt.Errorf("cannot load manifest %q: %w", settings.GetManifestSource(), err)
	}

	reporter.Summary(report)
	return nil
}
