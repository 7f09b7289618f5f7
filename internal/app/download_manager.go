package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yourusername/xdownload/internal/domain"
	"go.uber.org/zap"
)

// ErrHistoryDisabled is returned by history queries when no repository is configured
var ErrHistoryDisabled = errors.New("download history is disabled")

// Notifier is told about every finished download
type Notifier interface {
	NotifyResult(url string, result domain.DownloadResult)
}

// DownloadRequest describes one download invocation
type DownloadRequest struct {
	URL       string
	Platform  string    // alias; detected from URL when empty
	OutputDir string    // config output_dir when empty
	Out       io.Writer // banner and progress; discarded when nil
}

// DownloadManager resolves platforms, runs downloads and records their outcome
type DownloadManager struct {
	registry *Registry
	engine   domain.Engine
	repo     domain.HistoryRepository
	notifier Notifier
	config   *domain.DownloadConfig
	logger   *zap.Logger
	sem      chan struct{} // one engine call at a time
}

// NewDownloadManager creates a new download manager. repo and notifier may be nil.
func NewDownloadManager(
	registry *Registry,
	engine domain.Engine,
	repo domain.HistoryRepository,
	notifier Notifier,
	config *domain.DownloadConfig,
	logger *zap.Logger,
) *DownloadManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DownloadManager{
		registry: registry,
		engine:   engine,
		repo:     repo,
		notifier: notifier,
		config:   config,
		logger:   logger,
		sem:      make(chan struct{}, 1),
	}
}

// Registry returns the platform registry
func (dm *DownloadManager) Registry() *Registry {
	return dm.registry
}

// ResolvePlatform picks the platform for url: the explicit alias if given,
// then URL detection, then the configured default platform.
func (dm *DownloadManager) ResolvePlatform(url, alias string) (domain.Platform, error) {
	if alias != "" {
		return dm.registry.Get(alias)
	}
	if detected, ok := dm.registry.Detect(url); ok {
		return dm.registry.Get(detected)
	}
	if dm.config.DefaultPlatform != "" {
		return dm.registry.Get(dm.config.DefaultPlatform)
	}
	return nil, fmt.Errorf("%w: no registered platform matches the URL (available: %s)",
		domain.ErrUnsupportedPlatform, strings.Join(dm.registry.Aliases(), ", "))
}

// Download runs one download and records its result.
// Every failure is reported in the returned result.
func (dm *DownloadManager) Download(ctx context.Context, req DownloadRequest) domain.DownloadResult {
	result := dm.download(ctx, req)

	if result.Success {
		dm.logger.Info("Download completed",
			zap.String("url", req.URL),
			zap.String("platform", result.Platform),
			zap.String("file", result.FilePath))
	} else {
		dm.logger.Warn("Download failed",
			zap.String("url", req.URL),
			zap.String("platform", result.Platform),
			zap.String("error_kind", string(result.ErrorKind)),
			zap.String("error", result.Error))
	}

	dm.record(req.URL, result)
	if dm.notifier != nil {
		dm.notifier.NotifyResult(req.URL, result)
	}
	return result
}

func (dm *DownloadManager) download(ctx context.Context, req DownloadRequest) domain.DownloadResult {
	platform, err := dm.ResolvePlatform(req.URL, req.Platform)
	if err != nil {
		return domain.NewFailedResult(strings.ToLower(req.Platform), "", err)
	}

	release, err := dm.acquire(ctx)
	if err != nil {
		return domain.NewFailedResult(platform.Name(), platform.ExtractVideoID(req.URL), err)
	}
	defer release()

	d, err := NewDownloader(platform, dm.engine, dm.outputDir(req.OutputDir), dm.config, req.Out, dm.logger)
	if err != nil {
		return domain.NewFailedResult(platform.Name(), platform.ExtractVideoID(req.URL),
			domain.NewEngineError(domain.ErrUnexpected, err))
	}

	dm.logger.Debug("Processing download",
		zap.String("url", req.URL),
		zap.String("platform", platform.Name()))
	return d.Download(ctx, req.URL)
}

// ListFormats prints the formats available for url to out
func (dm *DownloadManager) ListFormats(ctx context.Context, url, alias string, out io.Writer) error {
	platform, err := dm.ResolvePlatform(url, alias)
	if err != nil {
		return err
	}

	release, err := dm.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	d, err := NewDownloader(platform, dm.engine, dm.outputDir(""), dm.config, out, dm.logger)
	if err != nil {
		return err
	}
	return d.ListFormats(ctx, url)
}

// Inspect returns the engine metadata for url without downloading it
func (dm *DownloadManager) Inspect(ctx context.Context, url, alias string) (*domain.MediaInfo, error) {
	if _, err := dm.ResolvePlatform(url, alias); err != nil {
		return nil, err
	}

	release, err := dm.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	return dm.engine.Inspect(ctx, url)
}

// History returns recent history records, newest first
func (dm *DownloadManager) History(platform string, limit int) ([]*domain.HistoryRecord, error) {
	if dm.repo == nil {
		return nil, ErrHistoryDisabled
	}
	return dm.repo.FindRecent(strings.ToLower(platform), limit)
}

// VideoHistory returns every recorded attempt at one post, newest first.
// alias falls back to the default platform when empty.
func (dm *DownloadManager) VideoHistory(alias, videoID string) ([]*domain.HistoryRecord, error) {
	if dm.repo == nil {
		return nil, ErrHistoryDisabled
	}
	if alias == "" {
		alias = dm.config.DefaultPlatform
	}
	platform, err := dm.registry.Get(alias)
	if err != nil {
		return nil, err
	}
	return dm.repo.FindByVideoID(platform.Name(), videoID)
}

// HistoryRecord returns one history record, or nil when id is unknown
func (dm *DownloadManager) HistoryRecord(id string) (*domain.HistoryRecord, error) {
	if dm.repo == nil {
		return nil, ErrHistoryDisabled
	}
	return dm.repo.FindByID(id)
}

// Stats returns history statistics
func (dm *DownloadManager) Stats() (*domain.HistoryStats, error) {
	if dm.repo == nil {
		return nil, ErrHistoryDisabled
	}
	return dm.repo.GetStats()
}

func (dm *DownloadManager) acquire(ctx context.Context) (func(), error) {
	select {
	case dm.sem <- struct{}{}:
		return func() { <-dm.sem }, nil
	case <-ctx.Done():
		return nil, domain.NewEngineError(domain.ErrUnexpected, ctx.Err())
	}
}

func (dm *DownloadManager) outputDir(override string) string {
	if override != "" {
		return override
	}
	return dm.config.OutputDir
}

func (dm *DownloadManager) record(url string, result domain.DownloadResult) {
	if dm.repo == nil {
		return
	}
	if err := dm.repo.Create(domain.NewHistoryRecord(url, result)); err != nil {
		dm.logger.Error("Failed to record download history",
			zap.String("url", url),
			zap.Error(err))
	}
}
