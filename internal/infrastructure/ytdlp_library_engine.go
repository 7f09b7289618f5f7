package infrastructure

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/yourusername/xdownload/internal/domain"
	"go.uber.org/zap"
)

// progressInterval is how often go-ytdlp reports progress
const progressInterval = 500 * time.Millisecond

// LibraryEngine implements domain.Engine on top of github.com/lrstanley/go-ytdlp
type LibraryEngine struct {
	config *domain.EngineConfig
	logger *zap.Logger
}

// NewLibraryEngine creates an engine driven by the go-ytdlp command builder
func NewLibraryEngine(config *domain.EngineConfig, logger *zap.Logger) *LibraryEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LibraryEngine{config: config, logger: logger}
}

// Download runs the go-ytdlp command for url. --print-json makes yt-dlp
// print the info dict of each video, which go-ytdlp parses for us.
func (e *LibraryEngine) Download(ctx context.Context, url string, opts domain.RequestOptions) (*domain.MediaInfo, error) {
	dl := e.command().
		NoWarnings().
		PrintJSON()

	if e.config.KeepInfoJSON {
		dl.WriteInfoJSON()
	}
	if opts.OutputTemplate != "" {
		dl.Output(opts.OutputTemplate)
	}
	if opts.Format != "" {
		dl.Format(opts.Format)
	}
	if opts.MergeOutputFormat != "" {
		dl.MergeOutputFormat(opts.MergeOutputFormat)
	}
	if opts.Retries > 0 {
		dl.Retries(strconv.Itoa(opts.Retries))
	}
	if opts.SocketTimeout > 0 {
		dl.SocketTimeout(opts.SocketTimeout.Seconds())
	}
	if opts.CookieFile != "" {
		dl.Cookies(opts.CookieFile)
	}
	if opts.WriteThumbnail {
		dl.WriteThumbnail()
	}

	if opts.Progress != nil {
		dl.ProgressFunc(progressInterval, func(update ytdlp.ProgressUpdate) {
			opts.Progress(progressFromUpdate(update))
		})
	}

	result, err := dl.Run(ctx, "--", url)
	if err != nil {
		if opts.Progress != nil {
			opts.Progress(domain.ProgressEvent{Status: domain.ProgressError, Percent: -1})
		}
		return nil, runFailure(ctx, result, err)
	}

	extracted, err := result.GetExtractedInfo()
	if err != nil {
		return nil, domain.NewEngineError(domain.ErrUnexpected,
			fmt.Errorf("failed to parse yt-dlp info: %w", err))
	}
	if len(extracted) == 0 {
		return nil, domain.NewEngineError(domain.ErrUnexpected,
			fmt.Errorf("yt-dlp finished without reporting an output file"))
	}

	info := mediaInfoFromExtracted(extracted[0])
	if info.FilePath == "" {
		return nil, domain.NewEngineError(domain.ErrUnexpected,
			fmt.Errorf("yt-dlp finished without reporting an output file"))
	}
	return info, nil
}

// Inspect dumps the metadata of url without downloading
func (e *LibraryEngine) Inspect(ctx context.Context, url string) (*domain.MediaInfo, error) {
	result, err := e.command().
		NoWarnings().
		SkipDownload().
		DumpSingleJSON().
		Run(ctx, "--", url)
	if err != nil {
		return nil, runFailure(ctx, result, err)
	}

	info, err := parseInfoJSON([]byte(result.Stdout))
	if err != nil {
		return nil, domain.NewEngineError(domain.ErrUnexpected, err)
	}
	return info, nil
}

// runFailure classifies a failed go-ytdlp run. A negative exit code means
// the process never started or was killed.
func runFailure(ctx context.Context, result *ytdlp.Result, err error) *domain.EngineError {
	if result == nil || result.ExitCode < 0 {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.NewEngineError(domain.ErrUnexpected, ctxErr)
		}
		return domain.NewEngineError(domain.ErrUnexpected, err)
	}
	return classifyFailure(ctx, err, result.Stderr)
}

func (e *LibraryEngine) command() *ytdlp.Command {
	cmd := ytdlp.New()
	if e.config.Binary != "" {
		cmd.SetExecutable(e.config.Binary)
	}
	return cmd
}

// progressFromUpdate converts a go-ytdlp update into a progress event
func progressFromUpdate(update ytdlp.ProgressUpdate) domain.ProgressEvent {
	event := domain.ProgressEvent{
		Status:  domain.ProgressDownloading,
		Percent: -1,
		Speed:   "Unknown",
	}

	switch update.Status {
	case ytdlp.ProgressStatusFinished:
		event.Status = domain.ProgressFinished
	case ytdlp.ProgressStatusError:
		event.Status = domain.ProgressError
	}

	if update.TotalBytes > 0 || update.Status.IsCompletedType() {
		event.Percent = update.Percent()
	}

	if !update.Started.IsZero() {
		elapsed := update.Duration()
		if elapsed.Seconds() > 0 {
			bytesPerSecond := float64(update.DownloadedBytes) / elapsed.Seconds()
			event.Speed = fmt.Sprintf("%.1fMB/s", bytesPerSecond/1024/1024)
		}
	}
	return event
}

// mediaInfoFromExtracted converts the info dict printed by --print-json
func mediaInfoFromExtracted(info *ytdlp.ExtractedInfo) *domain.MediaInfo {
	media := &domain.MediaInfo{
		ID:       info.ID,
		Title:    deref(info.Title),
		Uploader: deref(info.Uploader),
		FilePath: deref(info.Filename),
	}
	if media.FilePath == "" {
		media.FilePath = deref(info.AltFilename)
	}
	if info.Duration != nil {
		media.Duration = *info.Duration
	}
	for _, f := range info.Formats {
		if f == nil {
			continue
		}
		media.Formats = append(media.Formats, domain.MediaFormat{
			FormatID:   deref(f.FormatID),
			Ext:        deref(f.Extension),
			Resolution: deref(f.Resolution),
			Note:       deref(f.FormatNote),
		})
	}
	return media
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
