package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/yourusername/xdownload/internal/domain"
	"go.uber.org/zap"
)

// Downloader runs one invocation against a platform: it validates the URL,
// builds the request options and hands the request to the engine.
type Downloader struct {
	platform  domain.Platform
	engine    domain.Engine
	outputDir string
	config    *domain.DownloadConfig
	out       io.Writer
	logger    *zap.Logger
}

// NewDownloader creates a downloader writing into outputDir, creating it if needed.
// User-facing output (banner, progress, format table) goes to out.
func NewDownloader(
	platform domain.Platform,
	engine domain.Engine,
	outputDir string,
	config *domain.DownloadConfig,
	out io.Writer,
	logger *zap.Logger,
) (*Downloader, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Downloader{
		platform:  platform,
		engine:    engine,
		outputDir: outputDir,
		config:    config,
		out:       out,
		logger:    logger,
	}, nil
}

// BuildRequestOptions merges the platform overrides over the base options
func (d *Downloader) BuildRequestOptions() domain.RequestOptions {
	base := domain.RequestOptions{
		OutputTemplate:    filepath.Join(d.outputDir, d.config.FilenameTemplate),
		Format:            d.config.Format,
		MergeOutputFormat: d.config.MergeOutputFormat,
		Retries:           d.config.Retries,
		SocketTimeout:     d.config.SocketTimeout,
		WriteThumbnail:    d.config.WriteThumbnail,
		Progress:          d.printProgress,
	}
	return base.Merge(d.platform.RequestOptions())
}

// Download validates url and downloads it. Failures are returned as a
// failed result; an invalid URL never reaches the engine.
func (d *Downloader) Download(ctx context.Context, url string) domain.DownloadResult {
	name := d.platform.Name()

	if !d.platform.ValidateURL(url) {
		err := fmt.Errorf("%w for %s: expected a post URL such as https://x.com/<user>/status/<id>",
			domain.ErrInvalidURL, name)
		d.logger.Debug("Rejected URL", zap.String("url", url), zap.String("platform", name))
		return domain.NewFailedResult(name, "", err)
	}

	videoID := d.platform.ExtractVideoID(url)
	opts := d.BuildRequestOptions()

	fmt.Fprintf(d.out, "Starting download: %s\n", videoID)
	fmt.Fprintf(d.out, "Saving to: %s\n", d.outputDir)
	fmt.Fprintln(d.out, strings.Repeat("-", 50))

	info, err := d.engine.Download(ctx, url, opts)
	if err != nil {
		d.logger.Warn("Engine download failed",
			zap.String("url", url),
			zap.String("platform", name),
			zap.Error(err))
		return domain.NewFailedResult(name, videoID, err)
	}

	result := domain.NewSuccessResult(name, videoID, info)

	fmt.Fprintln(d.out, strings.Repeat("-", 50))
	fmt.Fprintln(d.out, "Success!")
	fmt.Fprintf(d.out, "File: %s\n", result.FilePath)
	if result.Uploader != "" {
		fmt.Fprintf(d.out, "Uploader: %s\n", result.Uploader)
	}
	if result.Duration > 0 {
		fmt.Fprintf(d.out, "Duration: %g seconds\n", result.Duration)
	}

	return result
}

// ListFormats prints the formats the engine offers for url
func (d *Downloader) ListFormats(ctx context.Context, url string) error {
	fmt.Fprintln(d.out, "Analyzing available formats...")
	fmt.Fprintln(d.out, strings.Repeat("-", 60))

	info, err := d.engine.Inspect(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to list formats: %w", err)
	}

	if len(info.Formats) == 0 {
		fmt.Fprintln(d.out, "No formats found.")
		return nil
	}

	fmt.Fprintf(d.out, "Title: %s\n", orNA(info.Title))
	fmt.Fprintf(d.out, "Uploader: %s\n", orNA(info.Uploader))
	fmt.Fprintln(d.out, strings.Repeat("-", 60))

	w := tabwriter.NewWriter(d.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEXT\tRESOLUTION\tNOTE")
	for _, f := range info.Formats {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", orNA(f.FormatID), orNA(f.Ext), orNA(f.Resolution), f.Note)
	}
	return w.Flush()
}

// printProgress renders engine progress on a single terminal line
func (d *Downloader) printProgress(event domain.ProgressEvent) {
	switch event.Status {
	case domain.ProgressDownloading:
		percent := "N/A"
		if event.Percent >= 0 {
			percent = fmt.Sprintf("%5.1f%%", event.Percent)
		}
		fmt.Fprintf(d.out, "\rDownloading: %s @ %s", percent, orNA(event.Speed))
	case domain.ProgressFinished:
		fmt.Fprintln(d.out, "\nDownload finished, processing...")
	case domain.ProgressError:
		fmt.Fprintln(d.out, "\nDownload error")
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
