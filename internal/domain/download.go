package domain

import "time"

// ProgressStatus is the state carried by a progress event
type ProgressStatus string

const (
	ProgressDownloading ProgressStatus = "downloading"
	ProgressFinished    ProgressStatus = "finished"
	ProgressError       ProgressStatus = "error"
)

// ProgressEvent is emitted by the engine while a download runs.
// Percent is negative when the engine does not know the total size.
type ProgressEvent struct {
	Status  ProgressStatus
	Percent float64
	Speed   string
}

// ProgressFunc receives progress events
type ProgressFunc func(event ProgressEvent)

// RequestOptions is the configuration handed to the engine for one request
type RequestOptions struct {
	OutputTemplate    string
	Format            string
	MergeOutputFormat string
	Retries           int
	SocketTimeout     time.Duration
	CookieFile        string
	WriteThumbnail    bool
	Progress          ProgressFunc
}

// Merge returns a copy of o with every non-zero field of overrides applied on top
func (o RequestOptions) Merge(overrides RequestOptions) RequestOptions {
	merged := o
	if overrides.OutputTemplate != "" {
		merged.OutputTemplate = overrides.OutputTemplate
	}
	if overrides.Format != "" {
		merged.Format = overrides.Format
	}
	if overrides.MergeOutputFormat != "" {
		merged.MergeOutputFormat = overrides.MergeOutputFormat
	}
	if overrides.Retries != 0 {
		merged.Retries = overrides.Retries
	}
	if overrides.SocketTimeout != 0 {
		merged.SocketTimeout = overrides.SocketTimeout
	}
	if overrides.CookieFile != "" {
		merged.CookieFile = overrides.CookieFile
	}
	if overrides.WriteThumbnail {
		merged.WriteThumbnail = true
	}
	if overrides.Progress != nil {
		merged.Progress = overrides.Progress
	}
	return merged
}

// MediaFormat is one format offered by the engine for a post
type MediaFormat struct {
	FormatID   string `json:"format_id"`
	Ext        string `json:"ext"`
	Resolution string `json:"resolution"`
	Note       string `json:"format_note"`
}

// MediaInfo is the metadata record returned by the engine
type MediaInfo struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Uploader string        `json:"uploader"`
	Duration float64       `json:"duration"` // seconds
	FilePath string        `json:"filepath"`
	Formats  []MediaFormat `json:"formats"`
}

// UntitledMedia is used when the engine reports no title
const UntitledMedia = "Untitled"

// DownloadResult is the outcome of one download invocation
type DownloadResult struct {
	Success   bool      `json:"success"`
	FilePath  string    `json:"filepath,omitempty"`
	Title     string    `json:"title,omitempty"`
	Uploader  string    `json:"uploader,omitempty"`
	Duration  float64   `json:"duration,omitempty"`
	Error     string    `json:"error,omitempty"`
	ErrorKind ErrorKind `json:"error_kind,omitempty"`
	Platform  string    `json:"platform"`
	VideoID   string    `json:"video_id,omitempty"`
}

// NewSuccessResult builds a successful result from engine metadata
func NewSuccessResult(platform, videoID string, info *MediaInfo) DownloadResult {
	title := info.Title
	if title == "" {
		title = UntitledMedia
	}
	return DownloadResult{
		Success:  true,
		FilePath: info.FilePath,
		Title:    title,
		Uploader: info.Uploader,
		Duration: info.Duration,
		Platform: platform,
		VideoID:  videoID,
	}
}

// NewFailedResult builds a failed result carrying the error message and kind
func NewFailedResult(platform, videoID string, err error) DownloadResult {
	return DownloadResult{
		Success:   false,
		Error:     err.Error(),
		ErrorKind: KindOf(err),
		Platform:  platform,
		VideoID:   videoID,
	}
}
