package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRequestOptions_Merge(t *testing.T) {
	base := RequestOptions{
		OutputTemplate:    "/tmp/out/%(title).50s_%(id)s.%(ext)s",
		Format:            "best",
		MergeOutputFormat: "mp4",
		Retries:           3,
		SocketTimeout:     30 * time.Second,
	}

	merged := base.Merge(RequestOptions{CookieFile: "/tmp/x.cookie", Format: "bv*+ba/b"})

	assert.Equal(t, "bv*+ba/b", merged.Format)
	assert.Equal(t, "/tmp/x.cookie", merged.CookieFile)
	assert.Equal(t, base.OutputTemplate, merged.OutputTemplate)
	assert.Equal(t, 3, merged.Retries)
	assert.Equal(t, 30*time.Second, merged.SocketTimeout)
	assert.Equal(t, "best", base.Format, "base must not be modified")
}

func TestRequestOptions_MergeEmptyOverrides(t *testing.T) {
	called := false
	base := RequestOptions{Format: "best", Retries: 3, Progress: func(ProgressEvent) { called = true }}

	merged := base.Merge(RequestOptions{})

	assert.Equal(t, "best", merged.Format)
	assert.Equal(t, 3, merged.Retries)
	assert.NotNil(t, merged.Progress)
	merged.Progress(ProgressEvent{Status: ProgressFinished})
	assert.True(t, called)
}

func TestNewSuccessResult(t *testing.T) {
	info := &MediaInfo{
		ID:       "123",
		Title:    "a tweet",
		Uploader: "someone",
		Duration: 12.5,
		FilePath: "/tmp/out/a tweet_123.mp4",
	}

	result := NewSuccessResult("twitter", "123", info)

	assert.True(t, result.Success)
	assert.Equal(t, "/tmp/out/a tweet_123.mp4", result.FilePath)
	assert.Equal(t, "a tweet", result.Title)
	assert.Equal(t, "someone", result.Uploader)
	assert.Equal(t, 12.5, result.Duration)
	assert.Equal(t, "twitter", result.Platform)
	assert.Equal(t, "123", result.VideoID)
	assert.Empty(t, result.Error)
	assert.Equal(t, KindNone, result.ErrorKind)
}

func TestNewSuccessResult_Untitled(t *testing.T) {
	result := NewSuccessResult("twitter", "1", &MediaInfo{FilePath: "/tmp/f.mp4"})
	assert.Equal(t, UntitledMedia, result.Title)
}

func TestNewFailedResult(t *testing.T) {
	result := NewFailedResult("twitter", "", NewEngineError(ErrExtractionFailed, errors.New("no video in tweet")))

	assert.False(t, result.Success)
	assert.Equal(t, "extraction failed: no video in tweet", result.Error)
	assert.Equal(t, KindExtractionFailed, result.ErrorKind)
	assert.Empty(t, result.VideoID)
	assert.Empty(t, result.FilePath)
}
