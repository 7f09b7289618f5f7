package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/xdownload/internal/domain"
)

func testRuntimeConfig(t *testing.T) *domain.Config {
	t.Helper()
	dir := t.TempDir()
	config := domain.DefaultConfig()
	config.Download.OutputDir = filepath.Join(dir, "videos")
	config.Engine.LogsDir = filepath.Join(dir, "logs")
	config.Engine.Binary = filepath.Join(dir, "no-such-yt-dlp")
	config.History.DatabasePath = filepath.Join(dir, "db", "history.db")
	return config
}

func TestNewRuntime_WithHistory(t *testing.T) {
	config := testRuntimeConfig(t)

	rt, err := NewRuntime(config, nil)
	require.NoError(t, err)
	defer rt.Close()

	result := rt.Manager.Download(context.Background(), DownloadRequest{URL: "https://x.com/u"})
	assert.Equal(t, domain.KindInvalidURL, result.ErrorKind)

	stats, err := rt.Manager.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Total)
	assert.FileExists(t, config.History.DatabasePath)
}

func TestNewRuntime_EngineFailureIsRecorded(t *testing.T) {
	config := testRuntimeConfig(t)

	rt, err := NewRuntime(config, nil)
	require.NoError(t, err)
	defer rt.Close()

	result := rt.Manager.Download(context.Background(), DownloadRequest{URL: "https://x.com/u/status/1"})
	assert.False(t, result.Success)
	assert.Equal(t, domain.KindUnexpected, result.ErrorKind)
	assert.Equal(t, "1", result.VideoID)
}

func TestNewRuntime_HistoryDisabled(t *testing.T) {
	config := testRuntimeConfig(t)
	config.History.Enabled = false

	rt, err := NewRuntime(config, nil)
	require.NoError(t, err)
	defer rt.Close()

	_, err = rt.Manager.Stats()
	assert.ErrorIs(t, err, ErrHistoryDisabled)
	assert.NoFileExists(t, config.History.DatabasePath)
}

func TestNewRuntime_UnknownBackend(t *testing.T) {
	config := testRuntimeConfig(t)
	config.Engine.Backend = "youtube-dl"

	_, err := NewRuntime(config, nil)
	assert.Error(t, err)
}
