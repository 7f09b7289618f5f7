package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/xdownload/internal/app"
	"github.com/yourusername/xdownload/internal/domain"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// writeTestConfig writes a config rooted in a temp dir using binary as yt-dlp
func writeTestConfig(t *testing.T, binary string) string {
	t.Helper()
	dir := t.TempDir()
	config := domain.DefaultConfig()
	config.Download.OutputDir = filepath.Join(dir, "videos")
	config.Engine.Binary = binary
	config.Engine.LogsDir = filepath.Join(dir, "logs")
	config.History.DatabasePath = filepath.Join(dir, "history.db")
	config.Logging.Level = "error"

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, app.SaveConfig(config, path))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestListPlatforms(t *testing.T) {
	stdout, _, err := execute(t, "--plataformas")
	require.NoError(t, err)
	assert.Contains(t, stdout, "twitter")
	assert.Contains(t, stdout, "x.com")
}

func TestMissingURL(t *testing.T) {
	_, _, err := execute(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "URL is required")
}

func TestTooManyArgs(t *testing.T) {
	_, _, err := execute(t, "https://x.com/a/status/1", "https://x.com/b/status/2")
	assert.Error(t, err)
}

func TestDownload_InvalidURL(t *testing.T) {
	configPath := writeTestConfig(t, filepath.Join(t.TempDir(), "no-such-yt-dlp"))

	_, stderr, err := execute(t, "--config", configPath, "https://x.com/someone")
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, stderr, "Error: invalid URL")
}

func TestDownload_UnsupportedPlatform(t *testing.T) {
	configPath := writeTestConfig(t, "yt-dlp")

	_, stderr, err := execute(t, "--config", configPath, "-p", "vimeo", "https://vimeo.com/1")
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, stderr, "vimeo")
}

func TestDownload_Success(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake yt-dlp is a shell script")
	}
	dir := t.TempDir()
	media := filepath.Join(dir, "clip_42.mp4")
	script := "#!/bin/sh\n" +
		"printf video > '" + media + "'\n" +
		"echo '{\"id\":\"42\",\"title\":\"clip\",\"uploader\":\"someone\",\"duration\":7}' > '" +
		strings.TrimSuffix(media, ".mp4") + ".info.json'\n" +
		"echo '" + media + "'\n"
	binary := filepath.Join(dir, "yt-dlp")
	require.NoError(t, os.WriteFile(binary, []byte(script), 0755))

	configPath := writeTestConfig(t, binary)

	stdout, _, err := execute(t, "--config", configPath, "https://x.com/someone/status/42")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Starting download: 42")
	assert.Contains(t, stdout, "Success!")
	assert.Contains(t, stdout, "Uploader: someone")

	stdout, _, err = execute(t, "--config", configPath, "history")
	require.NoError(t, err)
	assert.Contains(t, stdout, "twitter")
	assert.Contains(t, stdout, " ok ")

	stdout, _, err = execute(t, "--config", configPath, "history", "--video", "42")
	require.NoError(t, err)
	assert.Contains(t, stdout, " ok ")

	stdout, _, err = execute(t, "--config", configPath, "history", "--video", "43")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No downloads recorded.")

	_, _, err = execute(t, "--config", configPath, "history", "--video", "42", "--platform", "vimeo")
	require.Error(t, err)

	stdout, _, err = execute(t, "--config", configPath, "stats")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Total:     1")
	assert.Contains(t, stdout, "Succeeded: 1")
}

func TestHistory_Empty(t *testing.T) {
	configPath := writeTestConfig(t, "yt-dlp")

	stdout, _, err := execute(t, "--config", configPath, "history", "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No downloads recorded.")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
