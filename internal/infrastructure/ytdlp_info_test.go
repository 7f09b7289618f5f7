package infrastructure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleInfoJSON = `{
	"id": "1234567890",
	"title": "a short clip",
	"uploader": "Some Account",
	"uploader_id": "someaccount",
	"duration": 42.5,
	"_filename": "/tmp/out/a short clip_1234567890.mp4",
	"formats": [
		{"format_id": "hls-256", "ext": "mp4", "resolution": "480x270", "format_note": null},
		{"format_id": "http-2176", "ext": "mp4", "resolution": "1280x720", "format_note": "HD"}
	]
}`

func TestParseInfoJSON(t *testing.T) {
	info, err := parseInfoJSON([]byte(sampleInfoJSON))
	require.NoError(t, err)

	assert.Equal(t, "1234567890", info.ID)
	assert.Equal(t, "a short clip", info.Title)
	assert.Equal(t, "Some Account", info.Uploader)
	assert.Equal(t, 42.5, info.Duration)
	assert.Equal(t, "/tmp/out/a short clip_1234567890.mp4", info.FilePath)
	require.Len(t, info.Formats, 2)
	assert.Equal(t, "hls-256", info.Formats[0].FormatID)
	assert.Empty(t, info.Formats[0].Note)
	assert.Equal(t, "1280x720", info.Formats[1].Resolution)
	assert.Equal(t, "HD", info.Formats[1].Note)
}

func TestParseInfoJSON_Playlist(t *testing.T) {
	data := `{
		"_type": "playlist",
		"id": "99",
		"title": "",
		"entries": [
			{"id": "99-1", "title": "first", "uploader": "u", "duration": 3,
			 "formats": [{"format_id": "a", "ext": "mp4", "resolution": "320x240"}]},
			{"id": "99-2", "title": "second"}
		]
	}`

	info, err := parseInfoJSON([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, "99", info.ID)
	assert.Equal(t, "first", info.Title)
	assert.Equal(t, "u", info.Uploader)
	assert.Equal(t, float64(3), info.Duration)
	require.Len(t, info.Formats, 1)
	assert.Equal(t, "a", info.Formats[0].FormatID)
}

func TestParseInfoJSON_Invalid(t *testing.T) {
	_, err := parseInfoJSON([]byte("not json"))
	assert.Error(t, err)
}

func TestInfoJSONPath(t *testing.T) {
	assert.Equal(t, "/tmp/out/clip_1.info.json", infoJSONPath("/tmp/out/clip_1.mp4"))
	assert.Equal(t, "/tmp/out/a.b_1.info.json", infoJSONPath("/tmp/out/a.b_1.webm"))
}

func TestReadInfoJSON(t *testing.T) {
	dir := t.TempDir()
	media := filepath.Join(dir, "clip_1.mp4")
	sidecar := filepath.Join(dir, "clip_1.info.json")

	t.Run("removes sidecar by default", func(t *testing.T) {
		require.NoError(t, os.WriteFile(sidecar, []byte(sampleInfoJSON), 0644))

		info, err := readInfoJSON(media, false)
		require.NoError(t, err)
		assert.Equal(t, "a short clip", info.Title)
		assert.False(t, fileExists(sidecar))
	})

	t.Run("keeps sidecar when asked", func(t *testing.T) {
		require.NoError(t, os.WriteFile(sidecar, []byte(sampleInfoJSON), 0644))

		_, err := readInfoJSON(media, true)
		require.NoError(t, err)
		assert.True(t, fileExists(sidecar))
	})

	t.Run("missing sidecar", func(t *testing.T) {
		_, err := readInfoJSON(filepath.Join(dir, "other.mp4"), false)
		assert.Error(t, err)
	})
}
