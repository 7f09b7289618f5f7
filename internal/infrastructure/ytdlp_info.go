package infrastructure

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yourusername/xdownload/internal/domain"
)

// ytdlpInfo mirrors the fields of yt-dlp's info JSON that we use
type ytdlpInfo struct {
	Type     string        `json:"_type"`
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Uploader string        `json:"uploader"`
	Duration float64       `json:"duration"`
	Filename string        `json:"_filename"`
	Formats  []ytdlpFormat `json:"formats"`
	Entries  []ytdlpInfo   `json:"entries"`
}

// ytdlpFormat mirrors one entry of the formats list
type ytdlpFormat struct {
	FormatID   string `json:"format_id"`
	Ext        string `json:"ext"`
	Resolution string `json:"resolution"`
	FormatNote string `json:"format_note"`
}

// parseInfoJSON decodes yt-dlp info JSON into a MediaInfo.
// Tweets with several videos come back as playlists; the first entry
// supplies whatever the playlist itself lacks.
func parseInfoJSON(data []byte) (*domain.MediaInfo, error) {
	var info ytdlpInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp info: %w", err)
	}

	if info.Type == "playlist" && len(info.Entries) > 0 {
		first := info.Entries[0]
		if info.Title == "" {
			info.Title = first.Title
		}
		if info.Uploader == "" {
			info.Uploader = first.Uploader
		}
		if info.Duration == 0 {
			info.Duration = first.Duration
		}
		if len(info.Formats) == 0 {
			info.Formats = first.Formats
		}
	}

	media := &domain.MediaInfo{
		ID:       info.ID,
		Title:    info.Title,
		Uploader: info.Uploader,
		Duration: info.Duration,
		FilePath: info.Filename,
	}
	for _, f := range info.Formats {
		media.Formats = append(media.Formats, domain.MediaFormat{
			FormatID:   f.FormatID,
			Ext:        f.Ext,
			Resolution: f.Resolution,
			Note:       f.FormatNote,
		})
	}
	return media, nil
}

// infoJSONPath returns the .info.json sidecar yt-dlp writes next to a media file
func infoJSONPath(mediaPath string) string {
	return strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath)) + ".info.json"
}

// readInfoJSON reads the sidecar of mediaPath, removing it unless keep is set
func readInfoJSON(mediaPath string, keep bool) (*domain.MediaInfo, error) {
	path := infoJSONPath(mediaPath)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !keep {
		os.Remove(path)
	}
	return parseInfoJSON(data)
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
