package domain

// HistoryRepository defines the interface for download history persistence
type HistoryRepository interface {
	// Create stores a new history record
	Create(record *HistoryRecord) error

	// FindByID finds a record by ID
	FindByID(id string) (*HistoryRecord, error)

	// FindByVideoID returns the records of a platform video, newest first
	FindByVideoID(platform, videoID string) ([]*HistoryRecord, error)

	// FindRecent returns up to limit records, newest first, optionally filtered by platform
	FindRecent(platform string, limit int) ([]*HistoryRecord, error)

	// GetStats returns history statistics
	GetStats() (*HistoryStats, error)
}

// HistoryStats represents download history statistics
type HistoryStats struct {
	Total      int64            `json:"total"`
	Succeeded  int64            `json:"succeeded"`
	Failed     int64            `json:"failed"`
	ByPlatform map[string]int64 `json:"by_platform"`
}
