package domain

import (
	"time"

	"github.com/google/uuid"
)

// HistoryRecord is the persisted outcome of a download invocation
type HistoryRecord struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	URL          string    `json:"url" gorm:"not null"`
	Platform     string    `json:"platform" gorm:"not null;index"`
	VideoID      string    `json:"video_id,omitempty" gorm:"index"`
	Title        string    `json:"title,omitempty"`
	Uploader     string    `json:"uploader,omitempty"`
	FilePath     string    `json:"file_path,omitempty"`
	Duration     float64   `json:"duration,omitempty"`
	Success      bool      `json:"success" gorm:"index"`
	ErrorKind    ErrorKind `json:"error_kind,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

// TableName specifies the table name for GORM
func (HistoryRecord) TableName() string {
	return "download_history"
}

// NewHistoryRecord creates a history record for the result of downloading url
func NewHistoryRecord(url string, result DownloadResult) *HistoryRecord {
	return &HistoryRecord{
		ID:           uuid.New().String(),
		URL:          url,
		Platform:     result.Platform,
		VideoID:      result.VideoID,
		Title:        result.Title,
		Uploader:     result.Uploader,
		FilePath:     result.FilePath,
		Duration:     result.Duration,
		Success:      result.Success,
		ErrorKind:    result.ErrorKind,
		ErrorMessage: result.Error,
		CreatedAt:    time.Now(),
	}
}
