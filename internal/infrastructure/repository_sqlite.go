package infrastructure

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yourusername/xdownload/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteHistoryRepository implements HistoryRepository using SQLite
type SQLiteHistoryRepository struct {
	db *gorm.DB
}

// NewSQLiteHistoryRepository opens (and migrates) the history database at dbPath
func NewSQLiteHistoryRepository(dbPath string) (*SQLiteHistoryRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&domain.HistoryRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteHistoryRepository{db: db}, nil
}

// Create stores a new history record
func (r *SQLiteHistoryRepository) Create(record *domain.HistoryRecord) error {
	return r.db.Create(record).Error
}

// FindByID finds a record by ID. It returns nil when there is none.
func (r *SQLiteHistoryRepository) FindByID(id string) (*domain.HistoryRecord, error) {
	var record domain.HistoryRecord
	err := r.db.First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// FindByVideoID returns every attempt at one post, newest first
func (r *SQLiteHistoryRepository) FindByVideoID(platform, videoID string) ([]*domain.HistoryRecord, error) {
	var records []*domain.HistoryRecord
	err := r.db.Where("platform = ? AND video_id = ?", platform, videoID).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

// FindRecent returns up to limit records, newest first.
// An empty platform matches all platforms; limit <= 0 means no limit.
func (r *SQLiteHistoryRepository) FindRecent(platform string, limit int) ([]*domain.HistoryRecord, error) {
	var records []*domain.HistoryRecord
	query := r.db.Order("created_at DESC")
	if platform != "" {
		query = query.Where("platform = ?", platform)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&records).Error
	return records, err
}

// GetStats returns history statistics
func (r *SQLiteHistoryRepository) GetStats() (*domain.HistoryStats, error) {
	stats := &domain.HistoryStats{ByPlatform: make(map[string]int64)}

	if err := r.db.Model(&domain.HistoryRecord{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&domain.HistoryRecord{}).
		Where("success = ?", true).
		Count(&stats.Succeeded).Error; err != nil {
		return nil, err
	}
	stats.Failed = stats.Total - stats.Succeeded

	platformCounts := []struct {
		Platform string
		Count    int64
	}{}

	if err := r.db.Model(&domain.HistoryRecord{}).
		Select("platform, count(*) as count").
		Group("platform").
		Scan(&platformCounts).Error; err != nil {
		return nil, err
	}

	for _, pc := range platformCounts {
		stats.ByPlatform[pc.Platform] = pc.Count
	}

	return stats, nil
}

// Close closes the database connection
func (r *SQLiteHistoryRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
