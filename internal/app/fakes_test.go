package app

import (
	"context"
	"sync"

	"github.com/yourusername/xdownload/internal/domain"
)

// fakeEngine records calls and returns canned results
type fakeEngine struct {
	mu           sync.Mutex
	info         *domain.MediaInfo
	err          error
	events       []domain.ProgressEvent
	downloadURLs []string
	inspectURLs  []string
	lastOpts     domain.RequestOptions
}

func (e *fakeEngine) Download(ctx context.Context, url string, opts domain.RequestOptions) (*domain.MediaInfo, error) {
	e.mu.Lock()
	e.downloadURLs = append(e.downloadURLs, url)
	e.lastOpts = opts
	e.mu.Unlock()

	if opts.Progress != nil {
		for _, event := range e.events {
			opts.Progress(event)
		}
	}
	if e.err != nil {
		return nil, e.err
	}
	info := *e.info
	return &info, nil
}

func (e *fakeEngine) Inspect(ctx context.Context, url string) (*domain.MediaInfo, error) {
	e.mu.Lock()
	e.inspectURLs = append(e.inspectURLs, url)
	e.mu.Unlock()

	if e.err != nil {
		return nil, e.err
	}
	return e.info, nil
}

func (e *fakeEngine) downloads() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.downloadURLs)
}

// fakeHistoryRepository keeps records in memory
type fakeHistoryRepository struct {
	mu      sync.Mutex
	records []*domain.HistoryRecord
	err     error
}

func (r *fakeHistoryRepository) Create(record *domain.HistoryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, record)
	return nil
}

func (r *fakeHistoryRepository) FindByID(id string) (*domain.HistoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, nil
}

func (r *fakeHistoryRepository) FindByVideoID(platform, videoID string) ([]*domain.HistoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.HistoryRecord
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].Platform == platform && r.records[i].VideoID == videoID {
			out = append(out, r.records[i])
		}
	}
	return out, nil
}

func (r *fakeHistoryRepository) FindRecent(platform string, limit int) ([]*domain.HistoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.HistoryRecord
	for i := len(r.records) - 1; i >= 0; i-- {
		if platform != "" && r.records[i].Platform != platform {
			continue
		}
		out = append(out, r.records[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeHistoryRepository) GetStats() (*domain.HistoryStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &domain.HistoryStats{ByPlatform: make(map[string]int64)}
	for _, rec := range r.records {
		stats.Total++
		if rec.Success {
			stats.Succeeded++
		} else {
			stats.Failed++
		}
		stats.ByPlatform[rec.Platform]++
	}
	return stats, nil
}
