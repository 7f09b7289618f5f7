package app

import (
	"errors"
	"fmt"

	"github.com/yourusername/xdownload/internal/domain"
	"github.com/yourusername/xdownload/internal/infrastructure"
	"go.uber.org/zap"
)

// Runtime holds the services wired from one configuration
type Runtime struct {
	Config  *domain.Config
	Logger  *zap.Logger
	Manager *DownloadManager

	closers []func() error
}

// NewRuntime wires the engine, history store, notifier and download manager
func NewRuntime(config *domain.Config, logger *zap.Logger) (*Runtime, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	rt := &Runtime{Config: config, Logger: logger}

	engine, err := infrastructure.NewEngine(&config.Engine, logger)
	if err != nil {
		return nil, err
	}

	var repo domain.HistoryRepository
	if config.History.Enabled {
		sqliteRepo, err := infrastructure.NewSQLiteHistoryRepository(config.History.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open download history: %w", err)
		}
		rt.closers = append(rt.closers, sqliteRepo.Close)
		repo = sqliteRepo
	}

	notifier := infrastructure.NewNotificationService(&config.Notification, logger)

	rt.Manager = NewDownloadManager(NewDefaultRegistry(config), engine, repo, notifier, &config.Download, logger)
	return rt, nil
}

// Close releases the history database and flushes the logger
func (rt *Runtime) Close() error {
	var errs []error
	for _, closeFn := range rt.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	rt.Logger.Sync()
	return errors.Join(errs...)
}
