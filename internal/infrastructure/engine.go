package infrastructure

import (
	"fmt"

	"github.com/yourusername/xdownload/internal/domain"
	"go.uber.org/zap"
)

// NewEngine returns the extraction engine selected by config.Backend
func NewEngine(config *domain.EngineConfig, logger *zap.Logger) (domain.Engine, error) {
	switch config.Backend {
	case "", domain.EngineBackendYTDLP:
		return NewYTDLPEngine(config, logger), nil
	case domain.EngineBackendLibrary:
		return NewLibraryEngine(config, logger), nil
	default:
		return nil, fmt.Errorf("unknown engine backend %q (expected %s or %s)",
			config.Backend, domain.EngineBackendYTDLP, domain.EngineBackendLibrary)
	}
}
