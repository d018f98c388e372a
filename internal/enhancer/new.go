package enhancer

import (
	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/config"
	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/logger"
)

type implEnhancer struct {
	cfg    *config.Config
	logger logger.Logger
}

// New creates a new Enhancer instance
func New(cfg *config.Config, log logger.Logger) Enhancer {
	return &implEnhancer{
		cfg:    cfg,
		logger: log,
	}
}
