package diarize

import (
	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/config"
	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/logger"
	"github.com/AugustinMORVAL/Audio-Transcriptor/pkg/executor"
)

type implDiarizer struct {
	cfg      *config.Config
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Diarizer that runs the configured external command
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Diarizer {
	return &implDiarizer{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
