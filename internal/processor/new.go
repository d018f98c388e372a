package processor

import (
	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/asr"
	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/config"
	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/diarize"
	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/enhancer"
	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/export"
	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/logger"
	"github.com/AugustinMORVAL/Audio-Transcriptor/pkg/executor"
)

type implProcessor struct {
	cfg      *config.Config
	executor executor.Executor
	logger   logger.Logger
	enhancer enhancer.Enhancer
	diarizer diarize.Diarizer
	backend  asr.Backend
	exporter export.Exporter
}

// New creates a new Processor instance. The exporter may be nil when
// no additional document format is wanted.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger,
	enh enhancer.Enhancer, dia diarize.Diarizer, backend asr.Backend, exp export.Exporter) Processor {
	return &implProcessor{
		cfg:      cfg,
		executor: exec,
		logger:   log,
		enhancer: enh,
		diarizer: dia,
		backend:  backend,
		exporter: exp,
	}
}
