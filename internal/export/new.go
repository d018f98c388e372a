package export

import (
	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/logger"
)

type implExporter struct {
	logger logger.Logger
}

// New creates a new Exporter producing styled DOCX transcripts
func New(log logger.Logger) Exporter {
	return &implExporter{
		logger: log,
	}
}
