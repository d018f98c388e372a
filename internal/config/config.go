package config

import "fmt"

type Config struct {
	Paths       PathsConfig       `yaml:"paths"`
	Audio       AudioConfig       `yaml:"audio"`
	Enhancement EnhancementConfig `yaml:"enhancement"`
	Diarization DiarizationConfig `yaml:"diarization"`
	ASR         ASRConfig         `yaml:"asr"`
	Speakers    map[string]string `yaml:"speakers"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Export      ExportConfig      `yaml:"export"`
}

type PathsConfig struct {
	Input       string `yaml:"input"`
	Resampled   string `yaml:"resampled"`
	Converted   string `yaml:"converted"`
	Enhanced    string `yaml:"enhanced"`
	Transcripts string `yaml:"transcripts"`
}

type AudioConfig struct {
	// SampleRate is the canonical rate every input is normalized to
	SampleRate int `yaml:"sample_rate"`
}

type EnhancementConfig struct {
	Enabled           bool    `yaml:"enabled"`
	MaxIterations     int     `yaml:"max_iterations"`
	SampleSeconds     float64 `yaml:"sample_seconds"`
	CorrelationWeight float64 `yaml:"correlation_weight"`
	ContrastWeight    float64 `yaml:"contrast_weight"`
}

type DiarizationConfig struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

type ASRConfig struct {
	Backend  string       `yaml:"backend"`
	Language string       `yaml:"language"`
	Gemini   GeminiConfig `yaml:"gemini"`
	HTTP     HTTPConfig   `yaml:"http"`
}

type GeminiConfig struct {
	APIKeys []string `yaml:"api_keys"`
	Model   string   `yaml:"model"`
}

type HTTPConfig struct {
	Endpoint string `yaml:"endpoint"`
	Token    string `yaml:"token"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type PerformanceConfig struct {
	MaxConcurrent  int `yaml:"max_concurrent"`
	SegmentWorkers int `yaml:"segment_workers"`
	BatchMemoryMB  int `yaml:"batch_memory_mb"`
}

type ExportConfig struct {
	Docx bool `yaml:"docx"`
}

func (c *Config) Validate() error {
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Diarization.Command == "" {
		return fmt.Errorf("diarization.command is required")
	}
	switch c.ASR.Backend {
	case "gemini":
		if len(c.ASR.Gemini.APIKeys) == 0 {
			return fmt.Errorf("asr.gemini.api_keys is required for the gemini backend")
		}
	case "http":
		if c.ASR.HTTP.Endpoint == "" {
			return fmt.Errorf("asr.http.endpoint is required for the http backend")
		}
	case "":
		return fmt.Errorf("asr.backend is required")
	default:
		return fmt.Errorf("asr.backend must be \"gemini\" or \"http\", got %q", c.ASR.Backend)
	}
	if c.Enhancement.MaxIterations < 0 {
		return fmt.Errorf("enhancement.max_iterations must not be negative")
	}
	if c.Enhancement.SampleSeconds < 0 {
		return fmt.Errorf("enhancement.sample_seconds must not be negative")
	}
	if c.Enhancement.CorrelationWeight < 0 || c.Enhancement.ContrastWeight < 0 {
		return fmt.Errorf("enhancement score weights must not be negative")
	}

	if c.Paths.Resampled == "" {
		c.Paths.Resampled = "resampled_files"
	}
	if c.Paths.Converted == "" {
		c.Paths.Converted = "converted_files"
	}
	if c.Paths.Enhanced == "" {
		c.Paths.Enhanced = "enhanced_files"
	}
	if c.Paths.Transcripts == "" {
		c.Paths.Transcripts = "transcripts"
	}
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = 16000
	}
	if c.Enhancement.MaxIterations == 0 {
		c.Enhancement.MaxIterations = 50
	}
	if c.Enhancement.SampleSeconds == 0 {
		c.Enhancement.SampleSeconds = 30
	}
	if c.Enhancement.CorrelationWeight == 0 && c.Enhancement.ContrastWeight == 0 {
		c.Enhancement.CorrelationWeight = 0.5
		c.Enhancement.ContrastWeight = 0.5
	}
	if c.ASR.Gemini.Model == "" {
		c.ASR.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Performance.SegmentWorkers == 0 {
		c.Performance.SegmentWorkers = 4
	}
	if c.Performance.BatchMemoryMB == 0 {
		c.Performance.BatchMemoryMB = 512
	}

	return nil
}
