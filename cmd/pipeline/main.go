package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"syscall"

	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/asr"
	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/audio"
	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/config"
	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/diarize"
	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/enhancer"
	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/export"
	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/logger"
	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/processor"
	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/watcher"
	"github.com/AugustinMORVAL/Audio-Transcriptor/pkg/executor"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	enhance := flag.Bool("enhance", false, "override enhancement.enabled from the config")
	flag.Parse()

	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// The flag only overrides the config when it was given explicitly
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "enhance" {
			cfg.Enhancement.Enabled = *enhance
		}
	})

	// Initialize logger
	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Audio Transcription Pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "CPU Cores: %d", runtime.NumCPU())
	log.Info(ctx, "ASR backend: %s", cfg.ASR.Backend)
	log.Info(ctx, "Enhancement: %v", cfg.Enhancement.Enabled)
	log.Info(ctx, "Configuration loaded successfully")

	// Verify required directories exist
	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	// Initialize dependencies
	exec := executor.New()
	enh := enhancer.New(cfg, log)
	dia := diarize.New(cfg, exec, log)
	backend := buildBackend(cfg, log)

	var exp export.Exporter
	if cfg.Export.Docx {
		exp = export.New(log)
	}

	proc := processor.New(cfg, exec, log, enh, dia, backend, exp)

	// Create context with cancellation on shutdown signals
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info(ctx, "Shutdown signal received")
		cancel()
	}()

	// With file arguments run once over them; otherwise watch the
	// input directory until interrupted
	if flag.NArg() > 0 {
		if err := runBatch(ctx, proc, log, flag.Args()); err != nil {
			log.Error(ctx, "Batch failed: %v", err)
			os.Exit(1)
		}
		return
	}

	if err := runWatch(ctx, cfg, proc, log); err != nil {
		log.Error(ctx, "Watcher failed: %v", err)
		os.Exit(1)
	}
}

// runBatch processes the given files and directories in order,
// continuing past individual failures.
func runBatch(ctx context.Context, proc processor.Processor, log logger.Logger, args []string) error {
	files, err := collectAudioFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no supported audio files among the arguments")
	}

	successCount := 0
	failCount := 0

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		log.Info(ctx, "[%d/%d] Processing: %s", i+1, len(files), path)
		if _, err := proc.Process(ctx, path); err != nil {
			log.Error(ctx, "Failed to process %s: %v", path, err)
			failCount++
			continue
		}
		successCount++
	}

	log.Info(ctx, "Batch complete: %d success, %d failed", successCount, failCount)
	if failCount > 0 {
		return fmt.Errorf("%d of %d files failed", failCount, len(files))
	}
	return nil
}

// runWatch monitors the input directory and transcribes every new
// audio file until the context is cancelled.
func runWatch(ctx context.Context, cfg *config.Config, proc processor.Processor, log logger.Logger) error {
	handler := func(ctx context.Context, path string) error {
		_, err := proc.Process(ctx, path)
		return err
	}

	w, err := watcher.New(cfg.Paths.Input, handler, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Transcription Pipeline is ready!")
	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Transcripts: %s", cfg.Paths.Transcripts)
	log.Info(ctx, "Concurrent: %d files at once", cfg.Performance.MaxConcurrent)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	select {
	case <-ctx.Done():
	case err := <-errChan:
		return err
	}

	log.Info(ctx, "Shutting down gracefully...")
	log.Info(ctx, "Transcription Pipeline stopped")
	return nil
}

// collectAudioFiles expands the arguments into audio file paths.
// Files are taken as given; directories are scanned one level deep
// for supported formats, skipping dotfiles, in sorted order.
func collectAudioFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("read directory %s: %w", arg, err)
		}
		var found []string
		for _, e := range entries {
			if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
				continue
			}
			if audio.IsSupportedFormat(e.Name()) {
				found = append(found, filepath.Join(arg, e.Name()))
			}
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}

// buildBackend picks the ASR implementation named by the config.
func buildBackend(cfg *config.Config, log logger.Logger) asr.Backend {
	switch cfg.ASR.Backend {
	case "http":
		return asr.NewHTTP(cfg.ASR, log)
	default:
		return asr.NewGemini(cfg.ASR, log)
	}
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Resampled,
		cfg.Paths.Converted,
		cfg.Paths.Enhanced,
		cfg.Paths.Transcripts,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
