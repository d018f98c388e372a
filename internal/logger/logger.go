package logger

import (
	"context"
	"log"
	"os"
	"strings"
)

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
)

// parseLevel maps a config string to a level, defaulting to info
func parseLevel(s string) level {
	switch strings.ToLower(s) {
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

type implLogger struct {
	logger *log.Logger
	min    level
}

// New creates a new Logger instance filtering below the given level
func New(minLevel string) Logger {
	return &implLogger{
		logger: log.New(os.Stdout, "", log.LstdFlags),
		min:    parseLevel(minLevel),
	}
}

func (l *implLogger) shouldLog(lvl level) bool {
	return lvl >= l.min
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog(levelDebug) {
		l.logger.Printf("[DEBUG] "+msg, args...)
	}
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog(levelInfo) {
		l.logger.Printf("[INFO] "+msg, args...)
	}
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog(levelWarn) {
		l.logger.Printf("[WARN] "+msg, args...)
	}
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog(levelError) {
		l.logger.Printf("[ERROR] "+msg, args...)
	}
}
