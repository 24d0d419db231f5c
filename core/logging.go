package core

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/brickstorm/parameter"
)

// LogConfig selects where and how verbosely to log
type LogConfig struct {
	Debug    bool
	Dir      string
	FileName string
	MaxSize  int64
	Level    string
}

// DefaultLogConfig returns file logging settings with debug disabled
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Dir:      parameter.LogDir,
		FileName: parameter.LogFileName,
		MaxSize:  parameter.MaxLogSize,
		Level:    "debug",
	}
}

// SetupLogging builds the process logger and installs it as the default
// Logs are discarded unless cfg.Debug is set; the terminal owns stdout so nothing is ever written there
// The returned file is nil when logging is disabled, caller closes it otherwise
func SetupLogging(cfg LogConfig) (*log.Logger, *os.File) {
	if !cfg.Debug {
		logger := log.New(io.Discard)
		log.SetDefault(logger)
		return logger, nil
	}

	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		logger := log.New(io.Discard)
		log.SetDefault(logger)
		return logger, nil
	}

	path := filepath.Join(cfg.Dir, cfg.FileName)
	rotateIfLarge(path, cfg.MaxSize)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logger := log.New(io.Discard)
		log.SetDefault(logger)
		return logger, nil
	}

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.DebugLevel
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
		Level:           level,
	})
	log.SetDefault(logger)
	logger.Info("logging started", "path", path, "level", level.String())
	return logger, f
}

// rotateIfLarge renames an oversized log to a timestamped sibling
func rotateIfLarge(path string, maxSize int64) {
	info, err := os.Stat(path)
	if err != nil || info.Size() <= maxSize {
		return
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	rotated := fmt.Sprintf("%s-%s%s", base, time.Now().Format("20060102-150405"), ext)
	_ = os.Rename(path, rotated)
}

// Component returns a child logger prefixed with the component name
func Component(logger *log.Logger, name string) *log.Logger {
	if logger == nil {
		logger = log.Default()
	}
	return logger.WithPrefix(name)
}
