package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iwvelando/payment-optimizer/pkg/validation"
	"go.uber.org/zap"
)

// NewLogger creates a zap logger based on configuration and an optional
// level override, which takes precedence when non-empty.
func (l LoggingConfig) NewLogger(levelOverride string) (*zap.Logger, error) {
	level := l.Level
	if levelOverride != "" {
		level = levelOverride
	}

	zapLevel, err := validation.ParseLogLevel(level)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateLogFormat(l.Format); err != nil {
		return nil, err
	}

	var config zap.Config
	if l.Format == "console" {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	if l.OutputFile != "" {
		if dir := filepath.Dir(l.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		file, err := os.OpenFile(l.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", l.OutputFile, err)
		}
		_ = file.Close()

		config.OutputPaths = []string{l.OutputFile}
		config.ErrorOutputPaths = []string{l.OutputFile}
	}

	return config.Build()
}
