// Package logging builds the zap logger used by the gridsearch host.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/gridsearch/config"
)

// New builds a logger from cfg. The console format uses zap's development
// preset, json the production preset.
func New(cfg config.Logging) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: logging.level %q", config.ErrInvalidConfig, cfg.Level)
	}

	var zc zap.Config
	switch cfg.Format {
	case "json":
		zc = zap.NewProductionConfig()
	case "console", "":
		zc = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("%w: logging.format %q", config.ErrInvalidConfig, cfg.Format)
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	// stdout belongs to the host's output.
	zc.OutputPaths = []string{"stderr"}

	return zc.Build()
}

// NewFile builds a JSON logger writing to path. The interactive host uses it
// because the terminal is owned by the screen.
func NewFile(cfg config.Logging, path string) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: logging.level %q", config.ErrInvalidConfig, cfg.Level)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}

	return zc.Build()
}
