package main

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/katalvlaran/gridsearch/config"
	"github.com/katalvlaran/gridsearch/replan"
)

// watchConfig re-applies the search settings in path to c whenever the file is
// written, until ctx is done. The parent directory is watched because editors
// often save by renaming a temporary file over the original.
func watchConfig(ctx context.Context, path string, c *replan.Coordinator, log *zap.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}
	target := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := applyConfig(path, c); err != nil {
				log.Warn("config reload rejected", zap.String("path", path), zap.Error(err))
				continue
			}
			log.Info("config reloaded", zap.String("path", path))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("config watch error", zap.Error(err))
		}
	}
}

// applyConfig loads path and applies the settings a running coordinator can
// take: strategy, heuristic and dynamic mode. Grid and pacing changes need a
// restart.
func applyConfig(path string, c *replan.Coordinator) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	strategy, _ := cfg.Strategy()
	kind, _ := cfg.Heuristic()

	if err := c.SetStrategy(strategy); err != nil {
		return err
	}
	if err := c.SetHeuristic(kind); err != nil {
		return err
	}
	c.SetDynamic(cfg.Dynamic.Enabled)

	return nil
}
