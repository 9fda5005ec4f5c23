package web

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/peterkuimelis/cardclash/internal/game"
)

// WatchCatalog reloads the catalog whenever its file changes, until ctx is
// done. A file that fails to load leaves the current catalog in place.
func (s *Server) WatchCatalog(ctx context.Context) (err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	// Watch the directory so editors that replace the file are caught.
	path := filepath.Clean(s.opts.CatalogPath)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch catalog directory: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				s.reloadCatalog()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("catalog watcher error", zap.Error(err))
		}
	}
}

func (s *Server) reloadCatalog() {
	c, err := game.LoadCatalog(s.opts.CatalogPath)
	if err != nil {
		s.logger.Warn("catalog reload failed, keeping current catalog",
			zap.String("path", s.opts.CatalogPath),
			zap.Error(err),
		)
		return
	}
	s.setCatalog(c)
	s.logger.Info("catalog reloaded",
		zap.String("path", s.opts.CatalogPath),
		zap.Int("cards", c.Len()),
	)
}
