package fixtures

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/AlibekovAA/onion-recipes/internal/common/constants"
	"github.com/AlibekovAA/onion-recipes/internal/common/logger"
	"github.com/AlibekovAA/onion-recipes/internal/observability/metrics"
)

// Store holds the current snapshot of a fixture file. Readers never block:
// a reload builds a new snapshot and swaps it in whole.
type Store struct {
	path     string
	log      *logger.Logger
	current  atomic.Pointer[Snapshot]
	debounce time.Duration
	reloaded chan struct{}
}

func NewStore(path string, log *logger.Logger) (*Store, error) {
	snap, err := Load(path)
	if err != nil {
		return nil, err
	}
	s := &Store{
		path:     filepath.Clean(path),
		log:      log,
		debounce: constants.FixtureReloadDebounce,
		reloaded: make(chan struct{}, 1),
	}
	s.current.Store(snap)
	return s, nil
}

func NewStoreFromSnapshot(snap *Snapshot) *Store {
	s := &Store{log: logger.Discard(), reloaded: make(chan struct{}, 1)}
	s.current.Store(snap)
	return s
}

func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

func (s *Store) Path() string {
	return s.path
}

// Reload re-reads the file. An invalid file keeps the previous snapshot.
func (s *Store) Reload() error {
	snap, err := Load(s.path)
	if err != nil {
		metrics.FixtureReloadsTotal.WithLabelValues("error").Inc()
		return err
	}
	s.current.Store(snap)
	metrics.FixtureReloadsTotal.WithLabelValues("ok").Inc()

	select {
	case s.reloaded <- struct{}{}:
	default:
	}
	return nil
}

// Reloaded signals after each successful reload. Signals are coalesced.
func (s *Store) Reloaded() <-chan struct{} {
	return s.reloaded
}

// Watch reloads the store whenever the fixture file changes, until ctx is
// cancelled. The parent directory is watched so editors that replace the
// file by rename are picked up.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fixture watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", s.path, err)
	}
	s.log.Infof("watching fixtures: %s", s.path)

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != s.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(s.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Warnf("fixture watcher error: %v", err)

		case <-timer.C:
			if err := s.Reload(); err != nil {
				s.log.WithFields(ctx, logger.Fields{"action": "fixture_reload", "path": s.path}).Warnf("fixture reload rejected, keeping previous data: %v", err)
				continue
			}
			snap := s.Snapshot()
			s.log.WithFields(ctx, logger.Fields{"action": "fixture_reload", "path": s.path}).Infof("fixtures reloaded: %d users, %d recipes", len(snap.Users), len(snap.Recipes))
		}
	}
}
