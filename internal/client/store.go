package client

import (
	"sync"

	"bridge/internal/wire"

	"go.uber.org/zap"
)

// Store keeps the latest authoritative snapshot. Snapshots may arrive out of
// order after a reconnect; the store accepts only versions that advance and
// silently drops the rest, so applying is idempotent.
type Store struct {
	mu     sync.RWMutex
	snap   *wire.Snapshot
	logger *zap.Logger
}

// NewStore creates an empty snapshot store.
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{logger: logger.Named("store")}
}

// Apply installs the snapshot if it advances the version, reporting whether
// it was accepted.
func (s *Store) Apply(snap wire.Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap != nil && snap.Version <= s.snap.Version {
		s.logger.Debug("stale snapshot dropped",
			zap.Uint64("have", s.snap.Version),
			zap.Uint64("got", snap.Version))
		return false
	}

	s.snap = &snap
	s.logger.Debug("snapshot applied",
		zap.Uint64("version", snap.Version),
		zap.String("phase", snap.Phase))
	return true
}

// Current returns the latest snapshot, if any.
func (s *Store) Current() (wire.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return wire.Snapshot{}, false
	}
	return *s.snap, true
}

// Version returns the version of the latest snapshot, or zero.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return 0
	}
	return s.snap.Version
}
