package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/LRGuess/weatherbot/internal/domain"
)

var (
	ErrSnapshotMissing    = errors.New("snapshot file not found")
	ErrSnapshotUnreadable = errors.New("snapshot file not readable")
	ErrSnapshotCorrupt    = errors.New("snapshot file not parsable")
)

// Store keeps every user's preferences in memory, backed by a single
// JSON snapshot file keyed by user ID. The whole snapshot is read once
// at open and rewritten on every mutation; Set does not return until the
// write completed, so a caller never observes success before its own
// update is durable. Races between two processes sharing the file are
// last-writer-wins on the whole snapshot.
type Store struct {
	path string
	log  *zap.Logger

	mu    sync.Mutex
	users map[string]domain.Preference
}

// Open loads the snapshot at path. A missing or unparsable file is not
// fatal: the store starts empty and the condition is logged.
func Open(path string, log *zap.Logger) *Store {
	s := &Store{path: path, log: log, users: make(map[string]domain.Preference)}
	if err := s.load(); err != nil {
		if errors.Is(err, ErrSnapshotMissing) {
			log.Info("no preference snapshot yet, starting empty", zap.String("path", path))
		} else {
			log.Warn("preference snapshot unreadable, starting empty",
				zap.String("path", path), zap.Error(err))
		}
	}
	return s
}

// Get returns the stored record for userID, or a zero record if none
// exists. It never fails.
func (s *Store) Get(userID string) domain.Preference {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[userID]
}

// Set applies mutate to the user's record (creating it if absent) and
// persists the whole snapshot before returning.
func (s *Store) Set(userID string, mutate func(*domain.Preference)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.users[userID]
	mutate(&p)
	s.users[userID] = p

	if err := s.persistLocked(); err != nil {
		return fmt.Errorf("persist snapshot: %w", err)
	}
	return nil
}

// All returns a copy of every stored record keyed by user ID, so callers
// can scan without holding the store lock.
func (s *Store) All() map[string]domain.Preference {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]domain.Preference, len(s.users))
	for id, p := range s.users {
		out[id] = p
	}
	return out
}

// Reload discards in-memory state and re-reads the snapshot; used for
// out-of-band data correction. A missing or unreadable file leaves the
// current state untouched; a corrupt file resets the store to empty.
// All three are reported to the caller and none crashes the process.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// load replaces s.users from disk. Callers either hold the lock or own
// the store exclusively (Open).
func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrSnapshotMissing
		}
		return fmt.Errorf("%w: %v", ErrSnapshotUnreadable, err)
	}

	users := make(map[string]domain.Preference)
	if err := json.Unmarshal(data, &users); err != nil {
		s.users = make(map[string]domain.Preference)
		return fmt.Errorf("%w: %v", ErrSnapshotCorrupt, err)
	}
	s.users = users
	return nil
}

func (s *Store) persistLocked() error {
	data, err := json.MarshalIndent(s.users, "", "    ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	// Write-then-rename so a crash mid-write never leaves a torn snapshot.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
