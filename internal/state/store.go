package state

import (
	"encoding/json"
	"fmt"

	"github.com/hack-pad/hackpadfs"
	"go.uber.org/zap"
)

// BackupCount is the number of rotated snapshot generations kept beside
// the canonical state file.
const BackupCount = 3

// StateFile is the canonical state file name within the store's FS.
const StateFile = "olivetti_state.json"

// Store persists the AppState as a single JSON document with atomic,
// backup-protected writes and resilient reads. The FS is the durable
// namespace: an os-backed FS rooted at the data directory in production,
// an in-memory FS in tests.
type Store struct {
	fs   hackpadfs.FS
	path string
	log  *zap.Logger
}

// NewStore creates a store over fsys writing to path. A nil logger is
// replaced with a no-op logger.
func NewStore(fsys hackpadfs.FS, path string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{fs: fsys, path: path, log: log}
}

// Save writes st to the canonical path. Backups rotate BEFORE the new
// write, so a crash mid-rotation never destroys the only good copy; the
// new document lands via write-to-temp plus rename, so no reader ever
// observes a partial file. On error the prior canonical file is intact.
func (s *Store) Save(st *AppState) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	if s.exists(s.path) {
		s.rotateBackups()
	}

	tmp := s.path + ".tmp"
	if err := hackpadfs.WriteFullFile(s.fs, tmp, data, 0644); err != nil {
		return fmt.Errorf("write temp state: %w", err)
	}
	if err := hackpadfs.Rename(s.fs, tmp, s.path); err != nil {
		return fmt.Errorf("promote temp state: %w", err)
	}

	return nil
}

// rotateBackups shifts each backup one generation older (oldest dropped)
// and copies the current canonical file into .bak. Rotation failures are
// logged but never block the save itself.
func (s *Store) rotateBackups() {
	for i := BackupCount - 1; i >= 1; i-- {
		src := s.backupPath(i)
		if !s.exists(src) {
			continue
		}
		if err := s.copyFile(src, s.backupPath(i+1)); err != nil {
			s.log.Warn("backup rotation failed", zap.Int("generation", i), zap.Error(err))
		}
	}
	if err := s.copyFile(s.path, s.backupPath(1)); err != nil {
		s.log.Warn("backup of canonical state failed", zap.Error(err))
	}
}

// Load reads the newest parseable state. It tries the canonical path
// first, then falls through backups newest to oldest. generation reports
// which copy was used: 0 for canonical, 1..BackupCount for a backup, -1
// when nothing was readable and a fresh empty state was returned. Load
// never fails: the worst case is a clean slate.
func (s *Store) Load() (st *AppState, generation int) {
	if st := s.read(s.path); st != nil {
		return st, 0
	}

	for i := 1; i <= BackupCount; i++ {
		if st := s.read(s.backupPath(i)); st != nil {
			s.log.Warn("canonical state unreadable, loaded backup",
				zap.Int("generation", i))
			return st, i
		}
	}

	return NewAppState(), -1
}

// read returns the normalized state at path, or nil when the file is
// missing or unparseable.
func (s *Store) read(path string) *AppState {
	data, err := hackpadfs.ReadFile(s.fs, path)
	if err != nil {
		return nil
	}

	var st AppState
	if err := json.Unmarshal(data, &st); err != nil {
		s.log.Warn("state file corrupt", zap.String("path", path), zap.Error(err))
		return nil
	}

	st.Normalize()
	return &st
}

// backupPath mirrors the historical naming: .bak, .bak2, .bak3.
func (s *Store) backupPath(generation int) string {
	if generation == 1 {
		return s.path + ".bak"
	}
	return fmt.Sprintf("%s.bak%d", s.path, generation)
}

func (s *Store) exists(path string) bool {
	_, err := hackpadfs.Stat(s.fs, path)
	return err == nil
}

func (s *Store) copyFile(src, dst string) error {
	data, err := hackpadfs.ReadFile(s.fs, src)
	if err != nil {
		return err
	}
	return hackpadfs.WriteFullFile(s.fs, dst, data, 0644)
}
