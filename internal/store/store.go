// Package store persists the best score ever achieved.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/ini.v1"
)

// Store reads and writes a single best-score value.
type Store interface {
	// Load returns the stored best score. Absent or unparseable values read as 0;
	// the error is informational and never means the value is unusable.
	Load() (int, error)
	// Save overwrites the stored best score. It fails without writing when
	// existing data cannot be read.
	Save(score int) error
}

// Section is the ini section holding one key per player.
const Section = "best_scores"

// File is an ini file of best scores keyed by player name.
// Safe for concurrent use by several sessions; last writer wins.
type File struct {
	mu   sync.Mutex
	path string
}

// OpenFile returns a File backed by path. The file is created on first save.
func OpenFile(path string) *File {
	return &File{path: path}
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// Player returns the Store for one player's key.
func (f *File) Player(name string) Store {
	if name == "" {
		name = "player"
	}
	return &entry{file: f, key: name}
}

// load reads the ini file, returning an empty file when it does not exist yet.
func (f *File) load() (*ini.File, error) {
	cfg, err := ini.Load(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ini.Empty(), nil
		}
		return ini.Empty(), err
	}
	return cfg, nil
}

type entry struct {
	file *File
	key  string
}

func (e *entry) Load() (int, error) {
	e.file.mu.Lock()
	defer e.file.mu.Unlock()

	cfg, err := e.file.load()
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", e.file.path, err)
	}
	if !cfg.Section(Section).HasKey(e.key) {
		return 0, nil
	}
	score, err := cfg.Section(Section).Key(e.key).Int()
	if err != nil {
		return 0, fmt.Errorf("parse best score for %q: %w", e.key, err)
	}
	if score < 0 {
		return 0, fmt.Errorf("negative best score %d for %q", score, e.key)
	}
	return score, nil
}

func (e *entry) Save(score int) error {
	e.file.mu.Lock()
	defer e.file.mu.Unlock()

	// Reload so keys written by other sessions survive.
	cfg, err := e.file.load()
	if err != nil {
		return fmt.Errorf("read %s: %w", e.file.path, err)
	}
	cfg.Section(Section).Key(e.key).SetValue(fmt.Sprintf("%d", score))

	if dir := filepath.Dir(e.file.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create score dir: %w", err)
		}
	}
	if err := cfg.SaveTo(e.file.path); err != nil {
		return fmt.Errorf("write %s: %w", e.file.path, err)
	}
	return nil
}

// Memory is an in-process Store, used when no score file is configured.
type Memory struct {
	mu    sync.Mutex
	score int
	saves int
}

// NewMemory returns a Memory store seeded with best.
func NewMemory(best int) *Memory {
	return &Memory{score: best}
}

// Load returns the last saved score.
func (m *Memory) Load() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.score, nil
}

// Save records the score.
func (m *Memory) Save(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.score = score
	m.saves++
	return nil
}

// Saves returns how many times Save was called.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
