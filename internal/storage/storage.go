// Package storage persists worlds on disk: raw binary saves written
// atomically, a JSON manifest per save, an SQLite index of save metadata
// and optional compressed archives.
package storage

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/crafti-go/crafti/internal/world"
)

// saveExt is the raw world save extension.
const saveExt = ".cw"

// Store handles file-based persistence rooted at a data directory.
type Store struct {
	dir string
	log *slog.Logger
	idx *Index
}

// New creates a Store rooted at dir, creating subdirectories and the save
// index as needed.
func New(dir string, log *slog.Logger) (*Store, error) {
	dirs := []string{
		dir,
		filepath.Join(dir, "saves"),
		filepath.Join(dir, "archives"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", d, err)
		}
	}

	idx, err := OpenIndex(filepath.Join(dir, "saves", "index.db"))
	if err != nil {
		return nil, fmt.Errorf("open save index: %w", err)
	}
	return &Store{dir: dir, log: log, idx: idx}, nil
}

// Close flushes and closes the save index.
func (s *Store) Close() error {
	return s.idx.Close()
}

// Index exposes the save index for listing and latest-save queries.
func (s *Store) Index() *Index {
	return s.idx
}

func (s *Store) savePath(name string) string {
	return filepath.Join(s.dir, "saves", name+saveExt)
}

func (s *Store) manifestPath(name string) string {
	return filepath.Join(s.dir, "saves", name+".json")
}

// SaveWorld writes the world to saves/<name>.cw atomically, refreshes the
// manifest and records the save in the index.
func (s *Store) SaveWorld(name string, w *world.World) error {
	if !ValidManifestName(name) {
		return fmt.Errorf("invalid save name %q", name)
	}

	var buf bytes.Buffer
	if err := w.SaveTo(&buf); err != nil {
		return fmt.Errorf("encode world %s: %w", name, err)
	}

	path := s.savePath(name)
	if err := atomicWrite(path, buf.Bytes()); err != nil {
		return fmt.Errorf("write save %s: %w", name, err)
	}

	m, err := s.readManifest(name)
	if err != nil {
		// A corrupt or missing manifest is replaced, not fatal.
		m = nil
	}
	worldID := uuid.NewString()
	if m != nil {
		worldID = m.ID
	}
	m = &Manifest{
		ID:      worldID,
		Name:    name,
		Seed:    w.Seed(),
		Format:  FormatName,
		SavedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.writeManifest(name, m); err != nil {
		return err
	}

	s.idx.RecordSave(SaveMeta{
		WorldID:    worldID,
		Name:       name,
		Seed:       w.Seed(),
		ViewRadius: w.ViewRadius(),
		Chunks:     w.ChunkCount(),
		Pending:    w.PendingCount(),
		Bytes:      int64(buf.Len()),
		SavedAt:    m.SavedAt,
	})

	s.log.Info("world saved",
		"name", name, "chunks", w.ChunkCount(), "pending", w.PendingCount(), "bytes", buf.Len())
	return nil
}

// LoadWorld reads saves/<name>.cw into w after validating the manifest.
// On error the world may be partially populated; the caller must Clear it
// before further use.
func (s *Store) LoadWorld(name string, w *world.World) error {
	if !ValidManifestName(name) {
		return fmt.Errorf("invalid save name %q", name)
	}

	m, err := s.readManifest(name)
	if err != nil {
		return err
	}
	if m.Format != FormatName {
		return fmt.Errorf("save %s: unsupported format %q", name, m.Format)
	}

	f, err := os.Open(s.savePath(name))
	if err != nil {
		return fmt.Errorf("open save %s: %w", name, err)
	}
	defer f.Close()

	if err := w.LoadFrom(f); err != nil {
		return fmt.Errorf("load save %s: %w", name, err)
	}
	s.log.Info("world loaded", "name", name, "chunks", w.ChunkCount(), "seed", w.Seed())
	return nil
}

// HasSave reports whether a save with this name exists.
func (s *Store) HasSave(name string) bool {
	_, err := os.Stat(s.savePath(name))
	return err == nil
}

// atomicWrite writes data to path via a temp file and rename, so a crash
// never leaves a truncated save behind.
func atomicWrite(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
