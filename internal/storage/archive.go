package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
)

// ArchiveMeta is the sidecar written next to every archive.
type ArchiveMeta struct {
	WorldID    string `json:"world_id"`
	Name       string `json:"name"`
	Seed       uint64 `json:"seed"`
	Source     string `json:"source"`
	CreatedAt  string `json:"created_at"`
	SourceSize int64  `json:"source_size"`
}

// ArchiveSave writes a zstd-compressed copy of a save into
// archives/<name>/<timestamp>.cw.zst with a meta.json sidecar, and returns
// the archive path. The live save format stays uncompressed; only the
// at-rest copy is.
func (s *Store) ArchiveSave(name string) (string, error) {
	m, err := s.readManifest(name)
	if err != nil {
		return "", err
	}

	src := s.savePath(name)
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("open save %s: %w", name, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return "", fmt.Errorf("stat save %s: %w", name, err)
	}

	dir := filepath.Join(s.dir, "archives", name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create archive dir: %w", err)
	}

	stamp := time.Now().UTC().Format("20060102T150405Z")
	dst := filepath.Join(dir, stamp+saveExt+".zst")

	if err := compressFile(in, dst); err != nil {
		return "", fmt.Errorf("archive save %s: %w", name, err)
	}

	meta := ArchiveMeta{
		WorldID:    m.ID,
		Name:       name,
		Seed:       m.Seed,
		Source:     filepath.Base(src),
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		SourceSize: info.Size(),
	}
	if b, err := json.MarshalIndent(meta, "", "  "); err == nil {
		_ = os.WriteFile(filepath.Join(dir, stamp+".meta.json"), append(b, '\n'), 0o644)
	}

	s.log.Info("save archived", "name", name, "path", dst)
	return dst, nil
}

// RestoreArchive decompresses an archive back into the live save slot for
// name. The manifest is left untouched; it already describes this world.
func (s *Store) RestoreArchive(name, archivePath string) error {
	in, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer in.Close()

	dec, err := zstd.NewReader(in)
	if err != nil {
		return fmt.Errorf("open zstd stream: %w", err)
	}
	defer dec.Close()

	data, err := io.ReadAll(dec)
	if err != nil {
		return fmt.Errorf("decompress archive: %w", err)
	}
	if err := atomicWrite(s.savePath(name), data); err != nil {
		return fmt.Errorf("restore save %s: %w", name, err)
	}

	s.log.Info("archive restored", "name", name, "from", archivePath)
	return nil
}

func compressFile(in io.Reader, dst string) error {
	tmp := dst + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}

	enc, err := zstd.NewWriter(out)
	if err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}

	if _, err := io.Copy(enc, in); err != nil {
		enc.Close()
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := enc.Close(); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dst)
}
