package storage

import (
	"database/sql"
	"fmt"
	"sync"
	"sync/atomic"

	_ "modernc.org/sqlite"
)

// SaveMeta is one row of the save index.
type SaveMeta struct {
	WorldID    string
	Name       string
	Seed       uint64
	ViewRadius int
	Chunks     int
	Pending    int
	Bytes      int64
	SavedAt    string
}

// Index records save metadata in an SQLite database. Writes go through a
// single background goroutine so a slow disk never blocks the host loop;
// reads query the database directly.
type Index struct {
	db *sql.DB

	ch     chan SaveMeta
	wg     sync.WaitGroup
	once   sync.Once
	closed atomic.Bool
}

const indexSchema = `
CREATE TABLE IF NOT EXISTS saves (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	world_id    TEXT NOT NULL,
	name        TEXT NOT NULL,
	seed        INTEGER NOT NULL,
	view_radius INTEGER NOT NULL,
	chunks      INTEGER NOT NULL,
	pending     INTEGER NOT NULL,
	bytes       INTEGER NOT NULL,
	saved_at    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS saves_name ON saves(name, id);
`

// OpenIndex opens (creating if needed) the save index at path.
func OpenIndex(path string) (*Index, error) {
	if path == "" {
		return nil, fmt.Errorf("empty index path")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(indexSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index schema: %w", err)
	}

	idx := &Index{
		db: db,
		ch: make(chan SaveMeta, 64),
	}
	idx.wg.Add(1)
	go idx.writer()
	return idx, nil
}

func (i *Index) writer() {
	defer i.wg.Done()
	for m := range i.ch {
		_, err := i.db.Exec(
			`INSERT INTO saves (world_id, name, seed, view_radius, chunks, pending, bytes, saved_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			m.WorldID, m.Name, int64(m.Seed), m.ViewRadius, m.Chunks, m.Pending, m.Bytes, m.SavedAt,
		)
		_ = err // index rows are advisory; a lost row never fails a save
	}
}

// RecordSave queues a row for insertion. Dropped silently after Close.
func (i *Index) RecordSave(m SaveMeta) {
	if i.closed.Load() {
		return
	}
	i.ch <- m
}

// Latest returns the most recent index row for name, or ok=false if the
// world has never been saved.
func (i *Index) Latest(name string) (SaveMeta, bool, error) {
	row := i.db.QueryRow(
		`SELECT world_id, name, seed, view_radius, chunks, pending, bytes, saved_at
		 FROM saves WHERE name = ? ORDER BY id DESC LIMIT 1`, name)

	var m SaveMeta
	var seed int64
	err := row.Scan(&m.WorldID, &m.Name, &seed, &m.ViewRadius, &m.Chunks, &m.Pending, &m.Bytes, &m.SavedAt)
	if err == sql.ErrNoRows {
		return SaveMeta{}, false, nil
	}
	if err != nil {
		return SaveMeta{}, false, err
	}
	m.Seed = uint64(seed)
	return m, true, nil
}

// List returns the most recent row per world name.
func (i *Index) List() ([]SaveMeta, error) {
	rows, err := i.db.Query(
		`SELECT world_id, name, seed, view_radius, chunks, pending, bytes, saved_at
		 FROM saves WHERE id IN (SELECT MAX(id) FROM saves GROUP BY name)
		 ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SaveMeta
	for rows.Next() {
		var m SaveMeta
		var seed int64
		if err := rows.Scan(&m.WorldID, &m.Name, &seed, &m.ViewRadius, &m.Chunks, &m.Pending, &m.Bytes, &m.SavedAt); err != nil {
			return nil, err
		}
		m.Seed = uint64(seed)
		out = append(out, m)
	}
	return out, rows.Err()
}

// Close drains queued writes and closes the database.
func (i *Index) Close() error {
	var err error
	i.once.Do(func() {
		i.closed.Store(true)
		close(i.ch)
		i.wg.Wait()
		err = i.db.Close()
	})
	return err
}
