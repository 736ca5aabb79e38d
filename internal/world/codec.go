package world

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/crafti-go/crafti/internal/binio"
	"github.com/crafti-go/crafti/internal/world/chunk"
)

// Save format, in order: seed, pending-change count and records, view
// radius, then one (coordinate triple, chunk body) record per generated
// chunk until end of stream. All fields are fixed-width little-endian.
//
// Known limitation, preserved from the original format contract: there is
// no version tag and no length framing around the chunk section; the chunk
// list is terminated by end-of-stream alone.

// SaveTo writes the world state to w. Chunks are written in sorted
// coordinate order so identical worlds produce identical bytes.
func (w *World) SaveTo(out io.Writer) error {
	w.progress(StageIO)

	bw := binio.NewWriter(out)
	bw.PutUint64(w.seed)

	bw.PutUint32(uint32(len(w.pending)))
	for _, ch := range w.pending {
		ch.write(bw)
	}

	bw.PutInt32(int32(w.viewRadius))
	if err := bw.Err(); err != nil {
		return fmt.Errorf("write world header: %w", err)
	}

	for _, pos := range w.sortedChunkCoords() {
		bw.PutInt32(int32(pos.X))
		bw.PutInt32(int32(pos.Y))
		bw.PutInt32(int32(pos.Z))
		if err := bw.Err(); err != nil {
			return fmt.Errorf("write chunk %v header: %w", pos, err)
		}
		if err := w.chunks[pos].WriteBody(out); err != nil {
			return err
		}
	}
	return nil
}

// LoadFrom replaces the world state with data read from r. On error the
// world may be partially populated; the caller must treat it as unusable
// and Clear it.
func (w *World) LoadFrom(in io.Reader) error {
	w.progress(StageIO)

	br := binio.NewReader(in)

	seed := br.Uint64()
	if err := br.Err(); err != nil {
		return fmt.Errorf("read seed: %w", err)
	}
	w.SetSeed(seed)

	count := br.Uint32()
	w.pending = w.pending[:0]
	for i := uint32(0); i < count; i++ {
		w.pending = append(w.pending, readBlockChange(br))
	}
	if err := br.Err(); err != nil {
		return fmt.Errorf("read pending changes: %w", err)
	}

	radius := br.Int32()
	if err := br.Err(); err != nil {
		return fmt.Errorf("read view radius: %w", err)
	}
	w.SetViewRadius(int(radius))

	for {
		pos, err := readChunkHeader(in)
		if errors.Is(err, io.EOF) {
			// Stream ended exactly on a record boundary.
			break
		}
		if err != nil {
			return fmt.Errorf("read chunk header: %w", err)
		}

		c := chunk.New(pos)
		if err := c.ReadBody(in); err != nil {
			return err
		}
		w.chunks[pos] = c
	}

	w.loaded = false
	return nil
}

// readChunkHeader reads a chunk coordinate triple. A clean end of stream
// before the first byte returns io.EOF; a stream that dies mid-triple
// returns io.ErrUnexpectedEOF.
func readChunkHeader(in io.Reader) (chunk.Coord, error) {
	var buf [12]byte
	if _, err := io.ReadFull(in, buf[:]); err != nil {
		// ReadFull reports io.EOF only when nothing was read;
		// a partial triple comes back as io.ErrUnexpectedEOF.
		return chunk.Coord{}, err
	}
	return chunk.Coord{
		X: int(int32(binary.LittleEndian.Uint32(buf[0:]))),
		Y: int(int32(binary.LittleEndian.Uint32(buf[4:]))),
		Z: int(int32(binary.LittleEndian.Uint32(buf[8:]))),
	}, nil
}

func (w *World) sortedChunkCoords() []chunk.Coord {
	coords := make([]chunk.Coord, 0, len(w.chunks))
	for pos := range w.chunks {
		coords = append(coords, pos)
	}
	sort.Slice(coords, func(i, j int) bool {
		a, b := coords[i], coords[j]
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.Z < b.Z
	})
	return coords
}
