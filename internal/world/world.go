// Package world implements the sparse chunked voxel world: chunk indexing
// and lifetime, lazy procedural generation, deferred block edits, visibility
// selection, spatial queries and binary persistence.
//
// A World is single-goroutine by contract: the host loop sequences
// SetPosition, Render, edits and persistence, so no locking is needed.
package world

import (
	"log/slog"
	"math/rand/v2"

	"github.com/crafti-go/crafti/internal/block"
	"github.com/crafti-go/crafti/internal/world/chunk"
	"github.com/crafti-go/crafti/internal/world/gen"
)

const (
	// Height is the world height in chunks. Vertical chunk coordinates are
	// clamped into [0, Height-1]; horizontal coordinates are unbounded.
	Height = 4

	// DefaultViewRadius is the default visibility radius in chunk shells.
	DefaultViewRadius = 3
)

// World owns every generated chunk. Chunks are created lazily when
// visibility first needs them and destroyed only by Clear.
type World struct {
	seed  uint64
	noise *gen.Noise

	chunks  map[chunk.Coord]*chunk.Chunk
	pending pendingQueue

	// Visible chunks are tracked by registry key, not pointer, and rebuilt
	// wholesale whenever the viewer crosses a chunk boundary.
	visible []chunk.Coord
	center  chunk.Coord
	loaded  bool

	viewRadius int
	generated  uint64

	progress ProgressFunc
	log      *slog.Logger
}

// New creates a world with a freshly generated seed.
func New(log *slog.Logger) *World {
	w := &World{
		chunks:     make(map[chunk.Coord]*chunk.Chunk, 256),
		viewRadius: DefaultViewRadius,
		log:        log,
	}
	w.progress = w.logProgress
	w.noise = gen.NewNoise(0)
	w.GenerateSeed()
	return w
}

// GenerateSeed draws a new random seed and re-seeds the noise sampler.
// Existing chunks keep the terrain of the seed they were generated with.
func (w *World) GenerateSeed() {
	w.SetSeed(rand.Uint64())
}

// SetSeed replaces the world seed and re-seeds the noise sampler.
func (w *World) SetSeed(seed uint64) {
	w.seed = seed
	w.noise.SetSeed(seed)
	w.log.Info("world seed set", "seed", seed)
}

// Seed returns the active world seed.
func (w *World) Seed() uint64 {
	return w.seed
}

// NoiseGenerator returns the active seeded sampler for collaborators that
// generate terrain.
func (w *World) NoiseGenerator() *gen.Noise {
	return w.noise
}

// ViewRadius returns the visibility radius in chunk shells.
func (w *World) ViewRadius() int {
	return w.viewRadius
}

// SetViewRadius changes the visibility radius. The visible set is rebuilt
// on the next SetPosition that crosses a chunk boundary or after Clear.
func (w *World) SetViewRadius(r int) {
	if r < 1 {
		r = 1
	}
	w.viewRadius = r
}

// ChunkCount returns the number of generated chunks in the registry.
func (w *World) ChunkCount() int {
	return len(w.chunks)
}

// GeneratedCount returns how many chunks have been generated (not loaded)
// over the world's lifetime.
func (w *World) GeneratedCount() uint64 {
	return w.generated
}

// PendingCount returns the number of queued deferred edits.
func (w *World) PendingCount() int {
	return len(w.pending)
}

// chunkCoord decomposes a global block coordinate into its chunk coordinate.
// The arithmetic shift floors toward negative infinity, so the mapping holds
// for negative coordinates too.
func chunkCoord(global int) int {
	return global >> 3
}

// localCoord returns the position within the chunk, in [0, Size).
func localCoord(global int) int {
	return global & 7
}

func splitCoord(x, y, z int) (cpos chunk.Coord, lx, ly, lz int) {
	cpos = chunk.Coord{X: chunkCoord(x), Y: chunkCoord(y), Z: chunkCoord(z)}
	return cpos, localCoord(x), localCoord(y), localCoord(z)
}

// findChunk returns the registered chunk at a chunk coordinate, or nil.
func (w *World) findChunk(pos chunk.Coord) *chunk.Chunk {
	return w.chunks[pos]
}

// GetBlock returns the block at a global coordinate. Absent chunks resolve
// to a fallback: air at the world ceiling (so nothing renders above), stone
// everywhere else (a solid boundary around ungenerated space).
func (w *World) GetBlock(x, y, z int) block.Block {
	cpos, lx, ly, lz := splitCoord(x, y, z)

	c := w.findChunk(cpos)
	if c == nil {
		if cpos.Y == Height {
			return block.Air
		}
		return block.Stone
	}
	return c.Local(lx, ly, lz)
}

// SetBlock writes a block at a global coordinate. When the target chunk does
// not exist yet the edit is queued and replayed at generation time; the
// caller gets no signal about which of the two happened.
func (w *World) SetBlock(x, y, z int, b block.Block) {
	cpos, lx, ly, lz := splitCoord(x, y, z)

	if c := w.findChunk(cpos); c != nil {
		c.SetLocal(lx, ly, lz, b)
		return
	}
	w.pending = w.pending.append(BlockChange{Chunk: cpos, Local: [3]uint8{uint8(lx), uint8(ly), uint8(lz)}, Block: b})
}

// ChangeBlock is SetBlock with chunk-level side effects (remesh marking).
// Edits against absent chunks are queued exactly like SetBlock.
func (w *World) ChangeBlock(x, y, z int, b block.Block) {
	cpos, lx, ly, lz := splitCoord(x, y, z)

	if c := w.findChunk(cpos); c != nil {
		c.ChangeLocal(lx, ly, lz, b)
		return
	}
	w.pending = w.pending.append(BlockChange{Chunk: cpos, Local: [3]uint8{uint8(lx), uint8(ly), uint8(lz)}, Block: b})
}

// BlockAction performs the context-sensitive interaction of the block at a
// global coordinate (e.g. toggling a door). It reports false, with no side
// effect, when the chunk does not exist or the block has no interaction.
func (w *World) BlockAction(x, y, z int) bool {
	cpos, lx, ly, lz := splitCoord(x, y, z)

	c := w.findChunk(cpos)
	if c == nil {
		return false
	}
	changed, ok := block.Action(c.Local(lx, ly, lz))
	if !ok {
		return false
	}
	c.ChangeLocal(lx, ly, lz, changed)
	return true
}

// generateChunk builds the chunk at pos, registers it and replays any queued
// edits that were waiting for it. Only called for chunks that do not exist.
func (w *World) generateChunk(pos chunk.Coord) *chunk.Chunk {
	w.progress(StageGenerate)

	// The new chunk's faces may occlude faces of existing neighbours.
	for _, n := range [...]chunk.Coord{
		pos.Offset(-1, 0, 0), pos.Offset(1, 0, 0),
		pos.Offset(0, -1, 0), pos.Offset(0, 1, 0),
		pos.Offset(0, 0, -1), pos.Offset(0, 0, 1),
	} {
		if c := w.findChunk(n); c != nil {
			c.MarkDirty()
		}
	}

	c := chunk.New(pos)
	c.Generate(w.noise)
	w.chunks[pos] = c
	w.generated++

	w.pending = w.pending.drainFor(pos, func(ch BlockChange) {
		c.SetLocal(int(ch.Local[0]), int(ch.Local[1]), int(ch.Local[2]), ch.Block)
	})

	return c
}

// Clear destroys all generated state: every chunk and the visible set.
// Seed, view radius and queued edits are preserved.
func (w *World) Clear() {
	w.chunks = make(map[chunk.Coord]*chunk.Chunk, 256)
	w.visible = w.visible[:0]
	w.loaded = false
}
