package world

import (
	"math"

	"github.com/crafti-go/crafti/internal/world/chunk"
)

// setChunkVisible appends the chunk at pos to the visible set, generating it
// first if it does not exist.
func (w *World) setChunkVisible(pos chunk.Coord) {
	if w.findChunk(pos) == nil {
		w.generateChunk(pos)
	}
	w.visible = append(w.visible, pos)
}

// SetPosition recenters visibility on a viewer at a world-space position in
// block units. Fractional coordinates floor toward negative infinity, so the
// mapping stays consistent on the negative side of each axis.
//
// The visible set is only rebuilt when the viewer's chunk changed (or the
// world was never centered); calling this every frame is cheap otherwise.
func (w *World) SetPosition(x, y, z float64) {
	center := chunk.Coord{
		X: chunkCoord(int(math.Floor(x))),
		Y: chunkCoord(int(math.Floor(y))),
		Z: chunkCoord(int(math.Floor(z))),
	}
	center.Y = min(max(center.Y, 0), Height-1)

	if w.loaded && center == w.center {
		return
	}

	w.visible = w.visible[:0]
	w.setChunkVisible(center)

	// Visit shells of increasing rounded Euclidean distance. Each offset in
	// the cube belongs to exactly one shell, which keeps the set free of
	// duplicates and roughly spherical.
	for dist := 1; dist <= w.viewRadius; dist++ {
		for dx := -dist; dx <= dist; dx++ {
			for dy := -dist; dy <= dist; dy++ {
				for dz := -dist; dz <= dist; dz++ {
					if center.Y+dy < 0 || center.Y+dy >= Height {
						continue
					}
					if int(math.Round(math.Sqrt(float64(dx*dx+dy*dy+dz*dz)))) != dist {
						continue
					}
					w.setChunkVisible(center.Offset(dx, dy, dz))
				}
			}
		}
	}

	w.center = center
	w.loaded = true
}

// VisibleCount returns the size of the visible set.
func (w *World) VisibleCount() int {
	return len(w.visible)
}

// VisibleCoords returns a copy of the visible set's chunk coordinates in
// selection order.
func (w *World) VisibleCoords() []chunk.Coord {
	out := make([]chunk.Coord, len(w.visible))
	copy(out, w.visible)
	return out
}

// visibleChunks resolves the visible keys against the registry in order.
// Entries are re-resolved on every walk so the registry representation can
// change without dangling references.
func (w *World) visibleChunks(fn func(*chunk.Chunk) bool) {
	for _, pos := range w.visible {
		c := w.findChunk(pos)
		if c == nil {
			continue
		}
		if !fn(c) {
			return
		}
	}
}
