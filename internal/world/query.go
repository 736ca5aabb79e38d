package world

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/crafti-go/crafti/internal/geom"
	"github.com/crafti-go/crafti/internal/world/chunk"
)

// BlockHit describes the result of a world ray cast.
type BlockHit struct {
	// Pos is the struck block's global block coordinate.
	Pos [3]int
	// Side is the block face the ray entered through.
	Side geom.Side
	// Dist is the distance along the ray direction to the entry point.
	Dist float64
}

// Intersect reports whether any visible chunk's bounding volume overlaps
// box. It short-circuits on the first hit.
func (w *World) Intersect(box geom.AABB) bool {
	hit := false
	w.visibleChunks(func(c *chunk.Chunk) bool {
		if c.Intersects(box) {
			hit = true
			return false
		}
		return true
	})
	return hit
}

// IntersectRay casts a ray against every visible chunk and returns the
// globally nearest block hit, with the chunk-local hit translated into
// world coordinates. ok is false when no visible chunk is hit.
func (w *World) IntersectRay(origin, dir mgl64.Vec3) (BlockHit, bool) {
	var best BlockHit
	found := false

	w.visibleChunks(func(c *chunk.Chunk) bool {
		hit, ok := c.IntersectRay(origin, dir)
		if !ok {
			return true
		}
		if found && hit.Dist >= best.Dist {
			return true
		}
		best = BlockHit{
			Pos: [3]int{
				hit.Local[0] + c.Pos.X*chunk.Size,
				hit.Local[1] + c.Pos.Y*chunk.Size,
				hit.Local[2] + c.Pos.Z*chunk.Size,
			},
			Side: hit.Side,
			Dist: hit.Dist,
		}
		found = true
		return true
	})

	return best, found
}
