package chunk

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/crafti-go/crafti/internal/geom"
)

// RayHit describes a ray/block intersection within a chunk.
type RayHit struct {
	// Dist is the distance along the ray direction to the entry point.
	Dist float64
	// Local is the struck block's local coordinate.
	Local [3]int
	// Side is the block face the ray entered through.
	Side geom.Side
}

// Intersects reports whether the chunk's bounding box overlaps other.
func (c *Chunk) Intersects(other geom.AABB) bool {
	return c.Bounds().Intersects(other)
}

// IntersectRay casts a world-space ray against the chunk's solid blocks and
// returns the nearest hit. The chunk's own bounding box is tested first so
// most chunks are rejected without touching block data.
func (c *Chunk) IntersectRay(origin, dir mgl64.Vec3) (RayHit, bool) {
	if _, _, ok := c.Bounds().IntersectRay(origin, dir); !ok {
		return RayHit{}, false
	}

	base := mgl64.Vec3{
		float64(c.Pos.X * Size),
		float64(c.Pos.Y * Size),
		float64(c.Pos.Z * Size),
	}

	best := RayHit{}
	found := false
	for lx := 0; lx < Size; lx++ {
		for ly := 0; ly < Size; ly++ {
			for lz := 0; lz < Size; lz++ {
				if !c.Local(lx, ly, lz).Solid() {
					continue
				}
				min := base.Add(mgl64.Vec3{float64(lx), float64(ly), float64(lz)})
				box := geom.NewAABB(min, min.Add(mgl64.Vec3{1, 1, 1}))
				dist, side, ok := box.IntersectRay(origin, dir)
				if !ok {
					continue
				}
				if !found || dist < best.Dist {
					best = RayHit{Dist: dist, Local: [3]int{lx, ly, lz}, Side: side}
					found = true
				}
			}
		}
	}
	return best, found
}
