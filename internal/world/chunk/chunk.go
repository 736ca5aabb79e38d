// Package chunk implements the fixed-size cubic block container that the
// world generates, stores and queries. A chunk is exclusively owned by the
// world's registry; everything else holds non-owning references.
package chunk

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/crafti-go/crafti/internal/block"
	"github.com/crafti-go/crafti/internal/geom"
	"github.com/crafti-go/crafti/internal/world/gen"
)

const (
	// Size is the chunk edge length in blocks. It must stay a power of two:
	// the world's coordinate decomposition shifts and masks by it.
	Size = 8

	// Volume is the number of blocks in a chunk.
	Volume = Size * Size * Size
)

// Coord identifies a chunk in chunk space.
type Coord struct {
	X, Y, Z int
}

// Offset returns c translated by (dx, dy, dz).
func (c Coord) Offset(dx, dy, dz int) Coord {
	return Coord{c.X + dx, c.Y + dy, c.Z + dz}
}

// Chunk stores a Size^3 cube of blocks. The dirty flag is set whenever the
// chunk's visual representation may no longer match its block data.
type Chunk struct {
	Pos Coord

	blocks [Volume]block.Block
	dirty  bool
}

// New creates an empty (all-air) chunk at the given chunk coordinate.
// The new chunk starts dirty so it gets meshed on the next render pass.
func New(pos Coord) *Chunk {
	return &Chunk{Pos: pos, dirty: true}
}

func idx(x, y, z int) int {
	return x | y<<3 | z<<6
}

// Local returns the block at a local coordinate, each in [0, Size).
func (c *Chunk) Local(x, y, z int) block.Block {
	return c.blocks[idx(x, y, z)]
}

// SetLocal overwrites the block at a local coordinate without any side
// effects. Used for bulk writes (generation replay, load).
func (c *Chunk) SetLocal(x, y, z int, b block.Block) {
	c.blocks[idx(x, y, z)] = b
}

// ChangeLocal overwrites the block and marks the chunk dirty so the mesh is
// rebuilt before the next draw.
func (c *Chunk) ChangeLocal(x, y, z int, b block.Block) {
	c.blocks[idx(x, y, z)] = b
	c.dirty = true
}

// MarkDirty forces a mesh rebuild, e.g. after a neighbouring chunk changed
// a shared face.
func (c *Chunk) MarkDirty() {
	c.dirty = true
}

// Dirty reports whether the chunk needs remeshing.
func (c *Chunk) Dirty() bool {
	return c.dirty
}

// ClearDirty is called by the renderer once it has rebuilt the mesh.
func (c *Chunk) ClearDirty() {
	c.dirty = false
}

// Bounds returns the chunk's bounding box in world block units.
func (c *Chunk) Bounds() geom.AABB {
	min := mgl64.Vec3{
		float64(c.Pos.X * Size),
		float64(c.Pos.Y * Size),
		float64(c.Pos.Z * Size),
	}
	return geom.NewAABB(min, min.Add(mgl64.Vec3{Size, Size, Size}))
}

// Terrain shaping parameters, in block units.
const (
	terrainBase      = 14.0 // mean surface height
	terrainAmplitude = 9.0  // large-scale relief
	detailAmplitude  = 2.5  // small-scale relief
	soilDepth        = 3    // dirt layers under the grass
	sandLevel        = 9    // surfaces at or below this height become sand
	oreThreshold     = 0.68 // 3D noise cutoff for ore pockets
)

// Generate fills the chunk with terrain sampled from n. The result is fully
// deterministic in (seed, chunk coordinate).
func (c *Chunk) Generate(n *gen.Noise) {
	for lx := 0; lx < Size; lx++ {
		for lz := 0; lz < Size; lz++ {
			bx := c.Pos.X*Size + lx
			bz := c.Pos.Z*Size + lz

			relief := n.Octave2(float64(bx)/96.0, float64(bz)/96.0, 4, 0.5)
			detail := n.Sample2(float64(bx)/18.0, float64(bz)/18.0)
			height := int(terrainBase + relief*terrainAmplitude + detail*detailAmplitude)
			if height < 1 {
				height = 1
			}

			for ly := 0; ly < Size; ly++ {
				by := c.Pos.Y*Size + ly
				c.SetLocal(lx, ly, lz, columnBlock(n, bx, by, bz, height))
			}
		}
	}
	c.dirty = true
}

func columnBlock(n *gen.Noise, bx, by, bz, height int) block.Block {
	switch {
	case by == 0:
		return block.Bedrock
	case by < height-soilDepth:
		if n.Sample3(float64(bx)/11.0, float64(by)/11.0, float64(bz)/11.0) > oreThreshold {
			if by < height/2 {
				return block.IronOre
			}
			return block.CoalOre
		}
		return block.Stone
	case by < height:
		if height <= sandLevel {
			return block.Sand
		}
		return block.Dirt
	case by == height:
		if height <= sandLevel {
			return block.Sand
		}
		return block.Grass
	default:
		return block.Air
	}
}
