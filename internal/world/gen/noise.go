// Package gen provides the seeded noise sampler that drives terrain
// generation. Chunks consume it through the world's NoiseGenerator accessor.
package gen

import (
	"github.com/ojrac/opensimplex-go"
)

// Noise is a deterministic, seedable noise sampler. Re-seeding replaces the
// underlying gradient tables, so two samplers with the same seed always
// produce identical values.
type Noise struct {
	seed  uint64
	inner opensimplex.Noise
}

// NewNoise creates a sampler seeded with seed.
func NewNoise(seed uint64) *Noise {
	n := &Noise{}
	n.SetSeed(seed)
	return n
}

// SetSeed re-seeds the sampler.
func (n *Noise) SetSeed(seed uint64) {
	n.seed = seed
	n.inner = opensimplex.New(int64(seed))
}

// Seed returns the seed the sampler was last seeded with.
func (n *Noise) Seed() uint64 {
	return n.seed
}

// Sample2 returns 2D noise in [-1, 1].
func (n *Noise) Sample2(x, y float64) float64 {
	return n.inner.Eval2(x, y)
}

// Sample3 returns 3D noise in [-1, 1].
func (n *Noise) Sample3(x, y, z float64) float64 {
	return n.inner.Eval3(x, y, z)
}

// Octave2 layers octaves of 2D noise for natural-looking terrain.
// Returns a value roughly in [-1, 1].
func (n *Noise) Octave2(x, y float64, octaves int, persistence float64) float64 {
	var total, maxVal float64
	amplitude := 1.0
	frequency := 1.0

	for range octaves {
		total += n.Sample2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2.0
	}
	return total / maxVal
}

// Octave3 layers octaves of 3D noise.
func (n *Noise) Octave3(x, y, z float64, octaves int, persistence float64) float64 {
	var total, maxVal float64
	amplitude := 1.0
	frequency := 1.0

	for range octaves {
		total += n.Sample3(x*frequency, y*frequency, z*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2.0
	}
	return total / maxVal
}
