// Package geom provides the axis-aligned bounding box and ray intersection
// math shared by chunks and the world's spatial queries.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Side identifies which face of a box a ray entered through.
type Side int

const (
	SideNone Side = iota
	SideNegX
	SidePosX
	SideNegY
	SidePosY
	SideNegZ
	SidePosZ
)

func (s Side) String() string {
	switch s {
	case SideNegX:
		return "-x"
	case SidePosX:
		return "+x"
	case SideNegY:
		return "-y"
	case SidePosY:
		return "+y"
	case SideNegZ:
		return "-z"
	case SidePosZ:
		return "+z"
	default:
		return "none"
	}
}

// AABB is an axis-aligned bounding box with inclusive min and exclusive max
// corners, in block units.
type AABB struct {
	Min, Max mgl64.Vec3
}

// NewAABB builds a box from two opposite corners.
func NewAABB(min, max mgl64.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// Intersects reports whether the two boxes overlap.
func (a AABB) Intersects(b AABB) bool {
	return a.Min.X() < b.Max.X() && a.Max.X() > b.Min.X() &&
		a.Min.Y() < b.Max.Y() && a.Max.Y() > b.Min.Y() &&
		a.Min.Z() < b.Max.Z() && a.Max.Z() > b.Min.Z()
}

// IntersectRay performs a slab test of the ray against the box. It returns
// the entry distance along dir and the face the ray entered through.
// ok is false when the ray misses or the box lies behind the origin.
func (a AABB) IntersectRay(origin, dir mgl64.Vec3) (dist float64, side Side, ok bool) {
	tmin := math.Inf(-1)
	tmax := math.Inf(1)
	side = SideNone

	for axis := 0; axis < 3; axis++ {
		o, d := origin[axis], dir[axis]
		lo, hi := a.Min[axis], a.Max[axis]

		if d == 0 {
			if o < lo || o > hi {
				return 0, SideNone, false
			}
			continue
		}

		t1 := (lo - o) / d
		t2 := (hi - o) / d
		entry := negSide(axis)
		if t1 > t2 {
			t1, t2 = t2, t1
			entry = posSide(axis)
		}
		if t1 > tmin {
			tmin = t1
			side = entry
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, SideNone, false
		}
	}

	if tmax < 0 {
		return 0, SideNone, false
	}
	if tmin < 0 {
		// Origin inside the box.
		return 0, SideNone, true
	}
	return tmin, side, true
}

func negSide(axis int) Side {
	switch axis {
	case 0:
		return SideNegX
	case 1:
		return SideNegY
	default:
		return SideNegZ
	}
}

func posSide(axis int) Side {
	switch axis {
	case 0:
		return SidePosX
	case 1:
		return SidePosY
	default:
		return SidePosZ
	}
}
