package geom

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func unitBoxAt(x, y, z float64) AABB {
	min := mgl64.Vec3{x, y, z}
	return NewAABB(min, min.Add(mgl64.Vec3{1, 1, 1}))
}

func TestAABBIntersects(t *testing.T) {
	a := unitBoxAt(0, 0, 0)

	cases := []struct {
		name string
		b    AABB
		want bool
	}{
		{"overlapping", unitBoxAt(0.5, 0.5, 0.5), true},
		{"contained", NewAABB(mgl64.Vec3{0.2, 0.2, 0.2}, mgl64.Vec3{0.8, 0.8, 0.8}), true},
		{"separate", unitBoxAt(3, 0, 0), false},
		{"face touching", unitBoxAt(1, 0, 0), false},
		{"diagonal corner", unitBoxAt(1, 1, 1), false},
	}
	for _, tc := range cases {
		if got := a.Intersects(tc.b); got != tc.want {
			t.Errorf("%s: Intersects = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIntersectRayEntryFaces(t *testing.T) {
	box := unitBoxAt(2, 2, 2)

	cases := []struct {
		name     string
		origin   mgl64.Vec3
		dir      mgl64.Vec3
		wantDist float64
		wantSide Side
	}{
		{"+x travel hits -x face", mgl64.Vec3{0, 2.5, 2.5}, mgl64.Vec3{1, 0, 0}, 2, SideNegX},
		{"-x travel hits +x face", mgl64.Vec3{5, 2.5, 2.5}, mgl64.Vec3{-1, 0, 0}, 2, SidePosX},
		{"+y travel hits -y face", mgl64.Vec3{2.5, 0, 2.5}, mgl64.Vec3{0, 1, 0}, 2, SideNegY},
		{"-z travel hits +z face", mgl64.Vec3{2.5, 2.5, 5}, mgl64.Vec3{0, 0, -1}, 2, SidePosZ},
	}
	for _, tc := range cases {
		dist, side, ok := box.IntersectRay(tc.origin, tc.dir)
		if !ok {
			t.Errorf("%s: missed", tc.name)
			continue
		}
		if dist != tc.wantDist || side != tc.wantSide {
			t.Errorf("%s: dist=%v side=%v, want dist=%v side=%v", tc.name, dist, side, tc.wantDist, tc.wantSide)
		}
	}
}

func TestIntersectRayMisses(t *testing.T) {
	box := unitBoxAt(2, 2, 2)

	if _, _, ok := box.IntersectRay(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{-1, 0, 0}); ok {
		t.Error("hit reported for a box behind the ray origin")
	}
	if _, _, ok := box.IntersectRay(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0}); ok {
		t.Error("hit reported for a parallel ray outside the slab")
	}
}

func TestIntersectRayFromInside(t *testing.T) {
	box := unitBoxAt(0, 0, 0)

	dist, _, ok := box.IntersectRay(mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{1, 0, 0})
	if !ok {
		t.Fatal("ray from inside the box should hit")
	}
	if dist != 0 {
		t.Errorf("dist from inside = %v, want 0", dist)
	}
}
