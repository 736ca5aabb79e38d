package world

import (
	"math"
	"testing"

	"github.com/crafti-go/crafti/internal/world/chunk"
)

// expectedVisible derives the shell set independently: every offset whose
// rounded Euclidean distance is at most the radius, clipped vertically.
func expectedVisible(center chunk.Coord, radius int) map[chunk.Coord]bool {
	set := map[chunk.Coord]bool{}
	for dx := -radius; dx <= radius; dx++ {
		for dy := -radius; dy <= radius; dy++ {
			for dz := -radius; dz <= radius; dz++ {
				if center.Y+dy < 0 || center.Y+dy >= Height {
					continue
				}
				if int(math.Round(math.Sqrt(float64(dx*dx+dy*dy+dz*dz)))) > radius {
					continue
				}
				set[center.Offset(dx, dy, dz)] = true
			}
		}
	}
	return set
}

func TestVisibilityShellProperty(t *testing.T) {
	w := newTestWorld(t, 10)
	w.SetViewRadius(3)

	w.SetPosition(12, 12, 12) // center chunk (1, 1, 1)

	center := chunk.Coord{X: 1, Y: 1, Z: 1}
	want := expectedVisible(center, 3)

	got := w.VisibleCoords()
	seen := map[chunk.Coord]bool{}
	for _, pos := range got {
		if seen[pos] {
			t.Errorf("chunk %v appears twice in the visible set", pos)
		}
		seen[pos] = true
		if !want[pos] {
			t.Errorf("chunk %v visible but outside the shell volume", pos)
		}
	}
	for pos := range want {
		if !seen[pos] {
			t.Errorf("chunk %v inside the shell volume but not visible", pos)
		}
	}

	// The first entry is always the center chunk.
	if len(got) == 0 || got[0] != center {
		t.Errorf("visible set does not start with the center chunk: %v", got[:min(len(got), 3)])
	}
}

func TestVisibilityVerticalClamp(t *testing.T) {
	w := newTestWorld(t, 11)
	w.SetViewRadius(2)

	// Viewer far below the world: center Y clamps to 0, no chunk below it.
	w.SetPosition(0, -500, 0)
	for _, pos := range w.VisibleCoords() {
		if pos.Y < 0 || pos.Y >= Height {
			t.Errorf("visible chunk %v outside the vertical range", pos)
		}
	}

	// Far above: clamps to Height-1.
	w.SetPosition(0, 500, 0)
	for _, pos := range w.VisibleCoords() {
		if pos.Y < 0 || pos.Y >= Height {
			t.Errorf("visible chunk %v outside the vertical range", pos)
		}
	}
}

func TestVisibilityStableWithinChunk(t *testing.T) {
	w := newTestWorld(t, 12)
	w.SetViewRadius(2)

	w.SetPosition(4, 12, 4)
	generated := w.GeneratedCount()
	visible := w.VisibleCoords()

	// Moving within the same chunk must not recompute anything.
	w.SetPosition(7.9, 12.5, 0.1)

	if w.GeneratedCount() != generated {
		t.Error("SetPosition within the same chunk generated chunks")
	}
	after := w.VisibleCoords()
	if len(after) != len(visible) {
		t.Fatalf("visible set size changed: %d -> %d", len(visible), len(after))
	}
	for i := range visible {
		if after[i] != visible[i] {
			t.Fatalf("visible set changed at %d: %v -> %v", i, visible[i], after[i])
		}
	}
}

func TestVisibilityRecomputesOnBoundaryCross(t *testing.T) {
	w := newTestWorld(t, 13)
	w.SetViewRadius(1)

	w.SetPosition(4, 12, 4)
	if w.center != (chunk.Coord{X: 0, Y: 1, Z: 0}) {
		t.Fatalf("center = %v, want (0,1,0)", w.center)
	}

	w.SetPosition(8.2, 12, 4)
	if w.center != (chunk.Coord{X: 1, Y: 1, Z: 0}) {
		t.Fatalf("center after crossing = %v, want (1,1,0)", w.center)
	}
}

func TestSetPositionFloorsNegativeCoordinates(t *testing.T) {
	w := newTestWorld(t, 14)
	w.SetViewRadius(1)

	// -0.5 floors to block -1, which is chunk -1 — not chunk 0.
	w.SetPosition(-0.5, 12, -0.5)
	if w.center.X != -1 || w.center.Z != -1 {
		t.Errorf("center = %v, want X=-1 Z=-1", w.center)
	}
}
