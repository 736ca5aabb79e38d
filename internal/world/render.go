package world

import (
	"github.com/crafti-go/crafti/internal/world/chunk"
)

// Renderer turns chunks into something on screen. The engine ships no GPU
// code; hosts plug in their own mesh builder and draw calls.
type Renderer interface {
	// Rebuild is called for a dirty chunk before it is drawn.
	Rebuild(*chunk.Chunk)
	// Draw is called for every visible chunk, every tick.
	Draw(*chunk.Chunk)
}

// NopRenderer satisfies Renderer without doing any work. Useful for headless
// hosts and tests.
type NopRenderer struct{}

func (NopRenderer) Rebuild(*chunk.Chunk) {}
func (NopRenderer) Draw(*chunk.Chunk)    {}

// Render updates and draws the visible set: a first pass rebuilds dirty
// chunks, a second pass draws them. The host sequences SetPosition before
// Render, so the visible set is current for the tick.
func (w *World) Render(r Renderer) {
	w.visibleChunks(func(c *chunk.Chunk) bool {
		if c.Dirty() {
			r.Rebuild(c)
			c.ClearDirty()
		}
		return true
	})
	w.visibleChunks(func(c *chunk.Chunk) bool {
		r.Draw(c)
		return true
	})
}

// Stage identifies what long-running work a progress notification is about.
type Stage int

const (
	// StageIO covers save and load.
	StageIO Stage = 1
	// StageGenerate covers chunk generation.
	StageGenerate Stage = 2
)

// ProgressFunc receives fire-and-forget progress notifications, e.g. to
// draw a loading indicator. It must not call back into the world.
type ProgressFunc func(Stage)

// SetProgress replaces the progress sink. A nil fn restores the default,
// which logs at debug level.
func (w *World) SetProgress(fn ProgressFunc) {
	if fn == nil {
		fn = w.logProgress
	}
	w.progress = fn
}

func (w *World) logProgress(s Stage) {
	w.log.Debug("working", "stage", int(s))
}
