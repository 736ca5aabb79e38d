package world

import (
	"github.com/crafti-go/crafti/internal/binio"
	"github.com/crafti-go/crafti/internal/block"
	"github.com/crafti-go/crafti/internal/world/chunk"
)

// BlockChange is a deferred edit against a chunk that does not exist yet.
// It is removed from the queue exactly once, when the targeted chunk is
// generated and the edit applied to it.
type BlockChange struct {
	Chunk chunk.Coord
	Local [3]uint8
	Block block.Block
}

// pendingQueue is the ordered write-behind log of deferred edits. Every
// entry refers to a currently non-existent chunk; generating a chunk drains
// all entries matching it in the same operation.
type pendingQueue []BlockChange

func (q pendingQueue) append(ch BlockChange) pendingQueue {
	return append(q, ch)
}

// drainFor applies every entry targeting pos via apply and removes it.
// Non-matching entries keep their relative order.
func (q pendingQueue) drainFor(pos chunk.Coord, apply func(BlockChange)) pendingQueue {
	kept := q[:0]
	for _, ch := range q {
		if ch.Chunk == pos {
			apply(ch)
			continue
		}
		kept = append(kept, ch)
	}
	return kept
}

func (ch BlockChange) write(w *binio.Writer) {
	w.PutInt32(int32(ch.Chunk.X))
	w.PutInt32(int32(ch.Chunk.Y))
	w.PutInt32(int32(ch.Chunk.Z))
	w.PutUint8(ch.Local[0])
	w.PutUint8(ch.Local[1])
	w.PutUint8(ch.Local[2])
	w.PutUint16(uint16(ch.Block))
}

func readBlockChange(r *binio.Reader) BlockChange {
	var ch BlockChange
	ch.Chunk.X = int(r.Int32())
	ch.Chunk.Y = int(r.Int32())
	ch.Chunk.Z = int(r.Int32())
	ch.Local[0] = r.Uint8()
	ch.Local[1] = r.Uint8()
	ch.Local[2] = r.Uint8()
	ch.Block = block.Block(r.Uint16())
	return ch
}
