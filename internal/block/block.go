// Package block defines the block value type stored in chunks and the
// context-sensitive actions that can be performed on placed blocks.
package block

// Block packs a block ID in the low byte and per-block auxiliary data in
// the high byte. The zero value is air.
type Block uint16

// Block IDs.
const (
	Air Block = iota
	Stone
	Dirt
	Grass
	Bedrock
	Sand
	Wood
	Leaves
	Planks
	Glass
	Door
	Torch
	CoalOre
	IronOre
)

// Data bits for interactive blocks.
const (
	// DoorOpen is set on a Door block while it stands open.
	DoorOpen uint8 = 1 << 0
)

// New packs an ID and data byte into a Block.
func New(id Block, data uint8) Block {
	return (id & 0xFF) | Block(data)<<8
}

// ID returns the block ID with the data byte stripped.
func (b Block) ID() Block {
	return b & 0xFF
}

// Data returns the auxiliary data byte.
func (b Block) Data() uint8 {
	return uint8(b >> 8)
}

// WithData returns b with its data byte replaced.
func (b Block) WithData(data uint8) Block {
	return b.ID() | Block(data)<<8
}

// Solid reports whether the block occupies its cell for collision and
// ray-intersection purposes.
func (b Block) Solid() bool {
	switch b.ID() {
	case Air, Torch:
		return false
	case Door:
		return b.Data()&DoorOpen == 0
	default:
		return true
	}
}

// Opaque reports whether the block fully hides the faces behind it.
func (b Block) Opaque() bool {
	switch b.ID() {
	case Air, Glass, Torch, Leaves, Door:
		return false
	default:
		return true
	}
}

// Action applies the block's interaction (e.g. toggling a door) and returns
// the resulting block. ok is false when the block has no interaction.
func Action(b Block) (result Block, ok bool) {
	switch b.ID() {
	case Door:
		return b.WithData(b.Data() ^ DoorOpen), true
	default:
		return b, false
	}
}
