package chunk

import (
	"fmt"
	"io"

	"github.com/crafti-go/crafti/internal/binio"
	"github.com/crafti-go/crafti/internal/block"
)

// WriteBody serializes the chunk's block array to w. The chunk coordinate is
// not part of the body; the world writes it as the record header.
func (c *Chunk) WriteBody(w io.Writer) error {
	bw := binio.NewWriter(w)
	for _, b := range c.blocks {
		bw.PutUint16(uint16(b))
	}
	if err := bw.Err(); err != nil {
		return fmt.Errorf("write chunk %v body: %w", c.Pos, err)
	}
	return nil
}

// ReadBody replaces the chunk's block array with data read from r. A short
// read is fatal and leaves the chunk partially populated.
func (c *Chunk) ReadBody(r io.Reader) error {
	br := binio.NewReader(r)
	for i := range c.blocks {
		c.blocks[i] = block.Block(br.Uint16())
	}
	if err := br.Err(); err != nil {
		return fmt.Errorf("read chunk %v body: %w", c.Pos, err)
	}
	c.dirty = true
	return nil
}
