// Package binio provides little-endian binary readers and writers for the
// world save format. All methods accumulate errors internally; check Err()
// once after a batch of operations.
package binio

import (
	"encoding/binary"
	"io"
)

// Writer writes fixed-width little-endian values to an io.Writer.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter creates a new Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Err returns the first error encountered during writing.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) write(buf []byte) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.Write(buf)
}

// PutUint8 writes a single byte.
func (w *Writer) PutUint8(v uint8) {
	w.write([]byte{v})
}

// PutUint16 writes a little-endian uint16.
func (w *Writer) PutUint16(v uint16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	w.write(buf[:])
}

// PutUint32 writes a little-endian uint32.
func (w *Writer) PutUint32(v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	w.write(buf[:])
}

// PutUint64 writes a little-endian uint64.
func (w *Writer) PutUint64(v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	w.write(buf[:])
}

// PutInt32 writes a little-endian int32.
func (w *Writer) PutInt32(v int32) {
	w.PutUint32(uint32(v))
}

// Reader reads fixed-width little-endian values from an io.Reader.
// A short read surfaces as io.EOF (nothing read) or io.ErrUnexpectedEOF
// (truncated value) via Err().
type Reader struct {
	r   io.Reader
	err error
}

// NewReader creates a new Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Err returns the first error encountered during reading.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) read(buf []byte) bool {
	if r.err != nil {
		return false
	}
	_, r.err = io.ReadFull(r.r, buf)
	return r.err == nil
}

// Uint8 reads a single byte.
func (r *Reader) Uint8() uint8 {
	var buf [1]byte
	if !r.read(buf[:]) {
		return 0
	}
	return buf[0]
}

// Uint16 reads a little-endian uint16.
func (r *Reader) Uint16() uint16 {
	var buf [2]byte
	if !r.read(buf[:]) {
		return 0
	}
	return binary.LittleEndian.Uint16(buf[:])
}

// Uint32 reads a little-endian uint32.
func (r *Reader) Uint32() uint32 {
	var buf [4]byte
	if !r.read(buf[:]) {
		return 0
	}
	return binary.LittleEndian.Uint32(buf[:])
}

// Uint64 reads a little-endian uint64.
func (r *Reader) Uint64() uint64 {
	var buf [8]byte
	if !r.read(buf[:]) {
		return 0
	}
	return binary.LittleEndian.Uint64(buf[:])
}

// Int32 reads a little-endian int32.
func (r *Reader) Int32() int32 {
	return int32(r.Uint32())
}
