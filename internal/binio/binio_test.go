package binio

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.PutUint8(0xAB)
	w.PutUint16(0x1234)
	w.PutUint32(0xDEADBEEF)
	w.PutUint64(0x0102030405060708)
	w.PutInt32(-42)
	if err := w.Err(); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := NewReader(&buf)
	if got := r.Uint8(); got != 0xAB {
		t.Errorf("Uint8 = %#x", got)
	}
	if got := r.Uint16(); got != 0x1234 {
		t.Errorf("Uint16 = %#x", got)
	}
	if got := r.Uint32(); got != 0xDEADBEEF {
		t.Errorf("Uint32 = %#x", got)
	}
	if got := r.Uint64(); got != 0x0102030405060708 {
		t.Errorf("Uint64 = %#x", got)
	}
	if got := r.Int32(); got != -42 {
		t.Errorf("Int32 = %d", got)
	}
	if err := r.Err(); err != nil {
		t.Fatalf("read: %v", err)
	}
}

func TestReaderShortStream(t *testing.T) {
	// Two of four bytes present: a truncated value, not a clean end.
	r := NewReader(bytes.NewReader([]byte{1, 2}))
	r.Uint32()
	if !errors.Is(r.Err(), io.ErrUnexpectedEOF) {
		t.Errorf("Err = %v, want io.ErrUnexpectedEOF", r.Err())
	}

	// Nothing present at all: io.EOF.
	r = NewReader(bytes.NewReader(nil))
	r.Uint32()
	if !errors.Is(r.Err(), io.EOF) {
		t.Errorf("Err = %v, want io.EOF", r.Err())
	}
}

func TestReaderStopsAfterFirstError(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{1, 2}))
	r.Uint32()
	first := r.Err()
	r.Uint64()
	if r.Err() != first {
		t.Error("later reads replaced the first error")
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestWriterSticksToFirstError(t *testing.T) {
	w := NewWriter(failWriter{})
	w.PutUint32(1)
	if !errors.Is(w.Err(), io.ErrClosedPipe) {
		t.Fatalf("Err = %v, want io.ErrClosedPipe", w.Err())
	}
	w.PutUint64(2)
	if !errors.Is(w.Err(), io.ErrClosedPipe) {
		t.Error("later writes replaced the first error")
	}
}
