package bitstream

import (
	"bytes"
	"io"
)

// Writer accumulates single bits into bytes, msb-first within each byte.
type Writer struct {
	buf bytes.Buffer
	cur byte
	n   uint8 // bits pending in cur (0..8)
}

// NewWriter returns an empty bit writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteBit appends a single bit.
func (w *Writer) WriteBit(bit bool) {
	w.cur <<= 1
	if bit {
		w.cur |= 1
	}
	w.n++
	if w.n == 8 {
		_ = w.buf.WriteByte(w.cur)
		w.cur = 0
		w.n = 0
	}
}

// Len returns the number of bits written so far.
func (w *Writer) Len() int {
	return w.buf.Len()*8 + int(w.n)
}

// Bytes flushes any partial byte (zero-padded on the right) and returns
// the accumulated bytes.
func (w *Writer) Bytes() []byte {
	if w.n > 0 {
		w.cur <<= 8 - w.n
		_ = w.buf.WriteByte(w.cur)
		w.cur = 0
		w.n = 0
	}
	return w.buf.Bytes()
}

// Reader yields the bits of a byte slice, msb-first within each byte.
type Reader struct {
	data []byte
	idx  int
	bit  uint8 // bit position in current byte (0..7), msb-first
}

// NewReader returns a reader positioned at the first bit of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// ReadBit returns the next bit, or io.EOF when the data is exhausted.
func (r *Reader) ReadBit() (bool, error) {
	if r.idx >= len(r.data) {
		return false, io.EOF
	}
	b := r.data[r.idx]
	isSet := (b & (1 << (7 - r.bit))) != 0
	r.bit++
	if r.bit == 8 {
		r.bit = 0
		r.idx++
	}
	return isSet, nil
}

// Remaining returns how many bits are left to read.
func (r *Reader) Remaining() int {
	return (len(r.data)-r.idx)*8 - int(r.bit)
}
