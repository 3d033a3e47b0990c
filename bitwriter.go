package gbapack

import "encoding/binary"

// A BitWriter accumulates bits, nibbles, and bytes into a growing buffer,
// most significant bit first within each output unit, matching the order the
// BIOS shifts bits in. The zero value writes byte-sized units; the Huffman
// bitstream, which the hardware reads as 32-bit little-endian words, uses
// word-sized units instead.
//
// A BitWriter is single-use: write symbols, then call Flush once to pad the
// final partial unit with zero bits and take the buffer.
type BitWriter struct {
	// UnitBits is the size of an output unit in bits: 8 (the default) or 32.
	// Units are appended to the buffer little-endian.
	UnitBits int

	buf []byte
	cur uint64
	n   int
}

// WriteBits appends the low n bits of v, most significant first.
func (w *BitWriter) WriteBits(v uint64, n int) {
	for n > 0 {
		n--
		w.WriteBit(int(v>>n) & 1)
	}
}

// WriteBit appends a single bit (0 or 1).
func (w *BitWriter) WriteBit(bit int) {
	w.cur = w.cur<<1 | uint64(bit&1)
	w.n++
	if w.n == w.unitBits() {
		w.emit(w.cur)
		w.cur = 0
		w.n = 0
	}
}

// WriteNibble appends the low 4 bits of v.
func (w *BitWriter) WriteNibble(v byte) {
	w.WriteBits(uint64(v&0xF), 4)
}

// WriteByte appends all 8 bits of c. The error is always nil; the signature
// matches io.ByteWriter.
func (w *BitWriter) WriteByte(c byte) error {
	w.WriteBits(uint64(c), 8)
	return nil
}

// Flush pads the final partial unit with zero bits and returns the buffer.
func (w *BitWriter) Flush() []byte {
	if w.n > 0 {
		w.emit(w.cur << (w.unitBits() - w.n))
		w.cur = 0
		w.n = 0
	}
	return w.buf
}

func (w *BitWriter) unitBits() int {
	if w.UnitBits == 0 {
		return 8
	}
	return w.UnitBits
}

func (w *BitWriter) emit(unit uint64) {
	switch w.unitBits() {
	case 32:
		w.buf = binary.LittleEndian.AppendUint32(w.buf, uint32(unit))
	default:
		w.buf = append(w.buf, byte(unit))
	}
}
