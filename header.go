package gbapack

import "errors"

// Sentinel errors shared by the encoders.
var (
	// ErrSizeOverflow is returned when the input does not fit in the
	// container header's 24-bit size field.
	ErrSizeOverflow = errors.New("gbapack: input larger than 24-bit size field")

	// ErrEmptyInput is returned by the Huffman encoders, which cannot build
	// a code tree over zero symbols.
	ErrEmptyInput = errors.New("gbapack: empty input")
)

// A Method identifies one of the BIOS decompression formats. Its value is
// the tag byte the decompressor expects in the low byte of the container
// header: the high nibble selects the SWI routine, and for Huffman the low
// nibble carries the symbol size in bits.
type Method byte

const (
	LZ77     Method = 0x10
	Huffman4 Method = 0x24
	Huffman8 Method = 0x28
	RLE      Method = 0x30
)

func (m Method) String() string {
	switch m {
	case LZ77:
		return "lz77"
	case Huffman4:
		return "huffman4"
	case Huffman8:
		return "huffman8"
	case RLE:
		return "rle"
	}
	return "unknown"
}

// AppendHeader appends the 4-byte container header for the given method and
// uncompressed size: the tag byte followed by the size as a 24-bit
// little-endian integer. It fails with ErrSizeOverflow if the size does not
// fit in the size field.
func AppendHeader(dst []byte, m Method, size int) ([]byte, error) {
	if size < 0 || size > MaxInputSize {
		return dst, ErrSizeOverflow
	}
	return append(dst, byte(m), byte(size), byte(size>>8), byte(size>>16)), nil
}
