// Package bios is the front door to the encoders: it maps a method tag to
// the matching format package. Decoding is deliberately absent; the decoder
// is the console's ROM.
package bios

import (
	"fmt"

	"github.com/RockPolish/gbapack"
	"github.com/RockPolish/gbapack/huffman"
	"github.com/RockPolish/gbapack/lz77"
	"github.com/RockPolish/gbapack/rle"
)

// Compress encodes data into the container format for the given method.
// vramSafe only affects LZ77 and is ignored by the other methods. The
// output is a pure function of the arguments: the same data, method, and
// flag always produce byte-identical bytes.
func Compress(data []byte, method gbapack.Method, vramSafe bool) ([]byte, error) {
	switch method {
	case gbapack.RLE:
		return rle.Compress(data)
	case gbapack.LZ77:
		return lz77.Compress(data, vramSafe)
	case gbapack.Huffman8:
		return huffman.Compress(data)
	case gbapack.Huffman4:
		return huffman.Compress4(data)
	}
	return nil, fmt.Errorf("bios: no encoder for method %#02x", byte(method))
}
