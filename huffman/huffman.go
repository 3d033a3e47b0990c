// Package huffman implements the prefix-code encoding consumed by the BIOS
// HuffUnComp routine (method tags 0x28 for 8-bit symbols and 0x24 for
// 4-bit symbols).
//
// The payload starts with a tree-size byte, followed by the code tree as a
// table of single-byte nodes in breadth-first order, root first. An
// internal node stores a 6-bit offset to its children, which are always
// adjacent: child0 lives at (nodeAddr &^ 1) + offset*2 + 2 relative to the
// tree-size byte, with bit 7 and bit 6 flagging child0 and child1 as
// leaves. A leaf node stores its symbol. The code bitstream follows,
// packed into 32-bit little-endian words with bit 31 consumed first.
package huffman

import (
	"errors"

	"github.com/RockPolish/gbapack"
)

// ErrTreeTooWide is returned when a sibling pair lands more than 63 node
// pairs away from its parent in breadth-first order, which the 6-bit child
// offset cannot express. Large, well-balanced trees over the byte alphabet
// can trigger this; the 4-bit variant never does.
var ErrTreeTooWide = errors.New("huffman: tree too wide for 6-bit node offsets")

// Compress encodes src as a Huffman container over 8-bit symbols. It fails
// with ErrEmptyInput if src is empty and with ErrSizeOverflow if src does
// not fit in the header's 24-bit size field.
func Compress(src []byte) ([]byte, error) {
	return compress(src, 8)
}

// Compress4 is like Compress but treats every nibble as a symbol, halving
// the alphabet. The low nibble of each byte is encoded first.
func Compress4(src []byte) ([]byte, error) {
	return compress(src, 4)
}

func compress(src []byte, symbolBits int) ([]byte, error) {
	if len(src) == 0 {
		return nil, gbapack.ErrEmptyInput
	}
	method := gbapack.Huffman8
	if symbolBits == 4 {
		method = gbapack.Huffman4
	}
	dst, err := gbapack.AppendHeader(nil, method, len(src))
	if err != nil {
		return nil, err
	}

	leaves := countSymbols(src, symbolBits)
	var root *node
	if len(leaves) == 1 {
		// A single distinct symbol would get an empty code. Give the tree
		// a second leaf carrying the same symbol, so the symbol encodes as
		// the single bit 0 and the node table stays well formed.
		dup := &node{weight: leaves[0].weight, order: 1, symbol: leaves[0].symbol}
		root = &node{weight: leaves[0].weight * 2, order: 2, child0: leaves[0], child1: dup}
		leaves = append(leaves, dup)
	} else {
		root = buildTree(leaves)
	}

	dst, err = appendTree(dst, root, len(leaves))
	if err != nil {
		return nil, err
	}

	codes := assignCodes(root)
	w := gbapack.BitWriter{UnitBits: 32}
	emit := func(s byte) {
		c := codes[s]
		w.WriteBits(c.bits, c.length)
	}
	for _, b := range src {
		if symbolBits == 4 {
			emit(b & 0xF)
			emit(b >> 4)
		} else {
			emit(b)
		}
	}
	return append(dst, w.Flush()...), nil
}

// appendTree appends the tree-size byte and the node table, padded so the
// bitstream that follows starts on a 32-bit boundary.
func appendTree(dst []byte, root *node, leafCount int) ([]byte, error) {
	// Breadth-first order with sibling pairs kept adjacent, as the walker
	// requires.
	nodes := []*node{root}
	pos := map[*node]int{root: 0}
	for i := 0; i < len(nodes); i++ {
		n := nodes[i]
		if n.leaf() {
			continue
		}
		pos[n.child0] = len(nodes)
		nodes = append(nodes, n.child0)
		pos[n.child1] = len(nodes)
		nodes = append(nodes, n.child1)
	}

	// With L leaves the table holds 2L-1 nodes plus this size byte; two
	// padding bytes follow when L is odd, and the size byte covers them so
	// that (size+1)*2 is always the offset to the bitstream.
	dst = append(dst, byte(leafCount-1+leafCount%2))

	for i, n := range nodes {
		if n.leaf() {
			dst = append(dst, n.symbol)
			continue
		}
		// Node i sits at address i+1 relative to the tree-size byte; the
		// walker clears the low address bit before applying the offset.
		offs := (pos[n.child0] + 1 - ((i + 1) &^ 1) - 2) / 2
		if offs < 0 || offs > 0x3F {
			return nil, ErrTreeTooWide
		}
		b := byte(offs)
		if n.child0.leaf() {
			b |= 0x80
		}
		if n.child1.leaf() {
			b |= 0x40
		}
		dst = append(dst, b)
	}

	if leafCount%2 == 1 {
		dst = append(dst, 0, 0)
	}
	return dst, nil
}
