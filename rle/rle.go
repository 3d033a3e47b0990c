// Package rle implements the run-length encoding consumed by the BIOS
// RLUnComp routines (method tag 0x30).
//
// The payload is a stream of flagged tokens: a flag byte with bit 7 set
// introduces a run (`0x80 | count-3`, then the repeated value), and a flag
// byte with bit 7 clear introduces a block of raw bytes (`count-1`, then
// the bytes). There is no end marker; the decompressor stops once it has
// produced the number of bytes named in the container header.
package rle

import "github.com/RockPolish/gbapack"

const (
	minRun     = 3   // shorter runs are never smaller than raw bytes
	maxRun     = 130 // count-3 must fit in 7 bits
	maxLiteral = 128 // count-1 must fit in 7 bits
)

// Compress encodes src as an RLE container. It fails with ErrSizeOverflow
// if src does not fit in the header's 24-bit size field.
func Compress(src []byte) ([]byte, error) {
	dst, err := gbapack.AppendHeader(nil, gbapack.RLE, len(src))
	if err != nil {
		return nil, err
	}

	lit := 0 // start of the pending literal block

	flushLiterals := func(end int) {
		for lit < end {
			n := end - lit
			if n > maxLiteral {
				n = maxLiteral
			}
			dst = append(dst, byte(n-1))
			dst = append(dst, src[lit:lit+n]...)
			lit += n
		}
	}

	for i := 0; i < len(src); {
		run := 1
		for run < maxRun && i+run < len(src) && src[i+run] == src[i] {
			run++
		}
		if run < minRun {
			// Too short to pay for a run token; leave the bytes in the
			// pending literal block.
			i += run
			continue
		}
		flushLiterals(i)
		dst = append(dst, 0x80|byte(run-minRun), src[i])
		i += run
		lit = i
	}
	flushLiterals(len(src))

	return dst, nil
}
