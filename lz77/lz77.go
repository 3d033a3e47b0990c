// Package lz77 implements the sliding-window encoding consumed by the BIOS
// LZ77UnComp routines (method tag 0x10).
//
// The payload groups tokens eight at a time behind a flag byte, most
// significant bit first, flag bit 1 marking a back-reference. A literal
// token is one raw byte. A back-reference is two bytes,
// `((length-3)<<4) | (disp>>8)` then `disp & 0xFF`, where disp is the
// zero-based displacement (distance minus one, up to 4095) and length runs
// from 3 to 18. The decompressor copies a byte at a time, so references may
// overlap the bytes they produce.
package lz77

import "github.com/RockPolish/gbapack"

// Compress encodes src as an LZ77 container using the default exhaustive
// match finder, which reproduces the stock tools' output byte for byte.
// With vramSafe set, matches at distance 1 are never used, so the stream
// stays safe for the 16-bit VRAM write path; this can only cost ratio,
// never correctness. Compress fails with ErrSizeOverflow if src does not
// fit in the header's 24-bit size field.
func Compress(src []byte, vramSafe bool) ([]byte, error) {
	return CompressWithMatchFinder(src, &gbapack.HashChain{VRAMSafe: vramSafe})
}

// CompressWithMatchFinder is like Compress but takes the MatchFinder to
// use, for callers that want a different search or parse strategy. The
// finder is responsible for honoring the VRAM constraint if the caller
// needs it.
func CompressWithMatchFinder(src []byte, f gbapack.MatchFinder) ([]byte, error) {
	dst, err := gbapack.AppendHeader(nil, gbapack.LZ77, len(src))
	if err != nil {
		return nil, err
	}
	if len(src) == 0 {
		return dst, nil
	}
	return appendTokens(dst, src, f.FindMatches(nil, src)), nil
}

// appendTokens serializes the token stream for src described by matches.
func appendTokens(dst []byte, src []byte, matches []gbapack.Match) []byte {
	flagIdx := -1
	nTok := 0

	// Each group of 8 tokens is preceded by its flag byte; the byte is
	// reserved when the group starts and bits are patched in as tokens
	// turn out to be back-references.
	nextToken := func(isMatch bool) {
		if nTok&7 == 0 {
			flagIdx = len(dst)
			dst = append(dst, 0)
		}
		if isMatch {
			dst[flagIdx] |= 0x80 >> (nTok & 7)
		}
		nTok++
	}

	pos := 0
	for _, m := range matches {
		for end := pos + m.Unmatched; pos < end; pos++ {
			nextToken(false)
			dst = append(dst, src[pos])
		}
		if m.Length > 0 {
			nextToken(true)
			disp := m.Distance - 1
			dst = append(dst, byte(m.Length-gbapack.MinMatch)<<4|byte(disp>>8), byte(disp))
			pos += m.Length
		}
	}

	return dst
}
