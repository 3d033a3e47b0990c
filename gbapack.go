// Package gbapack compresses data into the formats understood by the
// decompression routines in the Game Boy Advance BIOS.
//
// The BIOS routines are fixed in ROM, so the encoders here have no freedom
// in the container layout: a 4-byte header (method tag plus 24-bit
// uncompressed size) followed by a method-specific token stream that must
// match the hardware's expectations byte for byte. What an encoder may
// choose is *which* tokens to emit, and that is where compression ratio is
// won or lost. This package therefore splits the LZ77 stage into two parts:
// a MatchFinder that looks for repeated sequences, and a format encoder
// (in the lz77 subpackage) that serializes whatever matches it is given.
// Match finders and parse strategies can be swapped without touching the
// bitstream layout.
//
// The rle, lz77, and huffman subpackages implement the individual formats;
// the bios subpackage dispatches between them.
package gbapack

// Limits imposed by the wire formats. The LZ77 values come from the 12-bit
// displacement / 4-bit length split of a match token; the input limit comes
// from the 24-bit size field in the container header.
const (
	// MinMatch is the shortest back-reference the LZ77 format can encode.
	MinMatch = 3

	// MaxMatch is the longest back-reference the LZ77 format can encode.
	MaxMatch = 18

	// MaxDistance is how far back an LZ77 match may reach.
	MaxDistance = 4096

	// MaxInputSize is the largest input the container header can describe.
	MaxInputSize = 0xFFFFFF
)

// A Match is the basic unit of LZ77 compression.
type Match struct {
	Unmatched int // the number of unmatched bytes since the previous match
	Length    int // the number of bytes in the matched string; it may be 0 at the end of the input
	Distance  int // how far back in the stream to copy from
}

// A MatchFinder performs the LZ77 stage of compression, looking for matches.
type MatchFinder interface {
	// FindMatches looks for matches in src, appends them to dst, and returns dst.
	// Every match appended must satisfy MinMatch <= Length <= MaxMatch and
	// 1 <= Distance <= MaxDistance, with Distance never reaching back before
	// the start of src.
	FindMatches(dst []Match, src []byte) []Match

	// Reset clears any internal state, preparing the MatchFinder to be used
	// with new input.
	Reset()
}

// An AbsoluteMatch is like a Match, but it stores indexes into the byte
// stream instead of lengths.
type AbsoluteMatch struct {
	// Start is the index of the first byte.
	Start int

	// End is the index of the byte after the last byte
	// (so that End - Start = Length).
	End int

	// Match is the index of the previous data that matches
	// (Start - Match = Distance).
	Match int
}

// A Searcher is the source of matches for a Parser. It is a lower-level
// interface than MatchFinder, only looking for matches at one position at a
// time. A type that uses a Parser to implement MatchFinder can implement
// Searcher as well, and pass itself to the Parser.
type Searcher interface {
	// Search looks for matches starting at pos and appends them to dst.
	// In each match, Start and End must fall within the interval [min,max),
	// and Match < Start < End.
	Search(dst []AbsoluteMatch, pos, min, max int) []AbsoluteMatch
}

// A Parser chooses which matches to use to compress the data.
type Parser interface {
	// Parse gets matches from src, chooses which ones to use, and appends
	// them to dst. The matches cover the range of bytes from start to end.
	Parse(dst []Match, src Searcher, start, end int) []Match
}
