package gbapack

const (
	chainTableBits = 14
	chainTableSize = 1 << chainTableBits
	chainShift     = 32 - chainTableBits
)

const hashMul32 = 0x1e35a7bd

func hash3(src []byte, i int) uint32 {
	u := uint32(src[i]) | uint32(src[i+1])<<8 | uint32(src[i+2])<<16
	return (u * hashMul32) >> chainShift
}

// HashChain is an implementation of the MatchFinder interface that uses
// hash chaining to find matches. It hashes MinMatch bytes and walks each
// chain from the nearest candidate outward until the candidates leave the
// window, so it considers every position BruteForce does and produces
// byte-identical output, just much faster on repetitive data.
type HashChain struct {
	// VRAMSafe excludes matches at distance 1; see BruteForce.
	VRAMSafe bool

	// Parser selects the parse strategy. The default is a GreedyParser.
	Parser Parser

	head [chainTableSize]int32
	next []int32
	src  []byte
}

func (q *HashChain) Reset() {
	q.src = nil
	q.next = q.next[:0]
}

// FindMatches looks for matches in src, appends them to dst, and returns dst.
func (q *HashChain) FindMatches(dst []Match, src []byte) []Match {
	if q.Parser == nil {
		q.Parser = &GreedyParser{}
	}
	q.src = src

	for i := range q.head {
		q.head[i] = -1
	}
	if cap(q.next) < len(src) {
		q.next = make([]int32, len(src))
	} else {
		q.next = q.next[:len(src)]
	}

	// next[i] points at the closest earlier position with the same hash,
	// so a chain walk from any position only visits candidates before it.
	for i := 0; i < len(src); i++ {
		if i+MinMatch > len(src) {
			q.next[i] = -1
			continue
		}
		h := hash3(src, i)
		q.next[i] = q.head[h]
		q.head[h] = int32(i)
	}

	return q.Parser.Parse(dst, q, 0, len(src))
}

func (q *HashChain) Search(dst []AbsoluteMatch, pos, min, max int) []AbsoluteMatch {
	src := q.src
	if pos+MinMatch > max {
		return dst
	}
	maxLen := MaxMatch
	if max-pos < maxLen {
		maxLen = max - pos
	}

	best := MinMatch - 1
	for c := q.next[pos]; c >= 0; c = q.next[c] {
		i := int(c)
		dist := pos - i
		if dist > MaxDistance {
			break
		}
		if q.VRAMSafe && dist == 1 {
			continue
		}
		// The hash may collide; verify the minimum match before extending.
		if src[i] != src[pos] || src[i+1] != src[pos+1] || src[i+2] != src[pos+2] {
			continue
		}
		l := MinMatch
		for l < maxLen && src[i+l] == src[pos+l] {
			l++
		}
		if l > best {
			best = l
			dst = append(dst, AbsoluteMatch{Start: pos, End: pos + l, Match: i})
			if l == maxLen {
				break
			}
		}
	}

	return dst
}
