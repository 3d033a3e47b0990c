package gbapack

// BruteForce is an implementation of the MatchFinder interface that scans
// the entire window at every position, nearest positions first. It is the
// reference searcher: exact, deterministic, and O(n·w), with ties between
// equally long matches always resolved toward the smallest distance.
type BruteForce struct {
	// VRAMSafe excludes matches at distance 1. The BIOS routine that
	// decompresses directly to VRAM writes halfwords and cannot copy a
	// byte that was produced by the same halfword write.
	VRAMSafe bool

	// Parser selects the parse strategy. The default is a GreedyParser.
	Parser Parser

	src []byte
}

func (q *BruteForce) Reset() {
	q.src = nil
}

// FindMatches looks for matches in src, appends them to dst, and returns dst.
func (q *BruteForce) FindMatches(dst []Match, src []byte) []Match {
	if q.Parser == nil {
		q.Parser = &GreedyParser{}
	}
	q.src = src
	return q.Parser.Parse(dst, q, 0, len(src))
}

func (q *BruteForce) Search(dst []AbsoluteMatch, pos, min, max int) []AbsoluteMatch {
	src := q.src
	maxLen := MaxMatch
	if max-pos < maxLen {
		maxLen = max - pos
	}

	minDist := 1
	if q.VRAMSafe {
		minDist = 2
	}

	best := MinMatch - 1
	for dist := minDist; dist <= MaxDistance && dist <= pos; dist++ {
		i := pos - dist
		l := 0
		// The source may overlap the match: the decompressor copies a byte
		// at a time, so bytes written early in the copy are valid sources
		// for the rest of it.
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
